package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/akshayareddy2629/BillWatch/internal/awsbill"
	"github.com/akshayareddy2629/BillWatch/internal/config"
	"github.com/akshayareddy2629/BillWatch/internal/scheduler"
	"github.com/akshayareddy2629/BillWatch/internal/store"
	"github.com/akshayareddy2629/BillWatch/internal/tui"
	"github.com/akshayareddy2629/BillWatch/internal/tui/theme"
)

// newFetcher picks the data source for the configured mode.
func newFetcher(ctx context.Context, settings config.Settings) (scheduler.Fetcher, error) {
	if settings.Mode == config.ModeSimulated {
		return awsbill.NewSimulator(), nil
	}
	client, err := awsbill.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS credentials: %w", err)
	}
	return client, nil
}

func runWidget(_ *cobra.Command, _ []string) error {
	settings := loadSettings()
	theme.SetActive(flagTheme)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fetcher, err := newFetcher(ctx, settings)
	if err != nil {
		return err
	}

	sched := scheduler.New(fetcher, scheduler.Config{
		Interval: time.Duration(settings.RefreshIntervalSec) * time.Second,
	})

	// Seed the widget from the last on-disk snapshot so something shows
	// before the first fetch lands. Cache problems are not fatal.
	cache, cacheErr := store.Open(store.DefaultPath())
	if cacheErr == nil {
		defer cache.Close()
		if v, err := cache.LoadView(); err == nil && v != nil {
			sched.SeedView(*v)
		}
	}

	go sched.Run(ctx)

	// React to config edits while the widget is open.
	settingsCh, watchErr := config.Watch(ctx, configPath())
	if watchErr != nil {
		settingsCh = nil
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	if flagTheme != theme.Terminal.Name {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	app := tui.NewApp(sched, settings, settingsCh)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("widget error: %w", err)
	}

	if cacheErr == nil {
		if v := sched.LastView(); v != nil {
			_ = cache.SaveView(*v)
		}
	}
	return nil
}
