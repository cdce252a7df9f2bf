package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/akshayareddy2629/BillWatch/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	current := config.Load(configPath())

	budgetStr := strconv.FormatFloat(current.Budget, 'f', -1, 64)
	intervalStr := strconv.Itoa(current.RefreshIntervalSec)
	mode := string(current.Mode)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly budget (USD)").
				Description("Spend above 75% shows yellow, above 90% red.").
				Value(&budgetStr).
				Validate(validateBudget),
			huh.NewInput().
				Title("Refresh interval (seconds)").
				Description("Between 10 and 300.").
				Value(&intervalStr).
				Validate(validateInterval),
			huh.NewSelect[string]().
				Title("Data source").
				Options(
					huh.NewOption("Live AWS (Cost Explorer)", string(config.ModeLive)),
					huh.NewOption("Simulated data", string(config.ModeSimulated)),
				).
				Value(&mode),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	budget, _ := strconv.ParseFloat(strings.TrimSpace(budgetStr), 64)
	interval, _ := strconv.Atoi(strings.TrimSpace(intervalStr))

	settings := config.Settings{
		Budget:             budget,
		RefreshIntervalSec: interval,
		Mode:               config.Mode(mode),
	}
	if err := config.Save(settings, configPath()); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("  Saved to %s\n", configPath())
	fmt.Println("  Run `billwatch` to launch the widget.")
	return nil
}

func validateBudget(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v <= 0 {
		return errors.New("budget must be positive")
	}
	return nil
}

func validateInterval(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number of seconds")
	}
	if v < config.MinInterval || v > config.MaxInterval {
		return fmt.Errorf("interval must be %d-%d seconds", config.MinInterval, config.MaxInterval)
	}
	return nil
}
