// Package cmd implements the billwatch CLI commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/akshayareddy2629/BillWatch/internal/config"
	"github.com/akshayareddy2629/BillWatch/internal/tui/theme"
)

var (
	flagConfigPath string
	flagSimulate   bool
	flagTheme      string
)

var rootCmd = &cobra.Command{
	Use:   "billwatch",
	Short: "AWS cost widget for the terminal",
	Long:  "Watch AWS month-to-date spend: budget pressure and top services, refreshed on a timer.",
	RunE:  runWidget,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "", "Config file path (default XDG config dir)")
	rootCmd.PersistentFlags().BoolVar(&flagSimulate, "simulate", false, "Use simulated cost data instead of AWS")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", theme.FlexokiDark.Name, "Color theme (flexoki-dark, terminal)")
}

func configPath() string {
	if flagConfigPath != "" {
		return flagConfigPath
	}
	return config.Path()
}

// loadSettings resolves the effective settings for this invocation.
// Missing or malformed config files fall back to defaults; --simulate
// overrides the configured data source.
func loadSettings() config.Settings {
	settings := config.Load(configPath())
	if flagSimulate {
		settings.Mode = config.ModeSimulated
	}
	return settings
}
