package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/akshayareddy2629/BillWatch/internal/cli"
	"github.com/akshayareddy2629/BillWatch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	settings := loadSettings()

	fmt.Printf("  Config file: %s\n", configPath())
	if config.Exists(configPath()) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Printf("  Budget:           %s/month\n", cli.FormatCurrency(settings.Budget))
	fmt.Printf("  Refresh interval: %s\n", time.Duration(settings.RefreshIntervalSec)*time.Second)
	fmt.Printf("  Data source:      %s\n", settings.Mode)
	if flagSimulate {
		fmt.Println("                    (forced by --simulate)")
	}
	return nil
}
