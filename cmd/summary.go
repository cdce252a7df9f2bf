package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/akshayareddy2629/BillWatch/internal/cli"
	"github.com/akshayareddy2629/BillWatch/internal/pipeline"
	"github.com/akshayareddy2629/BillWatch/internal/store"
)

var flagNonZero bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Fetch once and print a cost report",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&flagNonZero, "nonzero", false, "Hide services with zero cost")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	settings := loadSettings()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetcher, err := newFetcher(ctx, settings)
	if err != nil {
		return err
	}

	report, err := fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch costs: %w", err)
	}

	records := report.Records
	if flagNonZero {
		records = pipeline.FilterNonZero(records)
	}
	view := pipeline.Aggregate(records, report.Total, report.FetchedAt)
	fmt.Print(cli.RenderSummary(view, settings))

	// Keep the widget's startup snapshot fresh too.
	if cache, err := store.Open(store.DefaultPath()); err == nil {
		_ = cache.SaveView(view)
		_ = cache.Close()
	}
	return nil
}
