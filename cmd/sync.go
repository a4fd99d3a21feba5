package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one full crawl-dedup-enrich-upsert pass",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p, st, err := buildPipeline(ctx)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	defer st.Close()

	if err := p.Run(ctx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}
