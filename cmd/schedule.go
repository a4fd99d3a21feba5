package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run one sync now, then once per day on the configured cron schedule",
	RunE:  runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p, st, err := buildPipeline(ctx)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	defer st.Close()

	runOnce := func() {
		log.Printf("scheduled sync triggered")
		if err := p.Run(ctx); err != nil {
			log.Printf("sync failed: %v", err)
		}
	}

	// One immediate run at startup, then the daily schedule.
	runOnce()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(cfg.CronSpec, runOnce); err != nil {
		return fmt.Errorf("register cron spec %q: %w", cfg.CronSpec, err)
	}

	log.Printf("scheduler started: %q in %s", cfg.CronSpec, cfg.Timezone)
	c.Run() // blocks
	return nil
}
