package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"trendsync/config"
	"trendsync/internal/catalog"
	"trendsync/internal/httputil"
	"trendsync/internal/models"
	"trendsync/internal/pipeline"
	"trendsync/internal/report"
	"trendsync/internal/store"
	"trendsync/internal/trendyol"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "trendsync",
	Short: "Trendsync - Trendyol catalog crawler and Postgres sync",
	Long:  "A Go-based pipeline that crawls the Trendyol catalog across category definitions, deduplicates and enriches products, and upserts them into Postgres.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("categories", "", "Path to the category definition CSV")
	rootCmd.PersistentFlags().Int("max-page", 0, "Per-category page ceiling")
	rootCmd.PersistentFlags().Int("crawl-concurrency", 0, "Simultaneous category crawls")
	rootCmd.PersistentFlags().Int("detail-concurrency", 0, "Simultaneous detail fetches")
	rootCmd.PersistentFlags().Bool("respect-robots", false, "Respect robots.txt rules")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("categories"); v != "" {
		cfg.CategoriesFile = v
	}
	if v, _ := rootCmd.PersistentFlags().GetInt("max-page"); v > 0 {
		cfg.MaxPage = v
	}
	if v, _ := rootCmd.PersistentFlags().GetInt("crawl-concurrency"); v > 0 {
		cfg.CrawlConcurrency = v
	}
	if v, _ := rootCmd.PersistentFlags().GetInt("detail-concurrency"); v > 0 {
		cfg.DetailConcurrency = v
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("respect-robots"); v {
		cfg.RespectRobots = true
	}
}

// buildHTTPClient creates the shared rate-limited HTTP client from config.
func buildHTTPClient() *http.Client {
	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)

	baseTransport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	robotsClient := &http.Client{Timeout: 10 * time.Second}
	robots := httputil.NewRobotsChecker(robotsClient, cfg.RespectRobots)

	transport := &httputil.Transport{
		Base:        baseTransport,
		Robots:      robots,
		RateLimiter: limiter,
	}

	return httputil.NewHTTPClient(transport, cfg.RequestTimeout)
}

// buildPipeline wires the upstream client, the Postgres store, and the report
// mailer into one run pipeline. The caller owns the returned store.
func buildPipeline(ctx context.Context) (*pipeline.Pipeline, *store.Store, error) {
	st, err := store.Open(ctx, cfg.PostgresDSN())
	if err != nil {
		return nil, nil, err
	}

	client := trendyol.NewClient(buildHTTPClient(), cfg.BaseURL, cfg.MaxPage, cfg.PageDelay)

	var notifier pipeline.Notifier
	if cfg.ReportEmail != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			loc = time.Local
		}
		notifier = report.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ReportEmail, loc)
	}

	categories := func() ([]models.Category, error) {
		return catalog.Load(cfg.CategoriesFile)
	}

	p := pipeline.New(categories, client, client, st, notifier,
		cfg.CrawlConcurrency, cfg.DetailConcurrency)
	return p, st, nil
}
