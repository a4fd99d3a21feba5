package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Crawl
	CategoriesFile    string
	BaseURL           string
	MaxPage           int
	PageDelay         time.Duration
	RequestTimeout    time.Duration
	CrawlConcurrency  int
	DetailConcurrency int
	RespectRobots     bool

	// Rate limiting
	RatePerSecond float64
	RateBurst     int

	// Postgres
	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string
	PGSSLMode  string

	// Report mail
	SMTPHost    string
	SMTPPort    string
	SMTPUser    string
	SMTPPass    string
	ReportEmail string

	// Schedule
	CronSpec string
	Timezone string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CategoriesFile:    "categories.csv",
		BaseURL:           "https://apigw.trendyol.com",
		MaxPage:           50,
		PageDelay:         500 * time.Millisecond,
		RequestTimeout:    10 * time.Second,
		CrawlConcurrency:  5,
		DetailConcurrency: 5,
		RespectRobots:     false,
		RatePerSecond:     2.0,
		RateBurst:         3,
		PGHost:            "localhost",
		PGPort:            "5432",
		PGDatabase:        "trendyol",
		PGSSLMode:         "disable",
		SMTPHost:          "smtp.gmail.com",
		SMTPPort:          "587",
		CronSpec:          "0 2 * * *",
		Timezone:          "Europe/Istanbul",
	}
}

// PostgresDSN builds the lib/pq connection string from the PG_* settings.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.PGHost, c.PGPort, c.PGUser, c.PGPassword, c.PGDatabase, c.PGSSLMode)
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("TRENDSYNC_CATEGORIES"); v != "" {
		c.CategoriesFile = v
	}
	if v := os.Getenv("TRENDSYNC_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("TRENDSYNC_MAX_PAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxPage = n
		}
	}
	if v := os.Getenv("TRENDSYNC_PAGE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PageDelay = d
		}
	}
	if v := os.Getenv("TRENDSYNC_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	if v := os.Getenv("TRENDSYNC_CRAWL_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CrawlConcurrency = n
		}
	}
	if v := os.Getenv("TRENDSYNC_DETAIL_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DetailConcurrency = n
		}
	}
	if v := os.Getenv("TRENDSYNC_RESPECT_ROBOTS"); v == "true" {
		c.RespectRobots = true
	}
	if v := os.Getenv("TRENDSYNC_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("TRENDSYNC_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("PG_HOST"); v != "" {
		c.PGHost = v
	}
	if v := os.Getenv("PG_PORT"); v != "" {
		c.PGPort = v
	}
	if v := os.Getenv("PG_USER"); v != "" {
		c.PGUser = v
	}
	if v := os.Getenv("PG_PASS"); v != "" {
		c.PGPassword = v
	}
	if v := os.Getenv("PG_DB"); v != "" {
		c.PGDatabase = v
	}
	if v := os.Getenv("PG_SSLMODE"); v != "" {
		c.PGSSLMode = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		c.SMTPPort = v
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		c.SMTPUser = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		c.SMTPPass = v
	}
	if v := os.Getenv("REPORT_EMAIL"); v != "" {
		c.ReportEmail = v
	}
	if v := os.Getenv("TRENDSYNC_CRON"); v != "" {
		c.CronSpec = v
	}
	if v := os.Getenv("TRENDSYNC_TZ"); v != "" {
		c.Timezone = v
	}
}
