package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the application.
type Config struct {
	DatabaseURL string
	ServerPort  int

	// StatsAlpha is the default win-weight strength for the
	// bracket-weighted tables.
	StatsAlpha float64

	// ExportDir is where published snapshots are written.
	ExportDir string

	// Optional Cloudflare R2 credentials. Snapshot upload is disabled
	// when they are absent.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads configuration from environment variables, optionally
// seeded from a .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	alphaStr := os.Getenv("STATS_ALPHA")
	if alphaStr == "" {
		alphaStr = "0.5"
	}
	alpha, err := strconv.ParseFloat(alphaStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_ALPHA environment variable: %w", err)
	}
	if alpha < 0 {
		return nil, fmt.Errorf("STATS_ALPHA must not be negative, got %s", alphaStr)
	}

	exportDir := os.Getenv("EXPORT_DIR")
	if exportDir == "" {
		exportDir = "exports"
	}

	cfg := &Config{
		DatabaseURL:       dbURL,
		ServerPort:        port,
		StatsAlpha:        alpha,
		ExportDir:         exportDir,
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}

// R2Configured reports whether the full credential set for snapshot
// upload is present.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" &&
		c.R2AccessKeyID != "" &&
		c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" &&
		c.R2PublicBaseURL != ""
}
