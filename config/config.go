package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"tee-factory/models"
	"tee-factory/pricing"
)

// Default file locations, relative to the working directory the automation
// runs in.
const (
	DefaultTrackerFile     = "upload_tracker.json"
	DefaultCollectionsFile = "collections.json"
	DefaultSummaryFile     = "run_summary.json"
)

// Config carries everything the pipeline reads from the environment.
// Secrets are set directly in CI; local runs load them from .env via
// godotenv in main.
type Config struct {
	// Printful (print-on-demand)
	PrintfulAPIKey  string
	PrintfulStoreID string

	// Shopify (storefront)
	ShopifyStore       string
	ShopifyAccessToken string

	// Pricing
	MarkupFactor  float64
	BaseCostCents int64

	// Design hosting (public URLs for Printful's URL-based file uploads)
	S3Bucket      string
	S3Region      string
	S3AccessKey   string
	S3SecretKey   string
	DriveFolderID    string
	DriveCredentials string
	GitHubRepo       string // owner/repo, raw URL fallback

	// Generation
	GeminiAPIKey string

	// File locations
	TrackerFile     string
	CollectionsFile string
	SummaryFile     string
}

// Load reads the configuration from environment variables. It never fails:
// per-command validation happens in the Require* methods so that a missing
// Shopify token does not block a Printful-only run.
func Load() *Config {
	cfg := &Config{
		PrintfulAPIKey:     strings.TrimSpace(os.Getenv("PRINTFUL_API_KEY")),
		PrintfulStoreID:    strings.TrimSpace(os.Getenv("PRINTFUL_STORE_ID")),
		ShopifyStore:       strings.TrimSpace(os.Getenv("SHOPIFY_STORE")),
		ShopifyAccessToken: strings.TrimSpace(os.Getenv("SHOPIFY_ACCESS_TOKEN")),
		S3Bucket:           os.Getenv("S3_BUCKET_NAME"),
		S3Region:           os.Getenv("S3_REGION"),
		S3AccessKey:        os.Getenv("AWS_ACCESS_KEY_ID"),
		S3SecretKey:        os.Getenv("AWS_SECRET_ACCESS_KEY"),
		DriveFolderID:      os.Getenv("DRIVE_FOLDER_ID"),
		DriveCredentials:   os.Getenv("DRIVE_CREDENTIALS_FILE"),
		GitHubRepo:         os.Getenv("GITHUB_REPOSITORY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		TrackerFile:        DefaultTrackerFile,
		CollectionsFile:    DefaultCollectionsFile,
		SummaryFile:        DefaultSummaryFile,
	}

	if cfg.S3Region == "" {
		cfg.S3Region = "us-east-1"
	}
	if cfg.DriveCredentials == "" {
		cfg.DriveCredentials = "credentials.json"
	}

	cfg.MarkupFactor = pricing.DefaultMarkupFactor
	if v := os.Getenv("MARKUP_PERCENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 1 {
			cfg.MarkupFactor = f
		}
	}

	cfg.BaseCostCents = pricing.DefaultBaseCostCents
	if v := os.Getenv("BASE_COST_CENTS"); v != "" {
		if c, err := strconv.ParseInt(v, 10, 64); err == nil && c > 0 {
			cfg.BaseCostCents = c
		}
	}

	return cfg
}

// RequirePrintful validates the credentials the Printful adapter needs.
func (c *Config) RequirePrintful() error {
	if c.PrintfulAPIKey == "" {
		return fmt.Errorf("%w: PRINTFUL_API_KEY is not set", models.ErrConfig)
	}
	if c.PrintfulStoreID == "" {
		return fmt.Errorf("%w: PRINTFUL_STORE_ID is not set", models.ErrConfig)
	}
	return nil
}

// RequireShopify validates the credentials the Shopify adapter needs.
func (c *Config) RequireShopify() error {
	if c.ShopifyStore == "" {
		return fmt.Errorf("%w: SHOPIFY_STORE is not set", models.ErrConfig)
	}
	if c.ShopifyAccessToken == "" {
		return fmt.Errorf("%w: SHOPIFY_ACCESS_TOKEN is not set", models.ErrConfig)
	}
	return nil
}

// RequireGenerator validates what the design generator needs.
func (c *Config) RequireGenerator() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY is not set", models.ErrConfig)
	}
	return nil
}

// ShopifyAPIBase builds the storefront admin API base URL.
func (c *Config) ShopifyAPIBase() string {
	return fmt.Sprintf("https://%s.myshopify.com/admin/api/2024-01", c.ShopifyStore)
}
