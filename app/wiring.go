package app

import (
	"context"
	"fmt"
	"log"

	"tee-factory/config"
	"tee-factory/models"
	"tee-factory/service"
)

// buildHosting picks the design hosting provider from what is configured:
// S3 when a bucket is set, Drive when a folder is set, and the repository's
// raw GitHub URL as the last resort.
func buildHosting(ctx context.Context, cfg *config.Config) (service.HostingProvider, error) {
	if cfg.S3Bucket != "" {
		log.Printf("☁️  Hosting designs on S3 bucket %s", cfg.S3Bucket)
		return service.NewS3Hosting(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey)
	}
	if cfg.DriveFolderID != "" {
		log.Printf("☁️  Hosting designs on Google Drive folder %s", cfg.DriveFolderID)
		return service.NewDriveHosting(ctx, cfg.DriveCredentials, cfg.DriveFolderID)
	}
	log.Printf("☁️  Hosting designs via raw GitHub URLs (%s)", cfg.GitHubRepo)
	return service.NewGitHubHosting(cfg.GitHubRepo)
}

// buildAdapters constructs the platform adapters selected by the --platform
// flag, validating only the credentials the selection needs.
func buildAdapters(ctx context.Context, cfg *config.Config, platform string) ([]service.PlatformAdapter, error) {
	wantPrintful := platform == "all" || platform == models.PlatformPrintful
	wantShopify := platform == "all" || platform == models.PlatformShopify
	if !wantPrintful && !wantShopify {
		return nil, fmt.Errorf("%w: unknown platform %q (expected all, printful or shopify)", models.ErrConfig, platform)
	}

	var adapters []service.PlatformAdapter

	if wantPrintful {
		if err := cfg.RequirePrintful(); err != nil {
			return nil, err
		}
		hosting, err := buildHosting(ctx, cfg)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, service.NewPrintfulService(cfg.PrintfulAPIKey, cfg.PrintfulStoreID, hosting))
	}

	if wantShopify {
		if err := cfg.RequireShopify(); err != nil {
			return nil, err
		}
		adapters = append(adapters, service.NewShopifyService(cfg.ShopifyAccessToken, cfg.ShopifyAPIBase()))
	}

	return adapters, nil
}
