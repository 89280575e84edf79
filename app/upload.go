package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tee-factory/config"
	"tee-factory/models"
	"tee-factory/pricing"
	"tee-factory/repository"
	"tee-factory/service"
	"tee-factory/utils"
)

func newUploadCommand() *cobra.Command {
	var (
		dir          string
		singleFile   string
		dryRun       bool
		platform     string
		retryFailed  bool
		resetTracker bool
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Collect design artifacts and upload new ones to the configured platforms",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg := config.Load()

			if resetTracker {
				if err := repository.Reset(cfg.TrackerFile); err != nil {
					return err
				}
				log.Printf("🔄 Upload tracker reset")
			}

			adapters, err := buildAdapters(ctx, cfg, platform)
			if err != nil {
				return err
			}

			tracker, err := repository.LoadUploadTracker(cfg.TrackerFile)
			if err != nil {
				return err
			}

			collections, err := config.LoadCollections(cfg.CollectionsFile)
			if err != nil {
				return err
			}

			pricer, err := pricing.NewEngine(cfg.BaseCostCents, cfg.MarkupFactor)
			if err != nil {
				return err
			}

			artifacts, err := gatherArtifacts(dir, singleFile)
			if err != nil {
				return err
			}
			if retryFailed {
				artifacts = filterFailed(artifacts, tracker)
				log.Printf("🔄 Retrying %d previously failed design(s)", len(artifacts))
			}
			if len(artifacts) == 0 {
				log.Printf("📦 No design artifacts to process")
				return nil
			}

			orchestrator := service.NewUploadOrchestrator(tracker, adapters, collections, pricer, dryRun)
			summary, err := orchestrator.Run(ctx, artifacts)
			if err != nil {
				return err
			}

			return service.WriteSummary(cfg.SummaryFile, summary)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "designs", "Directory to scan for design images and CI artifact archives")
	cmd.Flags().StringVar(&singleFile, "file", "", "Upload a single design file instead of scanning a directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run every step except the final platform calls")
	cmd.Flags().StringVar(&platform, "platform", "all", "Target platform: all, printful or shopify")
	cmd.Flags().BoolVar(&retryFailed, "retry-failed", false, "Only process designs with a failed status in the tracker")
	cmd.Flags().BoolVar(&resetTracker, "reset-tracker", false, "Delete the upload tracker before running")
	return cmd
}

// gatherArtifacts lists the work for this run: either one explicit file or
// everything the collector finds under dir.
func gatherArtifacts(dir, singleFile string) ([]models.DesignArtifact, error) {
	if singleFile != "" {
		if _, err := os.Stat(singleFile); err != nil {
			return nil, fmt.Errorf("design file not found: %w", err)
		}
		name := filepath.Base(singleFile)
		collection, date, timeOfDay := utils.ParseDesignFileName(name)
		return []models.DesignArtifact{{
			Filename:       name,
			CollectionSlug: collection,
			Date:           date,
			Time:           timeOfDay,
			LocalPath:      singleFile,
		}}, nil
	}

	collector := service.NewArtifactCollector(filepath.Join(dir, "collected"))
	return collector.Collect(dir)
}

func filterFailed(artifacts []models.DesignArtifact, tracker *repository.UploadTracker) []models.DesignArtifact {
	var out []models.DesignArtifact
	for _, artifact := range artifacts {
		record, ok := tracker.Get(artifact.Filename)
		if !ok {
			continue
		}
		if record.PrintfulStatus == models.StatusFailed || record.ShopifyStatus == models.StatusFailed {
			out = append(out, artifact)
		}
	}
	return out
}
