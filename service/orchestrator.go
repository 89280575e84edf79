package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"tee-factory/config"
	"tee-factory/models"
	"tee-factory/pricing"
	"tee-factory/repository"
	"tee-factory/utils"
)

// UploadOrchestrator drives the per-artifact upload state machine:
// NotStarted → (skip if already success) → Uploading → Succeeded | Failed.
// Terminal states land in the ledger; a single failed item never stops the
// batch, only an authentication failure latches that platform off for the
// rest of the run.
type UploadOrchestrator struct {
	tracker     *repository.UploadTracker
	adapters    []PlatformAdapter
	collections config.Collections
	pricer      *pricing.Engine
	dryRun      bool

	// Fixed pause between artifacts to stay under vendor rate limits.
	itemSpacing time.Duration
}

// NewUploadOrchestrator wires the orchestrator.
func NewUploadOrchestrator(
	tracker *repository.UploadTracker,
	adapters []PlatformAdapter,
	collections config.Collections,
	pricer *pricing.Engine,
	dryRun bool,
) *UploadOrchestrator {
	return &UploadOrchestrator{
		tracker:     tracker,
		adapters:    adapters,
		collections: collections,
		pricer:      pricer,
		dryRun:      dryRun,
		itemSpacing: 2 * time.Second,
	}
}

// Run processes every artifact against every adapter, consults the ledger to
// skip work already done, and always produces a run summary — even on
// partial failure.
func (o *UploadOrchestrator) Run(ctx context.Context, artifacts []models.DesignArtifact) (*models.RunSummary, error) {
	summary := &models.RunSummary{
		RunID:      uuid.NewString(),
		StartedUTC: time.Now().UTC().Format(time.RFC3339),
		DryRun:     o.dryRun,
		Total:      len(artifacts),
		Platforms:  map[string]models.PlatformCounts{},
	}

	// Once a platform rejects the credential, every remaining item on that
	// platform is recorded failed without another network call.
	authFailed := map[string]bool{}

	for i, artifact := range artifacts {
		log.Printf("📁 Processing: %s (collection: %s)", artifact.Filename, artifact.CollectionSlug)

		meta, err := o.buildMeta(artifact)
		if err != nil {
			// Unreadable file: record failed on every platform and move on.
			log.Printf("❌ %s: %v", artifact.Filename, err)
			for _, adapter := range o.adapters {
				if recordErr := o.recordFailure(summary, artifact.Filename, adapter.Name(), err); recordErr != nil {
					return summary, recordErr
				}
			}
			continue
		}

		for _, adapter := range o.adapters {
			platform := adapter.Name()

			if o.tracker.IsUploaded(artifact.Filename, platform) {
				log.Printf("⏭️  Skipping %s on %s (already uploaded)", artifact.Filename, platform)
				o.tracker.RecordSkip(artifact.Filename, platform)
				continue
			}

			if authFailed[platform] {
				err := fmt.Errorf("%w: not attempted, credential already rejected this run", models.ErrAuth)
				if recordErr := o.recordFailure(summary, artifact.Filename, platform, err); recordErr != nil {
					return summary, recordErr
				}
				continue
			}

			if o.dryRun {
				log.Printf("🔍 DRY RUN - would upload %s to %s (%s, price %s)",
					artifact.Filename, platform, meta.Title, meta.Pricer.PriceStringForSize("M"))
				continue
			}

			remoteID, err := adapter.Upload(ctx, artifact, meta)
			if err != nil {
				if errors.Is(err, models.ErrAuth) {
					log.Printf("🔐 %s credential rejected; skipping its remaining items", platform)
					authFailed[platform] = true
				}
				if recordErr := o.recordFailure(summary, artifact.Filename, platform, err); recordErr != nil {
					return summary, recordErr
				}
				continue
			}

			if err := o.tracker.Record(artifact.Filename, platform, models.StatusSuccess, remoteID, ""); err != nil {
				return summary, fmt.Errorf("failed to persist ledger: %w", err)
			}
			if platform == models.PlatformShopify && meta.Collection.RemoteCollectionID != "" {
				if err := o.tracker.SetCollectionID(artifact.Filename, meta.Collection.RemoteCollectionID); err != nil {
					return summary, fmt.Errorf("failed to persist ledger: %w", err)
				}
			}
			log.Printf("✅ %s uploaded to %s (product %s)", artifact.Filename, platform, remoteID)
		}

		if !o.dryRun && i < len(artifacts)-1 {
			time.Sleep(o.itemSpacing)
		}
	}

	summary.EndedUTC = time.Now().UTC().Format(time.RFC3339)
	summary.Platforms = o.tracker.Summary()
	o.logSummary(summary)
	return summary, nil
}

// recordFailure converts a per-item error into a ledger entry and a summary
// failure line. Only ledger persistence errors propagate.
func (o *UploadOrchestrator) recordFailure(summary *models.RunSummary, filename, platform string, cause error) error {
	log.Printf("❌ %s failed on %s: %v", filename, platform, cause)
	summary.Failures = append(summary.Failures, models.FailedUpload{
		Filename: filename,
		Platform: platform,
		Reason:   cause.Error(),
	})
	if err := o.tracker.Record(filename, platform, models.StatusFailed, "", cause.Error()); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}
	return nil
}

// buildMeta resolves the taxonomy bucket, product title and file hash for
// one artifact.
func (o *UploadOrchestrator) buildMeta(artifact models.DesignArtifact) (UploadMeta, error) {
	def := o.collections.Resolve(artifact.CollectionSlug)

	hash, err := utils.FileHash(artifact.LocalPath)
	if err != nil {
		return UploadMeta{}, err
	}

	title := fmt.Sprintf("%s Tee - %s", def.DisplayName, artifact.Date)
	if artifact.Date == utils.FallbackDate {
		title = fmt.Sprintf("%s Tee - %s", def.DisplayName, utils.ShortHash(hash))
	}

	return UploadMeta{
		Collection: def,
		Title:      title,
		FileHash:   hash,
		Pricer:     o.pricer,
	}, nil
}

// logSummary prints the human-readable run report.
func (o *UploadOrchestrator) logSummary(summary *models.RunSummary) {
	log.Printf("📊 UPLOAD SUMMARY (run %s)", summary.RunID)
	for platform, counts := range summary.Platforms {
		log.Printf("   %s: ✅ %d uploaded, ❌ %d failed, ⏭️  %d skipped",
			platform, counts.Success, counts.Failed, counts.Skipped)
	}
	for _, failure := range summary.Failures {
		log.Printf("   ❌ %s (%s): %s", failure.Filename, failure.Platform, failure.Reason)
	}
	log.Printf("🎉 Run completed: %d artifacts processed", summary.Total)
}

// WriteSummary persists the run summary JSON next to the ledger so a human
// can decide whether to rerun.
func WriteSummary(path string, summary *models.RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run summary: %w", err)
	}
	return nil
}
