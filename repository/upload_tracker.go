package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tee-factory/models"
)

// UploadTracker is the JSON-backed ledger of per-file upload outcomes. It is
// read once at the start of a run and rewritten to disk after every Record,
// so a crash mid-batch loses at most the in-flight item.
// Implements UploadTrackerInterface.
type UploadTracker struct {
	path    string
	records map[string]*models.UploadRecord

	// Per-run counters, reset on load. The ledger itself is append-forever
	// history; the summary reports only what this run did.
	runCounts map[string]*models.PlatformCounts
}

// Ensure UploadTracker implements UploadTrackerInterface
var _ UploadTrackerInterface = (*UploadTracker)(nil)

// LoadUploadTracker reads the ledger file if present; a missing file yields
// an empty ledger.
func LoadUploadTracker(path string) (*UploadTracker, error) {
	tracker := &UploadTracker{
		path:    path,
		records: make(map[string]*models.UploadRecord),
		runCounts: map[string]*models.PlatformCounts{
			models.PlatformPrintful: {},
			models.PlatformShopify:  {},
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tracker, nil
		}
		return nil, fmt.Errorf("failed to read tracker file: %w", err)
	}

	if err := json.Unmarshal(data, &tracker.records); err != nil {
		return nil, fmt.Errorf("failed to parse tracker file: %w", err)
	}

	return tracker, nil
}

// IsUploaded returns true only if the platform's status for the filename is
// exactly "success".
func (t *UploadTracker) IsUploaded(filename, platform string) bool {
	record, ok := t.records[filename]
	if !ok {
		return false
	}
	return record.StatusFor(platform) == models.StatusSuccess
}

// Get returns a copy of the record for a filename.
func (t *UploadTracker) Get(filename string) (models.UploadRecord, bool) {
	record, ok := t.records[filename]
	if !ok {
		return models.UploadRecord{}, false
	}
	return *record, true
}

// Record upserts the ledger entry for filename/platform and immediately
// persists the full ledger. A platform status only advances forward: an
// existing "success" is never downgraded by a later attempt.
func (t *UploadTracker) Record(filename, platform string, status models.PlatformStatus, productID, errorMessage string) error {
	record, ok := t.records[filename]
	if !ok {
		record = &models.UploadRecord{
			Filename:       filename,
			PrintfulStatus: models.StatusPending,
			ShopifyStatus:  models.StatusPending,
		}
		t.records[filename] = record
	}

	if record.StatusFor(platform) == models.StatusSuccess && status != models.StatusSuccess {
		// Idempotent skip: the earlier success stands.
		t.countFor(platform).Skipped++
		return nil
	}

	record.SetStatusFor(platform, status)
	record.LastAttemptUTC = time.Now().UTC().Format(time.RFC3339)
	if productID != "" {
		record.ProductID = productID
	}
	record.ErrorMessage = errorMessage

	switch status {
	case models.StatusSuccess:
		t.countFor(platform).Success++
	case models.StatusFailed:
		t.countFor(platform).Failed++
	case models.StatusSkipped:
		t.countFor(platform).Skipped++
	}

	return t.persist()
}

// RecordSkip counts an already-uploaded item toward this run's skipped total
// without touching the durable entry.
func (t *UploadTracker) RecordSkip(filename, platform string) {
	t.countFor(platform).Skipped++
}

// SetCollectionID stores the remote collection a file was filed under.
func (t *UploadTracker) SetCollectionID(filename, collectionID string) error {
	record, ok := t.records[filename]
	if !ok {
		return nil
	}
	record.CollectionID = collectionID
	return t.persist()
}

// Summary returns this run's per-platform success/failed/skipped counts.
func (t *UploadTracker) Summary() map[string]models.PlatformCounts {
	out := make(map[string]models.PlatformCounts, len(t.runCounts))
	for platform, counts := range t.runCounts {
		out[platform] = *counts
	}
	return out
}

// All returns every ledger entry sorted by filename.
func (t *UploadTracker) All() []models.UploadRecord {
	out := make([]models.UploadRecord, 0, len(t.records))
	for _, record := range t.records {
		out = append(out, *record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

// Len returns the number of ledger entries.
func (t *UploadTracker) Len() int {
	return len(t.records)
}

// Reset removes the ledger file from disk. Everything will be re-uploaded
// on the next run.
func Reset(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove tracker file: %w", err)
	}
	return nil
}

// countFor returns this run's counters for a platform, creating the entry
// if the platform was not pre-seeded at load time.
func (t *UploadTracker) countFor(platform string) *models.PlatformCounts {
	counts, ok := t.runCounts[platform]
	if !ok {
		counts = &models.PlatformCounts{}
		t.runCounts[platform] = counts
	}
	return counts
}

// persist writes the full ledger through a temp file and rename so a crash
// mid-write cannot corrupt prior progress.
func (t *UploadTracker) persist() error {
	data, err := json.MarshalIndent(t.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tracker: %w", err)
	}

	dir := filepath.Dir(t.path)
	tmp, err := os.CreateTemp(dir, ".upload_tracker-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp tracker file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write tracker: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to flush tracker: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close tracker: %w", err)
	}

	if err := os.Rename(tmp.Name(), t.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace tracker file: %w", err)
	}
	return nil
}
