package repository

import "tee-factory/models"

// UploadTrackerInterface defines the contract for the upload ledger.
type UploadTrackerInterface interface {
	IsUploaded(filename, platform string) bool
	Get(filename string) (models.UploadRecord, bool)
	Record(filename, platform string, status models.PlatformStatus, productID, errorMessage string) error
	RecordSkip(filename, platform string)
	Summary() map[string]models.PlatformCounts
	All() []models.UploadRecord
}
