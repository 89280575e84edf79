package models

// PlatformStatus is the per-platform outcome stored for an upload attempt.
type PlatformStatus string

const (
	StatusPending PlatformStatus = "pending"
	StatusSuccess PlatformStatus = "success"
	StatusFailed  PlatformStatus = "failed"
	StatusSkipped PlatformStatus = "skipped"
)

// Platform identifiers used as ledger keys and in CLI flags.
const (
	PlatformPrintful = "printful"
	PlatformShopify  = "shopify"
)

// UploadRecord is the durable per-file tracking entry. A filename maps to at
// most one record; a platform status only advances forward and a prior
// "success" is never overwritten by a later attempt.
type UploadRecord struct {
	Filename       string         `json:"filename"`
	PrintfulStatus PlatformStatus `json:"printfulStatus"`
	ShopifyStatus  PlatformStatus `json:"shopifyStatus"`
	ProductID      string         `json:"productId,omitempty"`
	CollectionID   string         `json:"collectionId,omitempty"`
	LastAttemptUTC string         `json:"lastAttemptUtc"`
	ErrorMessage   string         `json:"errorMessage,omitempty"`
}

// StatusFor returns the stored status for the given platform.
func (r *UploadRecord) StatusFor(platform string) PlatformStatus {
	switch platform {
	case PlatformPrintful:
		return r.PrintfulStatus
	case PlatformShopify:
		return r.ShopifyStatus
	}
	return ""
}

// SetStatusFor updates the stored status for the given platform.
func (r *UploadRecord) SetStatusFor(platform string, status PlatformStatus) {
	switch platform {
	case PlatformPrintful:
		r.PrintfulStatus = status
	case PlatformShopify:
		r.ShopifyStatus = status
	}
}
