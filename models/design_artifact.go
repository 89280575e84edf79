package models

// DesignArtifact represents a single generated design image found while
// collecting CI artifacts. It lives only for the duration of a run; durable
// state is kept in the upload tracker.
type DesignArtifact struct {
	Filename       string `json:"filename"`
	CollectionSlug string `json:"collectionSlug"`
	// Date and Time come straight from the filename convention
	// (<collection>_<YYYYMMDD>_<HHMMSS>.png). Date is "unknown" when
	// the filename does not follow the convention.
	Date      string `json:"date"`
	Time      string `json:"time"`
	LocalPath string `json:"localPath"`
}
