package models

// CollectionDefinition describes one taxonomy bucket a design can belong to.
// Loaded from collections.json; RemoteCollectionID is filled in once by the
// seed-collections command and treated as read-only afterwards.
type CollectionDefinition struct {
	Slug               string   `json:"slug"`
	DisplayName        string   `json:"displayName"`
	Description        string   `json:"description"`
	Themes             []string `json:"themes,omitempty"`
	TagValue           string   `json:"tagValue"`
	RemoteCollectionID string   `json:"remoteCollectionId,omitempty"`
}
