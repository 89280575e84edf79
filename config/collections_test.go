package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tee-factory/models"
)

func TestLoadCollectionsMissingFileReturnsDefaults(t *testing.T) {
	collections, err := LoadCollections(filepath.Join(t.TempDir(), "collections.json"))
	require.NoError(t, err)

	assert.Len(t, collections, 5)
	assert.Contains(t, collections, "retro-gaming")
	assert.NotEmpty(t, collections["retro-gaming"].Themes)
}

func TestSaveAndLoadCollectionsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.json")

	collections := DefaultCollections()
	def := collections["retro-gaming"]
	def.RemoteCollectionID = "445566"
	collections["retro-gaming"] = def

	require.NoError(t, SaveCollections(path, collections))

	loaded, err := LoadCollections(path)
	require.NoError(t, err)
	assert.Equal(t, "445566", loaded["retro-gaming"].RemoteCollectionID)
	assert.Equal(t, collections["abstract-art"].DisplayName, loaded["abstract-art"].DisplayName)
}

func TestLoadCollectionsSyncsSlugFromKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.json")
	require.NoError(t, SaveCollections(path, Collections{
		"hand-written": models.CollectionDefinition{DisplayName: "Hand Written"},
	}))

	loaded, err := LoadCollections(path)
	require.NoError(t, err)
	assert.Equal(t, "hand-written", loaded["hand-written"].Slug)
}

func TestResolveUnknownSlugGetsGenericDefinition(t *testing.T) {
	collections := DefaultCollections()

	def := collections.Resolve("design")
	assert.Equal(t, "design", def.Slug)
	assert.Equal(t, "Custom Designs", def.DisplayName)
	assert.Equal(t, "design", def.TagValue)
}

func TestResolveKnownSlug(t *testing.T) {
	collections := DefaultCollections()

	def := collections.Resolve("nature-inspired")
	assert.Equal(t, "Nature Vibes", def.DisplayName)
}
