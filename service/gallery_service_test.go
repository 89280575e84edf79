package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tee-factory/config"
	"tee-factory/models"
	"tee-factory/repository"
)

func TestGalleryRenderHTML(t *testing.T) {
	dir := t.TempDir()
	tracker, err := repository.LoadUploadTracker(filepath.Join(dir, "tracker.json"))
	require.NoError(t, err)
	require.NoError(t, tracker.Record("retro-gaming_20240115_103000.png", models.PlatformPrintful, models.StatusSuccess, "9001", ""))
	require.NoError(t, tracker.Record("IMG_001.png", models.PlatformShopify, models.StatusFailed, "", "boom"))

	imageDir := filepath.Join(dir, "designs")
	require.NoError(t, os.MkdirAll(imageDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(imageDir, "retro-gaming_20240115_103000.png"), []byte("png"), 0644))

	gallery := NewGalleryService(tracker, config.DefaultCollections(), imageDir)
	html, err := gallery.RenderHTML()
	require.NoError(t, err)

	assert.Contains(t, html, "Retro Gaming")
	assert.Contains(t, html, "retro-gaming_20240115_103000.png")
	// Fallback bucket entries render under the generic section.
	assert.Contains(t, html, "Custom Designs")
	assert.Contains(t, html, "IMG_001.png")
	// The tracked image is inlined.
	assert.Contains(t, html, "data:image/png;base64,")
	assert.Contains(t, html, "9001")
}

func TestGalleryRenderHTMLEmptyLedger(t *testing.T) {
	tracker, err := repository.LoadUploadTracker(filepath.Join(t.TempDir(), "tracker.json"))
	require.NoError(t, err)

	gallery := NewGalleryService(tracker, config.DefaultCollections(), t.TempDir())
	_, err = gallery.RenderHTML()
	assert.Error(t, err)
}

func TestGalleryWriteHTML(t *testing.T) {
	dir := t.TempDir()
	tracker, err := repository.LoadUploadTracker(filepath.Join(dir, "tracker.json"))
	require.NoError(t, err)
	require.NoError(t, tracker.Record("a_20240115_103000.png", models.PlatformPrintful, models.StatusSuccess, "", ""))

	gallery := NewGalleryService(tracker, config.DefaultCollections(), dir)
	out := filepath.Join(dir, "gallery.html")
	require.NoError(t, gallery.WriteHTML(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html>")
}
