package service

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"

	"tee-factory/models"
	"tee-factory/utils"
)

// ArtifactCollector locates candidate design images scattered across
// extracted CI artifacts. Artifacts arrive as zip files (possibly several,
// each expanding into its own subtree); the collector extracts them,
// flattens every image into one working directory and deduplicates by
// filename.
type ArtifactCollector struct {
	workDir string
}

// NewArtifactCollector creates a collector that flattens results into
// workDir.
func NewArtifactCollector(workDir string) *ArtifactCollector {
	return &ArtifactCollector{workDir: workDir}
}

// Collect extracts every archive under root, gathers all image files into
// the working directory (last write wins on duplicate filenames, which is
// fine since conforming names embed a unique timestamp) and returns them as
// artifacts with their parsed naming metadata. A corrupt archive is logged
// and skipped; it must not abort the batch.
func (c *ArtifactCollector) Collect(root string) ([]models.DesignArtifact, error) {
	if err := os.MkdirAll(c.workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}

	var archives []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case strings.EqualFold(filepath.Ext(path), ".zip"):
			archives = append(archives, path)
		case isImageFile(path):
			if copyErr := c.copyIntoWorkDir(path); copyErr != nil {
				log.Printf("⚠️  Failed to copy %s: %v", path, copyErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	for _, archive := range archives {
		if err := c.extractImages(archive); err != nil {
			log.Printf("⚠️  Skipping corrupt artifact %s: %v", archive, err)
		}
	}

	return c.listArtifacts()
}

// copyIntoWorkDir flattens one loose image file into the working directory.
func (c *ArtifactCollector) copyIntoWorkDir(path string) error {
	dest := filepath.Join(c.workDir, filepath.Base(path))
	if samePath(path, dest) {
		return nil
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// extractImages pulls every image entry out of a zip archive into the
// working directory, flattened to its base name.
func (c *ArtifactCollector) extractImages(archivePath string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	extracted := 0
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() || !isImageFile(entry.Name) {
			continue
		}

		if err := c.extractEntry(entry); err != nil {
			log.Printf("⚠️  Failed to extract %s from %s: %v", entry.Name, archivePath, err)
			continue
		}
		extracted++
	}

	log.Printf("📦 Extracted %d images from %s", extracted, filepath.Base(archivePath))
	return nil
}

func (c *ArtifactCollector) extractEntry(entry *zip.File) error {
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dest := filepath.Join(c.workDir, filepath.Base(entry.Name))
	dst, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// listArtifacts builds the deduplicated artifact set from the working
// directory, sorted by filename for a stable processing order.
func (c *ArtifactCollector) listArtifacts() ([]models.DesignArtifact, error) {
	entries, err := os.ReadDir(c.workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list working directory: %w", err)
	}

	var artifacts []models.DesignArtifact
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}

		collection, date, timeOfDay := utils.ParseDesignFileName(entry.Name())
		artifacts = append(artifacts, models.DesignArtifact{
			Filename:       entry.Name(),
			CollectionSlug: collection,
			Date:           date,
			Time:           timeOfDay,
			LocalPath:      filepath.Join(c.workDir, entry.Name()),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Filename < artifacts[j].Filename })
	log.Printf("📦 Collected %d design artifacts", len(artifacts))
	return artifacts, nil
}

func isImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
