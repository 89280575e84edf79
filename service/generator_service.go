package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"

	"tee-factory/config"
	"tee-factory/models"
)

const (
	titleModel = "gemini-2.0-flash"
	imageModel = "imagen-3.0-generate-002"
)

// GeneratorService produces new design images from collection themes and
// writes them to the output directory under the naming convention the rest
// of the pipeline expects.
type GeneratorService struct {
	client      *genai.Client
	collections config.Collections
	outputDir   string
}

// NewGeneratorService creates the generator.
func NewGeneratorService(ctx context.Context, apiKey string, collections config.Collections, outputDir string) (*GeneratorService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", models.ErrConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeneratorService{
		client:      client,
		collections: collections,
		outputDir:   outputDir,
	}, nil
}

// PickDailyCollection rotates through the taxonomy by day of month so each
// scheduled CI run works a different bucket.
func (g *GeneratorService) PickDailyCollection() string {
	slugs := make([]string, 0, len(g.collections))
	for slug := range g.collections {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	if len(slugs) == 0 {
		return ""
	}
	day := time.Now().Day()
	return slugs[(day-1)%len(slugs)]
}

// GenerateDesign produces one design for a collection (or from a custom
// prompt), prepares it for print and saves it with a metadata sidecar.
func (g *GeneratorService) GenerateDesign(ctx context.Context, slug, customPrompt string) (*models.DesignArtifact, error) {
	def := g.collections.Resolve(slug)

	theme := customPrompt
	if theme == "" {
		if len(def.Themes) == 0 {
			return nil, fmt.Errorf("collection %s has no themes and no custom prompt was given", slug)
		}
		theme = seasonalTheme(def.Themes[rand.Intn(len(def.Themes))])
	}

	title := g.generateTitle(ctx, theme, def.DisplayName)
	log.Printf("🎯 Theme: %s", theme)
	log.Printf("📝 Title: %s", title)

	imageData, err := g.generateImage(ctx, theme)
	if err != nil {
		return nil, err
	}

	prepared, err := PrepareForPrint(imageData)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().UTC().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.png", def.Slug, timestamp)
	localPath := filepath.Join(g.outputDir, filename)

	if err := os.WriteFile(localPath, prepared, 0644); err != nil {
		return nil, fmt.Errorf("failed to save design: %w", err)
	}
	log.Printf("💾 Saved design as %s", filename)

	metadata := map[string]string{
		"title":      title,
		"collection": def.Slug,
		"theme":      theme,
		"timestamp":  timestamp,
		"filename":   filename,
	}
	metadataPath := strings.TrimSuffix(localPath, ".png") + "_metadata.json"
	if data, err := json.MarshalIndent(metadata, "", "  "); err == nil {
		if err := os.WriteFile(metadataPath, data, 0644); err != nil {
			log.Printf("⚠️  Failed to save metadata sidecar: %v", err)
		}
	}

	parts := strings.SplitN(timestamp, "_", 2)
	return &models.DesignArtifact{
		Filename:       filename,
		CollectionSlug: def.Slug,
		Date:           parts[0],
		Time:           parts[1],
		LocalPath:      localPath,
	}, nil
}

// GenerateBulk produces count designs with a fixed delay between each and
// writes a session log. Failures are counted, not fatal.
func (g *GeneratorService) GenerateBulk(ctx context.Context, slug string, count int, delay time.Duration) (successful, failed int, err error) {
	log.Printf("🚀 Bulk generation: collection=%s count=%d delay=%s", slug, count, delay)

	type bulkResult struct {
		Index     int    `json:"index"`
		Timestamp string `json:"timestamp"`
		Status    string `json:"status"`
		Filename  string `json:"filename,omitempty"`
		Error     string `json:"error,omitempty"`
	}
	results := make([]bulkResult, 0, count)

	for i := 0; i < count; i++ {
		log.Printf("🎨 Generating design %d of %d...", i+1, count)

		result := bulkResult{Index: i + 1, Timestamp: time.Now().UTC().Format(time.RFC3339)}
		artifact, genErr := g.GenerateDesign(ctx, slug, "")
		if genErr != nil {
			log.Printf("❌ Design %d failed: %v", i+1, genErr)
			result.Status = "failed"
			result.Error = genErr.Error()
			failed++
		} else {
			result.Status = "success"
			result.Filename = artifact.Filename
			successful++
		}
		results = append(results, result)

		if i < count-1 {
			time.Sleep(delay)
		}
	}

	sessionLog := map[string]any{
		"collection": slug,
		"requested":  count,
		"successful": successful,
		"failed":     failed,
		"results":    results,
	}
	logPath := filepath.Join(g.outputDir, fmt.Sprintf("bulk_generation_%s.json", time.Now().UTC().Format("20060102_150405")))
	if data, marshalErr := json.MarshalIndent(sessionLog, "", "  "); marshalErr == nil {
		if writeErr := os.WriteFile(logPath, data, 0644); writeErr != nil {
			log.Printf("⚠️  Failed to write bulk session log: %v", writeErr)
		} else {
			log.Printf("💾 Bulk session log saved to %s", logPath)
		}
	}

	log.Printf("🎉 Bulk generation complete: %d successful, %d failed", successful, failed)
	return successful, failed, nil
}

// generateTitle asks Gemini for a short product title. A generation failure
// falls back to a deterministic title so a flaky model never blocks a run.
func (g *GeneratorService) generateTitle(ctx context.Context, theme, collectionName string) string {
	prompt := fmt.Sprintf(
		"Create a catchy t-shirt title (max 5 words) for this design theme: %s. Collection: %s. Reply with the title only.",
		theme, collectionName)

	resp, err := g.client.Models.GenerateContent(ctx, titleModel, genai.Text(prompt), nil)
	if err != nil {
		log.Printf("⚠️  Title generation failed, using fallback: %v", err)
		return fmt.Sprintf("%s Tee #%03d", collectionName, rand.Intn(900)+100)
	}

	title := strings.Trim(strings.TrimSpace(resp.Text()), `"`)
	if title == "" {
		return fmt.Sprintf("%s Tee #%03d", collectionName, rand.Intn(900)+100)
	}
	return title
}

// generateImage produces the raw design image bytes.
func (g *GeneratorService) generateImage(ctx context.Context, theme string) ([]byte, error) {
	prompt := fmt.Sprintf(`Create a professional t-shirt design for: %s

Requirements:
- Clean, eye-catching design suitable for print-on-demand
- Works well on both white and black t-shirts
- High contrast, bold elements
- Centered composition
- No copyrighted content`, theme)

	log.Printf("🎨 Generating design image...")
	resp, err := g.client.Models.GenerateImages(ctx, imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("image generation returned no images")
	}

	log.Printf("✅ Design generated successfully")
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}

// seasonalTheme appends a light seasonal twist to the base theme.
func seasonalTheme(theme string) string {
	switch time.Now().Month() {
	case time.December:
		return theme + " with subtle Christmas elements"
	case time.June, time.July, time.August:
		return theme + " with summer vibes"
	case time.October:
		return theme + " with Halloween twist"
	}
	return theme
}
