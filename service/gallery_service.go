package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"tee-factory/config"
	"tee-factory/models"
	"tee-factory/repository"
	"tee-factory/utils"
)

// GalleryService renders an HTML overview of every tracked design, grouped
// by collection, and can snapshot it to PDF for sharing.
type GalleryService struct {
	tracker     repository.UploadTrackerInterface
	collections config.Collections
	imageDir    string
}

// NewGalleryService creates a new GalleryService.
func NewGalleryService(tracker repository.UploadTrackerInterface, collections config.Collections, imageDir string) *GalleryService {
	return &GalleryService{
		tracker:     tracker,
		collections: collections,
		imageDir:    imageDir,
	}
}

type galleryItem struct {
	Filename       string
	Title          string
	PrintfulStatus models.PlatformStatus
	ShopifyStatus  models.PlatformStatus
	ProductID      string
	ImageDataURI   template.URL
}

type gallerySection struct {
	Name  string
	Items []galleryItem
}

var galleryTemplate = template.Must(template.New("gallery").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Design Gallery</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 24px; color: #222; }
  h1 { font-size: 22px; }
  h2 { font-size: 16px; border-bottom: 1px solid #ccc; padding-bottom: 4px; margin-top: 28px; }
  .grid { display: flex; flex-wrap: wrap; gap: 16px; }
  .card { width: 220px; border: 1px solid #ddd; border-radius: 6px; padding: 10px; page-break-inside: avoid; }
  .card img { width: 100%; border-radius: 4px; background: #fafafa; }
  .title { font-weight: bold; margin: 6px 0 2px; font-size: 13px; }
  .meta { font-size: 11px; color: #666; }
  .status-success { color: #1a7f37; }
  .status-failed { color: #b42318; }
  .status-pending { color: #946800; }
</style>
</head>
<body>
<h1>Design Gallery</h1>
<p class="meta">Generated {{.GeneratedAt}} · {{.Total}} designs</p>
{{range .Sections}}
<h2>{{.Name}}</h2>
<div class="grid">
{{range .Items}}
  <div class="card">
    {{if .ImageDataURI}}<img src="{{.ImageDataURI}}" alt="{{.Filename}}">{{end}}
    <div class="title">{{.Title}}</div>
    <div class="meta">{{.Filename}}</div>
    <div class="meta">Printful: <span class="status-{{.PrintfulStatus}}">{{.PrintfulStatus}}</span></div>
    <div class="meta">Shopify: <span class="status-{{.ShopifyStatus}}">{{.ShopifyStatus}}</span></div>
    {{if .ProductID}}<div class="meta">Product #{{.ProductID}}</div>{{end}}
  </div>
{{end}}
</div>
{{end}}
</body>
</html>
`))

// RenderHTML builds the gallery HTML from the upload ledger. Images are
// inlined as base64 data URIs so the output is a single self-contained file.
func (s *GalleryService) RenderHTML() (string, error) {
	records := s.tracker.All()
	if len(records) == 0 {
		return "", fmt.Errorf("no tracked designs to render")
	}

	bySection := make(map[string][]galleryItem)
	for _, record := range records {
		collection, _, _ := utils.ParseDesignFileName(record.Filename)
		def := s.collections.Resolve(collection)

		item := galleryItem{
			Filename:       record.Filename,
			Title:          def.DisplayName,
			PrintfulStatus: record.PrintfulStatus,
			ShopifyStatus:  record.ShopifyStatus,
			ProductID:      record.ProductID,
		}
		if uri, err := s.imageDataURI(record.Filename); err != nil {
			log.Printf("⚠️  No local image for %s: %v", record.Filename, err)
		} else {
			item.ImageDataURI = template.URL(uri)
		}
		bySection[def.DisplayName] = append(bySection[def.DisplayName], item)
	}

	names := make([]string, 0, len(bySection))
	for name := range bySection {
		names = append(names, name)
	}
	sort.Strings(names)

	sections := make([]gallerySection, 0, len(names))
	for _, name := range names {
		sections = append(sections, gallerySection{Name: name, Items: bySection[name]})
	}

	data := struct {
		GeneratedAt string
		Total       int
		Sections    []gallerySection
	}{
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 UTC"),
		Total:       len(records),
		Sections:    sections,
	}

	var buf bytes.Buffer
	if err := galleryTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render gallery template: %w", err)
	}
	return buf.String(), nil
}

// WriteHTML renders the gallery and writes it to outPath.
func (s *GalleryService) WriteHTML(outPath string) error {
	html, err := s.RenderHTML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write gallery: %w", err)
	}
	log.Printf("📁 Gallery written to %s", outPath)
	return nil
}

// GeneratePDF renders the gallery HTML to a temp file and snapshots it to
// PDF with headless Chrome.
func (s *GalleryService) GeneratePDF(ctx context.Context, outPath string) error {
	html, err := s.RenderHTML()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "gallery-*.html")
	if err != nil {
		return fmt.Errorf("failed to create temp gallery file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp gallery file: %w", err)
	}
	tmp.Close()

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body"),
		chromedp.Sleep(time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // A4 in inches
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}

	if err := os.WriteFile(outPath, pdfBuf, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	log.Printf("📁 Gallery PDF written to %s", outPath)
	return nil
}

// detectChromePath detects the path to Chrome/Chromium executable.
// Checks CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (s *GalleryService) imageDataURI(filename string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.imageDir, filename))
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
