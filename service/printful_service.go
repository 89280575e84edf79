package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"tee-factory/models"
	"tee-factory/pricing"
)

const printfulAPIBase = "https://api.printful.com"

// printfulVariantIDs maps the size ladder to Printful catalog variant IDs
// for the Bella + Canvas 3001 tee.
var printfulVariantIDs = map[string]int{
	"S":   4012,
	"M":   4013,
	"L":   4014,
	"XL":  4015,
	"2XL": 4016,
}

// PrintfulService is the print-on-demand adapter. The 2025 API takes files
// by public URL only, so uploads go through a HostingProvider first.
// Implements PlatformAdapter.
type PrintfulService struct {
	apiKey  string
	storeID string
	baseURL string
	client  *http.Client
	hosting HostingProvider

	// Fixed pause between consecutive API calls; Printful allows
	// 120 requests/minute.
	callSpacing time.Duration
}

// Ensure PrintfulService implements PlatformAdapter
var _ PlatformAdapter = (*PrintfulService)(nil)

// NewPrintfulService creates the Printful adapter.
func NewPrintfulService(apiKey, storeID string, hosting HostingProvider) *PrintfulService {
	return &PrintfulService{
		apiKey:      apiKey,
		storeID:     storeID,
		baseURL:     printfulAPIBase,
		client:      &http.Client{Timeout: 60 * time.Second},
		hosting:     hosting,
		callSpacing: 500 * time.Millisecond,
	}
}

// Name returns the platform identifier.
func (s *PrintfulService) Name() string { return models.PlatformPrintful }

// CheckAuth verifies the bearer token against the OAuth scopes endpoint.
func (s *PrintfulService) CheckAuth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/oauth/scopes", nil)
	if err != nil {
		return fmt.Errorf("failed to build auth check request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return &models.TransientError{Err: fmt.Errorf("printful auth check failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: printful returned status %d", models.ErrAuth, resp.StatusCode)
	}

	if s.storeID != "" {
		return s.verifyStore(ctx)
	}
	return nil
}

// verifyStore confirms the token can actually reach the configured store.
// A valid token with the wrong store ID would otherwise fail later, mid-batch.
func (s *PrintfulService) verifyStore(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/stores/"+s.storeID, nil)
	if err != nil {
		return fmt.Errorf("failed to build store check request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return &models.TransientError{Err: fmt.Errorf("printful store check failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: store %s not reachable with this token (status %d)", models.ErrAuth, s.storeID, resp.StatusCode)
	}
	return nil
}

// Upload hosts the design at a public URL, registers it in Printful's file
// library, and creates a sync product with one variant per size. Returns the
// sync product ID.
func (s *PrintfulService) Upload(ctx context.Context, artifact models.DesignArtifact, meta UploadMeta) (string, error) {
	var designURL string
	err := withTransientRetry(ctx, func(ctx context.Context) error {
		var hostErr error
		designURL, hostErr = s.hosting.Host(ctx, artifact.LocalPath, artifact.Filename)
		return hostErr
	})
	if err != nil {
		return "", err
	}
	log.Printf("  📎 Design URL: %s", designURL)

	var fileID string
	err = withTransientRetry(ctx, func(ctx context.Context) error {
		var uploadErr error
		fileID, uploadErr = s.uploadFile(ctx, designURL, artifact.Filename)
		return uploadErr
	})
	if err != nil {
		return "", err
	}
	log.Printf("  ✅ File uploaded with ID: %s", fileID)

	time.Sleep(s.callSpacing)

	var productID string
	err = withTransientRetry(ctx, func(ctx context.Context) error {
		var createErr error
		productID, createErr = s.createProduct(ctx, fileID, meta)
		return createErr
	})
	if err != nil {
		return "", err
	}
	log.Printf("  ✅ Printful product created: ID %s", productID)

	return productID, nil
}

// uploadFile registers a publicly hosted design in the file library.
func (s *PrintfulService) uploadFile(ctx context.Context, designURL, filename string) (string, error) {
	payload := map[string]any{
		"url":      designURL,
		"type":     "default",
		"filename": filename,
		"visible":  true,
	}
	return s.postForID(ctx, "/files", payload)
}

// createProduct creates the sync product with one variant per size.
func (s *PrintfulService) createProduct(ctx context.Context, fileID string, meta UploadMeta) (string, error) {
	variants := make([]map[string]any, 0, len(pricing.Sizes))
	for _, size := range pricing.Sizes {
		variants = append(variants, map[string]any{
			"variant_id":   printfulVariantIDs[size],
			"retail_price": meta.Pricer.PriceStringForSize(size),
			"is_enabled":   true,
			"files": []map[string]any{
				{"id": fileID, "placement": "front"},
			},
		})
	}

	payload := map[string]any{
		"sync_product": map[string]any{
			"name": meta.Title,
		},
		"sync_variants": variants,
	}

	return s.postForID(ctx, "/store/products", payload)
}

// postForID posts a JSON payload and extracts result.id from the vendor's
// standard envelope.
func (s *PrintfulService) postForID(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal printful payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build printful request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &models.TransientError{Err: fmt.Errorf("printful request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.TransientError{Err: fmt.Errorf("failed to read printful response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: printful returned status %d", models.ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &models.TransientError{Err: fmt.Errorf("printful rate limited (Retry-After: %s)", resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 500:
		return "", &models.TransientError{Err: fmt.Errorf("printful returned status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return "", fmt.Errorf("printful %s failed: status %d: %s", path, resp.StatusCode, truncate(string(respBody), 200))
	}

	var envelope struct {
		Result struct {
			ID json.Number `json:"id"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil || envelope.Result.ID.String() == "" {
		return "", &models.MalformedResponseError{
			Platform: models.PlatformPrintful,
			Body:     truncate(string(respBody), 500),
		}
	}

	return envelope.Result.ID.String(), nil
}

func (s *PrintfulService) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.storeID != "" {
		req.Header.Set("X-PF-Store-Id", s.storeID)
	}
}

// truncate keeps response bodies in logs and error strings readable.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
