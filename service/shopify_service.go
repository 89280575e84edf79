package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"tee-factory/config"
	"tee-factory/models"
	"tee-factory/pricing"
	"tee-factory/utils"
)

// ShopifyService is the storefront adapter: it creates products with the
// design image attached inline and files them into smart collections by tag.
// Implements PlatformAdapter.
type ShopifyService struct {
	accessToken string
	apiBase     string
	client      *http.Client
}

// Ensure ShopifyService implements PlatformAdapter
var _ PlatformAdapter = (*ShopifyService)(nil)

// NewShopifyService creates the Shopify adapter. apiBase is the store's
// admin API root, e.g. https://<store>.myshopify.com/admin/api/2024-01.
func NewShopifyService(accessToken, apiBase string) *ShopifyService {
	return &ShopifyService{
		accessToken: accessToken,
		apiBase:     apiBase,
		client:      &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the platform identifier.
func (s *ShopifyService) Name() string { return models.PlatformShopify }

// CheckAuth verifies the access token against the shop endpoint.
func (s *ShopifyService) CheckAuth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBase+"/shop.json", nil)
	if err != nil {
		return fmt.Errorf("failed to build auth check request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return &models.TransientError{Err: fmt.Errorf("shopify auth check failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: shopify returned status %d", models.ErrAuth, resp.StatusCode)
	}
	return nil
}

// Upload creates a storefront product with the design attached as a base64
// image, sized variants with hash-based SKUs, and the collection tag that
// files it into its smart collection. Returns the product ID.
func (s *ShopifyService) Upload(ctx context.Context, artifact models.DesignArtifact, meta UploadMeta) (string, error) {
	imageData, err := os.ReadFile(artifact.LocalPath)
	if err != nil {
		return "", fmt.Errorf("failed to read design file: %w", err)
	}
	imageBase64 := base64.StdEncoding.EncodeToString(imageData)

	shortHash := utils.ShortHash(meta.FileHash)
	variants := make([]map[string]any, 0, len(pricing.Sizes))
	for _, size := range pricing.Sizes {
		variants = append(variants, map[string]any{
			"option1": size,
			"price":   meta.Pricer.PriceStringForSize(size),
			"sku":     fmt.Sprintf("TEE-%s-%s", shortHash, size),
		})
	}

	tags := strings.Join([]string{meta.Collection.TagValue, "ai-generated", "t-shirt"}, ", ")

	payload := map[string]any{
		"product": map[string]any{
			"title":        meta.Title,
			"body_html":    fmt.Sprintf("<p>%s</p>", meta.Collection.Description),
			"vendor":       "AI Designs",
			"product_type": "T-Shirt",
			"tags":         tags,
			"images": []map[string]any{
				{"attachment": imageBase64, "filename": artifact.Filename},
			},
			"variants": variants,
			"options": []map[string]any{
				{"name": "Size", "values": pricing.Sizes},
			},
		},
	}

	var productID string
	err = withTransientRetry(ctx, func(ctx context.Context) error {
		var createErr error
		productID, createErr = s.createProduct(ctx, payload)
		return createErr
	})
	if err != nil {
		return "", err
	}
	log.Printf("  🛍️  Shopify product created: ID %s", productID)

	return productID, nil
}

// createProduct posts the product payload and extracts product.id.
func (s *ShopifyService) createProduct(ctx context.Context, payload any) (string, error) {
	respBody, err := s.postJSON(ctx, "/products.json", payload, http.StatusCreated)
	if err != nil {
		return "", err
	}

	var envelope struct {
		Product struct {
			ID     json.Number `json:"id"`
			Handle string      `json:"handle"`
		} `json:"product"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil || envelope.Product.ID.String() == "" {
		return "", &models.MalformedResponseError{
			Platform: models.PlatformShopify,
			Body:     truncate(string(respBody), 500),
		}
	}

	return envelope.Product.ID.String(), nil
}

// SeedCollections creates one smart collection per taxonomy entry that does
// not have a remote ID yet, matching products by the collection's tag value.
// Entries that fail are logged and skipped; the updated taxonomy is returned
// for persisting.
func (s *ShopifyService) SeedCollections(ctx context.Context, collections config.Collections) (config.Collections, int, error) {
	seeded := 0
	for slug, def := range collections {
		if def.RemoteCollectionID != "" {
			log.Printf("⏭️  Skipping %s (already seeded: %s)", slug, def.RemoteCollectionID)
			continue
		}

		payload := map[string]any{
			"smart_collection": map[string]any{
				"title":  def.DisplayName,
				"handle": def.Slug,
				"rules": []map[string]any{
					{"column": "tag", "relation": "equals", "condition": def.TagValue},
				},
				"published":  true,
				"sort_order": "best-selling",
			},
		}

		respBody, err := s.postJSON(ctx, "/smart_collections.json", payload, http.StatusCreated)
		if err != nil {
			if isFatalSeedError(err) {
				return collections, seeded, err
			}
			log.Printf("❌ Failed to create collection %q: %v", def.DisplayName, err)
			continue
		}

		var envelope struct {
			SmartCollection struct {
				ID json.Number `json:"id"`
			} `json:"smart_collection"`
		}
		if err := json.Unmarshal(respBody, &envelope); err != nil || envelope.SmartCollection.ID.String() == "" {
			log.Printf("❌ Unexpected seeding response for %q: %s", def.DisplayName, truncate(string(respBody), 200))
			continue
		}

		def.RemoteCollectionID = envelope.SmartCollection.ID.String()
		collections[slug] = def
		seeded++
		log.Printf("✅ Created %q with ID: %s", def.DisplayName, def.RemoteCollectionID)
	}

	return collections, seeded, nil
}

// isFatalSeedError stops seeding early when the credential itself is bad.
func isFatalSeedError(err error) bool {
	return errors.Is(err, models.ErrAuth)
}

// postJSON posts a payload to the admin API and returns the raw response
// body when the status matches wantStatus.
func (s *ShopifyService) postJSON(ctx context.Context, path string, payload any, wantStatus int) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shopify payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiBase+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build shopify request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &models.TransientError{Err: fmt.Errorf("shopify request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.TransientError{Err: fmt.Errorf("failed to read shopify response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: shopify returned status %d", models.ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &models.TransientError{Err: fmt.Errorf("shopify rate limited (Retry-After: %s)", resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 500:
		return nil, &models.TransientError{Err: fmt.Errorf("shopify returned status %d", resp.StatusCode)}
	case resp.StatusCode != wantStatus:
		return nil, fmt.Errorf("shopify %s failed: status %d: %s", path, resp.StatusCode, truncate(string(respBody), 200))
	}

	return respBody, nil
}

func (s *ShopifyService) setHeaders(req *http.Request) {
	req.Header.Set("X-Shopify-Access-Token", s.accessToken)
	req.Header.Set("Content-Type", "application/json")
}
