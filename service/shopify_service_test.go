package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tee-factory/config"
	"tee-factory/models"
	"tee-factory/pricing"
)

func newTestShopify(t *testing.T, handler http.Handler) *ShopifyService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewShopifyService("shpat_abc", server.URL)
}

func shopifyArtifact(t *testing.T) models.DesignArtifact {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gaming_20240115_103000.png")
	require.NoError(t, os.WriteFile(path, []byte("fake-png-bytes"), 0644))
	return models.DesignArtifact{
		Filename:       "gaming_20240115_103000.png",
		CollectionSlug: "retro-gaming",
		Date:           "20240115",
		LocalPath:      path,
	}
}

func shopifyMeta(t *testing.T) UploadMeta {
	t.Helper()
	pricer, err := pricing.NewEngine(1500, 1.4)
	require.NoError(t, err)
	return UploadMeta{
		Collection: models.CollectionDefinition{
			Slug:        "retro-gaming",
			DisplayName: "Retro Gaming",
			Description: "AI-generated retro gaming themed t-shirt designs.",
			TagValue:    "retro-gaming",
		},
		Title:    "Retro Gaming Tee - 20240115",
		FileHash: "5d41402abc4b2a76b9719d911017c592",
		Pricer:   pricer,
	}
}

func TestShopifyUpload(t *testing.T) {
	var payload map[string]any
	svc := newTestShopify(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products.json", r.URL.Path)
		assert.Equal(t, "shpat_abc", r.Header.Get("X-Shopify-Access-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"product":{"id":777,"handle":"retro-gaming-tee"}}`))
	}))

	productID, err := svc.Upload(context.Background(), shopifyArtifact(t), shopifyMeta(t))
	require.NoError(t, err)
	assert.Equal(t, "777", productID)

	product := payload["product"].(map[string]any)
	assert.Equal(t, "Retro Gaming Tee - 20240115", product["title"])
	assert.Equal(t, "AI Designs", product["vendor"])
	assert.Equal(t, "T-Shirt", product["product_type"])
	assert.Equal(t, "retro-gaming, ai-generated, t-shirt", product["tags"])

	// The image travels inline as base64.
	images := product["images"].([]any)
	require.Len(t, images, 1)
	attachment := images[0].(map[string]any)["attachment"].(string)
	decoded, err := base64.StdEncoding.DecodeString(attachment)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-png-bytes"), decoded)

	// Hash-based SKUs, one variant per size, 2XL surcharged.
	variants := product["variants"].([]any)
	require.Len(t, variants, 5)
	first := variants[0].(map[string]any)
	assert.Equal(t, "S", first["option1"])
	assert.Equal(t, "TEE-5d41402a-S", first["sku"])
	assert.Equal(t, "21.00", first["price"])
	last := variants[4].(map[string]any)
	assert.Equal(t, "TEE-5d41402a-2XL", last["sku"])
	assert.Equal(t, "23.52", last["price"])
}

func TestShopifyUploadWrongStatusIsPlainError(t *testing.T) {
	svc := newTestShopify(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 instead of the expected 201.
		w.Write([]byte(`{"product":{"id":777}}`))
	}))

	_, err := svc.Upload(context.Background(), shopifyArtifact(t), shopifyMeta(t))
	require.Error(t, err)
	assert.False(t, models.IsTransient(err))
	assert.NotErrorIs(t, err, models.ErrAuth)
}

func TestShopifyUploadAuthFailure(t *testing.T) {
	var calls int32
	svc := newTestShopify(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := svc.Upload(context.Background(), shopifyArtifact(t), shopifyMeta(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuth)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "auth failures are not retried")
}

func TestShopifyUploadServerErrorRetriedOnce(t *testing.T) {
	var calls int32
	svc := newTestShopify(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"product":{"id":777}}`))
	}))

	productID, err := svc.Upload(context.Background(), shopifyArtifact(t), shopifyMeta(t))
	require.NoError(t, err)
	assert.Equal(t, "777", productID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestShopifyUploadMalformedResponse(t *testing.T) {
	svc := newTestShopify(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`<html>gateway error</html>`))
	}))

	_, err := svc.Upload(context.Background(), shopifyArtifact(t), shopifyMeta(t))
	require.Error(t, err)

	var malformed *models.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, models.PlatformShopify, malformed.Platform)
	assert.Contains(t, malformed.Body, "gateway error")
}

func TestShopifyCheckAuth(t *testing.T) {
	svc := newTestShopify(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shop.json", r.URL.Path)
		w.Write([]byte(`{"shop":{"name":"my-tee-store"}}`))
	}))
	assert.NoError(t, svc.CheckAuth(context.Background()))

	rejected := newTestShopify(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	assert.ErrorIs(t, rejected.CheckAuth(context.Background()), models.ErrAuth)
}

func TestSeedCollections(t *testing.T) {
	var created []string
	svc := newTestShopify(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/smart_collections.json", r.URL.Path)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		sc := payload["smart_collection"].(map[string]any)
		created = append(created, sc["handle"].(string))

		rules := sc["rules"].([]any)[0].(map[string]any)
		assert.Equal(t, "tag", rules["column"])
		assert.Equal(t, "equals", rules["relation"])
		assert.Equal(t, true, sc["published"])
		assert.Equal(t, "best-selling", sc["sort_order"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"smart_collection":{"id":9000}}`))
	}))

	collections := config.DefaultCollections()
	updated, count, err := svc.SeedCollections(context.Background(), collections)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Len(t, created, 5)
	assert.Equal(t, "9000", updated["retro-gaming"].RemoteCollectionID)
}

func TestSeedCollectionsSkipsAlreadySeeded(t *testing.T) {
	var calls int32
	svc := newTestShopify(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"smart_collection":{"id":9000}}`))
	}))

	collections := config.Collections{
		"retro-gaming": models.CollectionDefinition{
			Slug: "retro-gaming", DisplayName: "Retro Gaming",
			TagValue: "retro-gaming", RemoteCollectionID: "already-there",
		},
	}
	updated, count, err := svc.SeedCollections(context.Background(), collections)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Equal(t, "already-there", updated["retro-gaming"].RemoteCollectionID)
}

func TestSeedCollectionsStopsOnAuthFailure(t *testing.T) {
	svc := newTestShopify(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, count, err := svc.SeedCollections(context.Background(), config.DefaultCollections())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuth)
	assert.Equal(t, 0, count)
}
