package service

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"tee-factory/models"
	"tee-factory/pricing"
)

// UploadMeta carries everything an adapter needs beyond the artifact itself:
// the resolved taxonomy bucket, a product title, the file hash used for SKUs
// and the pricing engine.
type UploadMeta struct {
	Collection models.CollectionDefinition
	Title      string
	FileHash   string
	Pricer     *pricing.Engine
}

// PlatformAdapter is the contract both vendor integrations implement. Each
// vendor's quirks stay behind its own implementation.
type PlatformAdapter interface {
	// Name returns the platform identifier used in the ledger and CLI flags.
	Name() string
	// CheckAuth verifies the credential without committing anything.
	CheckAuth(ctx context.Context) error
	// Upload publishes one design as a product and returns the remote
	// product identifier. Errors follow the pipeline taxonomy: ErrAuth,
	// TransientError, MalformedResponseError.
	Upload(ctx context.Context, artifact models.DesignArtifact, meta UploadMeta) (string, error)
}

// transientRetryDelay is the fixed pause before the single retry of a
// transient failure.
const transientRetryDelay = 2 * time.Second

// withTransientRetry runs fn, retrying exactly once after a fixed delay if
// it fails with a TransientError. Auth and malformed-response errors are
// never retried.
func withTransientRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(1, retry.NewConstant(transientRetryDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && models.IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
