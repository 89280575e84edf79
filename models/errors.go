package models

import (
	"errors"
	"fmt"
)

// Error taxonomy for the upload pipeline. Callers match these with
// errors.Is / errors.As.
var (
	// ErrConfig means credentials or configuration are missing. Fatal:
	// the run aborts before any network call is made.
	ErrConfig = errors.New("configuration error")

	// ErrAuth means a credential was rejected by the platform. Fatal for
	// that platform's remaining items in the batch; retrying other items
	// under a known-bad credential is guaranteed-futile.
	ErrAuth = errors.New("authentication failed")
)

// TransientError wraps a network or rate-limit failure. The adapter retries
// once after a fixed delay before recording the item as failed.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return fmt.Sprintf("transient upload error: %v", e.Err) }
func (e *TransientError) Unwrap() error { return e.Err }

// MalformedResponseError wraps an unexpected vendor payload. The body is
// kept verbatim for diagnosis.
type MalformedResponseError struct {
	Platform string
	Body     string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: %s", e.Platform, e.Body)
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
