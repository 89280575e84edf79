package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	base := &TransientError{Err: fmt.Errorf("status 503")}
	assert.True(t, IsTransient(base))
	assert.True(t, IsTransient(fmt.Errorf("upload failed: %w", base)))

	assert.False(t, IsTransient(errors.New("plain")))
	assert.False(t, IsTransient(fmt.Errorf("%w: bad token", ErrAuth)))
	assert.False(t, IsTransient(nil))
}

func TestTransientErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &TransientError{Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestMalformedResponseError(t *testing.T) {
	err := &MalformedResponseError{Platform: PlatformPrintful, Body: `{"oops":1}`}
	assert.Contains(t, err.Error(), PlatformPrintful)

	var target *MalformedResponseError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
}
