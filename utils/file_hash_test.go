package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.png")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	digest, err := FileHash(path)
	require.NoError(t, err)
	// md5("hello")
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", digest)
}

func TestFileHashMissingFile(t *testing.T) {
	_, err := FileHash(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "5d41402a", ShortHash("5d41402abc4b2a76b9719d911017c592"))
	assert.Equal(t, "abc", ShortHash("abc"))
}
