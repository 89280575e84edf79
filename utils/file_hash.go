package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
)

// FileHash returns the hex md5 digest of a file's contents. Used to build
// stable SKUs for storefront variants.
func FileHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file for hashing: %w", err)
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

// ShortHash returns the first 8 characters of a hex digest, the width used
// in SKUs like TEE-<hash8>-<SIZE>.
func ShortHash(digest string) string {
	if len(digest) < 8 {
		return digest
	}
	return digest[:8]
}
