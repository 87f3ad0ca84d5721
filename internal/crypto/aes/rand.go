package aes

import (
	"crypto/rand"
	"fmt"
)

// GenerateKey returns a random key of the given size (16, 24 or 32 bytes).
func GenerateKey(size int) ([]byte, error) {
	if _, err := roundsForKey(size); err != nil {
		return nil, err
	}
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// GenerateIV returns a random 16-byte initialization vector. A fresh IV
// must be generated for every stream encrypted under the same key.
func GenerateIV() ([]byte, error) {
	iv := make([]byte, BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}
	return iv, nil
}
