package service

import (
	"errors"

	"aescrypt/internal/core/ports"
	"aescrypt/internal/crypto/aes"
)

// ErrMissingIV is returned when CBC is selected without an IV source.
var ErrMissingIV = errors.New("missing IV")

// CipherFactory builds a block cipher from raw key bytes. The factory is
// where key-size validation happens, before any block is processed.
type CipherFactory func(key []byte) (ports.BlockCipher, error)

// StreamCodec turns the single-block cipher into a stream transform:
// it chunks the input, drives padding and the mode of operation, and
// reassembles the output stream.
type StreamCodec struct {
	newCipher CipherFactory
}

// NewService returns a codec backed by the given cipher factory.
func NewService(factory CipherFactory) *StreamCodec {
	return &StreamCodec{
		newCipher: factory,
	}
}

// NewAESService returns a codec backed by the AES implementation.
func NewAESService() *StreamCodec {
	return NewService(func(key []byte) (ports.BlockCipher, error) {
		return aes.NewCipher(key)
	})
}
