// Package blockmode chains single-block cipher calls across a stream of
// blocks. ECB processes blocks independently; CBC threads each block
// through the previous ciphertext block, seeded by an IV.
package blockmode

import (
	"errors"
	"fmt"

	"aescrypt/internal/core/ports"
)

// ErrInvalidIVSize is returned when the IV length does not match the
// cipher block size.
var ErrInvalidIVSize = errors.New("invalid IV size")

// ErrUnalignedBlocks is returned by CryptBlocks when the input is not a
// whole number of blocks.
var ErrUnalignedBlocks = errors.New("input not a multiple of the block size")

// BlockMode transforms whole blocks in stream order. A BlockMode
// carries chaining state and must not be reused across independent streams.
type BlockMode interface {
	BlockSize() int
	CryptBlocks(dst, src []byte) error
}

type ecb struct {
	cipher  ports.BlockCipher
	decrypt bool
}

// NewECBEncrypter returns a BlockMode encrypting each block independently.
// Identical plaintext blocks produce identical ciphertext blocks.
func NewECBEncrypter(c ports.BlockCipher) BlockMode {
	return &ecb{cipher: c}
}

// NewECBDecrypter returns the inverse of NewECBEncrypter.
func NewECBDecrypter(c ports.BlockCipher) BlockMode {
	return &ecb{cipher: c, decrypt: true}
}

func (e *ecb) BlockSize() int {
	return e.cipher.BlockSize()
}

func (e *ecb) CryptBlocks(dst, src []byte) error {
	bs := e.cipher.BlockSize()
	if err := checkBlocks(dst, src, bs); err != nil {
		return err
	}
	for i := 0; i < len(src); i += bs {
		if e.decrypt {
			e.cipher.DecryptBlock(dst[i:i+bs], src[i:i+bs])
		} else {
			e.cipher.EncryptBlock(dst[i:i+bs], src[i:i+bs])
		}
	}
	return nil
}

type cbcEncrypter struct {
	cipher ports.BlockCipher
	prev   []byte
}

// NewCBCEncrypter returns a BlockMode chaining blocks through iv. The IV
// must never be reused for another stream under the same key.
func NewCBCEncrypter(c ports.BlockCipher, iv []byte) (BlockMode, error) {
	if len(iv) != c.BlockSize() {
		return nil, fmt.Errorf("IV must be %d bytes, got %d: %w", c.BlockSize(), len(iv), ErrInvalidIVSize)
	}
	prev := make([]byte, c.BlockSize())
	copy(prev, iv)
	return &cbcEncrypter{cipher: c, prev: prev}, nil
}

func (m *cbcEncrypter) BlockSize() int {
	return m.cipher.BlockSize()
}

func (m *cbcEncrypter) CryptBlocks(dst, src []byte) error {
	bs := m.cipher.BlockSize()
	if err := checkBlocks(dst, src, bs); err != nil {
		return err
	}
	for i := 0; i < len(src); i += bs {
		for j := 0; j < bs; j++ {
			m.prev[j] ^= src[i+j]
		}
		m.cipher.EncryptBlock(m.prev, m.prev)
		copy(dst[i:i+bs], m.prev)
	}
	return nil
}

type cbcDecrypter struct {
	cipher ports.BlockCipher
	prev   []byte
	tmp    []byte
}

// NewCBCDecrypter returns the inverse of NewCBCEncrypter for the same IV.
func NewCBCDecrypter(c ports.BlockCipher, iv []byte) (BlockMode, error) {
	if len(iv) != c.BlockSize() {
		return nil, fmt.Errorf("IV must be %d bytes, got %d: %w", c.BlockSize(), len(iv), ErrInvalidIVSize)
	}
	prev := make([]byte, c.BlockSize())
	copy(prev, iv)
	return &cbcDecrypter{
		cipher: c,
		prev:   prev,
		tmp:    make([]byte, c.BlockSize()),
	}, nil
}

func (m *cbcDecrypter) BlockSize() int {
	return m.cipher.BlockSize()
}

func (m *cbcDecrypter) CryptBlocks(dst, src []byte) error {
	bs := m.cipher.BlockSize()
	if err := checkBlocks(dst, src, bs); err != nil {
		return err
	}
	for i := 0; i < len(src); i += bs {
		// src and dst may alias, so keep the ciphertext block around
		// before writing the plaintext.
		copy(m.tmp, src[i:i+bs])
		m.cipher.DecryptBlock(dst[i:i+bs], src[i:i+bs])
		for j := 0; j < bs; j++ {
			dst[i+j] ^= m.prev[j]
		}
		m.prev, m.tmp = m.tmp, m.prev
	}
	return nil
}

func checkBlocks(dst, src []byte, blockSize int) error {
	if len(src)%blockSize != 0 {
		return fmt.Errorf("got %d bytes: %w", len(src), ErrUnalignedBlocks)
	}
	if len(dst) < len(src) {
		return fmt.Errorf("output buffer too small: %d < %d", len(dst), len(src))
	}
	return nil
}
