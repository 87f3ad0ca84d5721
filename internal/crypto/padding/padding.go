// Package padding aligns byte buffers to the cipher block size under a
// selectable policy.
package padding

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrInvalidPadding is returned when PKCS7 validation fails on unpad.
	ErrInvalidPadding = errors.New("invalid padding")

	// ErrUnalignedData is returned by the None policy when the input is
	// not a multiple of the block size.
	ErrUnalignedData = errors.New("data length not a multiple of block size")
)

// Policy selects how a buffer is padded to the block size.
type Policy int

const (
	// PKCS7 appends n bytes of value n, n in [1, blockSize]. An already
	// aligned buffer still grows by one full block.
	PKCS7 Policy = iota
	// Zero appends 0x00 bytes up to alignment. Unpadding strips trailing
	// zeros and therefore cannot distinguish data zeros from padding:
	// plaintexts ending in 0x00 lose those bytes on a round trip.
	Zero
	// None requires the input to be aligned already and never alters it.
	None
)

// String returns the CLI spelling of the policy.
func (p Policy) String() string {
	switch p {
	case PKCS7:
		return "pkcs7"
	case Zero:
		return "zero"
	case None:
		return "none"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps a CLI spelling to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "pkcs7":
		return PKCS7, nil
	case "zero":
		return Zero, nil
	case "none":
		return None, nil
	default:
		return 0, fmt.Errorf("unknown padding policy %q", s)
	}
}

// Pad returns data extended to a multiple of blockSize under the policy.
func Pad(data []byte, blockSize int, policy Policy) ([]byte, error) {
	switch policy {
	case PKCS7:
		n := blockSize - len(data)%blockSize
		return append(data, bytes.Repeat([]byte{byte(n)}, n)...), nil
	case Zero:
		n := len(data) % blockSize
		if n == 0 {
			return data, nil
		}
		return append(data, make([]byte, blockSize-n)...), nil
	case None:
		if len(data)%blockSize != 0 {
			return nil, fmt.Errorf("padding none requires aligned input, got %d bytes: %w",
				len(data), ErrUnalignedData)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown padding policy %d", policy)
	}
}

// Unpad strips the padding appended by Pad. For PKCS7 the trailing bytes
// are validated and ErrInvalidPadding is returned on any inconsistency.
func Unpad(data []byte, blockSize int, policy Policy) ([]byte, error) {
	switch policy {
	case PKCS7:
		if len(data) == 0 || len(data)%blockSize != 0 {
			return nil, fmt.Errorf("padded data length %d: %w", len(data), ErrInvalidPadding)
		}
		n := int(data[len(data)-1])
		if n == 0 || n > blockSize {
			return nil, fmt.Errorf("claimed pad length %d: %w", n, ErrInvalidPadding)
		}
		for _, b := range data[len(data)-n:] {
			if b != byte(n) {
				return nil, fmt.Errorf("pad byte mismatch: %w", ErrInvalidPadding)
			}
		}
		return data[:len(data)-n], nil
	case Zero:
		end := len(data)
		for end > 0 && data[end-1] == 0 {
			end--
		}
		return data[:end], nil
	case None:
		return data, nil
	default:
		return nil, fmt.Errorf("unknown padding policy %d", policy)
	}
}
