// aescrypt/internal/core/domain/types.go
package domain

import (
	"fmt"
	"io"
	"time"

	"aescrypt/internal/crypto/padding"
)

// Mode selects how blocks are chained across a stream.
type Mode int

const (
	// ECB encrypts every block independently.
	ECB Mode = iota
	// CBC chains blocks through an initialization vector.
	CBC
)

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ecb"
	case CBC:
		return "cbc"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a CLI spelling to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "ecb":
		return ECB, nil
	case "cbc":
		return CBC, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// TransformOptions fix mode and padding for the lifetime of one
// encrypt/decrypt operation.
type TransformOptions struct {
	Mode      Mode
	Padding   padding.Policy
	ChunkSize int
}

// TransformInput describes one stream transform. IV is required for CBC
// decryption; for CBC encryption a nil IV means the codec generates one.
type TransformInput struct {
	Reader  io.Reader
	Key     []byte
	IV      []byte
	Options TransformOptions
}

// TransformOutput exposes the transformed stream. IV echoes the vector the
// stream was encrypted under so the caller can persist it out-of-band.
type TransformOutput struct {
	Reader io.Reader
	IV     []byte
}

// ObjectMetadata describes a ciphertext object in the vault.
type ObjectMetadata struct {
	ID           string
	OriginalName string
	ContentType  string
	Size         int64
	Mode         string
	Padding      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Device       DeviceStamp
	Tags         []string
}

// DeviceStamp records the machine that produced an upload. Informational
// only; nothing is enforced against it.
type DeviceStamp struct {
	DeviceID     string
	HardwareHash string
	Platform     string
}
