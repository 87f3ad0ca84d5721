package storage

import (
	"context"
	"io"

	"aescrypt/internal/core/domain"
)

// Vault stores ciphertext blobs together with their out-of-band IV and a
// JSON metadata sidecar. The ciphertext itself stays raw block data; the
// IV is never embedded in the stream.
type Vault interface {
	// Object operations
	StoreObject(ctx context.Context, ciphertext io.Reader, iv []byte, metadata domain.ObjectMetadata) (string, error)
	GetObject(ctx context.Context, id string) ([]byte, domain.ObjectMetadata, error)
	GetIV(ctx context.Context, id string) ([]byte, error)
	DeleteObject(ctx context.Context, id string) error

	// Metadata operations
	GetMetadata(ctx context.Context, id string) (domain.ObjectMetadata, error)
	UpdateMetadata(ctx context.Context, id string, metadata domain.ObjectMetadata) error
	ListObjects(ctx context.Context) ([]domain.ObjectMetadata, error)
}

// Config holds configuration for vault backends.
type Config struct {
	BucketName     string
	Region         string
	CipherPrefix   string
	IVPrefix       string
	MetadataPrefix string
}
