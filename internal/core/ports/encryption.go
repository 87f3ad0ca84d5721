// aescrypt/internal/core/ports/encryption.go
package ports

import (
	"context"

	"aescrypt/internal/core/domain"
)

// Codec drives a full stream transform: chunking, padding and the mode of
// operation over a block cipher.
type Codec interface {
	Encrypt(ctx context.Context, input domain.TransformInput) (*domain.TransformOutput, error)
	Decrypt(ctx context.Context, input domain.TransformInput) (*domain.TransformOutput, error)
}

// BlockCipher encrypts and decrypts a single fixed-size block. Both
// operations are pure and total over their input; implementations must be
// safe to share across goroutines once constructed.
type BlockCipher interface {
	BlockSize() int
	EncryptBlock(dst, src []byte)
	DecryptBlock(dst, src []byte)
}
