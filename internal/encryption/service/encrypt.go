package service

import (
	"context"
	"fmt"
	"io"

	"aescrypt/internal/core/domain"
	"aescrypt/internal/crypto/aes"
	"aescrypt/internal/crypto/blockmode"
	"aescrypt/internal/crypto/padding"
	"aescrypt/internal/encryption/chunking"
)

// Encrypt validates key, IV and options, then streams ciphertext through
// the returned reader. All setup errors surface before any output is
// produced; once blocks are flowing, only data-dependent errors (unaligned
// input under the None policy) or I/O failures can abort the stream.
func (s *StreamCodec) Encrypt(ctx context.Context, input domain.TransformInput) (*domain.TransformOutput, error) {
	cipher, err := s.newCipher(input.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	var (
		mode blockmode.BlockMode
		iv   []byte
	)
	switch input.Options.Mode {
	case domain.CBC:
		iv = input.IV
		if iv == nil {
			iv, err = aes.GenerateIV()
			if err != nil {
				return nil, err
			}
		}
		mode, err = blockmode.NewCBCEncrypter(cipher, iv)
		if err != nil {
			return nil, err
		}
	default:
		mode = blockmode.NewECBEncrypter(cipher)
	}

	chunkSize := input.Options.ChunkSize
	if chunkSize == 0 {
		chunkSize = chunking.DefaultChunkSize
	}
	reader, err := chunking.NewBlockReader(input.Reader, chunkSize)
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()

	go func() {
		defer pw.Close()

		buf := make([]byte, chunkSize)
		for {
			select {
			case <-ctx.Done():
				pw.CloseWithError(ctx.Err())
				return
			default:
			}

			n, err := reader.Next(buf)
			if err == io.EOF {
				// End of stream: pad the (possibly empty) tail. PKCS7
				// emits a full pad block even for aligned input.
				if err := encryptTail(pw, mode, nil, input.Options.Padding); err != nil {
					pw.CloseWithError(err)
				}
				return
			}
			if err != nil {
				pw.CloseWithError(err)
				return
			}

			if n == chunkSize {
				// Full chunk: every block is complete, no padding yet.
				if err := mode.CryptBlocks(buf[:n], buf[:n]); err != nil {
					pw.CloseWithError(err)
					return
				}
				if _, err := pw.Write(buf[:n]); err != nil {
					pw.CloseWithError(fmt.Errorf("failed to write ciphertext: %w", err))
					return
				}
				continue
			}

			// Short chunk: this is the end of the input.
			if err := encryptTail(pw, mode, buf[:n], input.Options.Padding); err != nil {
				pw.CloseWithError(err)
			}
			return
		}
	}()

	return &domain.TransformOutput{
		Reader: pr,
		IV:     iv,
	}, nil
}

// encryptTail pads the final bytes of the stream and encrypts the result.
func encryptTail(w io.Writer, mode blockmode.BlockMode, tail []byte, policy padding.Policy) error {
	padded, err := padding.Pad(tail, mode.BlockSize(), policy)
	if err != nil {
		return err
	}
	if len(padded) == 0 {
		return nil
	}
	if err := mode.CryptBlocks(padded, padded); err != nil {
		return err
	}
	if _, err := w.Write(padded); err != nil {
		return fmt.Errorf("failed to write ciphertext: %w", err)
	}
	return nil
}
