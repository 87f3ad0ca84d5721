package service

import (
	"context"
	"fmt"
	"io"

	"aescrypt/internal/core/domain"
	"aescrypt/internal/crypto/blockmode"
	"aescrypt/internal/crypto/padding"
	"aescrypt/internal/encryption/chunking"
)

// Decrypt validates key, IV and options, then streams plaintext through
// the returned reader. The final chunk is held back until end of stream so
// padding can be removed only after the last block is decrypted.
func (s *StreamCodec) Decrypt(ctx context.Context, input domain.TransformInput) (*domain.TransformOutput, error) {
	cipher, err := s.newCipher(input.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	var mode blockmode.BlockMode
	switch input.Options.Mode {
	case domain.CBC:
		if input.IV == nil {
			return nil, fmt.Errorf("CBC decryption requires an IV: %w", ErrMissingIV)
		}
		mode, err = blockmode.NewCBCDecrypter(cipher, input.IV)
		if err != nil {
			return nil, err
		}
	default:
		mode = blockmode.NewECBDecrypter(cipher)
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

		// One chunk of lookahead: a chunk is only flushed once the next
		// read proves it was not the last one.
		cur := make([]byte, chunkSize)
		next := make([]byte, chunkSize)
		curLen, err := reader.Next(cur)
		if err == io.EOF {
			curLen = 0
		} else if err != nil {
			pw.CloseWithError(err)
			return
		}

		for {
			select {
			case <-ctx.Done():
				pw.CloseWithError(ctx.Err())
				return
			default:
			}

			nextLen, err := reader.Next(next)
			if err == io.EOF {
				if err := decryptTail(pw, mode, cur[:curLen], input.Options.Padding); err != nil {
					pw.CloseWithError(err)
				}
				return
			}
			if err != nil {
				pw.CloseWithError(err)
				return
			}

			if curLen%mode.BlockSize() != 0 {
				pw.CloseWithError(fmt.Errorf("ciphertext length: %w", blockmode.ErrUnalignedBlocks))
				return
			}
			if err := mode.CryptBlocks(cur[:curLen], cur[:curLen]); err != nil {
				pw.CloseWithError(err)
				return
			}
			if _, err := pw.Write(cur[:curLen]); err != nil {
				pw.CloseWithError(fmt.Errorf("failed to write plaintext: %w", err))
				return
			}
			cur, next = next, cur
			curLen = nextLen
		}
	}()

	return &domain.TransformOutput{
		Reader: pr,
		IV:     input.IV,
	}, nil
}

// decryptTail decrypts the final chunk and strips the padding.
func decryptTail(w io.Writer, mode blockmode.BlockMode, tail []byte, policy padding.Policy) error {
	if len(tail)%mode.BlockSize() != 0 {
		return fmt.Errorf("ciphertext length: %w", blockmode.ErrUnalignedBlocks)
	}
	if len(tail) == 0 {
		if policy == padding.PKCS7 {
			// PKCS7 encryption always emits at least one block.
			return fmt.Errorf("empty ciphertext: %w", padding.ErrInvalidPadding)
		}
		return nil
	}
	if err := mode.CryptBlocks(tail, tail); err != nil {
		return err
	}
	plain, err := padding.Unpad(tail, mode.BlockSize(), policy)
	if err != nil {
		return err
	}
	if len(plain) == 0 {
		return nil
	}
	if _, err := w.Write(plain); err != nil {
		return fmt.Errorf("failed to write plaintext: %w", err)
	}
	return nil
}
