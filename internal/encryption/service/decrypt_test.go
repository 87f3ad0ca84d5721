package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"aescrypt/internal/core/domain"
	"aescrypt/internal/crypto/aes"
	"aescrypt/internal/crypto/padding"
)

func encryptAll(t *testing.T, svc *StreamCodec, input domain.TransformInput) ([]byte, []byte) {
	t.Helper()
	output, err := svc.Encrypt(context.Background(), input)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	data, err := io.ReadAll(output.Reader)
	if err != nil {
		t.Fatalf("Failed to read ciphertext: %v", err)
	}
	return data, output.IV
}

func decryptAll(t *testing.T, svc *StreamCodec, input domain.TransformInput) []byte {
	t.Helper()
	output, err := svc.Decrypt(context.Background(), input)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	data, err := io.ReadAll(output.Reader)
	if err != nil {
		t.Fatalf("Failed to read plaintext: %v", err)
	}
	return data
}

// Round trips across every key size, mode and padding policy the codec
// supports. Zero padding is exercised with plaintext that does not end in
// 0x00, since trailing zeros are lost by design.
func TestStreamCodec_RoundTrip(t *testing.T) {
	svc := NewAESService()

	plaintexts := [][]byte{
		{},
		[]byte{0x01},
		bytes.Repeat([]byte{0xab}, 15),
		bytes.Repeat([]byte{0xab}, 16),
		bytes.Repeat([]byte{0xab}, 17),
		bytes.Repeat([]byte("0123456789abcdef"), 64),
		bytes.Repeat([]byte{0xfe}, 1000),
	}

	for _, keyLen := range []int{16, 24, 32} {
		for _, mode := range []domain.Mode{domain.ECB, domain.CBC} {
			for _, pol := range []padding.Policy{padding.PKCS7, padding.Zero} {
				for _, plain := range plaintexts {
					name := fmt.Sprintf("key%d/%s/%s/len%d", keyLen, mode, pol, len(plain))
					t.Run(name, func(t *testing.T) {
						key, err := aes.GenerateKey(keyLen)
						if err != nil {
							t.Fatalf("GenerateKey() error = %v", err)
						}

						options := domain.TransformOptions{Mode: mode, Padding: pol, ChunkSize: 64}
						cipher, iv := encryptAll(t, svc, domain.TransformInput{
							Reader:  bytes.NewReader(plain),
							Key:     key,
							Options: options,
						})

						back := decryptAll(t, svc, domain.TransformInput{
							Reader:  bytes.NewReader(cipher),
							Key:     key,
							IV:      iv,
							Options: options,
						})
						if !bytes.Equal(back, plain) {
							t.Errorf("round trip = %d bytes, want %d bytes", len(back), len(plain))
						}
					})
				}
			}
		}
	}
}

func TestStreamCodec_RoundTrip_NonePadding(t *testing.T) {
	svc := NewAESService()
	key, err := aes.GenerateKey(32)
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	plain := bytes.Repeat([]byte{0x11}, 160)
	options := domain.TransformOptions{Mode: domain.CBC, Padding: padding.None}

	cipher, iv := encryptAll(t, svc, domain.TransformInput{
		Reader:  bytes.NewReader(plain),
		Key:     key,
		Options: options,
	})
	if len(cipher) != len(plain) {
		t.Fatalf("ciphertext length = %d, want %d", len(cipher), len(plain))
	}

	back := decryptAll(t, svc, domain.TransformInput{
		Reader:  bytes.NewReader(cipher),
		Key:     key,
		IV:      iv,
		Options: options,
	})
	if !bytes.Equal(back, plain) {
		t.Error("round trip mismatch")
	}
}

func TestStreamCodec_Decrypt_MissingIV(t *testing.T) {
	svc := mockService()

	_, err := svc.Decrypt(context.Background(), domain.TransformInput{
		Reader:  bytes.NewReader(make([]byte, 16)),
		Key:     make([]byte, 16),
		Options: domain.TransformOptions{Mode: domain.CBC, Padding: padding.PKCS7},
	})
	if !errors.Is(err, ErrMissingIV) {
		t.Errorf("Decrypt() error = %v, want ErrMissingIV", err)
	}
}

func TestStreamCodec_Decrypt_InvalidPadding(t *testing.T) {
	svc := NewAESService()
	key := make([]byte, 16)

	// Build a ciphertext whose decryption ends in 0x00: a claimed pad
	// length of zero is never valid PKCS7.
	forged := bytes.Repeat([]byte{0xaa}, 15)
	forged = append(forged, 0x00)
	cipher, _ := encryptAll(t, svc, domain.TransformInput{
		Reader:  bytes.NewReader(forged),
		Key:     key,
		Options: domain.TransformOptions{Mode: domain.ECB, Padding: padding.None},
	})

	output, err := svc.Decrypt(context.Background(), domain.TransformInput{
		Reader:  bytes.NewReader(cipher),
		Key:     key,
		Options: domain.TransformOptions{Mode: domain.ECB, Padding: padding.PKCS7},
	})
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if _, err := io.ReadAll(output.Reader); !errors.Is(err, padding.ErrInvalidPadding) {
		t.Errorf("reading plaintext error = %v, want ErrInvalidPadding", err)
	}
}

func TestStreamCodec_Decrypt_EmptyCiphertextPKCS7(t *testing.T) {
	svc := NewAESService()

	output, err := svc.Decrypt(context.Background(), domain.TransformInput{
		Reader:  bytes.NewReader(nil),
		Key:     make([]byte, 16),
		Options: domain.TransformOptions{Mode: domain.ECB, Padding: padding.PKCS7},
	})
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if _, err := io.ReadAll(output.Reader); !errors.Is(err, padding.ErrInvalidPadding) {
		t.Errorf("reading plaintext error = %v, want ErrInvalidPadding", err)
	}
}

// Flipping one ciphertext bit in CBC garbles the containing plaintext
// block and flips exactly the corresponding bit of the next block.
func TestStreamCodec_Decrypt_CBCBitFlip(t *testing.T) {
	svc := NewAESService()
	key, err := aes.GenerateKey(16)
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	plain := bytes.Repeat([]byte{0x5c}, 48)
	options := domain.TransformOptions{Mode: domain.CBC, Padding: padding.PKCS7}

	cipher, iv := encryptAll(t, svc, domain.TransformInput{
		Reader:  bytes.NewReader(plain),
		Key:     key,
		Options: options,
	})

	// Flip the lowest bit of the first byte of ciphertext block 1.
	tampered := append([]byte(nil), cipher...)
	tampered[16] ^= 0x01

	back := decryptAll(t, svc, domain.TransformInput{
		Reader:  bytes.NewReader(tampered),
		Key:     key,
		IV:      iv,
		Options: options,
	})
	if len(back) != len(plain) {
		t.Fatalf("plaintext length = %d, want %d", len(back), len(plain))
	}

	if !bytes.Equal(back[:16], plain[:16]) {
		t.Error("block 0 was affected by a flip in block 1")
	}
	if bytes.Equal(back[16:32], plain[16:32]) {
		t.Error("block 1 decrypted cleanly despite the flip")
	}
	for i := 32; i < 48; i++ {
		want := plain[i]
		if i == 32 {
			want ^= 0x01
		}
		if back[i] != want {
			t.Errorf("block 2 byte %d = %#02x, want %#02x", i-32, back[i], want)
		}
	}
}
