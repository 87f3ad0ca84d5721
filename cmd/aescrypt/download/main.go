package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"

	"aescrypt/internal/core/domain"
	"aescrypt/internal/crypto/padding"
	"aescrypt/internal/encryption/service"
	"aescrypt/internal/storage/s3"
)

// Fetches a ciphertext object and its IV sidecar from the vault and
// decrypts it with a locally held key file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	if len(os.Args) < 4 {
		log.Fatal("Usage: download <object-id> <key-file> <output-dir>")
	}
	objectID := os.Args[1]
	keyPath := os.Args[2]
	outputDir := os.Args[3]

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	key, err := os.ReadFile(keyPath)
	if err != nil {
		log.Fatalf("Failed to read key file: %v", err)
	}

	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("Unable to load SDK config: %v", err)
	}

	store, err := s3.NewClient(ctx, cfg, os.Getenv("AESCRYPT_BUCKET"), s3.WithPrefixes(
		os.Getenv("AESCRYPT_CIPHER_PREFIX"),
		os.Getenv("AESCRYPT_IV_PREFIX"),
		os.Getenv("AESCRYPT_METADATA_PREFIX"),
	))
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	fmt.Printf("Downloading object %s...\n", objectID)
	ciphertext, metadata, err := store.GetObject(ctx, objectID)
	if err != nil {
		log.Fatalf("Failed to get object: %v", err)
	}

	mode, err := domain.ParseMode(metadata.Mode)
	if err != nil {
		log.Fatalf("Invalid metadata: %v", err)
	}
	pol, err := padding.ParsePolicy(metadata.Padding)
	if err != nil {
		log.Fatalf("Invalid metadata: %v", err)
	}

	var iv []byte
	if mode == domain.CBC {
		fmt.Println("Downloading IV sidecar...")
		iv, err = store.GetIV(ctx, objectID)
		if err != nil {
			log.Fatalf("Failed to get IV: %v", err)
		}
	}

	codec := service.NewAESService()
	output, err := codec.Decrypt(ctx, domain.TransformInput{
		Reader: bytes.NewReader(ciphertext),
		Key:    key,
		IV:     iv,
		Options: domain.TransformOptions{
			Mode:    mode,
			Padding: pol,
		},
	})
	if err != nil {
		log.Fatalf("Failed to decrypt object: %v", err)
	}

	outputPath := filepath.Join(outputDir, metadata.OriginalName)
	outputFile, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer outputFile.Close()

	written, err := io.Copy(outputFile, output.Reader)
	if err != nil {
		log.Fatalf("Failed to write plaintext: %v", err)
	}

	fmt.Println("\nDownload completed successfully!")
	fmt.Printf("Saved %d bytes to: %s\n", written, outputPath)
}
