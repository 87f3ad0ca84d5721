package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"aescrypt/internal/core/domain"
	"aescrypt/internal/crypto/padding"
	"aescrypt/internal/device"
	"aescrypt/internal/encryption/service"
	s3store "aescrypt/internal/storage/s3"
)

// Encrypts a file under AES-256-CBC and stores the ciphertext in the
// vault. The IV and metadata go into sidecar objects; the key is written
// locally only and never leaves the machine.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	if len(os.Args) < 3 {
		log.Fatal("Usage: upload <file> <key-file> [tag ...]")
	}
	inputPath := os.Args[1]
	keyPath := os.Args[2]
	tags := os.Args[3:]

	fileInfo, err := os.Stat(inputPath)
	if err != nil {
		log.Fatalf("Failed to get file info: %v", err)
	}
	fmt.Printf("File size: %.2f MB\n", float64(fileInfo.Size())/(1024*1024))

	key, err := os.ReadFile(keyPath)
	if err != nil {
		log.Fatalf("Failed to read key file: %v", err)
	}

	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("Unable to load SDK config: %v", err)
	}

	fmt.Printf("Using AWS Region: %s\n", cfg.Region)

	// Print caller identity for debugging
	stsClient := sts.NewFromConfig(cfg)
	identity, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		log.Printf("Warning: Unable to get caller identity: %v", err)
	} else {
		fmt.Printf("AWS Account: %s\n", *identity.Account)
		fmt.Printf("AWS User ARN: %s\n", *identity.Arn)
	}

	store, err := s3store.NewClient(ctx, cfg, os.Getenv("AESCRYPT_BUCKET"), s3store.WithPrefixes(
		os.Getenv("AESCRYPT_CIPHER_PREFIX"),
		os.Getenv("AESCRYPT_IV_PREFIX"),
		os.Getenv("AESCRYPT_METADATA_PREFIX"),
	))
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer inputFile.Close()

	// Stamp the metadata with the producing machine
	stamp, err := device.New().Stamp()
	if err != nil {
		log.Printf("Warning: Unable to fingerprint device: %v", err)
	}

	codec := service.NewAESService()

	input := domain.TransformInput{
		Reader: inputFile,
		Key:    key,
		Options: domain.TransformOptions{
			Mode:    domain.CBC,
			Padding: padding.PKCS7,
		},
	}

	startTime := time.Now()

	fmt.Println("Encrypting...")
	output, err := codec.Encrypt(ctx, input)
	if err != nil {
		log.Fatalf("Failed to encrypt file: %v", err)
	}

	metadata := domain.ObjectMetadata{
		ID:           uuid.NewString(),
		OriginalName: filepath.Base(inputPath),
		ContentType:  "application/octet-stream",
		Size:         fileInfo.Size(),
		Mode:         domain.CBC.String(),
		Padding:      padding.PKCS7.String(),
		Device:       stamp,
		Tags:         tags,
	}

	fmt.Println("Uploading to vault...")
	id, err := store.StoreObject(ctx, output.Reader, output.IV, metadata)
	if err != nil {
		log.Fatalf("Failed to store object: %v", err)
	}

	duration := time.Since(startTime)
	speed := float64(fileInfo.Size()) / duration.Seconds() / 1024 / 1024 // MB/s

	fmt.Println("\nUpload completed successfully!")
	fmt.Printf("Object ID: %s\n", id)
	fmt.Printf("Time taken: %v\n", duration)
	fmt.Printf("Average speed: %.2f MB/s\n", speed)
}
