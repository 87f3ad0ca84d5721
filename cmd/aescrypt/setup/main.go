package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/joho/godotenv"

	s3store "aescrypt/internal/storage/s3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("Unable to load SDK config: %v", err)
	}

	bucketName := os.Getenv("AESCRYPT_BUCKET")
	if bucketName == "" {
		bucketName = "aescrypt-vault"
	}

	client := s3.NewFromConfig(cfg)

	// Check if bucket exists
	_, err = client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: &bucketName,
	})
	if err != nil {
		fmt.Printf("Creating bucket %s...\n", bucketName)
		input := &s3.CreateBucketInput{
			Bucket: &bucketName,
		}

		// Only add location constraint if not in us-east-1
		if cfg.Region != "us-east-1" {
			input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
				LocationConstraint: types.BucketLocationConstraint(cfg.Region),
			}
		}

		_, err = client.CreateBucket(ctx, input)
		if err != nil {
			log.Fatalf("Unable to create bucket: %v", err)
		}
	} else {
		fmt.Printf("Bucket %s already exists\n", bucketName)
	}

	// Create folder structure under the same prefixes the vault store uses
	vaultCfg := s3store.DefaultConfig
	s3store.WithPrefixes(
		os.Getenv("AESCRYPT_CIPHER_PREFIX"),
		os.Getenv("AESCRYPT_IV_PREFIX"),
		os.Getenv("AESCRYPT_METADATA_PREFIX"),
	)(&vaultCfg)

	folders := []string{
		vaultCfg.CipherPrefix,
		vaultCfg.IVPrefix,
		vaultCfg.MetadataPrefix,
	}

	for _, folder := range folders {
		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: &bucketName,
			Key:    &folder,
		})
		if err != nil {
			log.Printf("Warning: Unable to create folder %s: %v", folder, err)
		} else {
			fmt.Printf("Created folder: %s\n", folder)
		}
	}

	fmt.Println("\nSetup completed successfully!")
	fmt.Println("\nBucket configuration:")
	fmt.Printf("- Name: %s\n", bucketName)
	fmt.Printf("- Region: %s\n", cfg.Region)
}
