package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"aescrypt/internal/storage"
)

// DefaultConfig provides default configuration values.
var DefaultConfig = storage.Config{
	BucketName:     "aescrypt-vault",
	Region:         "us-east-1",
	CipherPrefix:   "ciphertext/",
	IVPrefix:       "ivs/",
	MetadataPrefix: "metadata/",
}

// NewClient creates a vault store backed by the given bucket, verifying
// the bucket is reachable first.
func NewClient(ctx context.Context, cfg aws.Config, bucket string, opts ...func(*storage.Config)) (*Store, error) {
	client := s3.NewFromConfig(cfg)

	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access bucket %s: %w", bucket, err)
	}

	config := DefaultConfig
	config.BucketName = bucket
	config.Region = cfg.Region
	for _, opt := range opts {
		opt(&config)
	}

	return New(client, config), nil
}

// WithPrefixes sets custom prefixes for the object kinds.
func WithPrefixes(cipher, iv, metadata string) func(*storage.Config) {
	return func(c *storage.Config) {
		if cipher != "" {
			c.CipherPrefix = cipher
		}
		if iv != "" {
			c.IVPrefix = iv
		}
		if metadata != "" {
			c.MetadataPrefix = metadata
		}
	}
}
