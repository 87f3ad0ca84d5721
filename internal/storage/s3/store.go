package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"aescrypt/internal/core/domain"
	"aescrypt/internal/storage"
)

type Store struct {
	client *s3.Client
	config storage.Config
}

func New(client *s3.Client, config storage.Config) *Store {
	return &Store{
		client: client,
		config: config,
	}
}

// StoreObject uploads the ciphertext blob, the IV sidecar (when present)
// and the metadata sidecar. It returns the object ID.
func (s *Store) StoreObject(ctx context.Context, ciphertext io.Reader, iv []byte, metadata domain.ObjectMetadata) (string, error) {
	if metadata.ID == "" {
		metadata.ID = uuid.New().String()
	}
	metadata.CreatedAt = time.Now().UTC()
	metadata.UpdatedAt = metadata.CreatedAt

	cipherKey := path.Join(s.config.CipherPrefix, metadata.ID)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.BucketName),
		Key:         aws.String(cipherKey),
		Body:        ciphertext,
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store ciphertext: %w", err)
	}

	if iv != nil {
		ivKey := path.Join(s.config.IVPrefix, metadata.ID+".iv")
		_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.config.BucketName),
			Key:         aws.String(ivKey),
			Body:        bytes.NewReader(iv),
			ContentType: aws.String("application/octet-stream"),
		})
		if err != nil {
			return "", fmt.Errorf("failed to store IV: %w", err)
		}
	}

	if err := s.putMetadata(ctx, metadata); err != nil {
		return "", err
	}

	return metadata.ID, nil
}

// GetObject downloads the ciphertext blob and its metadata.
func (s *Store) GetObject(ctx context.Context, id string) ([]byte, domain.ObjectMetadata, error) {
	metadata, err := s.GetMetadata(ctx, id)
	if err != nil {
		return nil, domain.ObjectMetadata{}, err
	}

	cipherKey := path.Join(s.config.CipherPrefix, id)
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(cipherKey),
	})
	if err != nil {
		return nil, metadata, fmt.Errorf("failed to get ciphertext: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, metadata, fmt.Errorf("failed to read ciphertext: %w", err)
	}

	return data, metadata, nil
}

// GetIV downloads the IV sidecar for an object.
func (s *Store) GetIV(ctx context.Context, id string) ([]byte, error) {
	ivKey := path.Join(s.config.IVPrefix, id+".iv")
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(ivKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get IV: %w", err)
	}
	defer result.Body.Close()

	iv, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read IV: %w", err)
	}

	return iv, nil
}

// DeleteObject removes the ciphertext, IV and metadata objects.
func (s *Store) DeleteObject(ctx context.Context, id string) error {
	keys := []string{
		path.Join(s.config.CipherPrefix, id),
		path.Join(s.config.IVPrefix, id+".iv"),
		path.Join(s.config.MetadataPrefix, id+".json"),
	}
	for _, key := range keys {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.config.BucketName),
			Key:    aws.String(key),
		})
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}

// GetMetadata downloads and parses the metadata sidecar.
func (s *Store) GetMetadata(ctx context.Context, id string) (domain.ObjectMetadata, error) {
	var metadata domain.ObjectMetadata

	metadataKey := path.Join(s.config.MetadataPrefix, id+".json")
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(metadataKey),
	})
	if err != nil {
		return metadata, fmt.Errorf("failed to get metadata: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return metadata, fmt.Errorf("failed to read metadata: %w", err)
	}

	if err := json.Unmarshal(data, &metadata); err != nil {
		return metadata, fmt.Errorf("failed to parse metadata: %w", err)
	}

	return metadata, nil
}

// UpdateMetadata replaces the metadata sidecar for an object.
func (s *Store) UpdateMetadata(ctx context.Context, id string, metadata domain.ObjectMetadata) error {
	metadata.ID = id
	metadata.UpdatedAt = time.Now().UTC()
	return s.putMetadata(ctx, metadata)
}

// ListObjects returns metadata for every object in the vault.
func (s *Store) ListObjects(ctx context.Context) ([]domain.ObjectMetadata, error) {
	result, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.config.BucketName),
		Prefix: aws.String(s.config.MetadataPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	var objects []domain.ObjectMetadata
	for _, obj := range result.Contents {
		name := path.Base(aws.ToString(obj.Key))
		if path.Ext(name) != ".json" {
			continue
		}
		id := name[:len(name)-len(".json")]
		metadata, err := s.GetMetadata(ctx, id)
		if err != nil {
			return nil, err
		}
		objects = append(objects, metadata)
	}

	return objects, nil
}

// GetConfig returns the store configuration.
func (s *Store) GetConfig() storage.Config {
	return s.config
}

func (s *Store) putMetadata(ctx context.Context, metadata domain.ObjectMetadata) error {
	metadataKey := path.Join(s.config.MetadataPrefix, metadata.ID+".json")
	data, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.BucketName),
		Key:         aws.String(metadataKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to store metadata: %w", err)
	}
	return nil
}
