package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"

	s3store "aescrypt/internal/storage/s3"
)

const usage = `Usage: vaultctl <command> [args]

Commands:
  list                      List vault objects
  info <object-id>          Print object metadata
  delete <object-id>        Delete an object with its IV and metadata sidecars
  tag <object-id> [tag ...] Replace the tags on an object`

// Administers the ciphertext vault: listing, inspecting, tagging and
// deleting stored objects.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("Unable to load SDK config: %v", err)
	}

	store, err := s3store.NewClient(ctx, cfg, os.Getenv("AESCRYPT_BUCKET"), s3store.WithPrefixes(
		os.Getenv("AESCRYPT_CIPHER_PREFIX"),
		os.Getenv("AESCRYPT_IV_PREFIX"),
		os.Getenv("AESCRYPT_METADATA_PREFIX"),
	))
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	switch os.Args[1] {
	case "list":
		objects, err := store.ListObjects(ctx)
		if err != nil {
			log.Fatalf("Failed to list objects: %v", err)
		}
		for _, obj := range objects {
			fmt.Printf("%s  %10d  %s/%-5s  %s\n", obj.ID, obj.Size, obj.Mode, obj.Padding, obj.OriginalName)
		}
		fmt.Printf("%d object(s)\n", len(objects))

	case "info":
		id := requireID()
		metadata, err := store.GetMetadata(ctx, id)
		if err != nil {
			log.Fatalf("Failed to get metadata: %v", err)
		}
		fmt.Printf("ID:           %s\n", metadata.ID)
		fmt.Printf("Name:         %s\n", metadata.OriginalName)
		fmt.Printf("Content type: %s\n", metadata.ContentType)
		fmt.Printf("Size:         %d bytes\n", metadata.Size)
		fmt.Printf("Mode:         %s\n", metadata.Mode)
		fmt.Printf("Padding:      %s\n", metadata.Padding)
		fmt.Printf("Created:      %s\n", metadata.CreatedAt)
		fmt.Printf("Updated:      %s\n", metadata.UpdatedAt)
		fmt.Printf("Device:       %s (%s)\n", metadata.Device.DeviceID, metadata.Device.Platform)
		fmt.Printf("Tags:         %s\n", strings.Join(metadata.Tags, ", "))

	case "delete":
		id := requireID()
		if err := store.DeleteObject(ctx, id); err != nil {
			log.Fatalf("Failed to delete object: %v", err)
		}
		fmt.Printf("Deleted %s\n", id)

	case "tag":
		id := requireID()
		metadata, err := store.GetMetadata(ctx, id)
		if err != nil {
			log.Fatalf("Failed to get metadata: %v", err)
		}
		metadata.Tags = os.Args[3:]
		if err := store.UpdateMetadata(ctx, id, metadata); err != nil {
			log.Fatalf("Failed to update metadata: %v", err)
		}
		fmt.Printf("Tagged %s: %s\n", id, strings.Join(metadata.Tags, ", "))

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
}

func requireID() string {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	return os.Args[2]
}
