package storage

import (
	"context"
	"path/filepath"
	"testing"

	"google.golang.org/api/option"

	"chartscope/internal/config"
)

func TestNewStorageClient_Local(t *testing.T) {
	cfg := &config.Config{
		Export: config.ExportSettings{OutputDir: filepath.Join(t.TempDir(), "out")},
	}

	client, err := NewStorageClient(context.Background(), DeploymentLocal, cfg)
	if err != nil {
		t.Fatalf("Failed to create local storage client: %v", err)
	}
	defer client.Close()

	if _, ok := client.(*LocalStorageClient); !ok {
		t.Errorf("Expected LocalStorageClient, got %T", client)
	}
}

func TestNewStorageClient_MissingBucket(t *testing.T) {
	_, err := NewStorageClient(context.Background(), DeploymentGCS, &config.Config{})
	if err == nil {
		t.Error("Expected error for missing bucket, got nil")
	}
}

func TestNewStorageClient_NilConfig(t *testing.T) {
	if _, err := NewStorageClient(context.Background(), DeploymentLocal, nil); err == nil {
		t.Error("Expected error for nil config, got nil")
	}
	if _, err := FromConfig(context.Background(), nil); err == nil {
		t.Error("Expected error for nil config, got nil")
	}
}

func TestNewStorageClient_InvalidMode(t *testing.T) {
	_, err := NewStorageClient(context.Background(), DeploymentMode("s3"), &config.Config{})
	if err == nil {
		t.Error("Expected error for invalid mode, got nil")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		Export: config.ExportSettings{
			StorageMode: "local",
			OutputDir:   t.TempDir(),
		},
	}

	client, err := FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	defer client.Close()

	if _, ok := client.(*LocalStorageClient); !ok {
		t.Errorf("Expected LocalStorageClient, got %T", client)
	}
}

func TestNewGCSClient_WithoutAuthentication(t *testing.T) {
	client, err := NewGCSClient(context.Background(), "test-bucket", option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("Failed to create GCS client: %v", err)
	}
	if client.bucket != "test-bucket" {
		t.Errorf("Expected bucket test-bucket, got %s", client.bucket)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() returned unexpected error: %v", err)
	}
}

func TestStorageClientInterface(t *testing.T) {
	var _ StorageClient = (*LocalStorageClient)(nil)
	var _ StorageClient = (*GCSClient)(nil)
}
