package storage

import (
	"context"
	"time"
)

// StorageClient defines the interface for storing exported chart artifacts
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file in the export folder for a chart rendered at
	// timestamp and returns where it landed
	StoreFile(ctx context.Context, fileData []byte, chartName, filename string, timestamp time.Time) (string, error)

	// GetFile retrieves a file by the location StoreFile returned
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListExports lists export folders, newest first
	ListExports(ctx context.Context, limit int) ([]string, error)
}
