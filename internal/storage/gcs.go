package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"chartscope/internal/logger"
)

// GCSClient handles Google Cloud Storage operations
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*GCSClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.GetGlobalLogger().WithComponent("storage"),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// StoreFile uploads a file into the chart's export folder and returns its
// gs:// URL
func (g *GCSClient) StoreFile(ctx context.Context, fileData []byte, chartName, filename string, timestamp time.Time) (string, error) {
	objectPath := path.Join(GenerateExportFolderPath(chartName, timestamp), filename)
	url := fmt.Sprintf("gs://%s/%s", g.bucket, objectPath)

	g.log.Info("Storing file to GCS", logger.Fields{"url": url})

	writer := g.client.Bucket(g.bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = GetContentType(filename)
	writer.CacheControl = "public, max-age=3600" // Cache for 1 hour
	writer.Metadata = map[string]string{
		"generated-at": timestamp.Format(time.RFC3339),
		"chart":        chartName,
		"filename":     filename,
	}

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write file to GCS: %w", err)
	}

	// Close writer to finalize upload
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}

	g.log.Debug("File successfully stored", logger.Fields{"filename": filename, "bytes": len(fileData)})
	return url, nil
}

// GetFile retrieves a file from GCS by object path or gs:// URL
func (g *GCSClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	objectPath := strings.TrimPrefix(filePath, "gs://"+g.bucket+"/")

	reader, err := g.client.Bucket(g.bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", filePath, err)
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return fileData, nil
}

// ListExports lists export folders in the bucket, newest first
func (g *GCSClient) ListExports(ctx context.Context, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})

	var folders []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if path.Base(attrs.Name) == ExportMarker {
			folders = append(folders, path.Dir(attrs.Name))
		}
	}

	return newestFirst(folders, limit), nil
}
