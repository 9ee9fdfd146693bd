package storage

import (
	"context"
	"fmt"

	"chartscope/internal/config"
)

// DeploymentMode represents where artifacts are written
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// DefaultOutputDir is used when no output directory is configured
const DefaultOutputDir = "charts"

// NewStorageClient creates a storage client based on deployment mode and configuration
func NewStorageClient(ctx context.Context, deploymentMode DeploymentMode, cfg *config.Config) (StorageClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage configuration is required")
	}
	switch deploymentMode {
	case DeploymentLocal:
		localClient, err := NewLocalStorageClient(cfg.Export.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case DeploymentGCS:
		if cfg.Export.GCSBucket == "" {
			return nil, fmt.Errorf("GCS bucket is required for gcs mode")
		}
		gcsClient, err := NewGCSClient(ctx, cfg.Export.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", deploymentMode)
	}
}

// FromConfig creates the client selected by STORAGE_MODE
func FromConfig(ctx context.Context, cfg *config.Config) (StorageClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage configuration is required")
	}
	return NewStorageClient(ctx, DeploymentMode(cfg.Export.StorageMode), cfg)
}
