package cloudwriter

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodcart/internal/models"
)

// CloudWriter buffers an object and uploads it on Close.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(ctx context.Context, bucket, objectPath string) (CloudWriter, error)
}

// NewFactory returns the writer factory for the configured provider.
func NewFactory(ctx context.Context, cfg models.CloudStorageConfig) (*S3WriterFactory, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3WriterFactory(ctx, cfg.Region)
	default:
		return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.Provider)
	}
}
