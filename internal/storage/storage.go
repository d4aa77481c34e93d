package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"buildlink_backend/internal/config"
)

// Storage is the blob backend behind uploads. Paths are forward-slash
// relative keys; URL returns the public address a client can fetch the blob
// from.
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	URL(ctx context.Context, path string) (string, error)
	SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

// New builds the backend selected by the storage config.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case "", "local":
		return NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewR2Storage(cfg)
	}
	return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
}
