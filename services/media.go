package services

import (
	"context"
	"io"
	"strings"

	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"github.com/navbryce/yatube/config"
	"github.com/pkg/errors"
)

// MediaStorage stores uploaded post images
type MediaStorage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error
	Delete(ctx context.Context, name string) error
	URL(name string) string
}

// ObjectName picks a fresh name for an upload with the given extension
func ObjectName(ext string) string {
	return "posts/" + uuid.NewString() + strings.ToLower(ext)
}

// NewMediaStorage builds the configured backend. app is only used by the gcs backend
func NewMediaStorage(ctx context.Context, cfg *config.MediaConfig, app *firebase.App) (MediaStorage, error) {
	switch cfg.Backend {
	case config.MediaLocal:
		return NewLocalStorage(cfg.Root, cfg.URL)
	case config.MediaGCS:
		if app == nil {
			return nil, errors.New("the gcs media backend needs a firebase app")
		}
		return NewStorageBucket(ctx, app, cfg.GCSBucket)
	case config.MediaMinio:
		return NewMinioStorage(ctx, &cfg.Minio)
	}
	return nil, errors.Errorf("unknown media backend %q", cfg.Backend)
}
