package services

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/navbryce/yatube/config"
	"github.com/pkg/errors"
)

// MinioStorage keeps uploads in an S3 compatible bucket
type MinioStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioStorage(ctx context.Context, cfg *config.MinioConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating minio client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "checking minio bucket")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, "creating minio bucket")
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return &MinioStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: fmt.Sprintf("%v://%v/%v/", scheme, cfg.Endpoint, cfg.Bucket),
	}, nil
}

func (ms *MinioStorage) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error {
	_, err := ms.client.PutObject(ctx, ms.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return errors.Wrap(err, "uploading to minio")
}

func (ms *MinioStorage) Delete(ctx context.Context, name string) error {
	return errors.Wrap(ms.client.RemoveObject(ctx, ms.bucket, name, minio.RemoveObjectOptions{}), "deleting from minio")
}

func (ms *MinioStorage) URL(name string) string {
	return ms.baseURL + name
}
