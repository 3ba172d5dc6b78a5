package services

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
)

// StorageBucket keeps uploads in the firebase (google cloud storage) bucket
type StorageBucket struct {
	*storage.BucketHandle
	name string
}

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	return &StorageBucket{
		BucketHandle: bucketHandle,
		name:         bucketName,
	}, nil
}

func (sb *StorageBucket) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error {
	writer := sb.Object(name).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return errors.Wrap(err, "uploading to bucket")
	}
	return errors.Wrap(writer.Close(), "finishing bucket upload")
}

func (sb *StorageBucket) Delete(ctx context.Context, name string) error {
	if err := sb.Object(name).Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
		return errors.Wrap(err, "deleting from bucket")
	}
	return nil
}

func (sb *StorageBucket) URL(name string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%v/%v", sb.name, name)
}
