package services

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStorage keeps uploads on disk under Root and serves them from BaseURL
type LocalStorage struct {
	Root    string
	BaseURL string
}

func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating media root")
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{Root: root, BaseURL: baseURL}, nil
}

func (ls *LocalStorage) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error {
	target, err := ls.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(err, "creating media dir")
	}
	file, err := os.Create(target)
	if err != nil {
		return errors.Wrap(err, "creating media file")
	}
	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(target)
		return errors.Wrap(err, "writing media file")
	}
	return file.Close()
}

func (ls *LocalStorage) Delete(ctx context.Context, name string) error {
	target, err := ls.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing media file")
	}
	return nil
}

func (ls *LocalStorage) URL(name string) string {
	return ls.BaseURL + name
}

// path keeps every name inside Root
func (ls *LocalStorage) path(name string) (string, error) {
	clean := path.Clean("/" + name)
	if clean == "/" {
		return "", errors.Errorf("invalid media name %q", name)
	}
	return filepath.Join(ls.Root, filepath.FromSlash(clean)), nil
}
