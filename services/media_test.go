package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/navbryce/yatube/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	first := ObjectName(".PNG")
	second := ObjectName(".PNG")
	assert.True(t, strings.HasPrefix(first, "posts/"))
	assert.True(t, strings.HasSuffix(first, ".png"))
	assert.NotEqual(t, first, second)
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "media")
	storage, err := NewMediaStorage(ctx, &config.MediaConfig{Backend: config.MediaLocal, Root: root, URL: "/media"}, nil)
	require.NoError(t, err)

	require.NoError(t, storage.Save(ctx, "posts/a.png", "image/png", strings.NewReader("data"), 4))
	content, err := os.ReadFile(filepath.Join(root, "posts", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
	assert.Equal(t, "/media/posts/a.png", storage.URL("posts/a.png"))

	require.NoError(t, storage.Delete(ctx, "posts/a.png"))
	_, err = os.Stat(filepath.Join(root, "posts", "a.png"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, storage.Delete(ctx, "posts/a.png"), "deleting twice is fine")
}

func TestLocalStorageStaysInRoot(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "media")
	storage, err := NewLocalStorage(root, "/media/")
	require.NoError(t, err)

	require.NoError(t, storage.Save(ctx, "../../escape.txt", "text/plain", strings.NewReader("x"), 1))
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.NoError(t, err)
	assert.Error(t, storage.Save(ctx, "", "text/plain", strings.NewReader("x"), 1))
}

func TestNewMediaStorageErrors(t *testing.T) {
	ctx := context.Background()
	_, err := NewMediaStorage(ctx, &config.MediaConfig{Backend: config.MediaGCS, GCSBucket: "b"}, nil)
	assert.Error(t, err)
	_, err = NewMediaStorage(ctx, &config.MediaConfig{Backend: "ftp"}, nil)
	assert.Error(t, err)
}
