package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/pkg/storage"
)

func TestLocalDiskPutExistsDelete(t *testing.T) {
	root := t.TempDir()
	disk := storage.NewLocalDisk(root, "/public/")
	ctx := context.Background()

	require.NoError(t, disk.Put(ctx, "image-1.png", strings.NewReader("png-bytes"), "image/png"))
	assert.True(t, disk.Exists(ctx, "image-1.png"))

	data, err := os.ReadFile(filepath.Join(root, "image-1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	assert.Equal(t, "/public/image-1.png", disk.URL("image-1.png"))

	require.NoError(t, disk.Delete(ctx, "image-1.png"))
	assert.False(t, disk.Exists(ctx, "image-1.png"))
	assert.NoError(t, disk.Delete(ctx, "image-1.png"))
}

func TestLocalDiskRejectsEscapingPaths(t *testing.T) {
	disk := storage.NewLocalDisk(t.TempDir(), "/public")
	err := disk.Put(context.Background(), "../outside.png", strings.NewReader("x"), "")
	assert.Error(t, err)
}
