package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Empty(t, found, "search stops at the repository root")

	writeFile(t, filepath.Join(root, ".gomdview.json"), "{}")
	writeFile(t, filepath.Join(root, "gomdview.yaml"), "")
	found, err = FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "gomdview.yaml"), found)

	require.NoError(t, os.Mkdir(filepath.Join(nested, ".gomdview.yml"), 0o755))
	found, err = FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "gomdview.yaml"), found, "directories are not config files")
}

func TestFindProjectConfig_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindProjectConfig(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestFirstFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.Empty(t, firstFile(dir, layerConfigNames))
	assert.Empty(t, firstFile("", layerConfigNames))

	writeFile(t, filepath.Join(dir, "config.yml"), "")
	assert.Equal(t, filepath.Join(dir, "config.yml"), firstFile(dir, layerConfigNames))

	writeFile(t, filepath.Join(dir, "config.yaml"), "")
	assert.Equal(t, filepath.Join(dir, "config.yaml"), firstFile(dir, layerConfigNames))
}
