package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/pattern-scan-on-go/internal/input"
)

func TestMultiSourceLoader_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte("package sample\n"), 0644))

	loader := NewMultiSourceLoader(input.NewLocalGCSReader(nil), nil)

	content, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "package sample\n", content)
}

func TestMultiSourceLoader_MissingLocalFile(t *testing.T) {
	loader := NewMultiSourceLoader(input.NewLocalGCSReader(nil), nil)

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.go"))
	assert.Error(t, err)
}

func TestMultiSourceLoader_URLWithoutExtractor(t *testing.T) {
	// 抽出器なしで http(s) エントリを渡した場合は設定エラー
	loader := NewMultiSourceLoader(input.NewLocalGCSReader(nil), nil)

	_, err := loader.Load(context.Background(), "https://example.com/page")
	assert.Error(t, err)
}

func TestMultiSourceLoader_GCSWithoutClient(t *testing.T) {
	loader := NewMultiSourceLoader(input.NewLocalGCSReader(nil), nil)

	_, err := loader.Load(context.Background(), "gs://bucket/object.go")
	assert.Error(t, err)
}
