package scanner

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/pattern-scan-on-go/prompts"
)

// stubLoader は ContentLoader のテスト用実装です。
// contents に存在しないパスは読み取りエラーとして扱います。
type stubLoader struct {
	contents map[string]string
}

func (s *stubLoader) Load(ctx context.Context, location string) (string, error) {
	content, ok := s.contents[location]
	if !ok {
		return "", fmt.Errorf("ファイルを開けませんでした: %s", location)
	}
	return content, nil
}

func newTestCompositeBuilder(t *testing.T, loader ContentLoader) *CompositeBuilder {
	t.Helper()
	b, err := NewCompositeBuilder(prompts.NewScanPromptBuilder(), loader)
	require.NoError(t, err)
	return b
}

func TestCompositeBuilder_AllReadable(t *testing.T) {
	loader := &stubLoader{contents: map[string]string{
		"a.py": "import os",
		"b.py": "import sys",
	}}
	b := newTestCompositeBuilder(t, loader)

	composite, err := b.Build(context.Background(), "危険な関数を探して", []string{"a.py", "b.py"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(composite, "危険な関数を探して\n\n"))
	assert.Contains(t, composite, "--- FILE: a.py ---\nimport os")
	assert.Contains(t, composite, "--- FILE: b.py ---\nimport sys")
}

func TestCompositeBuilder_UnreadableFileGetsMarker(t *testing.T) {
	loader := &stubLoader{contents: map[string]string{
		"a.py": "import os",
	}}
	b := newTestCompositeBuilder(t, loader)

	composite, err := b.Build(context.Background(), "scan", []string{"a.py", "missing.py"})

	// 1ファイルの読み取り失敗でバッチ全体は失敗しない
	require.NoError(t, err)

	// 読めなかったパスのセクションは消えず、パスを含むマーカーに置き換わる
	assert.Contains(t, composite, "--- FILE: missing.py ---")
	assert.Contains(t, composite, ReadErrorMarkerPrefix+" missing.py:")
	// 正常なファイルのセクションはそのまま
	assert.Contains(t, composite, "--- FILE: a.py ---\nimport os")
}

func TestCompositeBuilder_NilDependencies(t *testing.T) {
	_, err := NewCompositeBuilder(nil, &stubLoader{})
	assert.Error(t, err)

	_, err = NewCompositeBuilder(prompts.NewScanPromptBuilder(), nil)
	assert.Error(t, err)
}
