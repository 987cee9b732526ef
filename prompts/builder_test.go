package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/pattern-scan-on-go/pkg/types"
)

func TestBuildScan_CompositeFormat(t *testing.T) {
	b := NewScanPromptBuilder()
	require.NoError(t, b.Err())

	composite, err := b.BuildScan(ScanTemplateData{
		UserPrompt: "危険な関数の使用箇所を列挙してください。",
		Sections: []types.FileSection{
			{Path: "a.py", Content: "print('a')"},
			{Path: "b.py", Content: "print('b')"},
		},
	})
	require.NoError(t, err)

	// 指示文 + 空行 + セクション（バッチ内順）の形式
	want := "危険な関数の使用箇所を列挙してください。\n\n" +
		"--- FILE: a.py ---\nprint('a')\n\n" +
		"--- FILE: b.py ---\nprint('b')"
	assert.Equal(t, want, composite)
}

func TestBuildScan_StartsWithExactUserPrompt(t *testing.T) {
	b := NewScanPromptBuilder()
	require.NoError(t, b.Err())

	userPrompt := "find dangerous calls"
	composite, err := b.BuildScan(ScanTemplateData{
		UserPrompt: userPrompt,
		Sections:   []types.FileSection{{Path: "x.go", Content: "package x"}},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(composite, userPrompt+"\n\n"))
}

func TestBuildScan_SectionOrderPreserved(t *testing.T) {
	b := NewScanPromptBuilder()
	require.NoError(t, b.Err())

	sections := []types.FileSection{
		{Path: "z.go", Content: "zzz"},
		{Path: "a.go", Content: "aaa"},
		{Path: "m.go", Content: "mmm"},
	}
	composite, err := b.BuildScan(ScanTemplateData{UserPrompt: "p", Sections: sections})
	require.NoError(t, err)

	// 出現順がバッチ内順と一致すること（辞書順等への並べ替えが起きないこと）
	iz := strings.Index(composite, "--- FILE: z.go ---")
	ia := strings.Index(composite, "--- FILE: a.go ---")
	im := strings.Index(composite, "--- FILE: m.go ---")
	require.NotEqual(t, -1, iz)
	require.NotEqual(t, -1, ia)
	require.NotEqual(t, -1, im)
	assert.Less(t, iz, ia)
	assert.Less(t, ia, im)
}

func TestBuildScan_EmptyUserPrompt(t *testing.T) {
	b := NewScanPromptBuilder()
	require.NoError(t, b.Err())

	_, err := b.BuildScan(ScanTemplateData{UserPrompt: ""})
	assert.Error(t, err)
}
