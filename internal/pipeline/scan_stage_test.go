package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/pattern-scan-on-go/internal/scanner"
	"github.com/shouni/pattern-scan-on-go/prompts"
)

// mapLoader は scanner.ContentLoader のテスト用実装です。
type mapLoader map[string]string

func (m mapLoader) Load(ctx context.Context, location string) (string, error) {
	content, ok := m[location]
	if !ok {
		return "", fmt.Errorf("ファイルを開けませんでした: %s", location)
	}
	return content, nil
}

// echoGenerator は受け取ったプロンプトをそのまま返す scanner.TextGenerator です。
type echoGenerator struct{}

func (echoGenerator) Generate(ctx context.Context, prompt string, model string) (string, error) {
	return prompt, nil
}

func newTestScanStage(t *testing.T, files mapLoader, concurrency int) *BatchScanStageImpl {
	t.Helper()
	cb, err := scanner.NewCompositeBuilder(prompts.NewScanPromptBuilder(), files)
	require.NoError(t, err)
	d, err := scanner.NewDispatcher(cb, echoGenerator{}, "test-model", concurrency)
	require.NoError(t, err)
	return NewBatchScanStageImpl(d)
}

func TestScanStage_EndToEndBatching(t *testing.T) {
	// 入力 [a.py b.py c.py d.py]、サイズ3、並列2 → 2件の結果が元の順で返り、
	// それぞれのコンポジットプロンプトが対応するバッチの内容を反映する
	files := mapLoader{"a.py": "aa", "b.py": "bb", "c.py": "cc", "d.py": "dd"}
	stage := newTestScanStage(t, files, 2)

	opts := CmdOptions{UserPrompt: "scan", BatchSize: 3, MaxConcurrency: 2}
	outcomes, err := stage.Scan(context.Background(), opts, []string{"a.py", "b.py", "c.py", "d.py"})
	require.NoError(t, err)

	require.Len(t, outcomes, 2)

	require.NoError(t, outcomes[0].Err)
	assert.True(t, strings.HasPrefix(outcomes[0].Text, "scan\n\n"))
	assert.Contains(t, outcomes[0].Text, "--- FILE: a.py ---")
	assert.Contains(t, outcomes[0].Text, "--- FILE: b.py ---")
	assert.Contains(t, outcomes[0].Text, "--- FILE: c.py ---")
	assert.NotContains(t, outcomes[0].Text, "d.py")

	require.NoError(t, outcomes[1].Err)
	assert.Contains(t, outcomes[1].Text, "--- FILE: d.py ---")
	assert.NotContains(t, outcomes[1].Text, "a.py")
}

func TestScanStage_UnreadableEntryStillDispatched(t *testing.T) {
	// 読めないエントリを含むバッチもスキップされず、マーカー入りの
	// 整形済みプロンプトが1つだけ送信される
	files := mapLoader{"a.py": "aa"}
	stage := newTestScanStage(t, files, 1)

	opts := CmdOptions{UserPrompt: "scan", BatchSize: 3, MaxConcurrency: 1}
	outcomes, err := stage.Scan(context.Background(), opts, []string{"a.py", "broken.py"})
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)
	assert.Contains(t, outcomes[0].Text, "--- FILE: broken.py ---")
	assert.Contains(t, outcomes[0].Text, scanner.ReadErrorMarkerPrefix+" broken.py:")
}

func TestScanStage_InvalidBatchSize(t *testing.T) {
	stage := newTestScanStage(t, mapLoader{}, 1)

	_, err := stage.Scan(context.Background(), CmdOptions{UserPrompt: "scan", BatchSize: 0}, []string{"a.py"})
	assert.Error(t, err)
}
