package scanner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/pattern-scan-on-go/pkg/types"
	"github.com/shouni/pattern-scan-on-go/prompts"
)

// CompositeBuilder は、1バッチ分のコンポジットプロンプトを組み立てます。
// 各パスの本文読み込みはディスパッチ前に同期的に行われ、並列実行の許可枠を
// 保持することはありません。
type CompositeBuilder struct {
	promptBuilder *prompts.PromptBuilder
	loader        ContentLoader
}

// NewCompositeBuilder は新しい CompositeBuilder インスタンスを作成します。
func NewCompositeBuilder(promptBuilder *prompts.PromptBuilder, loader ContentLoader) (*CompositeBuilder, error) {
	if promptBuilder == nil {
		return nil, fmt.Errorf("PromptBuilder は nil にできません")
	}
	if err := promptBuilder.Err(); err != nil {
		return nil, fmt.Errorf("スキャンプロンプトテンプレートの初期化に失敗しました: %w", err)
	}
	if loader == nil {
		return nil, fmt.Errorf("ContentLoader は nil にできません")
	}

	return &CompositeBuilder{
		promptBuilder: promptBuilder,
		loader:        loader,
	}, nil
}

// Build は、指示文とバッチ内のパス群から1つのコンポジットプロンプトを生成します。
// 個々のパスの読み取り失敗はバッチ全体の失敗にせず、パスとエラー内容を含む
// マーカー文字列をセクション本文として埋め込みます。セクションはバッチ内の
// パス順をそのまま保持します。
func (b *CompositeBuilder) Build(ctx context.Context, userPrompt string, paths []string) (string, error) {
	sections := make([]types.FileSection, 0, len(paths))

	for _, p := range paths {
		content, err := b.loader.Load(ctx, p)
		if err != nil {
			// 読み取り失敗は回復可能エラー: マーカーを埋め込み、バッチは送信する
			slog.Warn("コンテンツの読み取りに失敗しました。エラーマーカーを埋め込みます。",
				slog.String("path", p),
				slog.String("error", err.Error()))
			content = fmt.Sprintf("%s %s: %v", ReadErrorMarkerPrefix, p, err)
		}

		sections = append(sections, types.FileSection{
			Path:    p,
			Content: content,
		})
	}

	composite, err := b.promptBuilder.BuildScan(prompts.ScanTemplateData{
		UserPrompt: userPrompt,
		Sections:   sections,
	})
	if err != nil {
		return "", fmt.Errorf("コンポジットプロンプトの生成に失敗しました: %w", err)
	}

	return composite, nil
}
