package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/shouni/pattern-scan-on-go/pkg/types"
)

//go:embed scan_batch_prompt.md
var ScanBatchPromptTemplate string

// ----------------------------------------------------------------
// テンプレート構造体
// ----------------------------------------------------------------

// ScanTemplateData は、1バッチ分のコンポジットプロンプトを構成するデータです。
// Sectionsはバッチ内のファイル順をそのまま保持します。
type ScanTemplateData struct {
	UserPrompt string
	Sections   []types.FileSection
}

// ----------------------------------------------------------------
// ビルダー実装
// ----------------------------------------------------------------

// PromptBuilder はプロンプトの構成とテンプレート実行を管理します。
type PromptBuilder struct {
	tmpl *template.Template
	err  error
}

// NewScanPromptBuilder はバッチスキャン用の PromptBuilder を初期化します。
// パースに失敗した場合は、内部にエラーを保持したPromptBuilderを返します。
func NewScanPromptBuilder() *PromptBuilder {
	tmpl, err := template.New("scan_batch").Parse(ScanBatchPromptTemplate)
	return &PromptBuilder{tmpl: tmpl, err: err}
}

// Err は PromptBuilder の初期化（テンプレートパース）時に発生したエラーを返します。
func (b *PromptBuilder) Err() error {
	return b.err
}

// BuildScan は ScanTemplateData を埋め込み、Geminiへ送るための最終的なプロンプト文字列を完成させます。
// 出力は「指示文 + 空行 + ファイルセクション（バッチ内順）」の形式になります。
func (b *PromptBuilder) BuildScan(data ScanTemplateData) (string, error) {
	if b.tmpl == nil || b.err != nil {
		return "", fmt.Errorf("scan prompt template is not properly initialized: %w", b.err)
	}

	if data.UserPrompt == "" {
		return "", fmt.Errorf("スキャンプロンプト実行失敗: UserPromptが空です (template: %s)", b.tmpl.Name())
	}

	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("スキャンプロンプトの実行に失敗しました: %w", err)
	}

	return sb.String(), nil
}
