package pipeline

import (
	"context"
	"time"

	"github.com/shouni/pattern-scan-on-go/pkg/types"
)

// ----------------------------------------------------------------
// 共通構造体
// ----------------------------------------------------------------

// CmdOptions は CLI オプションの値を集約するための構造体です。
type CmdOptions struct {
	UserPrompt     string
	PathFile       string
	LLMAPIKey      string
	OutputFilePath string
	MaxConcurrency int
	BatchSize      int
	Model          string
	LLMTimeout     time.Duration
	FetchTimeout   time.Duration
}

// ----------------------------------------------------------------
// パイプラインステージのインターフェース (DIの契約)
// ----------------------------------------------------------------

// PathListGenerator は、処理対象のパスリストを生成するステージの契約です。
type PathListGenerator interface {
	// Generate はリストファイルなどからパスリストを読み込みます。
	Generate(ctx context.Context, opts CmdOptions) ([]string, error)
}

// BatchScanner は、パスリストをバッチ化しLLMでスキャンするステージの契約です。
type BatchScanner interface {
	// Scan はパスリストをバッチに分割し、並列上限内でLLMに送信して
	// 元のバッチ順の結果列を返します。
	Scan(ctx context.Context, opts CmdOptions, paths []string) ([]types.Outcome, error)
}

// ReportGenerator は、バッチ結果をレンダリングして出力するステージの契約です。
type ReportGenerator interface {
	// Generate は結果列を整形し、標準出力と（設定されていれば）出力シンクに書き込みます。
	Generate(ctx context.Context, opts CmdOptions, outcomes []types.Outcome) error
}

// ----------------------------------------------------------------
// Pipeline コア構造
// ----------------------------------------------------------------

// Pipeline はアプリケーションの実行パイプラインを定義し、DIされた依存関係を保持します。
type Pipeline struct {
	// Options はパイプライン実行全体で必要な設定値を保持します。
	Options CmdOptions
	// DIされるステージ実装
	PathGen   PathListGenerator
	Scanner   BatchScanner
	ReportGen ReportGenerator
}

// NewPipeline は CmdOptions とステージの具象実装を受け取り、Pipelineインスタンスを構築します。
func NewPipeline(
	opts CmdOptions,
	pathGen PathListGenerator,
	scanner BatchScanner,
	reportGen ReportGenerator,
) *Pipeline {
	return &Pipeline{
		Options:   opts,
		PathGen:   pathGen,
		Scanner:   scanner,
		ReportGen: reportGen,
	}
}
