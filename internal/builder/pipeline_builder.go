package builder

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/storage"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
	"github.com/shouni/pattern-scan-on-go/internal/input"
	"github.com/shouni/pattern-scan-on-go/internal/pipeline"
	"github.com/shouni/pattern-scan-on-go/internal/scanner"
	"github.com/shouni/pattern-scan-on-go/prompts"
)

// DefaultHTTPMaxRetries は http(s) エントリ取得時のHTTPクライアントのリトライ回数です。
// LLMディスパッチ自体はリトライしません（取得層のみの設定です）。
const DefaultHTTPMaxRetries = 2

// BuildPipeline は、必要なすべての依存関係を構築し、DIされた Pipeline インスタンスと
// GCSクライアントのクリーンアップ関数 (Close) を返します。
func BuildPipeline(ctx context.Context, opts pipeline.CmdOptions) (*pipeline.Pipeline, func(), error) {

	// ----------------------------------------------------------------
	// 1. GCS クライアントの初期化とクリーンアップ設定
	// ----------------------------------------------------------------

	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("GCSクライアントの初期化に失敗しました: %w", err)
	}

	// クリーンアップ関数を定義
	gcsClientCloser := func() {
		gcsClient.Close()
	}

	// ----------------------------------------------------------------
	// 2. コンテンツ読み込みのための依存関係の具体化
	// ----------------------------------------------------------------

	// ローカル/GCS 共通の入力リーダー
	inputReader := input.NewLocalGCSReader(gcsClient)

	// http(s) エントリ用のフェッチャーと抽出器
	clientOptions := []httpkit.ClientOption{
		httpkit.WithMaxRetries(DefaultHTTPMaxRetries),
	}
	fetcher := httpkit.New(opts.FetchTimeout, clientOptions...)
	extractor, err := extract.NewExtractor(fetcher)
	if err != nil {
		return nil, gcsClientCloser, fmt.Errorf("Extractorの初期化に失敗しました: %w", err)
	}

	loader := scanner.NewMultiSourceLoader(inputReader, extractor)

	// ----------------------------------------------------------------
	// 3. スキャンコア (プロンプト組み立てとディスパッチャー) の構築
	// ----------------------------------------------------------------

	// プロンプトビルダーの初期化
	scanBuilder := prompts.NewScanPromptBuilder()
	if err := scanBuilder.Err(); err != nil {
		return nil, gcsClientCloser, fmt.Errorf("Scan Prompt Builderの初期化に失敗しました: %w", err)
	}

	compositeBuilder, err := scanner.NewCompositeBuilder(scanBuilder, loader)
	if err != nil {
		return nil, gcsClientCloser, fmt.Errorf("Composite Builderの初期化に失敗しました: %w", err)
	}

	// LLMクライアントの構築（APIキーが解決できない場合はここで失敗し、ディスパッチは開始されない）
	generator, err := scanner.NewGeminiGenerator(ctx, opts.LLMAPIKey)
	if err != nil {
		return nil, gcsClientCloser, fmt.Errorf("LLM Generatorの初期化に失敗しました: %w", err)
	}

	dispatcher, err := scanner.NewDispatcher(compositeBuilder, generator, opts.Model, opts.MaxConcurrency)
	if err != nil {
		return nil, gcsClientCloser, fmt.Errorf("Dispatcherの初期化に失敗しました: %w", err)
	}

	// ----------------------------------------------------------------
	// 4. パイプラインステージの実装とPipelineの構築 (DIの実行)
	// ----------------------------------------------------------------

	// 4.1 PathListGenerator の構築
	pathGen := pipeline.NewDefaultPathListGeneratorImpl(inputReader)

	// 4.2 BatchScanner の構築
	scanStage := pipeline.NewBatchScanStageImpl(dispatcher)

	// 4.3 ReportGenerator の構築 (GCSライターを注入)
	gcsWriter := pipeline.NewGCSFileWriter(gcsClient)
	reportGen := pipeline.NewReportGeneratorImpl(gcsWriter, os.Stdout)

	// 全てのステージとオプションをPipelineに注入し、クリーンアップ関数も一緒に返す
	return pipeline.NewPipeline(opts, pathGen, scanStage, reportGen), gcsClientCloser, nil
}
