package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/pattern-scan-on-go/internal/builder"
	"github.com/shouni/pattern-scan-on-go/internal/pipeline"
	"github.com/shouni/pattern-scan-on-go/internal/scanner"

	"github.com/spf13/cobra"
)

// runCmd は、メインのCLIコマンド定義です。
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "ファイル群をバッチ単位でLLMに送信し、パターンスキャン結果を収集します。",
	Long: `
パスリストに列挙されたファイル群を固定サイズのバッチにまとめ、各バッチを
並列上限内でLLMに送信し、バッチごとの応答（またはエラー）を元の順序で
レポートします。

実行には、-q/--promptで検索したいパターンの指示文を、-f/--path-fileで
対象ファイルのパスリスト（1行1パス）を指定してください。

-o/--outputで出力先を指定すると、標準出力に加えて同一内容がファイル
（またはgs:// URI）にも書き込まれます。
`,
	RunE: runMainLogic,
}

// init関数でサブコマンド固有のフラグを定義します。
func init() {
	runCmd.Flags().StringP("prompt", "q", "", "各バッチに付与する検索指示文（例: 危険な関数の使用箇所を列挙して）")
	runCmd.Flags().StringP("path-file", "f", "", "処理対象のファイルパスを1行1件で記載したリストファイル（ローカルまたはgs:// URI）")
	runCmd.Flags().StringP("api-key", "k", "", "Gemini APIキー (省略時は環境変数 GEMINI_API_KEY を使用)")
	runCmd.Flags().StringP("output", "o", "", "レポートの出力先パス（ローカルまたはgs:// URI、省略時は標準出力のみ）")
	runCmd.Flags().IntP("parallel", "p", scanner.DefaultMaxConcurrency, "LLMへの最大同時並列リクエスト数")
	runCmd.Flags().IntP("batch-size", "b", scanner.DefaultBatchSize, "1バッチあたりのファイル数")
	runCmd.Flags().String("model", scanner.DefaultModelName, "使用するAIモデル名")
	runCmd.Flags().DurationP("llm-timeout", "t", 5*time.Minute, "LLM処理のタイムアウト時間")
	runCmd.Flags().DurationP("fetch-timeout", "s", 15*time.Second, "http(s)エントリ取得のHTTPタイムアウト時間")

	runCmd.MarkFlagRequired("prompt")
	runCmd.MarkFlagRequired("path-file")
}

// newCmdOptionsFromFlags は cobra.Command のフラグから CmdOptions 構造体を生成します。
// これにより、runMainLogic のフラグ取得ロジックが簡潔になります。
func newCmdOptionsFromFlags(cmd *cobra.Command) (pipeline.CmdOptions, error) {
	userPrompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return pipeline.CmdOptions{}, fmt.Errorf("promptフラグの取得に失敗しました: %w", err)
	}
	pathFile, err := cmd.Flags().GetString("path-file")
	if err != nil {
		return pipeline.CmdOptions{}, fmt.Errorf("path-fileフラグの取得に失敗しました: %w", err)
	}
	llmAPIKey, err := cmd.Flags().GetString("api-key")
	if err != nil {
		return pipeline.CmdOptions{}, fmt.Errorf("api-keyフラグの取得に失敗しました: %w", err)
	}
	outputFilePath, err := cmd.Flags().GetString("output")
	if err != nil {
		return pipeline.CmdOptions{}, fmt.Errorf("outputフラグの取得に失敗しました: %w", err)
	}
	maxConcurrency, err := cmd.Flags().GetInt("parallel")
	if err != nil {
		return pipeline.CmdOptions{}, fmt.Errorf("parallelフラグの取得に失敗しました: %w", err)
	}
	batchSize, err := cmd.Flags().GetInt("batch-size")
	if err != nil {
		return pipeline.CmdOptions{}, fmt.Errorf("batch-sizeフラグの取得に失敗しました: %w", err)
	}
	model, err := cmd.Flags().GetString("model")
	if err != nil {
		return pipeline.CmdOptions{}, fmt.Errorf("modelフラグの取得に失敗しました: %w", err)
	}
	llmTimeout, err := cmd.Flags().GetDuration("llm-timeout")
	if err != nil {
		return pipeline.CmdOptions{}, fmt.Errorf("llm-timeoutフラグの取得に失敗しました: %w", err)
	}
	fetchTimeout, err := cmd.Flags().GetDuration("fetch-timeout")
	if err != nil {
		return pipeline.CmdOptions{}, fmt.Errorf("fetch-timeoutフラグの取得に失敗しました: %w", err)
	}

	// 設定エラーはディスパッチ開始前にここで確定させる（フェイルファスト）
	if userPrompt == "" {
		return pipeline.CmdOptions{}, fmt.Errorf("--prompt には空でない指示文を指定する必要があります")
	}
	if maxConcurrency < 1 {
		return pipeline.CmdOptions{}, fmt.Errorf("--parallel には1以上の値を指定する必要があります")
	}
	if batchSize < 1 {
		return pipeline.CmdOptions{}, fmt.Errorf("--batch-size には1以上の値を指定する必要があります")
	}
	if model == "" {
		return pipeline.CmdOptions{}, fmt.Errorf("--model には空でないAIモデル名を指定する必要があります")
	}
	if llmTimeout <= 0 {
		return pipeline.CmdOptions{}, fmt.Errorf("--llm-timeout には正の時間を指定する必要があります")
	}

	// 構造体の初期化
	opts := pipeline.CmdOptions{
		UserPrompt:     userPrompt,
		PathFile:       pathFile,
		LLMAPIKey:      llmAPIKey,
		OutputFilePath: outputFilePath,
		MaxConcurrency: maxConcurrency,
		BatchSize:      batchSize,
		Model:          model,
		LLMTimeout:     llmTimeout,
		FetchTimeout:   fetchTimeout,
	}

	return opts, nil
}

// newRunContext は、-t/--llm-timeout の値を上限とする実行コンテキストを作成します。
// LLM呼び出しを含むパイプライン全体がこのコンテキストに束縛されます。
func newRunContext(ctx context.Context, opts pipeline.CmdOptions) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opts.LLMTimeout)
}

// runMainLogicはCLIのメインロジックを実行し、フラグをパイプラインに渡します。
// フラグ取得処理は newCmdOptionsFromFlags に抽出されています。
func runMainLogic(cmd *cobra.Command, args []string) error {
	// 1. フラグからオプション構造体を生成する処理をヘルパー関数に委譲
	opts, err := newCmdOptionsFromFlags(cmd)
	if err != nil {
		return err // フラグ取得エラーを直接返す
	}

	// LLMTimeout を上限とする、パイプライン全体の実行コンテキストを作成
	ctx, cancel := newRunContext(cmd.Context(), opts)
	defer cancel()

	// 2. パイプラインの構築
	p, closer, err := builder.BuildPipeline(ctx, opts)
	if err != nil {
		// パイプライン構築が失敗した場合（例: LLMクライアント初期化失敗など）
		return fmt.Errorf("パイプラインの構築に失敗しました: %w", err)
	}

	// GCSクライアントを含むすべてのリソースを確実にクローズする
	defer closer()

	// 3. パイプラインの実行
	if err := p.Execute(ctx); err != nil {
		return fmt.Errorf("パイプラインの実行中にエラーが発生しました: %w", err)
	}

	return nil
}
