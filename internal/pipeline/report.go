package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shouni/go-utils/iohandler"
	"github.com/shouni/pattern-scan-on-go/pkg/types"
)

// ----------------------------------------------------------------
// レンダリング
// ----------------------------------------------------------------

// RenderOutcomes は、バッチ結果列をレポートテキストに整形します。
// 結果は元のバッチ順のまま、1件ごとにヘッダ行と応答本文（またはエラー行）を
// 出力します。
func RenderOutcomes(outcomes []types.Outcome) string {
	var sb strings.Builder

	for i, o := range outcomes {
		sb.WriteString(fmt.Sprintf("--- RESPONSE %d ---\n", i+1))
		if o.Err != nil {
			sb.WriteString(fmt.Sprintf("Error: %v\n", o.Err))
		} else {
			sb.WriteString(o.Text)
			sb.WriteString("\n")
		}
		if i < len(outcomes)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// ----------------------------------------------------------------
// 具象実装
// ----------------------------------------------------------------

// ReportGeneratorImpl は ReportGenerator インターフェースの具象実装です。
// レポート全文を常に標準出力へ書き、出力シンクが設定されている場合は
// 同一内容をローカルファイルまたはGCSにも複製します。
type ReportGeneratorImpl struct {
	gcsWriter GCSOutputWriter
	stdout    io.Writer
}

// NewReportGeneratorImpl は ReportGeneratorImpl の新しいインスタンスを作成します。
// stdout はテスト容易性のために注入します（通常は os.Stdout）。
func NewReportGeneratorImpl(gcsWriter GCSOutputWriter, stdout io.Writer) *ReportGeneratorImpl {
	return &ReportGeneratorImpl{
		gcsWriter: gcsWriter,
		stdout:    stdout,
	}
}

// Generate は結果列をレンダリングし、標準出力と設定済みシンクに書き込みます。
func (r *ReportGeneratorImpl) Generate(ctx context.Context, opts CmdOptions, outcomes []types.Outcome) error {
	report := RenderOutcomes(outcomes)

	// 標準出力には常に全文を書き込む
	if _, err := io.WriteString(r.stdout, report); err != nil {
		return fmt.Errorf("標準出力への書き込みに失敗しました: %w", err)
	}

	if opts.OutputFilePath == "" {
		return nil
	}

	// 出力シンクには標準出力と同一の内容を同一の順序で複製する
	if strings.HasPrefix(opts.OutputFilePath, "gs://") {
		return r.writeToGCS(ctx, opts.OutputFilePath, report)
	}

	if err := iohandler.WriteOutputString(opts.OutputFilePath, report); err != nil {
		return fmt.Errorf("ファイルへの書き込みに失敗しました: %w", err)
	}
	slog.Info("レポートをファイルに書き込みました", slog.String("file", opts.OutputFilePath))

	return nil
}

// writeToGCS は gs:// URIで指定されたシンクにレポートを書き込みます。
func (r *ReportGeneratorImpl) writeToGCS(ctx context.Context, gcsURI string, report string) error {
	if r.gcsWriter == nil {
		return fmt.Errorf("GCS URIが指定されましたが、GCSライターが初期化されていません。")
	}

	bucketName, objectName, err := parseGCSURI(gcsURI)
	if err != nil {
		return err
	}

	if err := r.gcsWriter.WriteToGCS(ctx, bucketName, objectName, report); err != nil {
		return err
	}
	slog.Info("レポートをGCSに書き込みました", slog.String("uri", gcsURI))

	return nil
}

// 型アサーションチェック
var _ ReportGenerator = (*ReportGeneratorImpl)(nil)
