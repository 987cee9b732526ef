package pipeline

import (
	"context"
	"fmt"
	"log"
)

// ----------------------------------------------------------------
// 定数定義
// ----------------------------------------------------------------

const (
	PhasePaths  = "パスリスト生成フェーズ"
	PhaseScan   = "バッチスキャンフェーズ"
	PhaseReport = "レポート出力フェーズ"
)

// Execute はアプリケーションの主要な処理フローを、注入されたステージを通じて実行します。
func (p *Pipeline) Execute(ctx context.Context) error {
	// 1. パスリスト生成ステージ
	paths, err := p.PathGen.Generate(ctx, p.Options)
	if err != nil {
		return fmt.Errorf("%sでエラーが発生しました: %w", PhasePaths, err)
	}
	log.Printf("INFO: Pattern Scan 処理を開始します。対象ファイル数: %d個", len(paths))

	// 2. バッチスキャンステージ
	outcomes, err := p.Scanner.Scan(ctx, p.Options, paths)
	if err != nil {
		return fmt.Errorf("%sでエラーが発生しました: %w", PhaseScan, err)
	}

	// 3. レポート出力ステージ
	if err := p.ReportGen.Generate(ctx, p.Options, outcomes); err != nil {
		return fmt.Errorf("%sでエラーが発生しました: %w", PhaseReport, err)
	}

	log.Println("INFO: 処理が正常に完了しました。")
	return nil
}
