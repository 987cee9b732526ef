package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/pattern-scan-on-go/internal/batch"
	"github.com/shouni/pattern-scan-on-go/internal/scanner"
	"github.com/shouni/pattern-scan-on-go/pkg/types"
)

// ----------------------------------------------------------------
// 具象実装
// ----------------------------------------------------------------

// BatchScanStageImpl は BatchScanner インターフェースの具象実装です。
// その責務は、パスリストのバッチ分割と、ディスパッチャーへの委譲です。
type BatchScanStageImpl struct {
	dispatcher *scanner.Dispatcher
}

// NewBatchScanStageImpl は BatchScanStageImpl の新しいインスタンスを作成します。
func NewBatchScanStageImpl(dispatcher *scanner.Dispatcher) *BatchScanStageImpl {
	return &BatchScanStageImpl{
		dispatcher: dispatcher,
	}
}

// Scan は、パスリストを固定サイズのバッチに分割し、ディスパッチャーに委譲します。
// 並列上限・結果の順序保証・バッチ間の失敗分離はすべて Dispatcher 側で完結します。
func (s *BatchScanStageImpl) Scan(ctx context.Context, opts CmdOptions, paths []string) ([]types.Outcome, error) {
	batches, err := batch.Split(paths, opts.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("バッチ分割に失敗しました: %w", err)
	}

	slog.Info("パスリストのバッチ分割が完了しました。ディスパッチャーに委譲します。",
		slog.Int("total_paths", len(paths)),
		slog.Int("total_batches", len(batches)),
		slog.Int("batch_size", opts.BatchSize))

	outcomes := s.dispatcher.Dispatch(ctx, opts.UserPrompt, batches)

	return outcomes, nil
}

// 型アサーションチェック
var _ BatchScanner = (*BatchScanStageImpl)(nil)
