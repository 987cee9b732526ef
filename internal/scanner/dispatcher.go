package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/pattern-scan-on-go/pkg/types"
)

// Dispatcher は、バッチ群を並列上限内でLLMに送信する調整役です。
// 全バッチ分のコンポジットプロンプトを先に組み立ててから、バッチごとに
// 1ゴルーチンを起動し、チャネルセマフォで同時実行数を制限します。
// 結果はバッチ番号で添字付けされ、完了順には依存しません。
//
// 一度ディスパッチを開始すると、全バッチは成功または失敗まで実行されます。
// 実行中の呼び出しを中断する仕組みは持ちません。
type Dispatcher struct {
	builder     *CompositeBuilder
	generator   TextGenerator
	model       string
	concurrency int
}

// NewDispatcher は新しい Dispatcher インスタンスを作成します。
// concurrencyが1未満の場合は設定エラーとして即座に失敗します。
func NewDispatcher(builder *CompositeBuilder, generator TextGenerator, model string, concurrency int) (*Dispatcher, error) {
	if builder == nil {
		return nil, fmt.Errorf("CompositeBuilder は nil にできません")
	}
	if generator == nil {
		return nil, fmt.Errorf("TextGenerator は nil にできません")
	}
	if model == "" {
		return nil, fmt.Errorf("AIモデル名は空にできません")
	}
	if concurrency < 1 {
		return nil, fmt.Errorf("並列数には1以上の値を指定する必要があります (指定値: %d)", concurrency)
	}

	return &Dispatcher{
		builder:     builder,
		generator:   generator,
		model:       model,
		concurrency: concurrency,
	}, nil
}

// Dispatch は、全バッチを並列上限内でLLMに送信し、バッチごとの結果を
// 元のバッチ順で返します。あるバッチの失敗は Outcome.Err として記録される
// だけで、他のバッチの実行には影響しません。
func (d *Dispatcher) Dispatch(ctx context.Context, userPrompt string, batches [][]string) []types.Outcome {
	outcomes := make([]types.Outcome, len(batches))

	// 1. コンポジットプロンプトの事前組み立て（同期処理、許可枠は保持しない）
	composites := make([]string, len(batches))
	for i, paths := range batches {
		composite, err := d.builder.Build(ctx, userPrompt, paths)
		if err != nil {
			// プロンプトが作れなかったバッチは送信せず、そのバッチの失敗として記録する
			outcomes[i] = types.Outcome{Index: i + 1, Err: fmt.Errorf("バッチ %d のプロンプト生成に失敗しました: %w", i+1, err)}
			continue
		}
		composites[i] = composite
	}

	// 2. 並列処理セマフォ
	sem := make(chan struct{}, d.concurrency)
	var wg sync.WaitGroup

	slog.Info("バッチの並列ディスパッチを開始します",
		slog.Int("total_batches", len(batches)),
		slog.Int("max_parallel", d.concurrency),
		slog.String("model", d.model))

	for i := range batches {
		if outcomes[i].Err != nil {
			// プロンプト生成に失敗したバッチはスキップ
			continue
		}

		wg.Add(1)
		go func(index int, prompt string) {
			defer wg.Done()

			sem <- struct{}{}        // セマフォ取得（空き枠が出るまでこのゴルーチンのみ待機）
			defer func() { <-sem }() // セマフォ解放（成否を問わず必ず実行）

			text, err := d.generator.Generate(ctx, prompt, d.model)
			if err != nil {
				slog.Warn("バッチの処理に失敗しました",
					slog.Int("batch", index+1),
					slog.String("error", err.Error()))
				// 結果スロットはバッチごとに独立しているため、追加のロックは不要
				outcomes[index] = types.Outcome{Index: index + 1, Err: fmt.Errorf("バッチ %d の処理に失敗しました: %w", index+1, err)}
				return
			}

			outcomes[index] = types.Outcome{Index: index + 1, Text: text}
		}(i, composites[i])
	}

	// 3. 全バッチの完了を待機し、元のバッチ順のまま返す
	wg.Wait()

	slog.Info("全バッチのディスパッチが完了しました", slog.Int("total_batches", len(batches)))

	return outcomes
}
