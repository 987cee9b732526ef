package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/shouni/pattern-scan-on-go/internal/input"
)

// DefaultPathListGeneratorImpl は PathListGenerator インターフェースの具象実装です。
// リストファイルの読み込みは input.Reader に委譲し、ローカルファイルと
// GCSオブジェクトの両方を透過的に扱います。
type DefaultPathListGeneratorImpl struct {
	reader input.Reader
}

// NewDefaultPathListGeneratorImpl は DefaultPathListGeneratorImpl の新しいインスタンスを作成します。
func NewDefaultPathListGeneratorImpl(reader input.Reader) *DefaultPathListGeneratorImpl {
	return &DefaultPathListGeneratorImpl{
		reader: reader,
	}
}

// Generate はリストファイルからパスを読み込み、基本的なバリデーションを実行します。
func (d *DefaultPathListGeneratorImpl) Generate(ctx context.Context, opts CmdOptions) ([]string, error) {
	if opts.PathFile == "" {
		return nil, fmt.Errorf("処理対象のパスリストを指定してください。-f/--path-file オプションでリストファイルを指定してください。")
	}

	paths, err := d.readPathsFromFile(ctx, opts.PathFile)
	if err != nil {
		return nil, fmt.Errorf("パスリストファイルの読み込みに失敗しました: %w", err)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("パスリストファイルに有効なエントリが一件も含まれていませんでした。")
	}
	return paths, nil
}

// readPathsFromFileは指定されたリストファイルからパスを読み込みます。
// 入力順を保持し、空行とコメント行のみを取り除きます。
// #で始まる行はコメントとして扱うため、#で始まるパスはリストに記載できません。
func (d *DefaultPathListGeneratorImpl) readPathsFromFile(ctx context.Context, filePath string) ([]string, error) {
	rc, err := d.reader.Open(ctx, filePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var paths []string
	scanner := bufio.NewScanner(rc)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// 空行またはコメント行 (#で始まる行) をスキップ
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ファイルの読み取り中にエラーが発生しました: %w", err)
	}

	return paths, nil
}

// 型アサーションチェック
var _ PathListGenerator = (*DefaultPathListGeneratorImpl)(nil)
