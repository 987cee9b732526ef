package scanner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-web-exact/v2/pkg/extract"
	"github.com/shouni/pattern-scan-on-go/internal/input"
)

// ContentLoader は、パスリストの1エントリから本文テキストを取得する契約です。
type ContentLoader interface {
	Load(ctx context.Context, location string) (string, error)
}

// MultiSourceLoader は ContentLoader の具象実装です。
// ローカルパスと gs:// URI は input.Reader に、http(s):// URL は
// Webコンテンツ抽出器に振り分けます。
type MultiSourceLoader struct {
	reader    input.Reader
	extractor *extract.Extractor
}

// NewMultiSourceLoader は MultiSourceLoader の新しいインスタンスを作成します。
// extractor に nil を渡すと http(s):// エントリの読み込みはエラーになります。
func NewMultiSourceLoader(reader input.Reader, extractor *extract.Extractor) *MultiSourceLoader {
	return &MultiSourceLoader{
		reader:    reader,
		extractor: extractor,
	}
}

// Load は、エントリの種別に応じて本文テキストを取得します。
func (l *MultiSourceLoader) Load(ctx context.Context, location string) (string, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return l.loadWebContent(ctx, location)
	}

	rc, err := l.reader.Open(ctx, location)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("コンテンツの読み取りに失敗しました: %w", err)
	}

	return string(data), nil
}

// loadWebContent は、URLから本文テキストを抽出します。
func (l *MultiSourceLoader) loadWebContent(ctx context.Context, url string) (string, error) {
	if l.extractor == nil {
		return "", fmt.Errorf("URLが指定されましたが、Webコンテンツ抽出器が初期化されていません。")
	}

	content, hasBodyFound, err := l.extractor.FetchAndExtractText(ctx, url)
	if err != nil {
		return "", fmt.Errorf("コンテンツの抽出に失敗しました: %w", err)
	}

	if content == "" || !hasBodyFound {
		return "", fmt.Errorf("URL %s から有効な本文を抽出できませんでした", url)
	}

	return content, nil
}

// 型アサーションチェック
var _ ContentLoader = (*MultiSourceLoader)(nil)
