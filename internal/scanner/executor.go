package scanner

import (
	"context"
	"fmt"

	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
)

// TextGenerator は、LLMのテキスト生成能力を抽象化するインターフェースです。
// これにより、ディスパッチのコアロジックからAPI通信の詳細を分離します。
// 呼び出しは同期的で、応答本文かエラーのどちらかを返します。
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, model string) (string, error)
}

// GeminiGenerator は TextGenerator の具体的な実装で、
// go-ai-client の Gemini クライアントに処理を委譲します。
type GeminiGenerator struct {
	client *gemini.Client
}

// NewGeminiGenerator は新しい GeminiGenerator インスタンスを作成します。
// APIキーが明示的に渡されない場合は環境変数 (GEMINI_API_KEY) から解決します。
// どちらからも取得できない場合は設定エラーとして失敗し、ディスパッチは開始されません。
func NewGeminiGenerator(ctx context.Context, apiKeyOverride string) (*GeminiGenerator, error) {
	var client *gemini.Client
	var err error

	if apiKeyOverride != "" {
		client, err = gemini.NewClient(ctx, gemini.Config{APIKey: apiKeyOverride})
	} else {
		client, err = gemini.NewClientFromEnv(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("LLMクライアントの初期化に失敗しました。APIキー（--api-keyオプションまたは環境変数 GEMINI_API_KEY）が設定されているか確認してください: %w", err)
	}

	return &GeminiGenerator{client: client}, nil
}

// Generate は、コンポジットプロンプトを指定モデルに送信し、応答本文を返します。
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, model string) (string, error) {
	response, err := g.client.GenerateContent(ctx, prompt, model)
	if err != nil {
		return "", err
	}
	return response.Text, nil
}

// 型アサーションチェック
var _ TextGenerator = (*GeminiGenerator)(nil)
