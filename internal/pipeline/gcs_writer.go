package pipeline

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// GCSOutputWriter は、GCSへのレポート書き込みの抽象化です。
type GCSOutputWriter interface {
	WriteToGCS(ctx context.Context, bucketName, objectPath string, content string) error
}

// GCSFileWriter は GCSOutputWriter インターフェースの具象実装です。
type GCSFileWriter struct {
	client *storage.Client
}

// NewGCSFileWriter は新しい GCSFileWriter インスタンスを作成します。
func NewGCSFileWriter(client *storage.Client) *GCSFileWriter {
	return &GCSFileWriter{client: client}
}

// WriteToGCS は指定されたバケットとパスにコンテンツを書き込みます。
func (w *GCSFileWriter) WriteToGCS(ctx context.Context, bucketName, objectPath string, content string) error {
	// バケットとオブジェクトの参照を取得
	bucket := w.client.Bucket(bucketName)
	obj := bucket.Object(objectPath)

	// Writerを取得し、コンテキストを使用してタイムアウトやキャンセルを処理可能にする
	wc := obj.NewWriter(ctx)
	wc.ContentType = "text/plain; charset=utf-8"

	// 書き込み
	if _, err := wc.Write([]byte(content)); err != nil {
		wc.Close() // 書き込みエラー時は必ず閉じる
		return fmt.Errorf("GCSへのコンテンツ書き込みに失敗しました: %w", err)
	}

	// Writerを閉じる (これが実際のアップロードをトリガーします)
	if err := wc.Close(); err != nil {
		return fmt.Errorf("GCS Writerのクローズに失敗しました (アップロード失敗): %w", err)
	}

	return nil
}

// parseGCSURI は gs://bucket-name/object-name 形式のURIを分解します。
func parseGCSURI(gcsURI string) (bucketName, objectName string, err error) {
	path := strings.TrimPrefix(gcsURI, "gs://")
	parts := strings.SplitN(path, "/", 2)

	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("無効なGCS URI形式です: %s (gs://bucket-name/object-name の形式で指定してください)", gcsURI)
	}
	return parts[0], parts[1], nil
}

// 型アサーションチェック
var _ GCSOutputWriter = (*GCSFileWriter)(nil)
