package types

// FileSection は、コンポジットプロンプト内の1ファイル分のセクションを表します。
// 読み取りに失敗した場合、Contentにはパスとエラー内容を含むマーカー文字列が入ります。
// 複数のパッケージで共有されます。
type FileSection struct {
	Path    string
	Content string
}

// Outcome は1バッチ分のディスパッチ結果を格納する構造体です。
// Indexは元のバッチ番号（1始まり）で、完了順とは無関係にこの番号でレポートされます。
// 生成後は変更されません。
type Outcome struct {
	Index int
	Text  string // LLMからの応答本文（成功時のみ）
	Err   error
}
