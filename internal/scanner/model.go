package scanner

// DefaultBatchSize は、1バッチにまとめるファイル数のデフォルト値です。
const DefaultBatchSize = 3

// DefaultMaxConcurrency は、LLMへの同時リクエスト数のデフォルト上限です。
const DefaultMaxConcurrency = 2

// DefaultModelName は、スキャンに使用するデフォルトのAIモデル名です。
// 速度とコストを優先したflash系モデルを採用します。
const DefaultModelName = "gemini-2.5-flash"

// ReadErrorMarkerPrefix は、読み取りに失敗したファイルのセクションに埋め込む
// マーカーの先頭文字列です。マーカーにはパスとエラー内容が含まれ、バッチ自体は
// 失敗扱いにせずそのままLLMへ送信されます。
const ReadErrorMarkerPrefix = "[READ ERROR]"
