package batch

import "fmt"

// Split は、順序付きのパスリストを固定サイズのバッチ列に分割します。
// バッチiは paths[(i-1)*size : i*size] で、末尾のバッチのみsize未満になる場合があります。
// 並べ替え・重複排除・フィルタリングは一切行いません。
// sizeが1未満の場合は設定エラーとして即座に失敗します。
func Split(paths []string, size int) ([][]string, error) {
	if size < 1 {
		return nil, fmt.Errorf("バッチサイズには1以上の値を指定する必要があります (指定値: %d)", size)
	}

	if len(paths) == 0 {
		return nil, nil
	}

	batches := make([][]string, 0, (len(paths)+size-1)/size)
	for start := 0; start < len(paths); start += size {
		end := start + size
		if end > len(paths) {
			end = len(paths)
		}
		batches = append(batches, paths[start:end])
	}

	return batches, nil
}
