package textproc

import (
	"strings"
)

// Tokenize 把文字拆成小寫單詞序列（單詞：字母、數字、底線的連續段），
// 與正規化器使用同一套單詞邊界定義。
func Tokenize(text string) []string {
	spans := scanWords(text)
	if len(spans) == 0 {
		return nil
	}
	words := make([]string, 0, len(spans))
	for _, sp := range spans {
		words = append(words, strings.ToLower(text[sp.start:sp.end]))
	}
	return words
}
