package textproc

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalizer 把文字中的非正式/俚語詞彙替換成詞典中的正式形。
// 比對不分大小寫、只在完整單詞邊界上進行，並保留被比對詞的大小寫樣式。
// 詞典可能有數千個條目，因此比對結構在建構時編譯一次，之後重複使用，
// 不會每次呼叫都重建一個巨大的交替式 regex。
type Normalizer struct {
	// 以候選鍵的第一個單詞（小寫）為索引；同一桶內長鍵優先，
	// 以取得「可用的最長比對」語意（例如 "blo on" 先於 "on"）。
	index map[string][]candidate
}

type candidate struct {
	words       []string // 鍵的組成單詞（小寫）
	replacement string
}

// NewNormalizer 以一份 informal→formal 詞典編譯一個 Normalizer。
// 詞典鍵必須已是小寫（lexicon 載入層保證這點）；鍵可以含空格（多詞俚語）。
func NewNormalizer(mappings map[string]string) *Normalizer {
	n := &Normalizer{index: make(map[string][]candidate, len(mappings))}
	for key, repl := range mappings {
		words := strings.Fields(key)
		if len(words) == 0 {
			continue
		}
		n.index[words[0]] = append(n.index[words[0]], candidate{words: words, replacement: repl})
	}
	for first := range n.index {
		bucket := n.index[first]
		sort.Slice(bucket, func(i, j int) bool {
			return len(bucket[i].words) > len(bucket[j].words)
		})
		n.index[first] = bucket
	}
	return n
}

// wordSpan 是文字中一個單詞的位元組範圍
type wordSpan struct {
	start, end int
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// scanWords 找出文字中所有單詞的位元組範圍
func scanWords(text string) []wordSpan {
	var spans []wordSpan
	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			spans = append(spans, wordSpan{start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, wordSpan{start: start, end: len(text)})
	}
	return spans
}

// Normalize 回傳替換後的文字。詞典中沒有的詞保持原樣。
func (n *Normalizer) Normalize(text string) string {
	if n == nil || len(n.index) == 0 || text == "" {
		return text
	}
	spans := scanWords(text)
	if len(spans) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for i := 0; i < len(spans); {
		word := text[spans[i].start:spans[i].end]
		bucket, ok := n.index[strings.ToLower(word)]
		if !ok {
			i++
			continue
		}
		matched := 0
		var repl string
		for _, cand := range bucket {
			if m, ok := n.matchAt(text, spans, i, cand); ok {
				matched = m
				repl = cand.replacement
				break
			}
		}
		if matched == 0 {
			i++
			continue
		}
		start := spans[i].start
		end := spans[i+matched-1].end
		sb.WriteString(text[last:start])
		sb.WriteString(applyCase(text[start:end], repl))
		last = end
		i += matched
	}
	if last == 0 {
		return text
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// matchAt 檢查 spans[i] 起是否能完整比對候選鍵；多詞鍵要求單詞之間
// 在原文中恰好以一個空格相連。回傳吃掉的單詞數。
func (n *Normalizer) matchAt(text string, spans []wordSpan, i int, cand candidate) (int, bool) {
	if i+len(cand.words) > len(spans) {
		return 0, false
	}
	for j, kw := range cand.words {
		sp := spans[i+j]
		if !strings.EqualFold(text[sp.start:sp.end], kw) {
			return 0, false
		}
		if j > 0 {
			prev := spans[i+j-1]
			if text[prev.end:sp.start] != " " {
				return 0, false
			}
		}
	}
	return len(cand.words), true
}

// applyCase 依被比對詞的大小寫樣式渲染替換詞：
// 全大寫 → 全大寫；僅首字母大寫 → 首字母大寫；其餘 → 使用詞典中儲存的形式。
func applyCase(matched, replacement string) string {
	if isAllUpper(matched) {
		return strings.ToUpper(replacement)
	}
	first, _ := utf8.DecodeRuneInString(matched)
	if unicode.IsUpper(first) {
		return capitalizeFirst(replacement)
	}
	return replacement
}

// isAllUpper 回報字串中所有字母是否皆為大寫（且至少有一個字母）
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return hasLetter
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[size:]
}
