package textproc

import (
	"strings"
)

// commentSeparator 是原始留言欄位中多則留言之間的固定分隔序列（空格-豎線-豎線-空格）
const commentSeparator = " || "

// SplitComments 把單一留言欄位拆成個別留言。
// 分隔符號是字面上的 " || "；每段前後空白會被修掉，修掉後為空的段落被捨棄。
// 空字串輸入產生空切片而不是錯誤。
func SplitComments(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, commentSeparator)
	comments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		comments = append(comments, p)
	}
	return comments
}
