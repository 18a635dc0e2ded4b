package models

// TopicAssignment 是主題模型對單一文件的指派結果。
// Index 為 0-based 主題編號，Confidence 是啟動向量中的最大值。
type TopicAssignment struct {
	Index      int     `json:"topic"`
	Confidence float64 `json:"topic_confidence"`
}

// TopicSummary 描述一個主題：其編號與權重最高的代表詞
type TopicSummary struct {
	Index    int      `json:"topic"`
	Keywords []string `json:"keywords"`
}
