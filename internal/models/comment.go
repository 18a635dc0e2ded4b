package models

import (
	"database/sql"
)

// SentimentLabel 是分類器輸出的封閉集合
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// SentimentLabels 依固定顯示順序列出所有標籤
var SentimentLabels = []SentimentLabel{SentimentPositive, SentimentNegative, SentimentNeutral}

// CommentRecord 是情緒流程的輸出：每一則被拆出的留言一筆，
// 建立後不再修改，隨資料集世代整批汰換。
type CommentRecord struct {
	SourceRowID     string         `json:"video_id"`
	SourceTimestamp sql.NullTime   `json:"-"`
	RawText         string         `json:"comment_raw"`
	NormalizedText  string         `json:"comment_normalized"`
	Sentiment       SentimentLabel `json:"sentiment"`
}

// SentimentResultSet 是一次完整情緒流程的結果，綁定產生它的資料集世代。
// Degraded 表示分類模型不可用、所有標籤都退化為 Neutral。
type SentimentResultSet struct {
	Generation uint64
	Degraded   bool
	Comments   []CommentRecord
}

// WordCount 是一個詞與其出現次數
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// DailySentimentCount 是某一天、某個標籤的留言數
type DailySentimentCount struct {
	Date      string         `json:"date"` // YYYY-MM-DD
	Sentiment SentimentLabel `json:"sentiment"`
	Count     int            `json:"count"`
}
