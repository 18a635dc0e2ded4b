package analytics

import (
	"sort"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
	"github.com/alrahmads/SocialSight-Analytics/internal/sentiment"
)

// QualityCount 是單一互動品質分層的影片數
type QualityCount struct {
	Quality models.QualityCategory `json:"quality"`
	Count   int                    `json:"count"`
}

// SentimentView 是留言情緒分析頁的渲染模型
type SentimentView struct {
	TotalComments      float64                       `json:"total_comments"`
	AvgComments        float64                       `json:"avg_comments"`
	CommentRatePercent float64                       `json:"comment_rate_percent"`
	MostCommented      []VideoStat                   `json:"most_commented"`
	CommentTrend       []DateValue                   `json:"comment_trend"`
	Degraded           bool                          `json:"degraded"`
	LabelCounts        map[models.SentimentLabel]int `json:"label_counts,omitempty"`
	TopWords           []models.WordCount            `json:"top_words,omitempty"`
	DailySentiment     []models.DailySentimentCount  `json:"daily_sentiment,omitempty"`
	QualityCounts      []QualityCount                `json:"quality_counts,omitempty"`
}

// BuildSentimentView 建構留言情緒分析頁。sentiment 為 nil 時
// 僅輸出留言量指標，情緒區塊標記為降級。
func BuildSentimentView(ds *models.Dataset, rs *models.SentimentResultSet, stopwords map[string]struct{}) *SentimentView {
	view := &SentimentView{Degraded: true}

	totalComments := Sum(columnValues(ds, func(r *models.VideoRecord) float64 { return r.Comments }))
	view.TotalComments = totalComments
	if ds.Len() > 0 {
		view.AvgComments = totalComments / float64(ds.Len())
	}
	totalViews := Sum(columnValues(ds, func(r *models.VideoRecord) float64 { return r.Views }))
	if totalViews > 0 {
		view.CommentRatePercent = totalComments / totalViews * 100
	}

	for _, idx := range topNBy(ds, 10, func(r *models.VideoRecord) float64 { return r.Comments }) {
		view.MostCommented = append(view.MostCommented, videoStat(&ds.Rows[idx]))
	}
	view.CommentTrend = commentTrend(ds)

	if rs != nil {
		view.Degraded = rs.Degraded
		view.LabelCounts = sentiment.LabelCounts(rs)
		view.TopWords = sentiment.TopWords(rs, stopwords)
		view.DailySentiment = sentiment.DailyCounts(rs)
	}

	if ds.HasColumn(models.ColViews) {
		view.QualityCounts = qualityCounts(ds)
	}
	return view
}

// commentTrend 依上傳日期聚合留言數
func commentTrend(ds *models.Dataset) []DateValue {
	if !ds.HasColumn(models.ColTanggal) {
		return nil
	}
	byDate := make(map[string]float64)
	for _, row := range ds.Rows {
		if !row.TanggalUpload.Valid {
			continue
		}
		byDate[row.TanggalUpload.Time.Format("2006-01-02")] += row.Comments
	}
	out := make([]DateValue, 0, len(byDate))
	for d, v := range byDate {
		out = append(out, DateValue{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// qualityCounts 統計各互動品質分層的影片數，依固定分層順序輸出；
// 未分層（Quality 為空）的影片不計入
func qualityCounts(ds *models.Dataset) []QualityCount {
	counts := make(map[models.QualityCategory]int)
	for _, row := range ds.Rows {
		if row.Quality == "" {
			continue
		}
		counts[row.Quality]++
	}
	order := []models.QualityCategory{
		models.QualityLow,
		models.QualityMedium,
		models.QualityHigh,
		models.QualityVeryHigh,
	}
	out := make([]QualityCount, 0, len(order))
	for _, q := range order {
		if n, ok := counts[q]; ok {
			out = append(out, QualityCount{Quality: q, Count: n})
		}
	}
	return out
}
