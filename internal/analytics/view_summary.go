package analytics

import (
	"sort"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// ChannelStat 是單一頻道的聚合統計
type ChannelStat struct {
	Channel string  `json:"channel"`
	Value   float64 `json:"value"`
}

// CategoryPerf 是單一分類的成效統計
type CategoryPerf struct {
	Kategori          string  `json:"kategori"`
	TotalViews        float64 `json:"total_views"`
	AvgViews          float64 `json:"avg_views"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	VideoCount        int     `json:"video_count"`
	TotalEngagement   float64 `json:"total_engagement"`
}

// ExecutiveSummaryView 是總覽頁的渲染模型
type ExecutiveSummaryView struct {
	TotalVideos       int            `json:"total_videos"`
	TotalViews        float64        `json:"total_views"`
	TotalLikes        float64        `json:"total_likes"`
	TotalComments     float64        `json:"total_comments"`
	AvgEngagementRate float64        `json:"avg_engagement_rate"`
	TopChannels       []ChannelStat  `json:"top_channels"`
	CategoryAnalysis  []CategoryPerf `json:"category_analysis"`
	UploadTrend       []DateValue    `json:"upload_trend"`
	Insights          []string       `json:"insights"`
}

// BuildExecutiveSummary 建構總覽頁：關鍵指標、訂閱數前十頻道、
// 分類成效表、近 30 天上傳趨勢與自動洞察。
func BuildExecutiveSummary(ds *models.Dataset) *ExecutiveSummaryView {
	view := &ExecutiveSummaryView{TotalVideos: ds.Len()}

	if ds.HasColumn(models.ColViews) {
		view.TotalViews = Sum(columnValues(ds, func(r *models.VideoRecord) float64 { return r.Views }))
	}
	if ds.HasColumn(models.ColLikes) {
		view.TotalLikes = Sum(columnValues(ds, func(r *models.VideoRecord) float64 { return r.Likes }))
	}
	if ds.HasColumn(models.ColComments) {
		view.TotalComments = Sum(columnValues(ds, func(r *models.VideoRecord) float64 { return r.Comments }))
	}
	view.AvgEngagementRate = Mean(columnValues(ds, func(r *models.VideoRecord) float64 { return r.EngagementRate }))

	if ds.HasColumn(models.ColChannel) && ds.HasColumn(models.ColSubscribers) {
		view.TopChannels = topChannelsBySubscribers(ds, 10)
	}
	if ds.HasColumn(models.ColKategori) {
		view.CategoryAnalysis = categoryAnalysis(ds)
	}
	if latest, ok := LatestUpload(ds); ok {
		cutoff := latest.AddDate(0, 0, -30).Format("2006-01-02")
		daily := uploadCounts(ds)
		for _, dv := range daily {
			if dv.Date >= cutoff {
				view.UploadTrend = append(view.UploadTrend, dv)
			}
		}
	}
	view.Insights = GenerateInsights(ds)
	return view
}

// topChannelsBySubscribers 每個頻道取第一次出現的訂閱數，遞減排序取前 n
func topChannelsBySubscribers(ds *models.Dataset, n int) []ChannelStat {
	subs := make(map[string]float64)
	var order []string
	for _, row := range ds.Rows {
		if _, seen := subs[row.Channel]; !seen {
			subs[row.Channel] = row.Subscribers
			order = append(order, row.Channel)
		}
	}
	stats := make([]ChannelStat, 0, len(order))
	for _, ch := range order {
		stats = append(stats, ChannelStat{Channel: ch, Value: subs[ch]})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Value > stats[j].Value })
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// categoryAnalysis 依分類聚合成效，依總觀看數遞減排序
func categoryAnalysis(ds *models.Dataset) []CategoryPerf {
	type acc struct {
		views, engRate, engagement float64
		count                      int
	}
	byCat := make(map[string]*acc)
	var order []string
	for _, row := range ds.Rows {
		if !row.Kategori.Valid {
			continue
		}
		a, ok := byCat[row.Kategori.String]
		if !ok {
			a = &acc{}
			byCat[row.Kategori.String] = a
			order = append(order, row.Kategori.String)
		}
		a.views += row.Views
		a.engRate += row.EngagementRate
		a.engagement += row.Engagement
		a.count++
	}
	perfs := make([]CategoryPerf, 0, len(order))
	for _, cat := range order {
		a := byCat[cat]
		perfs = append(perfs, CategoryPerf{
			Kategori:          cat,
			TotalViews:        a.views,
			AvgViews:          a.views / float64(a.count),
			AvgEngagementRate: a.engRate / float64(a.count),
			VideoCount:        a.count,
			TotalEngagement:   a.engagement,
		})
	}
	sort.SliceStable(perfs, func(i, j int) bool { return perfs[i].TotalViews > perfs[j].TotalViews })
	return perfs
}

// uploadCounts 依上傳日統計影片數
func uploadCounts(ds *models.Dataset) []DateValue {
	byDate := make(map[string]float64)
	for _, row := range ds.Rows {
		if !row.TanggalUpload.Valid {
			continue
		}
		byDate[row.TanggalUpload.Time.Format("2006-01-02")]++
	}
	out := make([]DateValue, 0, len(byDate))
	for d, v := range byDate {
		out = append(out, DateValue{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
