package analytics

import (
	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// EngagementView 是互動分析頁的渲染模型
type EngagementView struct {
	TotalEngagement     float64         `json:"total_engagement"`
	AvgEngagement       float64         `json:"avg_engagement"`
	AvgEngagementRate   float64         `json:"avg_engagement_rate"`
	AvgEngagementPerDay float64         `json:"avg_engagement_per_day"`
	TotalLikes          float64         `json:"total_likes"`
	TotalComments       float64         `json:"total_comments"`
	TopVideos           []VideoStat     `json:"top_videos"`
	LikeRateStats       Stats           `json:"like_rate_stats"`
	CommentRateStats    Stats           `json:"comment_rate_stats"`
	DurationVsRate      []DurationPoint `json:"duration_vs_rate,omitempty"`
}

// DurationPoint 是時長（分鐘）對互動率的散點
type DurationPoint struct {
	Judul           string  `json:"judul"`
	DurationMinutes float64 `json:"duration_minutes"`
	EngagementRate  float64 `json:"engagement_rate"`
}

// BuildEngagementView 建構互動分析頁：互動總量與平均、
// 互動前十影片、讚/留言率分佈，以及時長對互動率的對應。
func BuildEngagementView(ds *models.Dataset) *EngagementView {
	view := &EngagementView{}

	engagements := columnValues(ds, func(r *models.VideoRecord) float64 { return r.Engagement })
	view.TotalEngagement = Sum(engagements)
	view.AvgEngagement = Mean(engagements)
	view.AvgEngagementRate = Mean(columnValues(ds, func(r *models.VideoRecord) float64 { return r.EngagementRate }))
	view.TotalLikes = Sum(columnValues(ds, func(r *models.VideoRecord) float64 { return r.Likes }))
	view.TotalComments = Sum(columnValues(ds, func(r *models.VideoRecord) float64 { return r.Comments }))

	if earliest, ok := EarliestUpload(ds); ok {
		if latest, ok := LatestUpload(ds); ok {
			days := int(latest.Sub(earliest).Hours() / 24)
			if days > 0 {
				view.AvgEngagementPerDay = view.TotalEngagement / float64(days)
			}
		}
	}

	for _, idx := range topNBy(ds, 10, func(r *models.VideoRecord) float64 { return r.Engagement }) {
		view.TopVideos = append(view.TopVideos, videoStat(&ds.Rows[idx]))
	}

	view.LikeRateStats = Describe(columnValues(ds, func(r *models.VideoRecord) float64 { return r.LikeRate }))
	view.CommentRateStats = Describe(columnValues(ds, func(r *models.VideoRecord) float64 { return r.CommentRate }))

	if ds.HasColumn(models.ColDurasi) {
		for i := range ds.Rows {
			row := &ds.Rows[i]
			view.DurationVsRate = append(view.DurationVsRate, DurationPoint{
				Judul:           row.Judul,
				DurationMinutes: float64(row.DurationSeconds) / 60,
				EngagementRate:  row.EngagementRate,
			})
		}
	}
	return view
}
