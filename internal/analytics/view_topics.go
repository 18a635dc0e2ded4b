package analytics

import (
	"sort"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
	"github.com/alrahmads/SocialSight-Analytics/internal/topics"
)

// TopicPerf 是單一主題的成效統計
type TopicPerf struct {
	Index      int         `json:"topic"`
	Keywords   []string    `json:"keywords"`
	VideoCount int         `json:"video_count"`
	TotalViews float64     `json:"total_views"`
	AvgViews   float64     `json:"avg_views"`
	TopVideos  []VideoStat `json:"top_videos"`
}

// TopicView 是主題分析頁的渲染模型
type TopicView struct {
	Degraded  bool                  `json:"degraded"`
	NTopics   int                   `json:"n_topics"`
	Summaries []models.TopicSummary `json:"summaries,omitempty"`
	Perf      []TopicPerf           `json:"perf,omitempty"`
}

// BuildTopicView 建構主題分析頁。模型未載入或資料列缺少主題
// 指派時標記為降級並僅回傳空殼。
func BuildTopicView(ds *models.Dataset, model *topics.Model) *TopicView {
	view := &TopicView{Degraded: true}
	if model == nil || !model.Available() {
		return view
	}
	view.Degraded = false
	view.NTopics = model.NTopics()
	view.Summaries = model.Summaries()

	byTopic := make(map[int][]int) // 主題編號 → 資料列索引
	for i := range ds.Rows {
		if !ds.Rows[i].Topic.Valid {
			continue
		}
		t := int(ds.Rows[i].Topic.Int64)
		byTopic[t] = append(byTopic[t], i)
	}

	for _, summary := range view.Summaries {
		indices, ok := byTopic[summary.Index]
		if !ok {
			continue
		}
		perf := TopicPerf{
			Index:      summary.Index,
			Keywords:   summary.Keywords,
			VideoCount: len(indices),
		}
		for _, idx := range indices {
			perf.TotalViews += ds.Rows[idx].Views
		}
		perf.AvgViews = perf.TotalViews / float64(len(indices))

		ranked := append([]int(nil), indices...)
		sort.SliceStable(ranked, func(a, b int) bool {
			return ds.Rows[ranked[a]].Views > ds.Rows[ranked[b]].Views
		})
		if len(ranked) > 5 {
			ranked = ranked[:5]
		}
		for _, idx := range ranked {
			perf.TopVideos = append(perf.TopVideos, videoStat(&ds.Rows[idx]))
		}
		view.Perf = append(view.Perf, perf)
	}
	return view
}
