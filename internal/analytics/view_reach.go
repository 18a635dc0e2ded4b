package analytics

import (
	"sort"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// uniqueViewerRatio 是估計不重複觀眾時假設的觀看折算比例
const uniqueViewerRatio = 0.7

// MonthValue 是一個月份與其聚合值
type MonthValue struct {
	Month string  `json:"month"` // YYYY-MM
	Value float64 `json:"value"`
}

// SpikeReport 是觀看尖峰偵測結果：尖峰 = 單日觀看數超過
// 平均值加兩倍標準差的日子
type SpikeReport struct {
	Threshold float64     `json:"threshold"`
	Mean      float64     `json:"mean"`
	Std       float64     `json:"std"`
	Spikes    []DateValue `json:"spikes"`
	TopSpikes []DateValue `json:"top_spikes"`
}

// ReachView 是觀看與觸及分析頁的渲染模型
type ReachView struct {
	ViewStats         Stats         `json:"view_stats"`
	TopVideos         []VideoStat   `json:"top_videos"`
	DailyViews        []DateValue   `json:"daily_views"`
	CumulativeViews   []DateValue   `json:"cumulative_views"`
	MonthlyViews      []MonthValue  `json:"monthly_views"`
	Spikes            *SpikeReport  `json:"spikes,omitempty"`
	ChannelTotalViews []ChannelStat `json:"channel_total_views"`
	ChannelAvgViews   []ChannelStat `json:"channel_avg_views"`
	TotalReach        float64       `json:"total_reach"`
	EstUniqueViewers  float64       `json:"est_unique_viewers"`
	PotentialReach    float64       `json:"potential_reach"`
	ReachRatePercent  float64       `json:"reach_rate_percent"`
}

// BuildReachView 建構觀看與觸及分析頁
func BuildReachView(ds *models.Dataset) *ReachView {
	view := &ReachView{}

	views := columnValues(ds, func(r *models.VideoRecord) float64 { return r.Views })
	view.ViewStats = Describe(views)

	for _, idx := range topNBy(ds, 10, func(r *models.VideoRecord) float64 { return r.Views }) {
		view.TopVideos = append(view.TopVideos, videoStat(&ds.Rows[idx]))
	}

	view.DailyViews = DailyViews(ds)
	var cum float64
	for _, dv := range view.DailyViews {
		cum += dv.Value
		view.CumulativeViews = append(view.CumulativeViews, DateValue{Date: dv.Date, Value: cum})
	}
	view.MonthlyViews = monthlyViews(ds)
	view.Spikes = DetectSpikes(view.DailyViews)

	if ds.HasColumn(models.ColChannel) {
		view.ChannelTotalViews = channelViews(ds, false, 10)
		view.ChannelAvgViews = channelViews(ds, true, 10)
	}

	view.TotalReach = view.ViewStats.Sum
	view.EstUniqueViewers = view.TotalReach * uniqueViewerRatio
	if ds.HasColumn(models.ColSubscribers) && ds.HasColumn(models.ColChannel) {
		subs := make(map[string]float64)
		for _, row := range ds.Rows {
			if _, seen := subs[row.Channel]; !seen {
				subs[row.Channel] = row.Subscribers
			}
		}
		for _, s := range subs {
			view.PotentialReach += s
		}
		if view.PotentialReach > 0 {
			view.ReachRatePercent = view.TotalReach / view.PotentialReach * 100
		}
	}
	return view
}

// DetectSpikes 在每日觀看序列中找出超過 mean+2σ 的尖峰日。
// 資料不足（少於兩天）時回傳 nil。
func DetectSpikes(daily []DateValue) *SpikeReport {
	if len(daily) < 2 {
		return nil
	}
	values := make([]float64, len(daily))
	for i, dv := range daily {
		values[i] = dv.Value
	}
	stats := Describe(values)
	report := &SpikeReport{
		Mean:      stats.Mean,
		Std:       stats.Std,
		Threshold: stats.Mean + 2*stats.Std,
	}
	for _, dv := range daily {
		if dv.Value > report.Threshold {
			report.Spikes = append(report.Spikes, dv)
		}
	}
	top := append([]DateValue(nil), report.Spikes...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Value > top[j].Value })
	if len(top) > 5 {
		top = top[:5]
	}
	report.TopSpikes = top
	return report
}

// monthlyViews 依上傳月份聚合觀看數
func monthlyViews(ds *models.Dataset) []MonthValue {
	if !ds.HasColumn(models.ColTanggal) {
		return nil
	}
	byMonth := make(map[string]float64)
	for _, row := range ds.Rows {
		if !row.TanggalUpload.Valid {
			continue
		}
		byMonth[row.TanggalUpload.Time.Format("2006-01")] += row.Views
	}
	out := make([]MonthValue, 0, len(byMonth))
	for m, v := range byMonth {
		out = append(out, MonthValue{Month: m, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// channelViews 依頻道聚合觀看數（總和或平均），遞減排序取前 n
func channelViews(ds *models.Dataset, average bool, n int) []ChannelStat {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for _, row := range ds.Rows {
		if _, seen := sums[row.Channel]; !seen {
			order = append(order, row.Channel)
		}
		sums[row.Channel] += row.Views
		counts[row.Channel]++
	}
	stats := make([]ChannelStat, 0, len(order))
	for _, ch := range order {
		v := sums[ch]
		if average {
			v /= float64(counts[ch])
		}
		stats = append(stats, ChannelStat{Channel: ch, Value: v})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Value > stats[j].Value })
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}
