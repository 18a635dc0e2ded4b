package analytics

import (
	"time"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// weekdayOrder 是星期統計的固定輸出順序
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayCount 是某個星期幾的貼文數
type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// HourPerf 是某個小時的平均成效
type HourPerf struct {
	Hour              int     `json:"hour"`
	AvgViews          float64 `json:"avg_views"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

// ContentView 是內容分析頁的渲染模型
type ContentView struct {
	TotalPosts     int            `json:"total_posts"`
	AvgPostsPerDay float64        `json:"avg_posts_per_day"`
	UploadsByDay   []WeekdayCount `json:"uploads_by_day"`
	CategoryPerf   []CategoryPerf `json:"category_performance"`
	HourlyPerf     []HourPerf     `json:"hourly_performance"`
	BestDay        string         `json:"best_day"`
	BestHour       int            `json:"best_hour"`
	TopPosts       []VideoStat    `json:"top_posts"`
}

// BuildContentView 建構內容分析頁：發文頻率、分類成效、
// 最佳發文時段（互動率最高的星期與小時）與成效前十貼文。
func BuildContentView(ds *models.Dataset) *ContentView {
	view := &ContentView{TotalPosts: ds.Len()}

	hasDates := ds.HasColumn(models.ColTanggal)
	if hasDates {
		if earliest, ok := EarliestUpload(ds); ok {
			if latest, ok := LatestUpload(ds); ok {
				days := int(latest.Sub(earliest).Hours() / 24)
				if days > 0 {
					view.AvgPostsPerDay = float64(ds.Len()) / float64(days)
				}
			}
		}

		dayCounts := make(map[time.Weekday]int)
		dayRates := make(map[time.Weekday][]float64)
		hourViews := make(map[int][]float64)
		hourRates := make(map[int][]float64)
		for _, row := range ds.Rows {
			if !row.TanggalUpload.Valid {
				continue
			}
			wd := row.TanggalUpload.Time.Weekday()
			hour := row.TanggalUpload.Time.Hour()
			dayCounts[wd]++
			dayRates[wd] = append(dayRates[wd], row.EngagementRate)
			hourViews[hour] = append(hourViews[hour], row.Views)
			hourRates[hour] = append(hourRates[hour], row.EngagementRate)
		}

		for _, wd := range weekdayOrder {
			if n, ok := dayCounts[wd]; ok {
				view.UploadsByDay = append(view.UploadsByDay, WeekdayCount{Day: wd.String(), Count: n})
			}
		}

		bestDayRate := -1.0
		for _, wd := range weekdayOrder {
			rates, ok := dayRates[wd]
			if !ok {
				continue
			}
			if avg := Mean(rates); avg > bestDayRate {
				bestDayRate = avg
				view.BestDay = wd.String()
			}
		}

		bestHourRate := -1.0
		for hour := 0; hour < 24; hour++ {
			views, ok := hourViews[hour]
			if !ok {
				continue
			}
			avgRate := Mean(hourRates[hour])
			view.HourlyPerf = append(view.HourlyPerf, HourPerf{
				Hour:              hour,
				AvgViews:          Mean(views),
				AvgEngagementRate: avgRate,
			})
			if avgRate > bestHourRate {
				bestHourRate = avgRate
				view.BestHour = hour
			}
		}
	}

	if ds.HasColumn(models.ColKategori) {
		view.CategoryPerf = categoryAnalysis(ds)
	}

	for _, idx := range topNBy(ds, 10, func(r *models.VideoRecord) float64 { return r.Views }) {
		view.TopPosts = append(view.TopPosts, videoStat(&ds.Rows[idx]))
	}
	return view
}
