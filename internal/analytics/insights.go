package analytics

import (
	"fmt"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// GenerateInsights 從資料集自動產生重點洞察句（印尼文，面向儀表板使用者）。
// 每一句都依賴特定欄位，欄位缺少時該句被跳過。
func GenerateInsights(ds *models.Dataset) []string {
	var insights []string
	if ds == nil || ds.Len() == 0 {
		return insights
	}

	hasEngagement := ds.HasColumn(models.ColLikes) && ds.HasColumn(models.ColComments) && ds.HasColumn(models.ColViews)
	if hasEngagement {
		var total float64
		for _, row := range ds.Rows {
			total += row.Engagement
		}
		insights = append(insights, fmt.Sprintf("Total engagement mencapai %.0f interaksi (likes + comments)", total))
	}

	if ds.HasColumn(models.ColChannel) && ds.HasColumn(models.ColSubscribers) {
		// 每個頻道取第一次出現的訂閱數（原始資料同頻道各列相同）
		subsByChannel := make(map[string]float64)
		var order []string
		for _, row := range ds.Rows {
			if _, seen := subsByChannel[row.Channel]; !seen {
				subsByChannel[row.Channel] = row.Subscribers
				order = append(order, row.Channel)
			}
		}
		var topChannel string
		var topSubs float64
		for _, ch := range order {
			if topChannel == "" || subsByChannel[ch] > topSubs {
				topChannel = ch
				topSubs = subsByChannel[ch]
			}
		}
		if topChannel != "" {
			insights = append(insights, fmt.Sprintf("Channel dengan subscribers terbanyak: %s (%.0f subscribers)", topChannel, topSubs))
		}
	}

	if hasEngagement {
		var sum float64
		for _, row := range ds.Rows {
			sum += row.EngagementRate
		}
		insights = append(insights, fmt.Sprintf("Rata-rata engagement rate per video: %.2f%%", sum/float64(ds.Len())))
	}

	if ds.HasColumn(models.ColKategori) {
		counts := make(map[string]int)
		var order []string
		for _, row := range ds.Rows {
			if !row.Kategori.Valid {
				continue
			}
			if _, seen := counts[row.Kategori.String]; !seen {
				order = append(order, row.Kategori.String)
			}
			counts[row.Kategori.String]++
		}
		var top string
		for _, cat := range order {
			if top == "" || counts[cat] > counts[top] {
				top = cat
			}
		}
		if top != "" {
			insights = append(insights, fmt.Sprintf("Kategori terpopuler: %s", top))
		}
	}

	if latest, ok := LatestUpload(ds); ok {
		cutoff := latest.AddDate(0, 0, -7)
		recent := 0
		for _, row := range ds.Rows {
			if row.TanggalUpload.Valid && !row.TanggalUpload.Time.Before(cutoff) {
				recent++
			}
		}
		insights = append(insights, fmt.Sprintf("Upload 7 hari terakhir: %d video", recent))
	}

	return insights
}
