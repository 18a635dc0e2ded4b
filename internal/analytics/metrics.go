package analytics

import (
	"database/sql"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
	"github.com/alrahmads/SocialSight-Analytics/internal/textproc"
)

// dateLayouts 是日期解析依序嘗試的格式
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
}

// ApplyDerivedMetrics 在資料集上就地補上衍生欄位。
// 原始欄位缺少時只跳過依賴它的衍生計算，不會讓整個載入失敗；
// 既有欄位不會被移除或重排。
func ApplyDerivedMetrics(ds *models.Dataset) {
	if ds == nil {
		return
	}

	hasEngagement := ds.HasColumn(models.ColLikes) && ds.HasColumn(models.ColComments) && ds.HasColumn(models.ColViews)
	hasDurasi := ds.HasColumn(models.ColDurasi)
	hasKomentar := ds.HasColumn(models.ColKomentar)

	for i := range ds.Rows {
		row := &ds.Rows[i]

		if hasDurasi && row.Durasi.Valid {
			row.DurationSeconds = DurationSeconds(row.Durasi.String)
		}

		// 留言欄位存在時，Comments 指標改以拆分後的留言數計算
		if hasKomentar {
			if row.KomentarLengkap.Valid {
				row.Comments = float64(len(textproc.SplitComments(row.KomentarLengkap.String)))
			} else {
				row.Comments = 0
			}
		}

		if hasEngagement {
			row.Engagement = row.Likes + row.Comments
			row.EngagementRate = safeRate(row.Engagement, row.Views)
			row.LikeRate = safeRate(row.Likes, row.Views)
			row.CommentRate = safeRate(row.Comments, row.Views)
			row.EngagementQuality = row.Likes / (row.Comments + 1)
			row.Quality = qualityBucket(row.EngagementQuality)
		}
	}

	if !hasEngagement {
		log.Println("警告：[Metrics] 缺少 Likes/Comments/Views 欄位，跳過互動指標衍生。")
	}
}

// safeRate 計算 num/denom*100，分母為零時回傳 0 而不是錯誤或無窮大
func safeRate(num, denom float64) float64 {
	if denom == 0 {
		return 0
	}
	return num / denom * 100
}

// qualityBucket 把互動品質值分桶：(0,10] Low、(10,50] Medium、
// (50,100] High、(100,∞) Very High；不在任何分段內（≤0）時不指派類別。
func qualityBucket(q float64) models.QualityCategory {
	switch {
	case q <= 0:
		return ""
	case q <= 10:
		return models.QualityLow
	case q <= 50:
		return models.QualityMedium
	case q <= 100:
		return models.QualityHigh
	default:
		return models.QualityVeryHigh
	}
}

// DurationSeconds 把 PT[nH][nM][nS] 形狀的時長代碼換算成總秒數。
// 三個分量都可以缺席；任何格式錯誤回傳 0 而不是讓該列失敗。
func DurationSeconds(token string) int64 {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, "PT")

	var hours, minutes, seconds int64
	if idx := strings.Index(token, "H"); idx >= 0 {
		v, err := strconv.ParseInt(token[:idx], 10, 64)
		if err != nil {
			return 0
		}
		hours = v
		token = token[idx+1:]
	}
	if idx := strings.Index(token, "M"); idx >= 0 {
		v, err := strconv.ParseInt(token[:idx], 10, 64)
		if err != nil {
			return 0
		}
		minutes = v
		token = token[idx+1:]
	}
	if idx := strings.Index(token, "S"); idx >= 0 {
		v, err := strconv.ParseInt(strings.TrimSuffix(token, "S"), 10, 64)
		if err != nil {
			return 0
		}
		seconds = v
	}
	total := hours*3600 + minutes*60 + seconds
	if total < 0 {
		return 0
	}
	return total
}

// ParseDate 把日期字串解析成時間戳；解析失敗回傳空值而不是錯誤
func ParseDate(token string) sql.NullTime {
	token = strings.TrimSpace(token)
	if token == "" {
		return sql.NullTime{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, token); err == nil {
			return sql.NullTime{Time: t, Valid: true}
		}
	}
	return sql.NullTime{}
}
