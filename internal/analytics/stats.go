package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// DateValue 是一個日曆日與其聚合值
type DateValue struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// Stats 是一組數值的描述統計
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
	Sum    float64 `json:"sum"`
}

// Describe 計算描述統計（標準差為樣本標準差）
func Describe(values []float64) Stats {
	s := Stats{Count: len(values)}
	if len(values) == 0 {
		return s
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	for _, v := range sorted {
		s.Sum += v
	}
	s.Mean = s.Sum / float64(len(sorted))
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	if len(sorted) > 1 {
		var ss float64
		for _, v := range sorted {
			d := v - s.Mean
			ss += d * d
		}
		s.Std = math.Sqrt(ss / float64(len(sorted)-1))
	}
	return s
}

// quantile 以線性內插取分位數；輸入必須已排序且非空
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Mean 計算平均值，空切片回傳 0
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Sum 計算總和
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// DailyViews 依上傳日聚合觀看數，依日期遞增排序；沒有時間戳的列不計入
func DailyViews(ds *models.Dataset) []DateValue {
	if ds == nil || !ds.HasColumn(models.ColTanggal) {
		return nil
	}
	byDate := make(map[string]float64)
	for _, row := range ds.Rows {
		if !row.TanggalUpload.Valid {
			continue
		}
		byDate[row.TanggalUpload.Time.Format("2006-01-02")] += row.Views
	}
	out := make([]DateValue, 0, len(byDate))
	for d, v := range byDate {
		out = append(out, DateValue{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// LatestUpload 回傳資料集中最新的上傳時間
func LatestUpload(ds *models.Dataset) (time.Time, bool) {
	var latest time.Time
	found := false
	if ds == nil {
		return latest, false
	}
	for _, row := range ds.Rows {
		if row.TanggalUpload.Valid && (!found || row.TanggalUpload.Time.After(latest)) {
			latest = row.TanggalUpload.Time
			found = true
		}
	}
	return latest, found
}

// EarliestUpload 回傳資料集中最早的上傳時間
func EarliestUpload(ds *models.Dataset) (time.Time, bool) {
	var earliest time.Time
	found := false
	if ds == nil {
		return earliest, false
	}
	for _, row := range ds.Rows {
		if row.TanggalUpload.Valid && (!found || row.TanggalUpload.Time.Before(earliest)) {
			earliest = row.TanggalUpload.Time
			found = true
		}
	}
	return earliest, found
}

// columnValues 取出一個數值欄位的所有值
func columnValues(ds *models.Dataset, get func(*models.VideoRecord) float64) []float64 {
	values := make([]float64, 0, ds.Len())
	for i := range ds.Rows {
		values = append(values, get(&ds.Rows[i]))
	}
	return values
}

// topNBy 回傳依鍵值遞減排序的前 n 列索引（穩定，同值依原始順序）
func topNBy(ds *models.Dataset, n int, key func(*models.VideoRecord) float64) []int {
	idxs := make([]int, ds.Len())
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return key(&ds.Rows[idxs[a]]) > key(&ds.Rows[idxs[b]])
	})
	if len(idxs) > n {
		idxs = idxs[:n]
	}
	return idxs
}
