package analytics

import (
	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// NumericSummary 是單一數值欄位的描述統計加總和
type NumericSummary struct {
	Column string `json:"column"`
	Stats  Stats  `json:"stats"`
}

// ExplorerRow 是 Data Explorer 輸出的單列資料，可序列化欄位
// 使用可空包裝以保留原始資料的缺值
type ExplorerRow struct {
	VideoID         string                `json:"video_id,omitempty"`
	Judul           string                `json:"judul"`
	Channel         string                `json:"channel"`
	Kategori        models.JsonNullString `json:"kategori"`
	Views           float64               `json:"views"`
	Likes           float64               `json:"likes"`
	Comments        float64               `json:"comments"`
	Subscribers     float64               `json:"subscribers"`
	TanggalUpload   models.JsonNullTime   `json:"tanggal_upload"`
	DurationSeconds int64                 `json:"duration_seconds"`
	Engagement      float64               `json:"engagement"`
	EngagementRate  float64               `json:"engagement_rate"`
	Quality         string                `json:"quality,omitempty"`
}

// ExplorerView 是 Data Explorer 檢視的渲染模型
type ExplorerView struct {
	TotalRows      int              `json:"total_rows"`
	FilteredRows   int              `json:"filtered_rows"`
	Channels       []string         `json:"channels"`
	Categories     []string         `json:"categories"`
	NumericSummary []NumericSummary `json:"numeric_summary"`
	CategoryPerf   []CategoryPerf   `json:"category_perf,omitempty"`
	Rows           []ExplorerRow    `json:"rows"`
}

// BuildExplorerView 套用篩選條件後建構 Data Explorer 檢視
func BuildExplorerView(ds *models.Dataset, filter ExplorerFilter) *ExplorerView {
	view := &ExplorerView{TotalRows: ds.Len()}
	view.Channels = distinctValues(ds, func(r *models.VideoRecord) string { return r.Channel })
	view.Categories = distinctValues(ds, func(r *models.VideoRecord) string {
		if !r.Kategori.Valid {
			return ""
		}
		return r.Kategori.String
	})

	filtered := applyFilter(ds, filter)
	view.FilteredRows = filtered.Len()

	numericColumns := []struct {
		name    string
		present bool
		value   func(*models.VideoRecord) float64
	}{
		{models.ColViews, ds.HasColumn(models.ColViews), func(r *models.VideoRecord) float64 { return r.Views }},
		{models.ColLikes, ds.HasColumn(models.ColLikes), func(r *models.VideoRecord) float64 { return r.Likes }},
		{models.ColComments, ds.HasColumn(models.ColComments), func(r *models.VideoRecord) float64 { return r.Comments }},
		{models.ColSubscribers, ds.HasColumn(models.ColSubscribers), func(r *models.VideoRecord) float64 { return r.Subscribers }},
	}
	for _, col := range numericColumns {
		if !col.present {
			continue
		}
		values := columnValues(filtered, col.value)
		view.NumericSummary = append(view.NumericSummary, NumericSummary{
			Column: col.name,
			Stats:  Describe(values),
		})
	}

	if ds.HasColumn(models.ColKategori) {
		view.CategoryPerf = categoryAnalysis(filtered)
	}

	view.Rows = make([]ExplorerRow, 0, filtered.Len())
	for i := range filtered.Rows {
		view.Rows = append(view.Rows, explorerRow(&filtered.Rows[i]))
	}
	return view
}

// applyFilter 回傳僅包含符合條件列的淺層資料集視圖
func applyFilter(ds *models.Dataset, filter ExplorerFilter) *models.Dataset {
	channelSet := toSet(filter.Channels)
	categorySet := toSet(filter.Categories)

	out := &models.Dataset{
		Generation: ds.Generation,
		SourceName: ds.SourceName,
		Columns:    ds.Columns,
	}
	for i := range ds.Rows {
		row := &ds.Rows[i]
		if len(channelSet) > 0 {
			if _, ok := channelSet[row.Channel]; !ok {
				continue
			}
		}
		if len(categorySet) > 0 {
			kategori := ""
			if row.Kategori.Valid {
				kategori = row.Kategori.String
			}
			if _, ok := categorySet[kategori]; !ok {
				continue
			}
		}
		if row.Views < filter.MinViews {
			continue
		}
		out.Rows = append(out.Rows, *row)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// distinctValues 依首次出現順序列出欄位的不重複非空值
func distinctValues(ds *models.Dataset, value func(*models.VideoRecord) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range ds.Rows {
		v := value(&ds.Rows[i])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func explorerRow(row *models.VideoRecord) ExplorerRow {
	return ExplorerRow{
		VideoID:         row.VideoID,
		Judul:           row.Judul,
		Channel:         row.Channel,
		Kategori:        models.JsonNullString{NullString: row.Kategori},
		Views:           row.Views,
		Likes:           row.Likes,
		Comments:        row.Comments,
		Subscribers:     row.Subscribers,
		TanggalUpload:   models.JsonNullTime{NullTime: row.TanggalUpload},
		DurationSeconds: row.DurationSeconds,
		Engagement:      row.Engagement,
		EngagementRate:  row.EngagementRate,
		Quality:         string(row.Quality),
	}
}
