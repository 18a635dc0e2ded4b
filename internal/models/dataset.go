package models

import (
	"database/sql"
)

// 正規化後的資料集欄位名稱。匯入層負責把上傳檔案的欄位對應到這組名稱，
// 之後的所有分析都只認這組常數。
const (
	ColVideoID     = "Video ID"
	ColJudul       = "Judul"
	ColChannel     = "Channel"
	ColKategori    = "Kategori"
	ColViews       = "Views"
	ColLikes       = "Likes"
	ColComments    = "Comments"
	ColSubscribers = "Subscribers"
	ColTanggal     = "Tanggal Upload"
	ColDurasi      = "Durasi"
	ColKomentar    = "Komentar Lengkap"
	ColTags        = "Total Video Cha Tags"
)

// QualityCategory 定義互動品質分桶（Likes / (Comments+1) 的分段）
type QualityCategory string

const (
	QualityLow      QualityCategory = "Low"
	QualityMedium   QualityCategory = "Medium"
	QualityHigh     QualityCategory = "High"
	QualityVeryHigh QualityCategory = "Very High"
)

// VideoRecord 對應資料集中的一列（一支影片/貼文）。
// 原始欄位由匯入層填入；Engagement 之後的衍生欄位由 analytics 引擎補上。
type VideoRecord struct {
	VideoID         string
	Judul           string
	Channel         string
	Kategori        sql.NullString
	Views           float64
	Likes           float64
	Comments        float64
	Subscribers     float64
	TanggalUpload   sql.NullTime
	Durasi          sql.NullString
	KomentarLengkap sql.NullString
	Tags            sql.NullString

	// 衍生欄位
	DurationSeconds   int64
	Engagement        float64
	EngagementRate    float64
	LikeRate          float64
	CommentRate       float64
	EngagementQuality float64
	Quality           QualityCategory

	// 主題模型指派結果（模型可用且列有文字時才有效）
	Topic           sql.NullInt64
	TopicConfidence float64
}

// Dataset 代表目前載入的整份資料集。
// Generation 是單調遞增的世代標記：每載入一個新檔案就整份替換並遞增，
// 所有衍生快取都記錄自己是針對哪個世代計算的。
type Dataset struct {
	Generation uint64
	SourceName string
	Rows       []VideoRecord
	Columns    map[string]bool
}

// HasColumn 回報原始資料是否帶有指定欄位。缺少欄位不是錯誤，
// 依賴該欄位的衍生計算與檢視會被跳過。
func (d *Dataset) HasColumn(name string) bool {
	if d == nil || d.Columns == nil {
		return false
	}
	return d.Columns[name]
}

// Len 回傳列數；nil 資料集視為空。
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}
