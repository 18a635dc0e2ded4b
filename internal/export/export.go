// Package export 把擴充後的資料集與情緒分析結果寫成 CSV 或 XLSX。
// 時間戳一律以不含時區的 "2006-01-02 15:04:05" 格式輸出。
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

const (
	datasetSheetName   = "Dataset"
	sentimentSheetName = "Sentiment"
	timestampLayout    = "2006-01-02 15:04:05"
)

// rawColumnOrder 決定原始欄位在匯出檔中的順序；僅輸出資料集實際帶有的欄位
var rawColumnOrder = []string{
	models.ColVideoID,
	models.ColJudul,
	models.ColChannel,
	models.ColKategori,
	models.ColViews,
	models.ColLikes,
	models.ColComments,
	models.ColSubscribers,
	models.ColTanggal,
	models.ColDurasi,
	models.ColKomentar,
	models.ColTags,
}

// derivedColumns 是衍生欄位的匯出標頭，固定全部輸出
var derivedColumns = []string{
	"Duration_Seconds",
	"Engagement",
	"Engagement_Rate",
	"Like_Rate",
	"Comment_Rate",
	"Engagement_Quality",
	"Quality",
	"Topic",
	"Topic_Confidence",
}

// DatasetCSV 把擴充後的資料集寫成 UTF-8 CSV
func DatasetCSV(w io.Writer, ds *models.Dataset) error {
	writer := csv.NewWriter(w)
	header, rows := datasetTable(ds)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("寫入資料集標頭失敗: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("寫入資料列失敗: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// SentimentCSV 把情緒分析結果表寫成 UTF-8 CSV
func SentimentCSV(w io.Writer, rs *models.SentimentResultSet) error {
	writer := csv.NewWriter(w)
	header, rows := sentimentTable(rs)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("寫入情緒結果標頭失敗: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("寫入情緒結果列失敗: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX 把資料集與情緒結果各寫成一個工作表。情緒結果為 nil 時
// 只輸出資料集工作表。
func WriteXLSX(w io.Writer, ds *models.Dataset, rs *models.SentimentResultSet) error {
	f := excelize.NewFile()
	defer f.Close()

	header, rows := datasetTable(ds)
	if err := writeSheet(f, datasetSheetName, header, rows); err != nil {
		return err
	}
	if rs != nil {
		header, rows = sentimentTable(rs)
		if err := writeSheet(f, sentimentSheetName, header, rows); err != nil {
			return err
		}
	}
	// excelize 的預設工作表用資料集工作表取代
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("移除預設工作表失敗: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("輸出 XLSX 失敗: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, header []string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("建立工作表 %s 失敗: %w", name, err)
	}
	if err := writeRow(f, name, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(f, name, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("計算儲存格座標失敗: %w", err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("寫入工作表 %s 第 %d 列失敗: %w", sheet, rowNum, err)
	}
	return nil
}

// datasetTable 把資料集攤平成標頭與字串列
func datasetTable(ds *models.Dataset) ([]string, [][]string) {
	var rawCols []string
	for _, col := range rawColumnOrder {
		if ds.HasColumn(col) {
			rawCols = append(rawCols, col)
		}
	}
	header := append(append([]string(nil), rawCols...), derivedColumns...)

	rows := make([][]string, 0, ds.Len())
	for i := range ds.Rows {
		row := &ds.Rows[i]
		record := make([]string, 0, len(header))
		for _, col := range rawCols {
			record = append(record, rawValue(row, col))
		}
		record = append(record,
			strconv.FormatInt(row.DurationSeconds, 10),
			formatFloat(row.Engagement),
			formatFloat(row.EngagementRate),
			formatFloat(row.LikeRate),
			formatFloat(row.CommentRate),
			formatFloat(row.EngagementQuality),
			string(row.Quality),
			topicValue(row),
			formatFloat(row.TopicConfidence),
		)
		rows = append(rows, record)
	}
	return header, rows
}

func sentimentTable(rs *models.SentimentResultSet) ([]string, [][]string) {
	header := []string{"video_id", "tanggal", "comment_raw", "comment_normalized", "sentiment"}
	if rs == nil {
		return header, nil
	}
	rows := make([][]string, 0, len(rs.Comments))
	for i := range rs.Comments {
		c := &rs.Comments[i]
		ts := ""
		if c.SourceTimestamp.Valid {
			ts = c.SourceTimestamp.Time.Format(timestampLayout)
		}
		rows = append(rows, []string{
			c.SourceRowID,
			ts,
			c.RawText,
			c.NormalizedText,
			string(c.Sentiment),
		})
	}
	return header, rows
}

func rawValue(row *models.VideoRecord, col string) string {
	switch col {
	case models.ColVideoID:
		return row.VideoID
	case models.ColJudul:
		return row.Judul
	case models.ColChannel:
		return row.Channel
	case models.ColKategori:
		if row.Kategori.Valid {
			return row.Kategori.String
		}
	case models.ColViews:
		return formatFloat(row.Views)
	case models.ColLikes:
		return formatFloat(row.Likes)
	case models.ColComments:
		return formatFloat(row.Comments)
	case models.ColSubscribers:
		return formatFloat(row.Subscribers)
	case models.ColTanggal:
		if row.TanggalUpload.Valid {
			return row.TanggalUpload.Time.Format(timestampLayout)
		}
	case models.ColDurasi:
		if row.Durasi.Valid {
			return row.Durasi.String
		}
	case models.ColKomentar:
		if row.KomentarLengkap.Valid {
			return row.KomentarLengkap.String
		}
	case models.ColTags:
		if row.Tags.Valid {
			return row.Tags.String
		}
	}
	return ""
}

func topicValue(row *models.VideoRecord) string {
	if !row.Topic.Valid {
		return ""
	}
	return strconv.FormatInt(row.Topic.Int64, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
