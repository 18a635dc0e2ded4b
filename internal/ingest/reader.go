package ingest

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/alrahmads/SocialSight-Analytics/internal/analytics"
	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// headerAliases 把上傳檔案常見的欄位名稱變體對應到正規化欄位名。
// 比對時先去除前後空白，再做不分大小寫的比對。
var headerAliases = map[string]string{
	"video id":             models.ColVideoID,
	"video_id":             models.ColVideoID,
	"judul":                models.ColJudul,
	"title":                models.ColJudul,
	"channel":              models.ColChannel,
	"kategori":             models.ColKategori,
	"category":             models.ColKategori,
	"views":                models.ColViews,
	"likes":                models.ColLikes,
	"comments":             models.ColComments,
	"subscribers":          models.ColSubscribers,
	"tanggal upload":       models.ColTanggal,
	"tanggal_upload":       models.ColTanggal,
	"durasi":               models.ColDurasi,
	"duration":             models.ColDurasi,
	"komentar lengkap":     models.ColKomentar,
	"komentar_lengkap":     models.ColKomentar,
	"total video cha tags": models.ColTags,
	"tags":                 models.ColTags,
}

// LoadFile 依副檔名載入 CSV 或 XLSX 檔案成資料集
func LoadFile(path string) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("無法開啟資料檔 %s: %w", path, err)
	}
	defer f.Close()

	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f, name)
	case ".xlsx":
		return ReadXLSX(f, name)
	}
	return nil, fmt.Errorf("不支援的資料檔格式: %s", name)
}

// ReadCSV 讀取 CSV 內容成資料集。編碼依序嘗試 UTF-8、latin-1、cp1252；
// 欄位數不符的資料列會被跳過而不是讓整次載入失敗。
func ReadCSV(r io.Reader, sourceName string) (*models.Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("讀取 CSV 內容失敗: %w", err)
	}
	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("讀取 CSV 標頭失敗: %w", err)
	}
	columns := mapHeader(header)
	if len(columns) == 0 {
		return nil, fmt.Errorf("CSV 檔 %s 沒有任何可辨識的欄位", sourceName)
	}

	ds := newDataset(sourceName, columns)
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(record) != len(header) {
			skipped++
			continue
		}
		row := models.VideoRecord{}
		for i, col := range columns {
			if col == "" {
				continue
			}
			setField(&row, col, record[i])
		}
		ds.Rows = append(ds.Rows, row)
	}
	if skipped > 0 {
		log.Printf("警告：CSV 檔 %s 有 %d 列格式不符已跳過", sourceName, skipped)
	}
	return ds, nil
}

// decodeText 依序用 UTF-8、latin-1、cp1252 解碼原始位元組
func decodeText(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, err := cm.NewDecoder().Bytes(raw)
		if err == nil {
			log.Printf("資訊：內容非 UTF-8，改用 %s 解碼", cm)
			return string(decoded), nil
		}
	}
	return "", fmt.Errorf("無法解碼資料檔內容")
}

// mapHeader 把標頭列逐欄對應到正規化欄位名；認不得的欄位留空跳過
func mapHeader(header []string) []string {
	columns := make([]string, len(header))
	any := false
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if col, ok := headerAliases[key]; ok {
			columns[i] = col
			any = true
		}
	}
	if !any {
		return nil
	}
	return columns
}

func newDataset(sourceName string, columns []string) *models.Dataset {
	ds := &models.Dataset{
		SourceName: sourceName,
		Columns:    make(map[string]bool),
	}
	for _, col := range columns {
		if col != "" {
			ds.Columns[col] = true
		}
	}
	return ds
}

// setField 依正規化欄位名把原始字串寫入資料列。
// 數值欄位解析失敗一律視為 0，與缺值同等對待。
func setField(row *models.VideoRecord, col, value string) {
	value = strings.TrimSpace(value)
	switch col {
	case models.ColVideoID:
		row.VideoID = value
	case models.ColJudul:
		row.Judul = value
	case models.ColChannel:
		row.Channel = value
	case models.ColKategori:
		row.Kategori = nullString(value)
	case models.ColViews:
		row.Views = parseNumber(value)
	case models.ColLikes:
		row.Likes = parseNumber(value)
	case models.ColComments:
		row.Comments = parseNumber(value)
	case models.ColSubscribers:
		row.Subscribers = parseNumber(value)
	case models.ColTanggal:
		row.TanggalUpload = analytics.ParseDate(value)
	case models.ColDurasi:
		row.Durasi = nullString(value)
	case models.ColKomentar:
		row.KomentarLengkap = nullString(value)
	case models.ColTags:
		row.Tags = nullString(value)
	}
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

// parseNumber 解析數值欄位，容忍千分位逗號；解析失敗回 0
func parseNumber(value string) float64 {
	if value == "" {
		return 0
	}
	value = strings.ReplaceAll(value, ",", "")
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return n
}
