package export

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

func exportDataset() *models.Dataset {
	loc := time.FixedZone("WIB", 7*3600)
	return &models.Dataset{
		Generation: 1,
		SourceName: "fixture.csv",
		Columns: map[string]bool{
			models.ColJudul:   true,
			models.ColViews:   true,
			models.ColTanggal: true,
		},
		Rows: []models.VideoRecord{
			{
				Judul: "Video A", Views: 1000,
				TanggalUpload:   sql.NullTime{Time: time.Date(2024, 5, 1, 10, 30, 0, 0, loc), Valid: true},
				DurationSeconds: 130, Engagement: 110, EngagementRate: 11,
				Quality: models.QualityLow,
				Topic:   sql.NullInt64{Int64: 2, Valid: true},
			},
			{Judul: "Video B", Views: 0},
		},
	}
}

func TestDatasetCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := DatasetCSV(&buf, exportDataset()); err != nil {
		t.Fatalf("DatasetCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2 rows", len(records))
	}

	header := records[0]
	// 僅出現的原始欄位 + 全部衍生欄位
	wantHead := []string{models.ColJudul, models.ColViews, models.ColTanggal}
	for i, col := range wantHead {
		if header[i] != col {
			t.Errorf("header[%d] = %q, want %q", i, header[i], col)
		}
	}
	if header[len(wantHead)] != "Duration_Seconds" {
		t.Errorf("first derived column = %q, want Duration_Seconds", header[len(wantHead)])
	}

	first := records[1]
	// 時間戳不含時區
	if first[2] != "2024-05-01 10:30:00" {
		t.Errorf("timestamp = %q, want timezone-free layout", first[2])
	}
	if strings.ContainsAny(first[2], "+Z") {
		t.Errorf("timestamp must not carry a zone: %q", first[2])
	}

	second := records[2]
	if second[2] != "" {
		t.Errorf("missing date should export empty, got %q", second[2])
	}
}

func TestSentimentCSV(t *testing.T) {
	rs := &models.SentimentResultSet{
		Generation: 1,
		Comments: []models.CommentRecord{
			{
				SourceRowID:     "vid-1",
				SourceTimestamp: sql.NullTime{Time: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), Valid: true},
				RawText:         "gak bagus",
				NormalizedText:  "tidak bagus",
				Sentiment:       models.SentimentNegative,
			},
			{SourceRowID: "vid-2", RawText: "oke", NormalizedText: "oke", Sentiment: models.SentimentNeutral},
		},
	}

	var buf bytes.Buffer
	if err := SentimentCSV(&buf, rs); err != nil {
		t.Fatalf("SentimentCSV failed: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2 rows", len(records))
	}
	if records[1][0] != "vid-1" || records[1][3] != "tidak bagus" || records[1][4] != "Negative" {
		t.Errorf("first record = %v", records[1])
	}
	if records[1][1] != "2024-05-01 08:00:00" {
		t.Errorf("timestamp = %q", records[1][1])
	}
	if records[2][1] != "" {
		t.Errorf("missing timestamp should export empty, got %q", records[2][1])
	}
}

func TestWriteXLSX(t *testing.T) {
	rs := &models.SentimentResultSet{
		Generation: 1,
		Comments:   []models.CommentRecord{{SourceRowID: "vid-1", RawText: "oke", NormalizedText: "oke", Sentiment: models.SentimentNeutral}},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, exportDataset(), rs); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	hasDataset, hasSentiment := false, false
	for _, s := range sheets {
		switch s {
		case datasetSheetName:
			hasDataset = true
		case sentimentSheetName:
			hasSentiment = true
		}
	}
	if !hasDataset || !hasSentiment {
		t.Fatalf("sheets = %v, want both %s and %s", sheets, datasetSheetName, sentimentSheetName)
	}

	rows, err := f.GetRows(datasetSheetName)
	if err != nil {
		t.Fatalf("read dataset sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("dataset sheet rows = %d, want 3", len(rows))
	}
	// 工作表中的時間戳也不含時區
	if rows[1][2] != "2024-05-01 10:30:00" {
		t.Errorf("sheet timestamp = %q", rows[1][2])
	}

	sentRows, err := f.GetRows(sentimentSheetName)
	if err != nil {
		t.Fatalf("read sentiment sheet: %v", err)
	}
	if len(sentRows) != 2 || sentRows[1][0] != "vid-1" {
		t.Errorf("sentiment sheet rows = %v", sentRows)
	}
}

func TestWriteXLSXWithoutSentiment(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, exportDataset(), nil); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	for _, s := range f.GetSheetList() {
		if s == sentimentSheetName {
			t.Error("sentiment sheet should be absent without a result set")
		}
	}
}
