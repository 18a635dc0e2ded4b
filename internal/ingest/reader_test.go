package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

func TestReadCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"Video ID,Judul,Channel,Views,Likes,Comments,Tanggal Upload,Durasi",
		"a1,Video Pertama,Kanal,1000,100,10,2024-05-01,PT2M10S",
		`a2,"Judul, dengan koma",Kanal,"2,500",50,5,2024-05-02,PT1M`,
	}, "\n")

	ds, err := ReadCSV(strings.NewReader(csvData), "test.csv")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("rows = %d, want 2", ds.Len())
	}
	if !ds.HasColumn(models.ColViews) || !ds.HasColumn(models.ColDurasi) {
		t.Errorf("recognized columns missing: %v", ds.Columns)
	}
	if ds.HasColumn(models.ColKomentar) {
		t.Error("absent column should not be marked present")
	}

	first := ds.Rows[0]
	if first.VideoID != "a1" || first.Views != 1000 || first.Likes != 100 {
		t.Errorf("first row = %+v", first)
	}
	if !first.TanggalUpload.Valid {
		t.Error("date should parse")
	}

	second := ds.Rows[1]
	if second.Judul != "Judul, dengan koma" {
		t.Errorf("quoted title = %q", second.Judul)
	}
	// 千分位逗號被容忍
	if second.Views != 2500 {
		t.Errorf("Views with thousands separator = %f, want 2500", second.Views)
	}
}

func TestReadCSVSkipsBadLines(t *testing.T) {
	csvData := strings.Join([]string{
		"Judul,Views",
		"Bagus,100",
		"BarisRusak",
		"Oke,200,extra",
		"Lagi,300",
	}, "\n")

	ds, err := ReadCSV(strings.NewReader(csvData), "bad.csv")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("rows = %d, want 2 (mismatched rows skipped)", ds.Len())
	}
}

func TestReadCSVEncodingFallback(t *testing.T) {
	// "café" 以 latin-1 編碼：0xE9 不是合法的 UTF-8 序列
	raw := append([]byte("Judul,Views\ncaf"), 0xE9)
	raw = append(raw, []byte(",100\n")...)

	ds, err := ReadCSV(bytes.NewReader(raw), "latin1.csv")
	if err != nil {
		t.Fatalf("ReadCSV failed on latin-1 content: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("rows = %d, want 1", ds.Len())
	}
	if ds.Rows[0].Judul != "café" {
		t.Errorf("Judul = %q, want café", ds.Rows[0].Judul)
	}
}

func TestReadCSVNoRecognizedColumns(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("foo,bar\n1,2\n"), "x.csv"); err == nil {
		t.Error("header without recognized columns should fail")
	}
}

func TestReadCSVHeaderAliases(t *testing.T) {
	csvData := "title,category,duration,tags\nJudulnya,Music,PT1M,musik lagu\n"
	ds, err := ReadCSV(strings.NewReader(csvData), "alias.csv")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	row := ds.Rows[0]
	if row.Judul != "Judulnya" {
		t.Errorf("title alias not mapped: %+v", row)
	}
	if !row.Kategori.Valid || row.Kategori.String != "Music" {
		t.Errorf("category alias not mapped: %+v", row.Kategori)
	}
	if !row.Tags.Valid {
		t.Error("tags alias not mapped")
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Judul", "Channel", "Views", "Likes", "Comments"},
		{"Video A", "Kanal", 1000, 100, 10},
		{"Video B", "Kanal", 2000, 50, 5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	ds, err := ReadXLSX(&buf, "test.xlsx")
	if err != nil {
		t.Fatalf("ReadXLSX failed: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("rows = %d, want 2", ds.Len())
	}
	if ds.Rows[0].Judul != "Video A" || ds.Rows[0].Views != 1000 {
		t.Errorf("first row = %+v", ds.Rows[0])
	}
	if ds.Rows[1].Likes != 50 {
		t.Errorf("second row likes = %f, want 50", ds.Rows[1].Likes)
	}
}
