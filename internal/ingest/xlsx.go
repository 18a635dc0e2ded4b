package ingest

import (
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// ReadXLSX 讀取 XLSX 內容的第一個工作表成資料集
func ReadXLSX(r io.Reader, sourceName string) (*models.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("開啟 XLSX 檔 %s 失敗: %w", sourceName, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("警告：關閉 XLSX 檔 %s 失敗: %v", sourceName, err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX 檔 %s 沒有任何工作表", sourceName)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("讀取工作表 %s 失敗: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("XLSX 檔 %s 的工作表是空的", sourceName)
	}

	columns := mapHeader(rows[0])
	if len(columns) == 0 {
		return nil, fmt.Errorf("XLSX 檔 %s 沒有任何可辨識的欄位", sourceName)
	}

	ds := newDataset(sourceName, columns)
	for _, record := range rows[1:] {
		row := models.VideoRecord{}
		for i, col := range columns {
			if col == "" || i >= len(record) {
				continue
			}
			setField(&row, col, record[i])
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}
