package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/alrahmads/SocialSight-Analytics/internal/export"
	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// ExportSource 定義了匯出處理器需要的資料來源
type ExportSource interface {
	Current() *models.Dataset
	RunSentiment() (*models.SentimentResultSet, error)
}

// ExportHandler 負責處理匯出請求
type ExportHandler struct {
	source ExportSource
}

// NewExportHandler 建立一個 ExportHandler 實例
func NewExportHandler(source ExportSource) *ExportHandler {
	if source == nil {
		log.Panicln("ExportHandler：ExportSource 不得為空")
	}
	return &ExportHandler{source: source}
}

// ServeHTTP 實現 http.Handler 介面。
// 查詢參數 format 為 csv 或 xlsx（預設 csv），table 為 dataset 或
// sentiment（僅 CSV 需要；XLSX 一律輸出兩個工作表）。
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("資訊：[ExportHandler] 收到請求: %s %s 來自 %s\n", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodGet {
		log.Printf("警告：[ExportHandler] 收到非 GET 請求 (%s)，已拒絕。\n", r.Method)
		http.Error(w, "僅支援 GET 方法", http.StatusMethodNotAllowed)
		return
	}

	ds := h.source.Current()
	if ds == nil {
		http.Error(w, "尚未載入任何資料集", http.StatusConflict)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	stamp := time.Now().Format("2006-01-02")

	switch format {
	case "csv":
		table := r.URL.Query().Get("table")
		if table == "" {
			table = "dataset"
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		switch table {
		case "dataset":
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=dataset_%s.csv", stamp))
			if err := export.DatasetCSV(w, ds); err != nil {
				log.Printf("錯誤：[ExportHandler] 匯出資料集 CSV 失敗: %v", err)
			}
		case "sentiment":
			rs, err := h.source.RunSentiment()
			if err != nil {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=sentiment_%s.csv", stamp))
			if err := export.SentimentCSV(w, rs); err != nil {
				log.Printf("錯誤：[ExportHandler] 匯出情緒結果 CSV 失敗: %v", err)
			}
		default:
			http.Error(w, "未知的匯出資料表: "+table, http.StatusBadRequest)
		}
	case "xlsx":
		rs, err := h.source.RunSentiment()
		if err != nil {
			log.Printf("警告：[ExportHandler] 情緒結果不可用，XLSX 僅輸出資料集工作表: %v\n", err)
			rs = nil
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=analytics_%s.xlsx", stamp))
		if err := export.WriteXLSX(w, ds, rs); err != nil {
			log.Printf("錯誤：[ExportHandler] 匯出 XLSX 失敗: %v", err)
		}
	default:
		http.Error(w, "未知的匯出格式: "+format, http.StatusBadRequest)
	}
}
