package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/alrahmads/SocialSight-Analytics/internal/analytics"
	"github.com/alrahmads/SocialSight-Analytics/internal/models"
	"github.com/alrahmads/SocialSight-Analytics/internal/storage/mysql"
)

// StatusSource 定義了狀態處理器需要的查詢方法
type StatusSource interface {
	Current() *models.Dataset
	RecentLoads(limit int) ([]mysql.DatasetLoad, error)
	Insights(ctx context.Context) ([]string, string)
}

// StatusHandler 回報目前載入的資料集、可用檢視、洞察與載入歷史
type StatusHandler struct {
	source StatusSource
}

// NewStatusHandler 建立一個 StatusHandler 實例
func NewStatusHandler(source StatusSource) *StatusHandler {
	if source == nil {
		log.Panicln("StatusHandler：StatusSource 不得為空")
	}
	return &StatusHandler{source: source}
}

// ServeHTTP 實現 http.Handler 介面
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("資訊：[StatusHandler] 收到請求: %s %s 來自 %s\n", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodGet {
		http.Error(w, "僅支援 GET 方法", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"views": analytics.AllViews(),
	}
	if ds := h.source.Current(); ds != nil {
		columns := make([]string, 0, len(ds.Columns))
		for col := range ds.Columns {
			columns = append(columns, col)
		}
		response["dataset"] = map[string]interface{}{
			"source_name": ds.SourceName,
			"generation":  ds.Generation,
			"rows":        ds.Len(),
			"columns":     columns,
		}
		insights, narrative := h.source.Insights(r.Context())
		response["insights"] = insights
		if narrative != "" {
			response["narrative"] = narrative
		}
	}

	if loads, err := h.source.RecentLoads(20); err != nil {
		log.Printf("警告：[StatusHandler] 讀取載入歷史失敗: %v\n", err)
	} else if loads != nil {
		response["recent_loads"] = loads
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("錯誤：[StatusHandler] 序列化狀態回應失敗: %v", err)
	}
}
