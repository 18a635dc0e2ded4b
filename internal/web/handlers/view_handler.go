package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/alrahmads/SocialSight-Analytics/internal/analytics"
)

// ViewBuilder 定義了檢視處理器需要的建構方法
type ViewBuilder interface {
	BuildView(id analytics.ViewID, filter analytics.ExplorerFilter) (interface{}, error)
}

// ViewHandler 負責處理分析檢視的查詢請求。
// 路徑的最後一段是檢視識別碼，例如 /api/views/executive-summary。
type ViewHandler struct {
	builder ViewBuilder
}

// NewViewHandler 建立一個 ViewHandler 實例
func NewViewHandler(builder ViewBuilder) *ViewHandler {
	if builder == nil {
		log.Panicln("ViewHandler：ViewBuilder 不得為空")
	}
	return &ViewHandler{builder: builder}
}

// ServeHTTP 實現 http.Handler 介面
func (h *ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("資訊：[ViewHandler] 收到請求: %s %s 來自 %s\n", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodGet {
		log.Printf("警告：[ViewHandler] 收到非 GET 請求 (%s)，已拒絕。\n", r.Method)
		http.Error(w, "僅支援 GET 方法", http.StatusMethodNotAllowed)
		return
	}

	id := analytics.ViewID(strings.Trim(r.URL.Path, "/"))
	filter := parseFilter(r)

	view, err := h.builder.BuildView(id, filter)
	if err != nil {
		log.Printf("警告：[ViewHandler] 建構檢視 '%s' 失敗: %v\n", id, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.Printf("錯誤：[ViewHandler] 序列化檢視 '%s' 失敗: %v", id, err)
	}
}

// parseFilter 從查詢參數組出 Data Explorer 篩選條件。
// channel 與 category 可重複出現，minViews 解析失敗視為 0。
func parseFilter(r *http.Request) analytics.ExplorerFilter {
	q := r.URL.Query()
	filter := analytics.ExplorerFilter{
		Channels:   q["channel"],
		Categories: q["category"],
	}
	if raw := q.Get("minViews"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinViews = v
		}
	}
	return filter
}
