package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// SentimentRunner 定義了情緒分析觸發處理器需要的方法
type SentimentRunner interface {
	TriggerSentiment() (*models.SentimentResultSet, error)
}

// TriggerSentimentHandler 負責處理手動觸發情緒分析的請求
type TriggerSentimentHandler struct {
	runner       SentimentRunner
	mu           sync.Mutex
	isProcessing bool
}

// NewTriggerSentimentHandler 建立一個 TriggerSentimentHandler 實例
func NewTriggerSentimentHandler(runner SentimentRunner) *TriggerSentimentHandler {
	if runner == nil {
		log.Panicln("TriggerSentimentHandler：SentimentRunner 不得為空")
	}
	return &TriggerSentimentHandler{runner: runner}
}

// ServeHTTP 實現 http.Handler 介面
func (h *TriggerSentimentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("資訊：[TriggerSentimentHandler] 收到請求: %s %s 來自 %s\n", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodPost {
		log.Printf("警告：[TriggerSentimentHandler] 收到非 POST 請求 (%s)，已拒絕。\n", r.Method)
		http.Error(w, "僅支援 POST 方法", http.StatusMethodNotAllowed)
		return
	}

	h.mu.Lock()
	if h.isProcessing {
		h.mu.Unlock()
		log.Println("警告：[TriggerSentimentHandler] 情緒分析已在進行中，請稍後再試。")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "情緒分析任務已在進行中，請稍候。"})
		return
	}
	h.isProcessing = true
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.isProcessing = false
		h.mu.Unlock()
	}()

	rs, err := h.runner.TriggerSentiment()
	if err != nil {
		log.Printf("錯誤：[TriggerSentimentHandler] 情緒分析執行失敗: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"generation": rs.Generation,
		"comments":   len(rs.Comments),
		"degraded":   rs.Degraded,
	})
}
