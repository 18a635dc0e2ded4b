package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// maxUploadBytes 限制上傳檔案大小 (64 MB)
const maxUploadBytes = 64 << 20

// DatasetLoader 定義了上傳處理器需要的載入方法
type DatasetLoader interface {
	LoadFromReader(r io.Reader, filename string) (*models.Dataset, error)
}

// UploadHandler 負責處理資料集上傳請求
type UploadHandler struct {
	loader DatasetLoader
}

// NewUploadHandler 建立一個 UploadHandler 實例
func NewUploadHandler(loader DatasetLoader) *UploadHandler {
	if loader == nil {
		log.Panicln("UploadHandler：DatasetLoader 不得為空")
	}
	return &UploadHandler{loader: loader}
}

// ServeHTTP 實現 http.Handler 介面
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("資訊：[UploadHandler] 收到請求: %s %s 來自 %s\n", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodPost {
		log.Printf("警告：[UploadHandler] 收到非 POST 請求 (%s)，已拒絕。\n", r.Method)
		http.Error(w, "僅支援 POST 方法", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Printf("警告：[UploadHandler] 解析 multipart 表單失敗: %v\n", err)
		http.Error(w, "無法解析上傳內容", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("警告：[UploadHandler] 請求缺少 file 欄位: %v\n", err)
		http.Error(w, "請求必須包含 file 欄位", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ds, err := h.loader.LoadFromReader(file, header.Filename)
	if err != nil {
		log.Printf("錯誤：[UploadHandler] 載入資料集 '%s' 失敗: %v", header.Filename, err)
		http.Error(w, "載入資料集失敗: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	columns := make([]string, 0, len(ds.Columns))
	for col := range ds.Columns {
		columns = append(columns, col)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"source_name": ds.SourceName,
		"generation":  ds.Generation,
		"rows":        ds.Len(),
		"columns":     columns,
	})
}
