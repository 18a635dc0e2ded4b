package web

import (
	"log"
	"net/http"

	"github.com/alrahmads/SocialSight-Analytics/internal/services"
	"github.com/alrahmads/SocialSight-Analytics/internal/web/handlers"
)

// SetupRouter 組裝所有 HTTP 路由
func SetupRouter(datasetService *services.DatasetService) http.Handler {
	if datasetService == nil {
		log.Panicln("SetupRouter：DatasetService 不得為空")
	}
	mux := http.NewServeMux()

	uploadHandler := handlers.NewUploadHandler(datasetService)
	mux.Handle("/api/upload", uploadHandler)

	// /api/views/{id}：StripPrefix 之後路徑只剩檢視識別碼
	viewHandler := handlers.NewViewHandler(datasetService)
	mux.Handle("/api/views/", http.StripPrefix("/api/views/", viewHandler))

	exportHandler := handlers.NewExportHandler(datasetService)
	mux.Handle("/api/export", exportHandler)

	triggerSentimentHandler := handlers.NewTriggerSentimentHandler(datasetService)
	mux.Handle("/api/sentiment/run", triggerSentimentHandler)

	statusHandler := handlers.NewStatusHandler(datasetService)
	mux.Handle("/api/status", statusHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/api/status", http.StatusFound)
			return
		}
		http.NotFound(w, r)
	})

	return mux
}
