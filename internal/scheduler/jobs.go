package scheduler

import (
	"log"

	"github.com/alrahmads/SocialSight-Analytics/internal/services"
)

// ScanJob 是一個排程任務，用於掃描資料目錄並載入新的資料檔
type ScanJob struct {
	datasetService *services.DatasetService
}

// NewScanJob 建立一個 ScanJob
func NewScanJob(ds *services.DatasetService) *ScanJob {
	return &ScanJob{datasetService: ds}
}

// Run 實現 cron.Job 介面 (github.com/robfig/cron/v3)
func (j *ScanJob) Run() {
	log.Println("資訊：執行排程任務 - 資料目錄掃描...")
	if err := j.datasetService.ScanDropDir(); err != nil {
		log.Printf("錯誤：資料目錄掃描排程任務執行失敗: %v", err)
	} else {
		log.Println("資訊：資料目錄掃描排程任務執行完成。")
	}
}
