package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/alrahmads/SocialSight-Analytics/internal/services"
)

// Scheduler 結構
type Scheduler struct {
	cron    *cron.Cron
	scanJob *ScanJob
}

// NewScheduler 建立排程器並註冊資料目錄掃描任務
func NewScheduler(ds *services.DatasetService, scanCronSpec string) *Scheduler {
	c := cron.New(cron.WithSeconds())

	scanJob := NewScanJob(ds)
	if scanCronSpec != "" {
		_, err := c.AddJob(scanCronSpec, scanJob)
		if err != nil {
			log.Fatalf("錯誤：無法新增資料目錄掃描任務到排程器 (spec: %s): %v", scanCronSpec, err)
		}
		log.Printf("資訊：資料目錄掃描任務已註冊，排程：%s\n", scanCronSpec)
	} else {
		log.Println("警告：未提供資料目錄掃描任務的 Cron 表達式，該任務將不會被排程。")
	}

	return &Scheduler{
		cron:    c,
		scanJob: scanJob,
	}
}

// Start 非阻塞啟動排程器
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("資訊：排程器已非阻塞啟動 (如果任務已註冊)。")
}

// Stop 方法
func (s *Scheduler) Stop() {
	log.Println("資訊：正在停止排程器...")
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		log.Println("資訊：排程器已優雅停止，所有運行中任務已完成。")
	case <-time.After(10 * time.Second):
		log.Println("警告：排程器停止超時，可能仍有任務在執行。")
	}
}
