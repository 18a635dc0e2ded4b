package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/alrahmads/SocialSight-Analytics/internal/clients/gemini"
	"github.com/alrahmads/SocialSight-Analytics/internal/config"
	"github.com/alrahmads/SocialSight-Analytics/internal/lexicon"
	"github.com/alrahmads/SocialSight-Analytics/internal/scheduler"
	"github.com/alrahmads/SocialSight-Analytics/internal/sentiment"
	"github.com/alrahmads/SocialSight-Analytics/internal/services"
	"github.com/alrahmads/SocialSight-Analytics/internal/storage/mysql"
	"github.com/alrahmads/SocialSight-Analytics/internal/topics"
	"github.com/alrahmads/SocialSight-Analytics/internal/web"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load("./configs", "config")
	if err != nil {
		log.Fatalf("錯誤：無法載入設定: %v", err)
	}
	log.Println("資訊：應用程式設定載入成功。")

	// 資料庫遷移
	migrationPath := "file://scripts/migrate/mysql"
	dbDSNForMigrate := fmt.Sprintf("mysql://%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	log.Printf("資訊：準備執行資料庫遷移，來源: %s, DSN 使用資料庫: %s", migrationPath, cfg.Database.DBName)
	m, err := migrate.New(migrationPath, dbDSNForMigrate)
	if err != nil {
		log.Fatalf("錯誤：建立遷移實例失敗: %v", err)
	}
	currentVersion, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		log.Fatalf("錯誤：獲取資料庫遷移版本失敗: %v", err)
	}
	if dirty {
		log.Fatalf("錯誤：資料庫處於 dirty 狀態 (版本 %d)，遷移失敗。", currentVersion)
	}
	log.Printf("資訊：目前資料庫版本: %d。開始應用遷移...", currentVersion)
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("錯誤：執行資料庫遷移 (m.Up) 失敗: %v", err)
	} else if err == migrate.ErrNoChange {
		log.Println("資訊：資料庫結構已是最新，無需遷移。")
	} else {
		newVersion, _, _ := m.Version()
		log.Printf("資訊：資料庫遷移成功完成，版本更新至: %d。", newVersion)
	}

	var dbStore services.Store
	realDBStore, err := mysql.NewMySQLStore(cfg.Database)
	if err != nil {
		log.Fatalf("錯誤：初始化 MySQL 資料庫連線失敗: %v", err)
	}
	dbStore = realDBStore
	defer realDBStore.Close()

	// 詞典與預訓練模型：單一來源缺漏都以降級模式運作，不擋啟動
	lexiconLoader := lexicon.NewLoader(cfg.Lexicon)
	classifier := sentiment.LoadClassifier(cfg.Models.SentimentPath)
	topicModel := topics.Load(cfg.Models.TopicModelPath)

	sentimentPipeline, err := sentiment.NewPipeline(lexiconLoader, classifier)
	if err != nil {
		log.Fatalf("錯誤：初始化情緒流程失敗: %v", err)
	}

	// Gemini 客戶端為選配：沒有 API Key 時洞察退化為規則式文字
	var narrator services.Narrator
	if cfg.GeminiClient.APIKey != "" {
		geminiClient, err := gemini.NewClient(context.Background(), cfg.GeminiClient.APIKey, cfg.GeminiClient.TextModel)
		if err != nil {
			log.Fatalf("錯誤：初始化 Gemini 客戶端失敗: %v", err)
		}
		defer geminiClient.Close()
		narrator = geminiClient
	}

	datasetSvc, err := services.NewDatasetService(cfg, dbStore, lexiconLoader, sentimentPipeline, topicModel, narrator)
	if err != nil {
		log.Fatalf("錯誤：初始化資料集服務失敗: %v", err)
	}

	if cfg.Scheduler.Enabled {
		log.Println("資訊：排程器已在設定檔中啟用，正在初始化...")
		appScheduler := scheduler.NewScheduler(datasetSvc, cfg.Scheduler.ScanCronSpec)
		appScheduler.Start()
		log.Println("資訊：排程器已啟動。")
		defer appScheduler.Stop()
	} else {
		log.Println("資訊：排程器已在設定檔中禁用。")
	}

	router := web.SetupRouter(datasetSvc)
	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		log.Printf("資訊：HTTP 伺服器正在監聽 %s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("錯誤：HTTP 伺服器監聽失敗: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("資訊：收到關閉訊號，正在關閉應用程式...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("錯誤：HTTP 伺服器優雅關閉失敗: %v", err)
	}
	log.Println("資訊：HTTP 伺服器已關閉。")
	log.Println("資訊：應用程式已成功關閉。")
}
