package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/alrahmads/SocialSight-Analytics/internal/analytics"
	"github.com/alrahmads/SocialSight-Analytics/internal/config"
	"github.com/alrahmads/SocialSight-Analytics/internal/ingest"
	"github.com/alrahmads/SocialSight-Analytics/internal/lexicon"
	"github.com/alrahmads/SocialSight-Analytics/internal/models"
	"github.com/alrahmads/SocialSight-Analytics/internal/sentiment"
	"github.com/alrahmads/SocialSight-Analytics/internal/storage/mysql"
	"github.com/alrahmads/SocialSight-Analytics/internal/topics"
)

// DatasetService 管理目前載入的資料集與其衍生結果。
// 資料集整份替換：每次載入產生新的世代編號，舊世代的快取隨之失效。
type DatasetService struct {
	cfg      *config.Config
	store    Store
	lex      *lexicon.Loader
	pipeline *sentiment.Pipeline
	topics   *topics.Model
	narrator Narrator

	mu         sync.RWMutex
	current    *models.Dataset
	generation uint64

	// triggerMu 保護手動情緒分析觸發：同一時間只允許一次
	triggerMu sync.Mutex

	// seenFiles 記錄排程掃描已處理過的資料檔
	seenMu    sync.Mutex
	seenFiles map[string]struct{}
}

// NewDatasetService 建立 DatasetService 實例。store 與 narrator 可為 nil，
// 對應的能力會被跳過而不是失敗。
func NewDatasetService(
	cfg *config.Config,
	store Store,
	lex *lexicon.Loader,
	pipeline *sentiment.Pipeline,
	topicModel *topics.Model,
	narrator Narrator,
) (*DatasetService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("DatasetService：設定不得為空")
	}
	if lex == nil {
		return nil, fmt.Errorf("DatasetService：詞典載入器不得為空")
	}
	if pipeline == nil {
		return nil, fmt.Errorf("DatasetService：情緒流程不得為空")
	}
	if store == nil {
		log.Println("警告：DatasetService 未連接資料庫，載入紀錄與情緒結果不會被持久化。")
	}
	if narrator == nil {
		log.Println("資訊：DatasetService 未連接敘事客戶端，洞察將使用規則式文字。")
	}
	log.Println("資訊：DatasetService 初始化完成。")
	return &DatasetService{
		cfg:       cfg,
		store:     store,
		lex:       lex,
		pipeline:  pipeline,
		topics:    topicModel,
		narrator:  narrator,
		seenFiles: make(map[string]struct{}),
	}, nil
}

// Current 回傳目前載入的資料集；尚未載入任何檔案時為 nil
func (s *DatasetService) Current() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LoadFromFile 從檔案路徑載入資料集並整份替換目前資料
func (s *DatasetService) LoadFromFile(path string) (*models.Dataset, error) {
	ds, err := ingest.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return s.install(ds)
}

// LoadFromReader 從上傳串流載入資料集；格式由檔名副檔名決定
func (s *DatasetService) LoadFromReader(r io.Reader, filename string) (*models.Dataset, error) {
	var ds *models.Dataset
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		ds, err = ingest.ReadCSV(r, filename)
	case ".xlsx":
		ds, err = ingest.ReadXLSX(r, filename)
	default:
		return nil, fmt.Errorf("不支援的資料檔格式: %s", filename)
	}
	if err != nil {
		return nil, err
	}
	return s.install(ds)
}

// install 補上衍生欄位與主題指派後，以新世代整份替換目前資料集
func (s *DatasetService) install(ds *models.Dataset) (*models.Dataset, error) {
	analytics.ApplyDerivedMetrics(ds)
	topics.AssignAll(s.topics, ds)

	s.mu.Lock()
	s.generation++
	ds.Generation = s.generation
	s.current = ds
	s.mu.Unlock()

	s.pipeline.Invalidate()
	log.Printf("資訊：[DatasetService] 已載入資料集 %s（%d 列，世代 %d）。\n", ds.SourceName, ds.Len(), ds.Generation)

	if s.store != nil {
		if err := s.store.SaveDatasetLoad(ds); err != nil {
			log.Printf("警告：[DatasetService] 持久化載入紀錄失敗：%v\n", err)
		}
	}
	return ds, nil
}

// RunSentiment 對目前資料集執行情緒流程。結果依世代快取，
// 同一世代重複呼叫直接回傳快取。
func (s *DatasetService) RunSentiment() (*models.SentimentResultSet, error) {
	ds := s.Current()
	if ds == nil {
		return nil, fmt.Errorf("尚未載入任何資料集")
	}
	rs := s.pipeline.Run(ds)

	if s.store != nil && len(rs.Comments) > 0 {
		if err := s.store.SaveSentimentResults(rs); err != nil {
			log.Printf("警告：[DatasetService] 持久化情緒結果失敗：%v\n", err)
		}
	}
	return rs, nil
}

// TriggerSentiment 是手動觸發入口：同一時間只允許一次分析在途，
// 已有分析在跑時回傳錯誤而不是排隊。
func (s *DatasetService) TriggerSentiment() (*models.SentimentResultSet, error) {
	if !s.triggerMu.TryLock() {
		return nil, fmt.Errorf("情緒分析已在執行中，請稍後再試")
	}
	defer s.triggerMu.Unlock()
	return s.RunSentiment()
}

// BuildView 建構指定檢視的渲染模型。情緒檢視會依需要執行情緒流程
// （有世代快取，重複建構不重算）。
func (s *DatasetService) BuildView(id analytics.ViewID, filter analytics.ExplorerFilter) (interface{}, error) {
	ds := s.Current()
	if ds == nil {
		return nil, fmt.Errorf("尚未載入任何資料集")
	}
	viewCtx := &analytics.Context{
		Dataset:   ds,
		Stopwords: s.lex.Stopwords(),
		Topics:    s.topics,
		Filter:    filter,
	}
	if id == analytics.ViewSentiment {
		rs, err := s.RunSentiment()
		if err != nil {
			return nil, err
		}
		viewCtx.Sentiment = rs
	}
	return analytics.BuildView(id, viewCtx)
}

// Insights 回傳目前資料集的洞察。敘事客戶端可用時改寫成敘事段落，
// 失敗則退回規則式句子。
func (s *DatasetService) Insights(ctx context.Context) ([]string, string) {
	ds := s.Current()
	if ds == nil {
		return nil, ""
	}
	insights := analytics.GenerateInsights(ds)
	if s.narrator == nil || len(insights) == 0 {
		return insights, ""
	}
	narrative, err := s.narrator.NarrateInsights(ctx, insights)
	if err != nil {
		log.Printf("警告：[DatasetService] 洞察敘事生成失敗，退回規則式文字：%v\n", err)
		return insights, ""
	}
	return insights, narrative
}

// RecentLoads 回傳資料庫中的載入歷史；未連接資料庫時回傳空清單
func (s *DatasetService) RecentLoads(limit int) ([]mysql.DatasetLoad, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.RecentLoads(limit)
}

// ScanDropDir 掃描設定的目錄，載入最新一個尚未處理過的資料檔。
// 同一個檔案只會被載入一次。
func (s *DatasetService) ScanDropDir() error {
	dropPath := s.cfg.Ingest.DropPath
	entries, err := os.ReadDir(dropPath)
	if err != nil {
		return fmt.Errorf("讀取資料目錄 '%s' 失敗: %w", dropPath, err)
	}

	type candidate struct {
		path    string
		modTime int64
	}
	var candidates []candidate

	s.seenMu.Lock()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}
		path := filepath.Join(dropPath, entry.Name())
		if _, seen := s.seenFiles[path]; seen {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Printf("警告：[DatasetService] 讀取檔案資訊失敗 '%s': %v\n", path, err)
			continue
		}
		candidates = append(candidates, candidate{path: path, modTime: info.ModTime().UnixNano()})
	}
	s.seenMu.Unlock()

	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].modTime > candidates[j].modTime })

	// 由新到舊嘗試。載入失敗的檔案也標記為已處理：
	// 壞檔不能卡住之後的掃描，也不該擋住仍在等待的舊檔。
	var lastErr error
	for _, c := range candidates {
		_, err := s.LoadFromFile(c.path)
		s.seenMu.Lock()
		s.seenFiles[c.path] = struct{}{}
		s.seenMu.Unlock()
		if err != nil {
			log.Printf("警告：[DatasetService] 載入資料檔 '%s' 失敗，已略過: %v\n", c.path, err)
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("掃描到 %d 個資料檔但全部載入失敗: %w", len(candidates), lastErr)
}
