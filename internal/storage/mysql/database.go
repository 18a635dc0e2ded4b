package mysql

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/alrahmads/SocialSight-Analytics/internal/config"
	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// MySQLStore 結構
type MySQLStore struct {
	db *sql.DB
}

// DatasetLoad 是 dataset_loads 表的一列：一次成功載入的紀錄
type DatasetLoad struct {
	Generation uint64    `json:"generation"`
	SourceName string    `json:"source_name"`
	RowCount   int       `json:"row_count"`
	LoadedAt   time.Time `json:"loaded_at"`
}

func NewMySQLStore(dbCfg config.DatabaseConfig) (*MySQLStore, error) {
	if dbCfg.Driver != "mysql" {
		return nil, fmt.Errorf("不支援的資料庫驅動程式: %s", dbCfg.Driver)
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local", dbCfg.User, dbCfg.Password, dbCfg.Host, dbCfg.Port, dbCfg.DBName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("開啟資料庫連線失敗: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("無法連線到資料庫 (ping 失敗): %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	log.Println("資訊：成功連線到 MySQL 資料庫。")
	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) Close() error {
	if s.db != nil {
		log.Println("資訊：正在關閉 MySQL 資料庫連線...")
		return s.db.Close()
	}
	return nil
}

// SaveDatasetLoad 記錄一次成功的資料集載入
func (s *MySQLStore) SaveDatasetLoad(ds *models.Dataset) error {
	query := `INSERT INTO dataset_loads (generation, source_name, row_count, loaded_at) VALUES (?, ?, ?, ?)`
	_, err := s.db.Exec(query, ds.Generation, ds.SourceName, ds.Len(), time.Now())
	if err != nil {
		return fmt.Errorf("寫入 dataset_loads 失敗: %w", err)
	}
	return nil
}

// RecentLoads 回傳最近的載入紀錄，新的在前
func (s *MySQLStore) RecentLoads(limit int) ([]DatasetLoad, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT generation, source_name, row_count, loaded_at FROM dataset_loads ORDER BY loaded_at DESC LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("查詢 dataset_loads 失敗: %w", err)
	}
	defer rows.Close()

	var loads []DatasetLoad
	for rows.Next() {
		var l DatasetLoad
		if err := rows.Scan(&l.Generation, &l.SourceName, &l.RowCount, &l.LoadedAt); err != nil {
			return nil, fmt.Errorf("掃描 dataset_loads 資料列失敗: %w", err)
		}
		loads = append(loads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("迭代 dataset_loads 時發生錯誤: %w", err)
	}
	return loads, nil
}

// SaveSentimentResults 以世代為單位整批覆寫情緒分析結果：
// 先刪除同一世代的舊資料列，再逐批插入新結果。
func (s *MySQLStore) SaveSentimentResults(rs *models.SentimentResultSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("開啟交易失敗: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM comment_sentiments WHERE generation = ?`, rs.Generation); err != nil {
		return fmt.Errorf("清除舊的情緒結果失敗: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO comment_sentiments (generation, video_id, comment_ts, comment_raw, comment_normalized, sentiment) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("準備插入語句失敗: %w", err)
	}
	defer stmt.Close()

	for i := range rs.Comments {
		c := &rs.Comments[i]
		if _, err := stmt.Exec(rs.Generation, c.SourceRowID, c.SourceTimestamp, c.RawText, c.NormalizedText, string(c.Sentiment)); err != nil {
			return fmt.Errorf("插入情緒結果失敗 (video_id: %s): %w", c.SourceRowID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交情緒結果交易失敗: %w", err)
	}
	log.Printf("資訊：已寫入 %d 筆情緒結果 (世代 %d)。", len(rs.Comments), rs.Generation)
	return nil
}
