package services

import (
	"context"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
	"github.com/alrahmads/SocialSight-Analytics/internal/storage/mysql"
)

// Store 介面定義了持久化操作
type Store interface {
	SaveDatasetLoad(ds *models.Dataset) error
	SaveSentimentResults(rs *models.SentimentResultSet) error
	RecentLoads(limit int) ([]mysql.DatasetLoad, error)
}

// Narrator 介面把規則式洞察改寫成敘事文字
type Narrator interface {
	NarrateInsights(ctx context.Context, insights []string) (string, error)
}
