package analytics

import (
	"fmt"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
	"github.com/alrahmads/SocialSight-Analytics/internal/topics"
)

// ViewID 是分析檢視的封閉列舉。選單選擇在編譯期就綁定到對應的
// 建構函式，不靠字串比對決定行為。
type ViewID string

const (
	ViewExecutiveSummary ViewID = "executive-summary"
	ViewEngagement       ViewID = "engagement-analytics"
	ViewContent          ViewID = "content-analysis"
	ViewReach            ViewID = "view-reach-analytics"
	ViewSentiment        ViewID = "sentiment-comment-analysis"
	ViewTopics           ViewID = "topic-analysis"
	ViewExplorer         ViewID = "data-explorer"
)

// AllViews 依側邊欄順序列出所有檢視
func AllViews() []ViewID {
	return []ViewID{
		ViewExecutiveSummary,
		ViewEngagement,
		ViewContent,
		ViewReach,
		ViewSentiment,
		ViewTopics,
		ViewExplorer,
	}
}

// ExplorerFilter 是 Data Explorer 檢視的篩選條件
type ExplorerFilter struct {
	Channels   []string
	Categories []string
	MinViews   float64
}

// Context 聚合建構檢視所需的全部輸入：擴充後的資料集、
// 情緒流程結果、停用詞、主題模型與篩選條件。
type Context struct {
	Dataset   *models.Dataset
	Sentiment *models.SentimentResultSet
	Stopwords map[string]struct{}
	Topics    *topics.Model
	Filter    ExplorerFilter
}

// BuildView 把檢視識別碼分派到對應的建構函式並回傳渲染模型。
// 未知的識別碼是編程錯誤，回傳錯誤而不是靜默空結果。
func BuildView(id ViewID, ctx *Context) (interface{}, error) {
	if ctx == nil || ctx.Dataset == nil {
		return nil, fmt.Errorf("尚未載入任何資料集")
	}
	switch id {
	case ViewExecutiveSummary:
		return BuildExecutiveSummary(ctx.Dataset), nil
	case ViewEngagement:
		return BuildEngagementView(ctx.Dataset), nil
	case ViewContent:
		return BuildContentView(ctx.Dataset), nil
	case ViewReach:
		return BuildReachView(ctx.Dataset), nil
	case ViewSentiment:
		return BuildSentimentView(ctx.Dataset, ctx.Sentiment, ctx.Stopwords), nil
	case ViewTopics:
		return BuildTopicView(ctx.Dataset, ctx.Topics), nil
	case ViewExplorer:
		return BuildExplorerView(ctx.Dataset, ctx.Filter), nil
	}
	return nil, fmt.Errorf("未知的檢視識別碼: %s", id)
}

// VideoStat 是檢視中通用的單列影片統計
type VideoStat struct {
	VideoID        string  `json:"video_id,omitempty"`
	Judul          string  `json:"judul"`
	Channel        string  `json:"channel"`
	Views          float64 `json:"views"`
	Likes          float64 `json:"likes"`
	Comments       float64 `json:"comments"`
	Engagement     float64 `json:"engagement"`
	EngagementRate float64 `json:"engagement_rate"`
}

func videoStat(row *models.VideoRecord) VideoStat {
	return VideoStat{
		VideoID:        row.VideoID,
		Judul:          row.Judul,
		Channel:        row.Channel,
		Views:          row.Views,
		Likes:          row.Likes,
		Comments:       row.Comments,
		Engagement:     row.Engagement,
		EngagementRate: row.EngagementRate,
	}
}
