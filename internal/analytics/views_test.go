package analytics

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

// fullDataset 組一份帶有全部欄位、衍生指標已補上的小資料集
func fullDataset() *models.Dataset {
	ds := &models.Dataset{
		Generation: 1,
		SourceName: "fixture.csv",
		Columns: map[string]bool{
			models.ColVideoID:     true,
			models.ColJudul:       true,
			models.ColChannel:     true,
			models.ColKategori:    true,
			models.ColViews:       true,
			models.ColLikes:       true,
			models.ColComments:    true,
			models.ColSubscribers: true,
			models.ColTanggal:     true,
		},
		Rows: []models.VideoRecord{
			{
				VideoID: "a", Judul: "Video A", Channel: "Kanal Satu",
				Kategori: sql.NullString{String: "Music", Valid: true},
				Views:    1000, Likes: 100, Comments: 10, Subscribers: 5000,
				TanggalUpload: sql.NullTime{Time: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), Valid: true},
			},
			{
				VideoID: "b", Judul: "Video B", Channel: "Kanal Dua",
				Kategori: sql.NullString{String: "News", Valid: true},
				Views:    4000, Likes: 200, Comments: 40, Subscribers: 20000,
				TanggalUpload: sql.NullTime{Time: time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC), Valid: true},
			},
			{
				VideoID: "c", Judul: "Video C", Channel: "Kanal Satu",
				Kategori: sql.NullString{String: "Music", Valid: true},
				Views:    2000, Likes: 100, Comments: 50, Subscribers: 5000,
				TanggalUpload: sql.NullTime{Time: time.Date(2024, 5, 2, 18, 0, 0, 0, time.UTC), Valid: true},
			},
		},
	}
	ApplyDerivedMetrics(ds)
	return ds
}

func TestBuildViewDispatch(t *testing.T) {
	ctx := &Context{Dataset: fullDataset()}
	for _, id := range AllViews() {
		if _, err := BuildView(id, ctx); err != nil {
			t.Errorf("BuildView(%s) returned error: %v", id, err)
		}
	}

	if _, err := BuildView(ViewID("bukan-view"), ctx); err == nil {
		t.Error("unknown view id should return an error")
	}
	if _, err := BuildView(ViewExecutiveSummary, nil); err == nil {
		t.Error("nil context should return an error")
	}
	if _, err := BuildView(ViewExecutiveSummary, &Context{}); err == nil {
		t.Error("context without dataset should return an error")
	}
}

func TestBuildExecutiveSummary(t *testing.T) {
	view := BuildExecutiveSummary(fullDataset())

	if view.TotalVideos != 3 {
		t.Errorf("TotalVideos = %d, want 3", view.TotalVideos)
	}
	if view.TotalViews != 7000 {
		t.Errorf("TotalViews = %f, want 7000", view.TotalViews)
	}
	if view.TotalLikes != 400 {
		t.Errorf("TotalLikes = %f, want 400", view.TotalLikes)
	}

	if len(view.TopChannels) != 2 {
		t.Fatalf("TopChannels length = %d, want 2", len(view.TopChannels))
	}
	if view.TopChannels[0].Channel != "Kanal Dua" || view.TopChannels[0].Value != 20000 {
		t.Errorf("top channel = %+v, want Kanal Dua with 20000 subscribers", view.TopChannels[0])
	}

	if len(view.CategoryAnalysis) != 2 {
		t.Fatalf("CategoryAnalysis length = %d, want 2", len(view.CategoryAnalysis))
	}
	// News 4000 觀看 > Music 3000 觀看
	if view.CategoryAnalysis[0].Kategori != "News" {
		t.Errorf("first category = %s, want News", view.CategoryAnalysis[0].Kategori)
	}
	music := view.CategoryAnalysis[1]
	if music.VideoCount != 2 || music.TotalViews != 3000 || music.AvgViews != 1500 {
		t.Errorf("Music category stats = %+v", music)
	}

	if len(view.UploadTrend) != 2 {
		t.Errorf("UploadTrend length = %d, want 2", len(view.UploadTrend))
	}

	foundEngagement := false
	for _, s := range view.Insights {
		if strings.HasPrefix(s, "Total engagement mencapai 500 interaksi") {
			foundEngagement = true
		}
	}
	if !foundEngagement {
		t.Errorf("insights missing total engagement sentence: %v", view.Insights)
	}
}

func TestBuildReachView(t *testing.T) {
	view := BuildReachView(fullDataset())

	if view.TotalReach != 7000 {
		t.Errorf("TotalReach = %f, want 7000", view.TotalReach)
	}
	if !almostEqual(view.EstUniqueViewers, 4900) {
		t.Errorf("EstUniqueViewers = %f, want 4900", view.EstUniqueViewers)
	}
	// 潛在觸及 = 每頻道第一次出現的訂閱數總和 = 5000 + 20000
	if view.PotentialReach != 25000 {
		t.Errorf("PotentialReach = %f, want 25000", view.PotentialReach)
	}
	if !almostEqual(view.ReachRatePercent, 28) {
		t.Errorf("ReachRatePercent = %f, want 28", view.ReachRatePercent)
	}

	if len(view.DailyViews) != 2 {
		t.Fatalf("DailyViews length = %d, want 2", len(view.DailyViews))
	}
	last := view.CumulativeViews[len(view.CumulativeViews)-1]
	if last.Value != 7000 {
		t.Errorf("cumulative views should end at 7000, got %f", last.Value)
	}
	if len(view.MonthlyViews) != 1 || view.MonthlyViews[0].Month != "2024-05" {
		t.Errorf("MonthlyViews = %v", view.MonthlyViews)
	}
	if view.TopVideos[0].VideoID != "b" {
		t.Errorf("top video by views = %s, want b", view.TopVideos[0].VideoID)
	}
}

func TestBuildExplorerViewFilters(t *testing.T) {
	ds := fullDataset()

	unfiltered := BuildExplorerView(ds, ExplorerFilter{})
	if unfiltered.FilteredRows != 3 || unfiltered.TotalRows != 3 {
		t.Errorf("unfiltered rows = %d/%d, want 3/3", unfiltered.FilteredRows, unfiltered.TotalRows)
	}
	if len(unfiltered.Channels) != 2 || len(unfiltered.Categories) != 2 {
		t.Errorf("distinct channels/categories = %d/%d, want 2/2", len(unfiltered.Channels), len(unfiltered.Categories))
	}

	view := BuildExplorerView(ds, ExplorerFilter{
		Channels: []string{"Kanal Satu"},
		MinViews: 1500,
	})
	if view.FilteredRows != 1 {
		t.Fatalf("FilteredRows = %d, want 1", view.FilteredRows)
	}
	if view.Rows[0].VideoID != "c" {
		t.Errorf("surviving row = %s, want c", view.Rows[0].VideoID)
	}

	// 數值摘要跟著篩選後的列
	for _, ns := range view.NumericSummary {
		if ns.Column == models.ColViews {
			if ns.Stats.Sum != 2000 || ns.Stats.Count != 1 {
				t.Errorf("filtered views summary = %+v", ns.Stats)
			}
		}
	}

	byCategory := BuildExplorerView(ds, ExplorerFilter{Categories: []string{"News"}})
	if byCategory.FilteredRows != 1 || byCategory.Rows[0].VideoID != "b" {
		t.Errorf("category filter rows = %d", byCategory.FilteredRows)
	}
}

func TestBuildSentimentViewWithoutResults(t *testing.T) {
	view := BuildSentimentView(fullDataset(), nil, nil)
	if !view.Degraded {
		t.Error("sentiment view without a result set should be degraded")
	}
	if view.TotalComments != 100 {
		t.Errorf("TotalComments = %f, want 100", view.TotalComments)
	}
	if len(view.MostCommented) != 3 || view.MostCommented[0].VideoID != "c" {
		t.Errorf("MostCommented head = %+v", view.MostCommented)
	}
	if len(view.CommentTrend) != 2 {
		t.Errorf("CommentTrend length = %d, want 2", len(view.CommentTrend))
	}
}

func TestBuildSentimentViewLabelCounts(t *testing.T) {
	rs := &models.SentimentResultSet{
		Generation: 1,
		Comments: []models.CommentRecord{
			{NormalizedText: "bagus sekali", Sentiment: models.SentimentPositive},
			{NormalizedText: "jelek sekali", Sentiment: models.SentimentNegative},
		},
	}
	view := BuildSentimentView(fullDataset(), rs, map[string]struct{}{"sekali": {}})
	if view.Degraded {
		t.Error("view should not be degraded with a healthy result set")
	}
	if view.LabelCounts[models.SentimentPositive] != 1 {
		t.Errorf("LabelCounts = %v", view.LabelCounts)
	}
	for _, w := range view.TopWords {
		if w.Word == "sekali" {
			t.Error("stopword leaked into TopWords")
		}
	}
}
