package sentiment

import (
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

func TestLabelCounts(t *testing.T) {
	rs := &models.SentimentResultSet{Comments: []models.CommentRecord{
		{Sentiment: models.SentimentPositive},
		{Sentiment: models.SentimentPositive},
		{Sentiment: models.SentimentNegative},
	}}
	counts := LabelCounts(rs)
	if counts[models.SentimentPositive] != 2 || counts[models.SentimentNegative] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	// 沒出現的標籤也要有明確的零值
	if n, ok := counts[models.SentimentNeutral]; !ok || n != 0 {
		t.Errorf("Neutral should be present with zero count, got %d (present: %v)", n, ok)
	}
}

func TestTopWords(t *testing.T) {
	rs := &models.SentimentResultSet{Comments: []models.CommentRecord{
		{NormalizedText: "bagus bagus jelek"},
		{NormalizedText: "jelek keren yang itu ya"},
		{NormalizedText: "keren"},
	}}
	stopwords := map[string]struct{}{"yang": {}, "itu": {}}

	got := TopWords(rs, stopwords)
	// "ya" 只有兩個字元、"yang"/"itu" 是停用詞；
	// bagus/jelek 同為 2 次，bagus 先出現
	want := []models.WordCount{
		{Word: "bagus", Count: 2},
		{Word: "jelek", Count: 2},
		{Word: "keren", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopWords = %v, want %v", got, want)
	}
}

func TestTopWordsLimit(t *testing.T) {
	var comments []models.CommentRecord
	words := []string{
		"satu", "dua", "tiga", "empat", "lima", "enam", "tujuh", "delapan",
		"sembilan", "sepuluh", "sebelas", "duabelas", "tigabelas", "empatbelas",
		"limabelas", "enambelas", "tujuhbelas",
	}
	for _, w := range words {
		comments = append(comments, models.CommentRecord{NormalizedText: w})
	}
	got := TopWords(&models.SentimentResultSet{Comments: comments}, nil)
	if len(got) != topWordLimit {
		t.Errorf("TopWords length = %d, want %d", len(got), topWordLimit)
	}
}

func TestDailyCounts(t *testing.T) {
	day := func(d int) sql.NullTime {
		return sql.NullTime{Time: time.Date(2024, 5, d, 12, 0, 0, 0, time.UTC), Valid: true}
	}
	rs := &models.SentimentResultSet{Comments: []models.CommentRecord{
		{SourceTimestamp: day(2), Sentiment: models.SentimentNegative},
		{SourceTimestamp: day(1), Sentiment: models.SentimentPositive},
		{SourceTimestamp: day(1), Sentiment: models.SentimentPositive},
		{SourceTimestamp: day(1), Sentiment: models.SentimentNegative},
		{Sentiment: models.SentimentNeutral}, // 沒有時間戳：不列入
	}}

	got := DailyCounts(rs)
	want := []models.DailySentimentCount{
		{Date: "2024-05-01", Sentiment: models.SentimentPositive, Count: 2},
		{Date: "2024-05-01", Sentiment: models.SentimentNegative, Count: 1},
		{Date: "2024-05-02", Sentiment: models.SentimentNegative, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DailyCounts = %v, want %v", got, want)
	}
}
