package analytics

import (
	"database/sql"
	"testing"

	"github.com/alrahmads/SocialSight-Analytics/internal/models"
)

func TestDurationSeconds(t *testing.T) {
	tests := []struct {
		token string
		want  int64
	}{
		{"PT0S", 0},
		{"PT1M", 60},
		{"PT30S", 30},
		{"PT1H", 3600},
		{"PT1H2M3S", 3723},
		{"PT2M10S", 130},
		{"PT1H5S", 3605},
		{"", 0},
		{"PT", 0},
		{"PTxyzS", 0},
		{"PTxHyMzS", 0},
		{"  PT1M  ", 60},
		{"invalid", 0},
	}
	for _, tt := range tests {
		if got := DurationSeconds(tt.token); got != tt.want {
			t.Errorf("DurationSeconds(%q) = %d, want %d", tt.token, got, tt.want)
		}
	}
}

func TestSafeRateZeroViews(t *testing.T) {
	if got := safeRate(10, 0); got != 0 {
		t.Errorf("safeRate(10, 0) = %f, want 0", got)
	}
	if got := safeRate(5, 100); got != 5 {
		t.Errorf("safeRate(5, 100) = %f, want 5", got)
	}
}

func TestQualityBucket(t *testing.T) {
	tests := []struct {
		q    float64
		want models.QualityCategory
	}{
		{-1, ""},
		{0, ""},
		{0.5, models.QualityLow},
		{10, models.QualityLow},
		{10.1, models.QualityMedium},
		{50, models.QualityMedium},
		{51, models.QualityHigh},
		{100, models.QualityHigh},
		{100.5, models.QualityVeryHigh},
		{1e6, models.QualityVeryHigh},
	}
	for _, tt := range tests {
		if got := qualityBucket(tt.q); got != tt.want {
			t.Errorf("qualityBucket(%v) = %q, want %q", tt.q, got, tt.want)
		}
	}
}

func TestApplyDerivedMetrics(t *testing.T) {
	ds := &models.Dataset{
		Columns: map[string]bool{
			models.ColViews:    true,
			models.ColLikes:    true,
			models.ColComments: true,
			models.ColDurasi:   true,
		},
		Rows: []models.VideoRecord{
			{Views: 1000, Likes: 80, Comments: 20, Durasi: sql.NullString{String: "PT2M10S", Valid: true}},
			{Views: 0, Likes: 5, Comments: 5},
		},
	}
	ApplyDerivedMetrics(ds)

	first := ds.Rows[0]
	if first.Engagement != 100 {
		t.Errorf("Engagement = %f, want 100", first.Engagement)
	}
	if first.EngagementRate != 10 {
		t.Errorf("EngagementRate = %f, want 10", first.EngagementRate)
	}
	if first.LikeRate != 8 || first.CommentRate != 2 {
		t.Errorf("LikeRate/CommentRate = %f/%f, want 8/2", first.LikeRate, first.CommentRate)
	}
	if first.DurationSeconds != 130 {
		t.Errorf("DurationSeconds = %d, want 130", first.DurationSeconds)
	}
	// 80 / (20+1) ≈ 3.81 → Low
	if first.Quality != models.QualityLow {
		t.Errorf("Quality = %q, want Low", first.Quality)
	}

	// Views == 0 的列：所有比率精確為 0
	second := ds.Rows[1]
	if second.EngagementRate != 0 || second.LikeRate != 0 || second.CommentRate != 0 {
		t.Errorf("zero-view row should have zero rates, got %f/%f/%f",
			second.EngagementRate, second.LikeRate, second.CommentRate)
	}
	if second.Engagement != 10 {
		t.Errorf("Engagement = %f, want 10", second.Engagement)
	}
}

func TestApplyDerivedMetricsCommentsRecount(t *testing.T) {
	ds := &models.Dataset{
		Columns: map[string]bool{
			models.ColViews:    true,
			models.ColLikes:    true,
			models.ColComments: true,
			models.ColKomentar: true,
		},
		Rows: []models.VideoRecord{
			{Views: 100, Likes: 10, Comments: 999,
				KomentarLengkap: sql.NullString{String: "bagus || keren || mantap", Valid: true}},
			{Views: 100, Likes: 10, Comments: 999},
		},
	}
	ApplyDerivedMetrics(ds)

	if ds.Rows[0].Comments != 3 {
		t.Errorf("Comments should be recounted from the raw column: got %f, want 3", ds.Rows[0].Comments)
	}
	if ds.Rows[0].Engagement != 13 {
		t.Errorf("Engagement = %f, want 13", ds.Rows[0].Engagement)
	}
	if ds.Rows[1].Comments != 0 {
		t.Errorf("row without raw comments should recount to 0, got %f", ds.Rows[1].Comments)
	}
}

func TestApplyDerivedMetricsMissingColumns(t *testing.T) {
	ds := &models.Dataset{
		Columns: map[string]bool{models.ColViews: true},
		Rows:    []models.VideoRecord{{Views: 100}},
	}
	ApplyDerivedMetrics(ds) // 不應 panic，也不應指派互動指標
	if ds.Rows[0].Engagement != 0 || ds.Rows[0].Quality != "" {
		t.Errorf("engagement metrics should be skipped without Likes/Comments columns")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		token string
		valid bool
	}{
		{"2024-05-01", true},
		{"2024-05-01 10:30:00", true},
		{"2024-05-01T10:30:00Z", true},
		{"01/05/2024", true},
		{"", false},
		{"bukan tanggal", false},
	}
	for _, tt := range tests {
		got := ParseDate(tt.token)
		if got.Valid != tt.valid {
			t.Errorf("ParseDate(%q).Valid = %v, want %v", tt.token, got.Valid, tt.valid)
		}
	}
}
