package analytics

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Count != 8 {
		t.Errorf("Count = %d, want 8", s.Count)
	}
	if !almostEqual(s.Mean, 5) {
		t.Errorf("Mean = %f, want 5", s.Mean)
	}
	// 樣本標準差：sqrt(32/7)
	if !almostEqual(s.Std, math.Sqrt(32.0/7.0)) {
		t.Errorf("Std = %f, want %f", s.Std, math.Sqrt(32.0/7.0))
	}
	if s.Min != 2 || s.Max != 9 || s.Sum != 40 {
		t.Errorf("Min/Max/Sum = %f/%f/%f", s.Min, s.Max, s.Sum)
	}
	if !almostEqual(s.Median, 4.5) {
		t.Errorf("Median = %f, want 4.5", s.Median)
	}
	if !almostEqual(s.Q25, 4) {
		t.Errorf("Q25 = %f, want 4", s.Q25)
	}
	if !almostEqual(s.Q75, 5.5) {
		t.Errorf("Q75 = %f, want 5.5", s.Q75)
	}
}

func TestDescribeEdgeCases(t *testing.T) {
	empty := Describe(nil)
	if empty.Count != 0 || empty.Mean != 0 || empty.Std != 0 {
		t.Errorf("empty Describe should be all zeros: %+v", empty)
	}

	single := Describe([]float64{42})
	if single.Mean != 42 || single.Median != 42 || single.Std != 0 {
		t.Errorf("single-value Describe = %+v", single)
	}
}

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	if got := quantile(sorted, 0.5); !almostEqual(got, 2.5) {
		t.Errorf("median of 1..4 = %f, want 2.5", got)
	}
	if got := quantile(sorted, 0.25); !almostEqual(got, 1.75) {
		t.Errorf("q25 of 1..4 = %f, want 1.75", got)
	}
}

func TestDetectSpikes(t *testing.T) {
	// 十天基線 100，第十一天爆量：該天必須被標成尖峰
	daily := []DateValue{
		{Date: "2024-05-01", Value: 100},
		{Date: "2024-05-02", Value: 100},
		{Date: "2024-05-03", Value: 100},
		{Date: "2024-05-04", Value: 100},
		{Date: "2024-05-05", Value: 100},
		{Date: "2024-05-06", Value: 100},
		{Date: "2024-05-07", Value: 100},
		{Date: "2024-05-08", Value: 100},
		{Date: "2024-05-09", Value: 100},
		{Date: "2024-05-10", Value: 100},
		{Date: "2024-05-11", Value: 1000},
	}
	report := DetectSpikes(daily)
	if report == nil {
		t.Fatal("DetectSpikes returned nil for sufficient data")
	}
	if len(report.Spikes) != 1 || report.Spikes[0].Date != "2024-05-11" {
		t.Fatalf("Spikes = %v, want the single burst day", report.Spikes)
	}
	if report.Threshold <= report.Mean {
		t.Errorf("Threshold %f should exceed Mean %f", report.Threshold, report.Mean)
	}
	if len(report.TopSpikes) != 1 {
		t.Errorf("TopSpikes length = %d, want 1", len(report.TopSpikes))
	}
}

func TestDetectSpikesUniformSeries(t *testing.T) {
	daily := []DateValue{
		{Date: "2024-05-01", Value: 100},
		{Date: "2024-05-02", Value: 100},
		{Date: "2024-05-03", Value: 100},
	}
	report := DetectSpikes(daily)
	if report == nil {
		t.Fatal("DetectSpikes returned nil")
	}
	if len(report.Spikes) != 0 {
		t.Errorf("uniform series should have no spikes, got %v", report.Spikes)
	}
}

func TestDetectSpikesTooFewDays(t *testing.T) {
	if got := DetectSpikes([]DateValue{{Date: "2024-05-01", Value: 5}}); got != nil {
		t.Errorf("fewer than two days should yield nil, got %+v", got)
	}
}
