package analytics

import (
	"math"
	"testing"
	"time"
)

func TestBuildReport(t *testing.T) {
	records := []QuestionRecord{
		{Index: 0, QuestionNumber: 1, PartLabel: "Mathematics 1", Chosen: "A", Canonical: "A", ElapsedSeconds: 30},
		{Index: 1, QuestionNumber: 2, PartLabel: "Mathematics 1", Chosen: "B", Canonical: "A", ElapsedSeconds: 45},
		{Index: 2, QuestionNumber: 3, PartLabel: "Physics", Chosen: "C", Canonical: "C", Guessed: true, ElapsedSeconds: 60},
	}
	conversions := []ConversionRow{
		{PartName: "Mathematics 1", RawScore: 0, ScaledScore: 1.0},
		{PartName: "Mathematics 1", RawScore: 1, ScaledScore: 4.0},
		{PartName: "Mathematics 1", RawScore: 2, ScaledScore: 7.0},
		{PartName: "Physics", RawScore: 0, ScaledScore: 1.0},
		{PartName: "Physics", RawScore: 1, ScaledScore: 5.0},
	}
	percentiles := map[string][]PercentileRow{
		"Physics": {{Score: 1, CumulativePercent: 0}, {Score: 9, CumulativePercent: 100}},
		OverallKey: {
			{Score: 2, CumulativePercent: 0},
			{Score: 18, CumulativePercent: 100},
		},
	}

	report := BuildReport(records, &ESATProfile, "", conversions, percentiles)

	if report.TotalQuestions != 3 || report.RawCorrect != 2 {
		t.Fatalf("counts: total %d raw %d", report.TotalQuestions, report.RawCorrect)
	}

	m1 := report.Sections["Mathematics 1"]
	if m1.Scale.Scaled == nil || *m1.Scale.Scaled != 4.0 {
		t.Errorf("Mathematics 1 scaled = %v, want 4.0", m1.Scale.Scaled)
	}
	if !m1.Scale.Matched {
		t.Error("Mathematics 1 should match conversion rows")
	}
	if m1.Percentile != nil {
		t.Error("Mathematics 1 has no percentile table, want nil")
	}

	phys := report.Sections["Physics"]
	if phys.Scale.Scaled == nil || *phys.Scale.Scaled != 5.0 {
		t.Errorf("Physics scaled = %v, want 5.0", phys.Scale.Scaled)
	}
	if phys.Percentile == nil || math.Abs(*phys.Percentile-50) > 1e-9 {
		t.Errorf("Physics percentile = %v, want 50", phys.Percentile)
	}

	if report.ScaledTotal == nil || *report.ScaledTotal != 9.0 {
		t.Fatalf("scaled total = %v, want 9.0", report.ScaledTotal)
	}
	if report.Percentile == nil || math.Abs(*report.Percentile-43.75) > 1e-9 {
		t.Errorf("overall percentile = %v, want 43.75", report.Percentile)
	}

	if len(report.Trend) != 3 {
		t.Errorf("trend points = %d, want 3", len(report.Trend))
	}
	if report.Streaks.LongestCorrect != 1 {
		t.Errorf("streaks = %+v", report.Streaks)
	}
	if report.Guess.Guessed.Count != 1 {
		t.Errorf("guess split = %+v", report.Guess)
	}
}

func TestBuildReportNoTables(t *testing.T) {
	records := []QuestionRecord{
		{Index: 0, PartLabel: "Physics", Chosen: "A", Canonical: "A"},
	}
	report := BuildReport(records, &ESATProfile, "", nil, nil)

	if report.ScaledTotal != nil || report.Percentile != nil {
		t.Fatalf("missing tables must yield nil results: %+v", report)
	}
	phys := report.Sections["Physics"]
	if phys.Scale.Scaled != nil {
		t.Errorf("no conversion table: scaled = %v, want nil", phys.Scale.Scaled)
	}
	// An empty table is "no conversion available", not a data-quality
	// mismatch: no warning expected.
	if len(report.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", report.Warnings)
	}
}

func TestBuildReportUnmatchedSectionWarns(t *testing.T) {
	records := []QuestionRecord{
		{Index: 0, PartLabel: "Physics", Chosen: "A", Canonical: "A"},
	}
	conversions := []ConversionRow{{PartName: "Ancient History", RawScore: 1, ScaledScore: 9}}

	report := BuildReport(records, &ESATProfile, "", conversions, nil)
	if len(report.Warnings) != 1 {
		t.Fatalf("want unmatched warning, got %v", report.Warnings)
	}
	if report.Sections["Physics"].Scale.Matched {
		t.Error("Physics should be unmatched against this table")
	}
}

func TestPartLetter(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Part A", "A"},
		{"Part B: Physics", "B"},
		{"part c", "C"},
		{"Mathematics 1", ""},
		{"Part 9", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := PartLetter(tc.label); got != tc.want {
			t.Errorf("PartLetter(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestHistoryTrend(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	summaries := []SessionSummary{
		{SessionID: "a", FinishedAt: base, RawCorrect: 5, Total: 10, AvgSeconds: 40},
		{SessionID: "b", FinishedAt: base.AddDate(0, 0, 1), RawCorrect: 6, Total: 10, AvgSeconds: 35},
		{SessionID: "c", FinishedAt: base.AddDate(0, 0, 2), RawCorrect: 9, Total: 10, AvgSeconds: 30},
	}

	points := HistoryTrend(summaries)
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	// w=3 clips to all sessions → flat 20/30.
	for i, p := range points {
		if math.Abs(p.Accuracy-2.0/3.0) > 1e-9 {
			t.Errorf("point %d: accuracy %v, want 2/3", i, p.Accuracy)
		}
		if math.Abs(p.AvgSeconds-35) > 1e-9 {
			t.Errorf("point %d: avg seconds %v, want 35", i, p.AvgSeconds)
		}
	}

	if HistoryTrend(nil) != nil {
		t.Error("empty history should return nil")
	}
}
