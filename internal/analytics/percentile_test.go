package analytics

import (
	"math"
	"testing"
)

var distTable = []PercentileRow{
	{Score: 0, CumulativePercent: 0},
	{Score: 10, CumulativePercent: 50},
	{Score: 20, CumulativePercent: 100},
}

func TestInterpolatePercentile(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{15, 75}, // spec scenario: bracket (10,50)-(20,100), fraction 0.5
		{0, 0},
		{10, 50},
		{20, 100},
		{-5, 0},   // Below table clamps to first row
		{25, 100}, // Above table clamps to last row
		{5, 25},
	}
	for _, tc := range tests {
		got := InterpolatePercentile(distTable, tc.score)
		if got == nil || math.Abs(*got-tc.want) > 1e-9 {
			t.Errorf("score %v: got %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestInterpolatePercentileEmptyTable(t *testing.T) {
	if got := InterpolatePercentile(nil, 10); got != nil {
		t.Fatalf("empty table: got %v, want nil", got)
	}
}

func TestInterpolatePercentileDegenerate(t *testing.T) {
	// Zero-width bracket must not divide by zero.
	table := []PercentileRow{
		{Score: 10, CumulativePercent: 40},
		{Score: 10, CumulativePercent: 60},
		{Score: 20, CumulativePercent: 100},
	}
	got := InterpolatePercentile(table, 10)
	if got == nil || *got != 40 {
		t.Fatalf("zero-width bracket: got %v, want 40", got)
	}

	single := []PercentileRow{{Score: 5, CumulativePercent: 50}}
	got = InterpolatePercentile(single, 99)
	if got == nil || *got != 50 {
		t.Fatalf("single row: got %v, want 50", got)
	}
}

func TestInterpolatePercentileClampsMalformed(t *testing.T) {
	table := []PercentileRow{
		{Score: 0, CumulativePercent: -10},
		{Score: 10, CumulativePercent: 120},
	}
	lo := InterpolatePercentile(table, -1)
	hi := InterpolatePercentile(table, 11)
	if lo == nil || *lo != 0 {
		t.Errorf("low clamp: got %v, want 0", lo)
	}
	if hi == nil || *hi != 100 {
		t.Errorf("high clamp: got %v, want 100", hi)
	}
}

func TestInterpolatePercentileMonotonic(t *testing.T) {
	prev := -1.0
	for score := -2.0; score <= 24; score += 0.5 {
		got := InterpolatePercentile(distTable, score)
		if got == nil {
			t.Fatalf("score %v: nil result", score)
		}
		if *got < prev {
			t.Fatalf("not monotonic at score %v: %v < %v", score, *got, prev)
		}
		prev = *got
	}
}

func TestInterpolateScoreRoundTrip(t *testing.T) {
	for score := 0.0; score <= 20; score += 2.5 {
		p := InterpolatePercentile(distTable, score)
		if p == nil {
			t.Fatalf("score %v: nil percentile", score)
		}
		back := InterpolateScore(distTable, *p)
		if back == nil || math.Abs(*back-score) > 1e-9 {
			t.Errorf("round trip for %v: got %v", score, back)
		}
	}
}

func TestInterpolateScoreBounds(t *testing.T) {
	lo := InterpolateScore(distTable, -5)
	hi := InterpolateScore(distTable, 110)
	if lo == nil || *lo != 0 {
		t.Errorf("below table: got %v, want 0", lo)
	}
	if hi == nil || *hi != 20 {
		t.Errorf("above table: got %v, want 20", hi)
	}
	if got := InterpolateScore(nil, 50); got != nil {
		t.Errorf("empty table: got %v, want nil", got)
	}
}
