package analytics

import (
	"math"
	"testing"
)

func TestRollingWindow(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 3}, {5, 3}, {30, 3}, {40, 4}, {100, 10},
	}
	for _, tc := range tests {
		if got := RollingWindow(tc.n); got != tc.want {
			t.Errorf("RollingWindow(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestRollingTrendFlatForSmallSession(t *testing.T) {
	// spec scenario: 3 questions, correctness [true,false,true], w=3 clips
	// to the full array → flat 2/3 at every index.
	records := []QuestionRecord{
		{Index: 0, Chosen: "A", Canonical: "A"},
		{Index: 1, Chosen: "B", Canonical: "A"},
		{Index: 2, Chosen: "C", Canonical: "C"},
	}
	points := RollingTrend(records, DeriveAll(records))
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	for i, p := range points {
		if math.Abs(p.Accuracy-2.0/3.0) > 1e-9 {
			t.Errorf("index %d: accuracy %v, want 2/3", i, p.Accuracy)
		}
	}
}

func TestRollingTrendCarriesForward(t *testing.T) {
	// All-Unknown windows must reuse the previous accuracy, never divide
	// by zero.
	records := []QuestionRecord{
		{Index: 0, Chosen: "A"},
		{Index: 1, Chosen: "B"},
	}
	points := RollingTrend(records, DeriveAll(records))
	for i, p := range points {
		if p.Accuracy != 0 {
			t.Errorf("index %d: accuracy %v, want 0 carry", i, p.Accuracy)
		}
	}
}

func TestRollingTrendEmpty(t *testing.T) {
	if points := RollingTrend(nil, nil); points != nil {
		t.Fatalf("empty session: got %v", points)
	}
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name   string
		graded []Correctness
		want   StreakSummary
	}{
		{"simple", []Correctness{Correct, Correct, Incorrect, Correct}, StreakSummary{LongestCorrect: 2, LongestIncorrect: 1}},
		{"unknown resets", []Correctness{Correct, Correct, Unknown, Correct}, StreakSummary{LongestCorrect: 2}},
		{"all incorrect", []Correctness{Incorrect, Incorrect, Incorrect}, StreakSummary{LongestIncorrect: 3}},
		{"empty", nil, StreakSummary{}},
	}
	for _, tc := range tests {
		if got := Streaks(tc.graded); got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestExtremes(t *testing.T) {
	records := []QuestionRecord{
		{Index: 0, ElapsedSeconds: 30},
		{Index: 1, ElapsedSeconds: 10},
		{Index: 2, ElapsedSeconds: 0}, // Untimed, excluded
		{Index: 3, ElapsedSeconds: 90},
		{Index: 4, ElapsedSeconds: 10}, // Tie with index 1, index order wins
		{Index: 5, ElapsedSeconds: 45},
	}
	ext := Extremes(records)

	if len(ext.Fastest) != 3 || len(ext.Slowest) != 3 {
		t.Fatalf("want 3 per side, got %d/%d", len(ext.Fastest), len(ext.Slowest))
	}
	if ext.Fastest[0].Index != 1 || ext.Fastest[1].Index != 4 {
		t.Errorf("fastest tie-break wrong: %v", ext.Fastest)
	}
	if ext.Slowest[0].Index != 3 {
		t.Errorf("slowest[0] = %v, want index 3", ext.Slowest[0])
	}
	for _, r := range append(ext.Fastest, ext.Slowest...) {
		if r.ElapsedSeconds == 0 {
			t.Error("zero-time record leaked into extremes")
		}
	}
}

func TestExtremesShortSession(t *testing.T) {
	records := []QuestionRecord{{Index: 0, ElapsedSeconds: 5}}
	ext := Extremes(records)
	if len(ext.Fastest) != 1 || len(ext.Slowest) != 1 {
		t.Fatalf("short session: got %d/%d", len(ext.Fastest), len(ext.Slowest))
	}
}

func TestSplitByGuess(t *testing.T) {
	records := []QuestionRecord{
		{Guessed: true, Chosen: "A", Canonical: "A", ElapsedSeconds: 20},
		{Guessed: true, Chosen: "B", Canonical: "A", ElapsedSeconds: 20},
		{Guessed: false, Chosen: "C", Canonical: "C", ElapsedSeconds: 60},
	}
	split := SplitByGuess(records, DeriveAll(records))

	if split.Guessed.Count != 2 || split.Confident.Count != 1 {
		t.Fatalf("counts: %+v", split)
	}
	if math.Abs(split.Guessed.Accuracy-0.5) > 1e-9 {
		t.Errorf("guessed accuracy %v, want 0.5", split.Guessed.Accuracy)
	}
	if math.Abs(split.Confident.Accuracy-1.0) > 1e-9 {
		t.Errorf("confident accuracy %v, want 1", split.Confident.Accuracy)
	}
	if math.Abs(split.Guessed.TimeShare-0.4) > 1e-9 {
		t.Errorf("guessed time share %v, want 0.4", split.Guessed.TimeShare)
	}
	if math.Abs(split.Guessed.TimeShare+split.Confident.TimeShare-1.0) > 1e-9 {
		t.Errorf("time shares do not sum to 1: %+v", split)
	}
}

func TestComputeTimeStats(t *testing.T) {
	records := []QuestionRecord{
		{ElapsedSeconds: 10},
		{ElapsedSeconds: 30},
		{ElapsedSeconds: 20},
		{ElapsedSeconds: 40},
	}
	stats := ComputeTimeStats(records)

	if stats.MedianSeconds != 25 { // Even count: mean of middle two
		t.Errorf("median %v, want 25", stats.MedianSeconds)
	}
	if stats.TotalSeconds != 100 {
		t.Errorf("total %v, want 100", stats.TotalSeconds)
	}

	odd := ComputeTimeStats(records[:3])
	if odd.MedianSeconds != 20 {
		t.Errorf("odd median %v, want 20", odd.MedianSeconds)
	}

	empty := ComputeTimeStats(nil)
	if empty.MedianSeconds != 0 || empty.TotalSeconds != 0 {
		t.Errorf("empty stats: %+v", empty)
	}
}
