package analytics

import "testing"

func TestScaleScoreExactMatch(t *testing.T) {
	table := []ConversionRow{
		{PartName: "Mathematics 1", RawScore: 10, ScaledScore: 4.5},
		{PartName: "Mathematics 1", RawScore: 20, ScaledScore: 6.0},
		{PartName: "Physics", RawScore: 10, ScaledScore: 5.0},
	}

	got := ScaleScore(table, "mathematics 1", 20, TieBreakNearest)
	if got == nil || *got != 6.0 {
		t.Fatalf("ScaleScore = %v, want 6.0", got)
	}
}

func TestScaleScoreNearest(t *testing.T) {
	table := []ConversionRow{
		{PartName: "A", RawScore: 0, ScaledScore: 1.0},
		{PartName: "A", RawScore: 10, ScaledScore: 9.0},
	}

	tests := []struct {
		raw  int
		want float64
	}{
		{3, 1.0},
		{7, 9.0},
		{5, 1.0}, // Exact midpoint resolves to the lower raw score
		{-2, 1.0},
		{14, 9.0},
	}
	for _, tc := range tests {
		got := ScaleScore(table, "A", tc.raw, TieBreakNearest)
		if got == nil || *got != tc.want {
			t.Errorf("raw %d: got %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestScaleScoreMidpointTie(t *testing.T) {
	// spec scenario: [(0,0),(10,100)], raw 5 → lower raw score's value.
	table := []ConversionRow{
		{PartName: "A", RawScore: 0, ScaledScore: 0},
		{PartName: "A", RawScore: 10, ScaledScore: 100},
	}
	got := ScaleScore(table, "A", 5, TieBreakNearest)
	if got == nil || *got != 0 {
		t.Fatalf("midpoint tie: got %v, want 0", got)
	}
}

func TestScaleScoreNoRows(t *testing.T) {
	table := []ConversionRow{{PartName: "Physics", RawScore: 5, ScaledScore: 3}}
	if got := ScaleScore(table, "Biology", 5, TieBreakNearest); got != nil {
		t.Fatalf("unknown part: got %v, want nil", got)
	}
	if got := ScaleScore(nil, "Physics", 5, TieBreakNearest); got != nil {
		t.Fatalf("empty table: got %v, want nil", got)
	}
}

func TestScaleScoreIdempotent(t *testing.T) {
	table := []ConversionRow{
		{PartName: "A", RawScore: 0, ScaledScore: 2},
		{PartName: "A", RawScore: 8, ScaledScore: 7},
	}
	first := ScaleScore(table, "A", 5, TieBreakNearest)
	second := ScaleScore(table, "A", 5, TieBreakNearest)
	if first == nil || second == nil || *first != *second {
		t.Fatalf("not idempotent: %v vs %v", first, second)
	}
}

func TestResolvePartName(t *testing.T) {
	table := []ConversionRow{
		{PartName: "Mathematics 1", RawScore: 0, ScaledScore: 1},
		{PartName: "Part C", RawScore: 0, ScaledScore: 1},
		{PartName: "Section 9", RawScore: 0, ScaledScore: 1},
	}

	tests := []struct {
		name        string
		letter      string
		rawLabel    string
		sectionName string
		want        string
		wantMatched bool
	}{
		{"alias wins", "A", "whatever", "", "Mathematics 1", true},
		{"generic part form", "C", "", "", "Part C", true},
		{"raw label", "", "Section 9", "", "Section 9", true},
		{"session name", "", "", "section 9", "Section 9", true},
		{"unmatched keeps best candidate", "Z", "Mystery", "", "Part Z", false},
	}
	for _, tc := range tests {
		got, matched := ResolvePartName(&ESATProfile, tc.letter, tc.rawLabel, tc.sectionName, table)
		if got != tc.want || matched != tc.wantMatched {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", tc.name, got, matched, tc.want, tc.wantMatched)
		}
	}
}

func TestScaleSectionUnmatched(t *testing.T) {
	table := []ConversionRow{{PartName: "Physics", RawScore: 3, ScaledScore: 5}}
	res := ScaleSection(&ESATProfile, table, "Z", "Mystery Section", "", 3)
	if res.Matched {
		t.Fatal("expected unmatched result")
	}
	if res.Scaled != nil {
		t.Fatalf("unmatched result must not carry a score, got %v", *res.Scaled)
	}
	if res.PartName == "" {
		t.Fatal("unmatched result should keep a best-effort part name")
	}
}
