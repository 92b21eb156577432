package analytics

import (
	"strings"
	"testing"
)

func TestAggregateSections(t *testing.T) {
	records := []QuestionRecord{
		{Index: 0, PartLabel: "Mathematics 1", Chosen: "A", Canonical: "A", ElapsedSeconds: 30},
		{Index: 1, PartLabel: "Mathematics 1", Chosen: "B", Canonical: "A", Guessed: true, ElapsedSeconds: 50},
		{Index: 2, PartLabel: "Physics", Chosen: "C", Canonical: "C", ElapsedSeconds: 40},
	}
	graded := DeriveAll(records)

	buckets, warnings := AggregateSections(records, graded, &ESATProfile, "")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	m1 := buckets["Mathematics 1"]
	if m1.TotalCount != 2 || m1.CorrectCount != 1 || m1.GuessedCount != 1 {
		t.Errorf("Mathematics 1 bucket = %+v", m1)
	}
	if m1.TotalTimeSeconds != 80 || m1.AvgTimeSeconds != 40 {
		t.Errorf("Mathematics 1 time = %+v", m1)
	}

	phys := buckets["Physics"]
	if phys.TotalCount != 1 || phys.CorrectCount != 1 {
		t.Errorf("Physics bucket = %+v", phys)
	}
}

func TestAggregateSectionsInvariants(t *testing.T) {
	records := []QuestionRecord{
		{PartLabel: "Physics", Chosen: "A", Canonical: "A", Guessed: true},
		{PartLabel: "Physics", Chosen: "B", Canonical: "A"},
		{PartLabel: "Physics"},
	}
	buckets, _ := AggregateSections(records, DeriveAll(records), &ESATProfile, "")

	for key, b := range buckets {
		if b.CorrectCount > b.TotalCount {
			t.Errorf("%s: correct %d > total %d", key, b.CorrectCount, b.TotalCount)
		}
		if b.GuessedCount > b.TotalCount {
			t.Errorf("%s: guessed %d > total %d", key, b.GuessedCount, b.TotalCount)
		}
	}
}

func TestAggregateSentinelExcluded(t *testing.T) {
	records := []QuestionRecord{
		{QuestionNumber: 1, PartLabel: "No Section", Chosen: "A", Canonical: "A"},
		{QuestionNumber: 2, PartLabel: "Physics", Chosen: "A", Canonical: "A"},
	}
	buckets, warnings := AggregateSections(records, DeriveAll(records), &ESATProfile, "")

	for key := range buckets {
		if strings.EqualFold(key, "No Section") {
			t.Errorf("sentinel label leaked into buckets: %q", key)
		}
	}
	if len(warnings) != 1 {
		t.Fatalf("want 1 warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "placeholder") {
		t.Errorf("warning should mention placeholder, got %q", warnings[0])
	}
}

func TestAggregateLabelDerivation(t *testing.T) {
	records := []QuestionRecord{{Chosen: "A", Canonical: "A"}}
	graded := DeriveAll(records)

	tests := []struct {
		sectionName string
		wantKey     string
	}{
		{"ESAT Mathematics Practice", "Mathematics 1"},
		{"Advanced Mathematics Drills", "Mathematics 2"},
		{"Physics Past Paper 2023", "Physics"},
	}
	for _, tc := range tests {
		buckets, warnings := AggregateSections(records, graded, &ESATProfile, tc.sectionName)
		if len(warnings) != 0 {
			t.Errorf("%q: unexpected warnings %v", tc.sectionName, warnings)
		}
		if _, ok := buckets[tc.wantKey]; !ok {
			t.Errorf("%q: want bucket %q, got %v", tc.sectionName, tc.wantKey, buckets)
		}
	}
}

func TestAggregateFixedSetDropsUndeterminable(t *testing.T) {
	records := []QuestionRecord{{QuestionNumber: 7, Chosen: "A", Canonical: "A"}}
	buckets, warnings := AggregateSections(records, DeriveAll(records), &ESATProfile, "Evening Review")

	if len(buckets) != 0 {
		t.Errorf("closed-set profile should drop undeterminable records, got %v", buckets)
	}
	if len(warnings) != 1 {
		t.Errorf("want a drop warning, got %v", warnings)
	}
}

func TestAggregateOpenSetFallback(t *testing.T) {
	records := []QuestionRecord{{Chosen: "A", Canonical: "A"}}
	buckets, warnings := AggregateSections(records, DeriveAll(records), &GenericProfile, "Evening Review")

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if b, ok := buckets[FallbackSection]; !ok || b.TotalCount != 1 {
		t.Errorf("want fallback bucket with 1 record, got %v", buckets)
	}
}
