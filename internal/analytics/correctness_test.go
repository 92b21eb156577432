package analytics

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		r    QuestionRecord
		want Correctness
	}{
		{"match", QuestionRecord{Chosen: "A", Canonical: "A"}, Correct},
		{"mismatch", QuestionRecord{Chosen: "B", Canonical: "A"}, Incorrect},
		{"case insensitive", QuestionRecord{Chosen: "a", Canonical: "A"}, Correct},
		{"unanswered counts as incorrect", QuestionRecord{Canonical: "A"}, Incorrect},
		{"no canonical", QuestionRecord{Chosen: "A"}, Unknown},
		{"nothing at all", QuestionRecord{}, Unknown},
		{"override true beats mismatch", QuestionRecord{Chosen: "B", Canonical: "A", Override: boolPtr(true)}, Correct},
		{"override false beats match", QuestionRecord{Chosen: "A", Canonical: "A", Override: boolPtr(false)}, Incorrect},
		{"override without answers", QuestionRecord{Override: boolPtr(true)}, Correct},
	}

	for _, tc := range tests {
		if got := Derive(tc.r); got != tc.want {
			t.Errorf("%s: Derive() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDeriveAll(t *testing.T) {
	records := []QuestionRecord{
		{Chosen: "A", Canonical: "A"},
		{Chosen: "B", Canonical: "A"},
		{Canonical: "A"},
	}
	want := []Correctness{Correct, Incorrect, Incorrect}

	got := DeriveAll(records)
	if len(got) != len(want) {
		t.Fatalf("DeriveAll returned %d results, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
