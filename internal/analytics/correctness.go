package analytics

import "strings"

// Derive grades a single question record.
//
// Precedence:
//  1. An explicit override always wins, regardless of the answers.
//  2. No canonical answer → Unknown (cannot grade).
//  3. No chosen answer → Incorrect. Unanswered counts against the
//     student; this mirrors how the papers themselves are marked.
//  4. Case-insensitive compare of chosen vs canonical.
func Derive(r QuestionRecord) Correctness {
	if r.Override != nil {
		if *r.Override {
			return Correct
		}
		return Incorrect
	}
	if r.Canonical == "" {
		return Unknown
	}
	if r.Chosen == "" {
		return Incorrect
	}
	if strings.EqualFold(r.Chosen, r.Canonical) {
		return Correct
	}
	return Incorrect
}

// DeriveAll grades every record in order. The returned slice is indexed
// parallel to records.
func DeriveAll(records []QuestionRecord) []Correctness {
	out := make([]Correctness, len(records))
	for i, r := range records {
		out[i] = Derive(r)
	}
	return out
}
