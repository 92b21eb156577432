package analytics

// Correctness is the tri-state grading result for a single question.
type Correctness int

const (
	// Unknown means the question cannot be graded (no canonical answer).
	Unknown Correctness = iota
	Correct
	Incorrect
)

// String implements fmt.Stringer for log output.
func (c Correctness) String() string {
	switch c {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// QuestionRecord is one question of a recorded practice session.
// Index values are contiguous and unique within a session;
// QuestionNumber = rangeStart + Index.
type QuestionRecord struct {
	Index          int      `json:"index"`
	QuestionNumber int      `json:"question_number"`
	PartLabel      string   `json:"part_label"`
	Canonical      string   `json:"canonical,omitempty"` // Correct choice letter, "" if unknown
	Chosen         string   `json:"chosen,omitempty"`    // Student's choice letter, "" if unanswered
	Override       *bool    `json:"override,omitempty"`  // Explicit user marking, wins over derivation
	Guessed        bool     `json:"guessed"`
	ElapsedSeconds float64  `json:"elapsed_seconds"`
	MistakeTags    []string `json:"mistake_tags,omitempty"`
}

// SectionBucket aggregates per-question results for one section of a paper.
// It is always a fresh projection of the answer log, never mutated in place.
type SectionBucket struct {
	CorrectCount     int     `json:"correct_count"`
	TotalCount       int     `json:"total_count"`
	GuessedCount     int     `json:"guessed_count"`
	TotalTimeSeconds float64 `json:"total_time_seconds"`
	AvgTimeSeconds   float64 `json:"avg_time_seconds"`
}

// ConversionRow is one entry of a raw→scaled score conversion table.
// Tables hold multiple rows per part name with ascending raw scores.
type ConversionRow struct {
	PartName    string  `json:"part_name"`
	RawScore    int     `json:"raw_score"`
	ScaledScore float64 `json:"scaled_score"`
}

// PercentileRow is one entry of a cumulative score distribution table,
// ascending in both Score and CumulativePercent.
type PercentileRow struct {
	Score             float64 `json:"score"`
	CumulativePercent float64 `json:"cumulative_percent"`
}
