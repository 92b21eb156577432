package model

// AnswerJob is one autosaved answer waiting to be persisted by the
// autosave worker.
type AnswerJob struct {
	SessionID string       `json:"session_id"`
	Answer    AnswerUpdate `json:"answer"`
}

// SummaryJob is a completed session's digest waiting for the report
// worker: summary persistence, leaderboard update and autosave cleanup.
type SummaryJob struct {
	SessionID   string   `json:"session_id"`
	StudentID   int      `json:"student_id"`
	Exam        string   `json:"exam"`
	ScaledTotal *float64 `json:"scaled_total,omitempty"`
	Percentile  *float64 `json:"percentile,omitempty"`
	RawCorrect  int      `json:"raw_correct"`
	Total       int      `json:"total"`
}
