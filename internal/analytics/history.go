package analytics

import "time"

// SessionSummary is the persisted per-session digest consumed by the
// cross-session history charts.
type SessionSummary struct {
	SessionID   string     `json:"session_id"`
	FinishedAt  time.Time  `json:"finished_at"`
	RawCorrect  int        `json:"raw_correct"`
	Total       int        `json:"total"`
	ScaledTotal *float64   `json:"scaled_total,omitempty"`
	Percentile  *float64   `json:"percentile,omitempty"`
	AvgSeconds  float64    `json:"avg_seconds"`
}

// HistoryPoint is one smoothed sample of a student's progress line.
type HistoryPoint struct {
	SessionID  string    `json:"session_id"`
	FinishedAt time.Time `json:"finished_at"`
	Accuracy   float64   `json:"accuracy"`
	AvgSeconds float64   `json:"avg_seconds"`
}

// HistoryTrend smooths accuracy and speed across a student's completed
// sessions, oldest first, using the same clipped symmetric window as
// the in-session trend. Sessions without gradeable questions carry the
// previous accuracy forward.
func HistoryTrend(summaries []SessionSummary) []HistoryPoint {
	n := len(summaries)
	if n == 0 {
		return nil
	}
	w := RollingWindow(n)

	points := make([]HistoryPoint, n)
	prevAccuracy := 0.0

	for i := 0; i < n; i++ {
		lo, hi := i-w, i+w
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}

		correct, total := 0, 0
		timeSum := 0.0
		for j := lo; j <= hi; j++ {
			correct += summaries[j].RawCorrect
			total += summaries[j].Total
			timeSum += summaries[j].AvgSeconds
		}

		p := HistoryPoint{
			SessionID:  summaries[i].SessionID,
			FinishedAt: summaries[i].FinishedAt,
			AvgSeconds: timeSum / float64(hi-lo+1),
		}
		if total > 0 {
			p.Accuracy = float64(correct) / float64(total)
			prevAccuracy = p.Accuracy
		} else {
			p.Accuracy = prevAccuracy
		}
		points[i] = p
	}

	return points
}
