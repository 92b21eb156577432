package model

// LeaderboardEntry is one ranked row of an exam's leaderboard.
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	StudentID   int     `json:"student_id"`
	Name        string  `json:"name,omitempty"`
	ScaledTotal float64 `json:"scaled_total"`
}
