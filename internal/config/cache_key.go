package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's login session.
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:%d", studentID)
}

// SessionAnswersKey returns the autosave hash key for a practice session.
// Fields are question indexes, values are serialized answer updates.
func (r *CacheKeyStruct) SessionAnswersKey(sessionID string) string {
	return fmt.Sprintf("session:%s:answers", sessionID)
}

// SessionReportKey returns the cache key for a computed session report.
func (r *CacheKeyStruct) SessionReportKey(sessionID string) string {
	return fmt.Sprintf("session:%s:report", sessionID)
}

// LeaderboardKey returns the sorted-set key for an exam's leaderboard.
func (r *CacheKeyStruct) LeaderboardKey(exam string) string {
	return fmt.Sprintf("leaderboard:%s", exam)
}

// RoadmapCompletionKey returns the hash key mirroring a student's
// roadmap completion state.
func (r *CacheKeyStruct) RoadmapCompletionKey(studentID int) string {
	return fmt.Sprintf("roadmap:%d:completion", studentID)
}

var CacheKey = NewCacheKeyStruct()
