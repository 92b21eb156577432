package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/esatlab/insight-backend/internal/analytics"
)

// SessionStatus enumerates practice session states.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
)

// PracticeSession represents one student's run through a past paper.
type PracticeSession struct {
	ID          uuid.UUID     `json:"id"`
	StudentID   int           `json:"student_id"`
	PaperID     uuid.UUID     `json:"paper_id"`
	Exam        string        `json:"exam"`
	SectionName string        `json:"section_name"` // Free-text, e.g. "ESAT Physics Evening Sitting"
	Status      SessionStatus `json:"status"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  *time.Time    `json:"finished_at,omitempty"`
	ScaledTotal *float64      `json:"scaled_total,omitempty"`
	Percentile  *float64      `json:"percentile,omitempty"`
}

// CreateSessionRequest starts a new practice session against a paper.
type CreateSessionRequest struct {
	PaperID     string `json:"paper_id" binding:"required,uuid"`
	SectionName string `json:"section_name" binding:"omitempty,max=160"`
}

// AnswerUpdate is one marked answer inside a bulk update or a live
// marking stream.
type AnswerUpdate struct {
	Index          int      `json:"index" binding:"min=0"`
	PartLabel      string   `json:"part_label" binding:"omitempty,max=64"`
	Canonical      string   `json:"canonical" binding:"omitempty,len=1"`
	Chosen         string   `json:"chosen" binding:"omitempty,len=1"`
	Override       *bool    `json:"override"`
	Guessed        bool     `json:"guessed"`
	ElapsedSeconds float64  `json:"elapsed_seconds" binding:"min=0"`
	MistakeTags    []string `json:"mistake_tags" binding:"omitempty,max=10,dive,max=40"`
}

// SaveAnswersRequest bulk-saves marked answers for a session.
type SaveAnswersRequest struct {
	Answers []AnswerUpdate `json:"answers" binding:"required,min=1,dive"`
}

// Record converts the update into the analytics core's record type.
// questionNumber is rangeStart + index (session invariant).
func (a AnswerUpdate) Record(rangeStart int) analytics.QuestionRecord {
	return analytics.QuestionRecord{
		Index:          a.Index,
		QuestionNumber: rangeStart + a.Index,
		PartLabel:      a.PartLabel,
		Canonical:      a.Canonical,
		Chosen:         a.Chosen,
		Override:       a.Override,
		Guessed:        a.Guessed,
		ElapsedSeconds: a.ElapsedSeconds,
		MistakeTags:    a.MistakeTags,
	}
}
