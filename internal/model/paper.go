package model

import (
	"time"

	"github.com/google/uuid"
)

// Paper represents one past paper students can practice against.
// SiblingPaperID points at an equivalent paper (e.g. the other sitting
// of the same year) whose conversion table is used as a fallback when
// this paper has none.
type Paper struct {
	ID             uuid.UUID  `json:"id"`
	Exam           string     `json:"exam"`
	Name           string     `json:"name"`
	Year           int        `json:"year"`
	RangeStart     int        `json:"range_start"` // First display question number
	SiblingPaperID *uuid.UUID `json:"sibling_paper_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CreatePaperRequest is the admin payload for registering a paper.
type CreatePaperRequest struct {
	Exam           string  `json:"exam" binding:"required,min=2,max=32"`
	Name           string  `json:"name" binding:"required,min=2,max=120"`
	Year           int     `json:"year" binding:"required,min=1990,max=2100"`
	RangeStart     int     `json:"range_start" binding:"min=0"`
	SiblingPaperID *string `json:"sibling_paper_id" binding:"omitempty,uuid"`
}

// ConversionRowRequest is one row of an uploaded conversion table.
type ConversionRowRequest struct {
	PartName    string  `json:"part_name" binding:"required,min=1,max=64"`
	RawScore    int     `json:"raw_score" binding:"min=0"`
	ScaledScore float64 `json:"scaled_score"`
}

// ReplaceConversionTableRequest replaces a paper's conversion table
// wholesale.
type ReplaceConversionTableRequest struct {
	Rows []ConversionRowRequest `json:"rows" binding:"required,min=1,dive"`
}

// PercentileRowRequest is one row of an uploaded distribution table.
type PercentileRowRequest struct {
	Score             float64 `json:"score"`
	CumulativePercent float64 `json:"cumulative_percent" binding:"min=0,max=100"`
}

// ReplacePercentileTableRequest replaces a distribution table wholesale.
// The key is derived from exam and section, e.g. "ESAT:Physics" or
// "ESAT:overall".
type ReplacePercentileTableRequest struct {
	Rows []PercentileRowRequest `json:"rows" binding:"required,min=1,dive"`
}
