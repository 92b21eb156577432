package model

import "time"

// RoadmapStep is one item of a student's ordered study plan.
type RoadmapStep struct {
	ID          int        `json:"id"`
	StudentID   int        `json:"student_id"`
	Title       string     `json:"title"`
	Topic       string     `json:"topic"`
	Position    int        `json:"position"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateRoadmapStepRequest appends a step to the student's roadmap.
type CreateRoadmapStepRequest struct {
	Title string `json:"title" binding:"required,min=2,max=160"`
	Topic string `json:"topic" binding:"omitempty,max=64"`
}

// RoadmapView is the roadmap plus its derived completion summary.
type RoadmapView struct {
	Steps          []RoadmapStep `json:"steps"`
	CompletedCount int           `json:"completed_count"`
	TotalCount     int           `json:"total_count"`
}
