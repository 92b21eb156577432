package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esatlab/insight-backend/internal/model"
)

// RoadmapRepository handles study roadmap data access.
type RoadmapRepository struct {
	pool *pgxpool.Pool
}

// NewRoadmapRepository creates a new RoadmapRepository.
func NewRoadmapRepository(pool *pgxpool.Pool) *RoadmapRepository {
	return &RoadmapRepository{pool: pool}
}

// ListByStudent retrieves a student's roadmap in plan order.
func (r *RoadmapRepository) ListByStudent(ctx context.Context, studentID int) ([]model.RoadmapStep, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, title, topic, position, completed_at
		 FROM roadmap_steps
		 WHERE student_id = $1
		 ORDER BY position ASC`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []model.RoadmapStep
	for rows.Next() {
		var s model.RoadmapStep
		if err := rows.Scan(&s.ID, &s.StudentID, &s.Title, &s.Topic, &s.Position, &s.CompletedAt); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

// Create appends a step at the end of the student's roadmap.
func (r *RoadmapRepository) Create(ctx context.Context, s *model.RoadmapStep) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO roadmap_steps (student_id, title, topic, position)
		 VALUES ($1, $2, $3,
		         COALESCE((SELECT MAX(position) + 1 FROM roadmap_steps WHERE student_id = $1), 0))
		 RETURNING id, position`,
		s.StudentID, s.Title, s.Topic,
	).Scan(&s.ID, &s.Position)
}

// Toggle flips a step's completion state and returns the new state.
// The student filter stops cross-account toggles.
func (r *RoadmapRepository) Toggle(ctx context.Context, studentID, stepID int) (bool, error) {
	var completed bool
	err := r.pool.QueryRow(ctx,
		`UPDATE roadmap_steps
		 SET completed_at = CASE WHEN completed_at IS NULL THEN NOW() ELSE NULL END
		 WHERE id = $1 AND student_id = $2
		 RETURNING completed_at IS NOT NULL`,
		stepID, studentID,
	).Scan(&completed)
	return completed, err
}

// Delete removes a step from the student's roadmap.
func (r *RoadmapRepository) Delete(ctx context.Context, studentID, stepID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM roadmap_steps WHERE id = $1 AND student_id = $2`, stepID, studentID)
	return err
}
