package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esatlab/insight-backend/internal/model"
)

// PaperRepository handles past-paper data access.
type PaperRepository struct {
	pool *pgxpool.Pool
}

// NewPaperRepository creates a new PaperRepository.
func NewPaperRepository(pool *pgxpool.Pool) *PaperRepository {
	return &PaperRepository{pool: pool}
}

// GetByID retrieves a paper by ID.
func (r *PaperRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Paper, error) {
	p := &model.Paper{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam, name, year, range_start, sibling_paper_id, created_at
		 FROM papers WHERE id = $1`, id,
	).Scan(&p.ID, &p.Exam, &p.Name, &p.Year, &p.RangeStart, &p.SiblingPaperID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByExam retrieves all papers for an exam, newest year first.
func (r *PaperRepository) ListByExam(ctx context.Context, exam string) ([]model.Paper, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam, name, year, range_start, sibling_paper_id, created_at
		 FROM papers
		 WHERE exam = $1
		 ORDER BY year DESC, name ASC`, exam,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var papers []model.Paper
	for rows.Next() {
		var p model.Paper
		if err := rows.Scan(&p.ID, &p.Exam, &p.Name, &p.Year, &p.RangeStart, &p.SiblingPaperID, &p.CreatedAt); err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// Create inserts a new paper.
func (r *PaperRepository) Create(ctx context.Context, p *model.Paper) error {
	p.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		`INSERT INTO papers (id, exam, name, year, range_start, sibling_paper_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		p.ID, p.Exam, p.Name, p.Year, p.RangeStart, p.SiblingPaperID,
	).Scan(&p.CreatedAt)
}

// Delete removes a paper and (via cascade) its conversion rows.
func (r *PaperRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM papers WHERE id = $1`, id)
	return err
}
