package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esatlab/insight-backend/internal/model"
)

var ErrDuplicateEmail = errors.New("account with this email already exists")

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, target_exam, password_hash, created_at, updated_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.Email, &s.Name, &s.TargetExam, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByEmail retrieves a student by their unique email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, target_exam, password_hash, created_at, updated_at
		 FROM students WHERE email = $1`, email,
	).Scan(&s.ID, &s.Email, &s.Name, &s.TargetExam, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new student and fills in the generated fields.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (email, name, target_exam, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.Email, s.Name, s.TargetExam, s.PasswordHash,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

// Update modifies a student's profile. An empty password hash keeps the
// existing one.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	var err error
	if s.PasswordHash == "" {
		_, err = r.pool.Exec(ctx,
			`UPDATE students
			 SET email = $1, name = $2, target_exam = $3, updated_at = NOW()
			 WHERE id = $4`,
			s.Email, s.Name, s.TargetExam, s.ID)
	} else {
		_, err = r.pool.Exec(ctx,
			`UPDATE students
			 SET email = $1, name = $2, target_exam = $3, password_hash = $4, updated_at = NOW()
			 WHERE id = $5`,
			s.Email, s.Name, s.TargetExam, s.PasswordHash, s.ID)
	}
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

// List retrieves students with pagination, newest first.
func (r *StudentRepository) List(ctx context.Context, page, perPage int) ([]model.Student, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, email, name, target_exam, password_hash, created_at, updated_at
		 FROM students
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.TargetExam, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

// Delete removes a student account.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
