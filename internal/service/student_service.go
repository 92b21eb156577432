package service

import (
	"context"
	"fmt"

	"github.com/esatlab/insight-backend/internal/model"
	"github.com/esatlab/insight-backend/internal/repository"
)

// StudentService handles student account business logic.
type StudentService struct {
	studentRepo *repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a student by email.
func (s *StudentService) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return s.studentRepo.GetByEmail(ctx, email)
}

// Register creates a student account with a hashed password.
func (s *StudentService) Register(ctx context.Context, req *model.CreateStudentRequest, passwordHash string) (*model.Student, error) {
	student := &model.Student{
		Email:        req.Email,
		Name:         req.Name,
		TargetExam:   req.TargetExam,
		PasswordHash: passwordHash,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	return student, nil
}

// Update modifies a student account. passwordHash may be empty to keep
// the current password.
func (s *StudentService) Update(ctx context.Context, id int, req *model.UpdateStudentRequest, passwordHash string) (*model.Student, error) {
	student := &model.Student{
		ID:           id,
		Email:        req.Email,
		Name:         req.Name,
		TargetExam:   req.TargetExam,
		PasswordHash: passwordHash,
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}
	return s.studentRepo.GetByID(ctx, id)
}

// List retrieves students with pagination.
func (s *StudentService) List(ctx context.Context, page, perPage int) ([]model.Student, int64, error) {
	return s.studentRepo.List(ctx, page, perPage)
}

// Delete removes a student account.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.studentRepo.Delete(ctx, id)
}
