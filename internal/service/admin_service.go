package service

import (
	"context"

	"github.com/esatlab/insight-backend/internal/model"
	"github.com/esatlab/insight-backend/internal/repository"
)

// AdminService handles staff account business logic.
type AdminService struct {
	adminRepo *repository.AdminRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo *repository.AdminRepository) *AdminService {
	return &AdminService{adminRepo: adminRepo}
}

// GetByID retrieves an admin by ID.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

// GetByEmail retrieves an admin by email.
func (s *AdminService) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return s.adminRepo.GetByEmail(ctx, email)
}

// Create registers a staff account with a hashed password.
func (s *AdminService) Create(ctx context.Context, email, name, passwordHash string) (*model.Admin, error) {
	admin := &model.Admin{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
