package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/esatlab/insight-backend/internal/analytics"
	"github.com/esatlab/insight-backend/internal/model"
	"github.com/esatlab/insight-backend/internal/repository"
)

// PaperService handles paper and table administration.
type PaperService struct {
	paperRepo *repository.PaperRepository
	tableRepo *repository.TableRepository
}

// NewPaperService creates a new PaperService.
func NewPaperService(paperRepo *repository.PaperRepository, tableRepo *repository.TableRepository) *PaperService {
	return &PaperService{paperRepo: paperRepo, tableRepo: tableRepo}
}

// GetByID retrieves a paper.
func (s *PaperService) GetByID(ctx context.Context, id uuid.UUID) (*model.Paper, error) {
	return s.paperRepo.GetByID(ctx, id)
}

// ListByExam retrieves an exam's papers.
func (s *PaperService) ListByExam(ctx context.Context, exam string) ([]model.Paper, error) {
	return s.paperRepo.ListByExam(ctx, exam)
}

// Create registers a new paper.
func (s *PaperService) Create(ctx context.Context, req *model.CreatePaperRequest) (*model.Paper, error) {
	paper := &model.Paper{
		Exam:       req.Exam,
		Name:       req.Name,
		Year:       req.Year,
		RangeStart: req.RangeStart,
	}
	if req.SiblingPaperID != nil {
		siblingID, err := uuid.Parse(*req.SiblingPaperID)
		if err != nil {
			return nil, fmt.Errorf("parse sibling paper id: %w", err)
		}
		if _, err := s.paperRepo.GetByID(ctx, siblingID); err != nil {
			return nil, fmt.Errorf("get sibling paper: %w", err)
		}
		paper.SiblingPaperID = &siblingID
	}
	if err := s.paperRepo.Create(ctx, paper); err != nil {
		return nil, fmt.Errorf("create paper: %w", err)
	}
	return paper, nil
}

// Delete removes a paper and its conversion rows.
func (s *PaperService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.paperRepo.Delete(ctx, id)
}

// ReplaceConversionTable swaps a paper's conversion table wholesale.
func (s *PaperService) ReplaceConversionTable(ctx context.Context, paperID uuid.UUID, req *model.ReplaceConversionTableRequest) error {
	if _, err := s.paperRepo.GetByID(ctx, paperID); err != nil {
		return fmt.Errorf("get paper: %w", err)
	}

	rows := make([]analytics.ConversionRow, len(req.Rows))
	for i, r := range req.Rows {
		rows[i] = analytics.ConversionRow{
			PartName:    r.PartName,
			RawScore:    r.RawScore,
			ScaledScore: r.ScaledScore,
		}
	}
	return s.tableRepo.ReplaceConversionRows(ctx, paperID, rows)
}

// GetConversionTable retrieves a paper's conversion rows.
func (s *PaperService) GetConversionTable(ctx context.Context, paperID uuid.UUID) ([]analytics.ConversionRow, error) {
	return s.tableRepo.GetConversionRows(ctx, paperID)
}

// ReplacePercentileTable swaps the distribution table for an
// exam/section key. Use analytics.OverallKey as the section for the
// whole-paper table.
func (s *PaperService) ReplacePercentileTable(ctx context.Context, exam, section string, req *model.ReplacePercentileTableRequest) error {
	rows := make([]analytics.PercentileRow, len(req.Rows))
	for i, r := range req.Rows {
		rows[i] = analytics.PercentileRow{
			Score:             r.Score,
			CumulativePercent: r.CumulativePercent,
		}
	}
	return s.tableRepo.ReplacePercentileRows(ctx, repository.PercentileTableKey(exam, section), rows)
}

// GetPercentileTable retrieves the distribution table for an
// exam/section key.
func (s *PaperService) GetPercentileTable(ctx context.Context, exam, section string) ([]analytics.PercentileRow, error) {
	return s.tableRepo.GetPercentileRows(ctx, repository.PercentileTableKey(exam, section))
}
