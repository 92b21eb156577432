package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/esatlab/insight-backend/internal/config"
	"github.com/esatlab/insight-backend/internal/model"
	"github.com/esatlab/insight-backend/internal/repository"
)

// RoadmapService handles the student study plan. Completion state is
// mirrored into a Redis hash so the dashboard widget reads one key; the
// hash is rebuilt from PostgreSQL on miss.
type RoadmapService struct {
	roadmapRepo *repository.RoadmapRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewRoadmapService creates a new RoadmapService.
func NewRoadmapService(roadmapRepo *repository.RoadmapRepository, rdb *redis.Client, log zerolog.Logger) *RoadmapService {
	return &RoadmapService{
		roadmapRepo: roadmapRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "roadmap_service").Logger(),
	}
}

// View returns the student's roadmap with completion counts.
func (s *RoadmapService) View(ctx context.Context, studentID int) (*model.RoadmapView, error) {
	steps, err := s.roadmapRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list roadmap: %w", err)
	}

	view := &model.RoadmapView{Steps: steps, TotalCount: len(steps)}
	for _, step := range steps {
		if step.CompletedAt != nil {
			view.CompletedCount++
		}
	}

	s.rebuildCompletionCache(ctx, studentID, steps)
	return view, nil
}

// Completion returns (completed, total) for the dashboard widget,
// served from the Redis mirror when warm.
func (s *RoadmapService) Completion(ctx context.Context, studentID int) (int, int, error) {
	key := config.CacheKey.RoadmapCompletionKey(studentID)
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err == nil && len(fields) > 0 {
		completed := 0
		for _, v := range fields {
			if v == "1" {
				completed++
			}
		}
		return completed, len(fields), nil
	}

	view, err := s.View(ctx, studentID)
	if err != nil {
		return 0, 0, err
	}
	return view.CompletedCount, view.TotalCount, nil
}

// AddStep appends a step to the end of the roadmap.
func (s *RoadmapService) AddStep(ctx context.Context, studentID int, req *model.CreateRoadmapStepRequest) (*model.RoadmapStep, error) {
	step := &model.RoadmapStep{
		StudentID: studentID,
		Title:     req.Title,
		Topic:     req.Topic,
	}
	if err := s.roadmapRepo.Create(ctx, step); err != nil {
		return nil, fmt.Errorf("create step: %w", err)
	}
	s.invalidateCompletionCache(ctx, studentID)
	return step, nil
}

// ToggleStep flips a step's completion and returns the new state.
func (s *RoadmapService) ToggleStep(ctx context.Context, studentID, stepID int) (bool, error) {
	completed, err := s.roadmapRepo.Toggle(ctx, studentID, stepID)
	if err != nil {
		return false, err
	}

	key := config.CacheKey.RoadmapCompletionKey(studentID)
	val := "0"
	if completed {
		val = "1"
	}
	if err := s.rdb.HSet(ctx, key, strconv.Itoa(stepID), val).Err(); err != nil {
		// Next read rebuilds from PostgreSQL.
		s.invalidateCompletionCache(ctx, studentID)
	}
	return completed, nil
}

// DeleteStep removes a step from the roadmap.
func (s *RoadmapService) DeleteStep(ctx context.Context, studentID, stepID int) error {
	if err := s.roadmapRepo.Delete(ctx, studentID, stepID); err != nil {
		return err
	}
	s.invalidateCompletionCache(ctx, studentID)
	return nil
}

func (s *RoadmapService) rebuildCompletionCache(ctx context.Context, studentID int, steps []model.RoadmapStep) {
	key := config.CacheKey.RoadmapCompletionKey(studentID)
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, key)
	for _, step := range steps {
		val := "0"
		if step.CompletedAt != nil {
			val = "1"
		}
		pipe.HSet(ctx, key, strconv.Itoa(step.ID), val)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Int("student_id", studentID).Msg("Roadmap completion cache rebuild failed")
	}
}

func (s *RoadmapService) invalidateCompletionCache(ctx context.Context, studentID int) {
	if err := s.rdb.Del(ctx, config.CacheKey.RoadmapCompletionKey(studentID)).Err(); err != nil {
		s.log.Warn().Err(err).Int("student_id", studentID).Msg("Roadmap completion cache invalidation failed")
	}
}
