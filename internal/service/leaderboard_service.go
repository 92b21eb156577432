package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/esatlab/insight-backend/internal/config"
	"github.com/esatlab/insight-backend/internal/model"
	"github.com/esatlab/insight-backend/internal/repository"
)

// LeaderboardService maintains per-exam best-score rankings in a Redis
// sorted set. Scores only ever move up: ZADD GT keeps the personal best.
type LeaderboardService struct {
	cfg         *config.Config
	studentRepo *repository.StudentRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	cfg *config.Config,
	studentRepo *repository.StudentRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		cfg:         cfg,
		studentRepo: studentRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "leaderboard_service").Logger(),
	}
}

// Top returns the highest-ranked entries for an exam, capped by the
// configured leaderboard size.
func (s *LeaderboardService) Top(ctx context.Context, exam string, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 || limit > s.cfg.LeaderboardSize {
		limit = s.cfg.LeaderboardSize
	}

	key := config.CacheKey.LeaderboardKey(exam)
	zs, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	return s.buildEntries(ctx, zs, 0), nil
}

// Rank returns a student's own placement plus the entries ranked just
// around it, or a nil entry when they have no ranked score yet.
func (s *LeaderboardService) Rank(ctx context.Context, exam string, studentID, radius int) (*model.LeaderboardEntry, []model.LeaderboardEntry, error) {
	key := config.CacheKey.LeaderboardKey(exam)
	member := strconv.Itoa(studentID)

	rank, err := s.rdb.ZRevRank(ctx, key, member).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read rank: %w", err)
	}
	score, err := s.rdb.ZScore(ctx, key, member).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("read score: %w", err)
	}

	entry := &model.LeaderboardEntry{
		Rank:        int(rank) + 1,
		StudentID:   studentID,
		ScaledTotal: score,
	}
	if student, err := s.studentRepo.GetByID(ctx, studentID); err == nil {
		entry.Name = student.Name
	}

	if radius <= 0 {
		return entry, nil, nil
	}

	start := rank - int64(radius)
	if start < 0 {
		start = 0
	}
	zs, err := s.rdb.ZRevRangeWithScores(ctx, key, start, rank+int64(radius)).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("read nearby ranks: %w", err)
	}
	nearby := s.buildEntries(ctx, zs, int(start))
	return entry, nearby, nil
}

// buildEntries converts sorted-set members into named entries; firstRank
// is the zero-based rank of the first member.
func (s *LeaderboardService) buildEntries(ctx context.Context, zs []redis.Z, firstRank int) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		studentID, err := strconv.Atoi(member)
		if err != nil {
			continue
		}

		entry := model.LeaderboardEntry{
			Rank:        firstRank + i + 1,
			StudentID:   studentID,
			ScaledTotal: z.Score,
		}
		// Deleted accounts keep their slot but lose their name.
		if student, err := s.studentRepo.GetByID(ctx, studentID); err == nil {
			entry.Name = student.Name
		}
		entries = append(entries, entry)
	}
	return entries
}
