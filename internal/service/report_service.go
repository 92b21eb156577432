package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/esatlab/insight-backend/internal/analytics"
	"github.com/esatlab/insight-backend/internal/config"
	"github.com/esatlab/insight-backend/internal/model"
	"github.com/esatlab/insight-backend/internal/repository"
)

// ReportService derives session reports from answer logs and the
// published tables. Reports are pure projections: a cached copy can be
// dropped at any time and recomputed from the log.
type ReportService struct {
	cfg         *config.Config
	sessionSvc  *SessionService
	sessionRepo *repository.SessionRepository
	tableRepo   *repository.TableRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	cfg *config.Config,
	sessionSvc *SessionService,
	sessionRepo *repository.SessionRepository,
	tableRepo *repository.TableRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		cfg:         cfg,
		sessionSvc:  sessionSvc,
		sessionRepo: sessionRepo,
		tableRepo:   tableRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "report_service").Logger(),
	}
}

// Compute rebuilds a session's report from scratch: answer log, exam
// profile, conversion table (with sibling fallback) and distribution
// tables all flow in as explicit inputs to the analytics pipeline.
func (s *ReportService) Compute(ctx context.Context, session *model.PracticeSession) (*analytics.SessionReport, error) {
	paper, err := s.sessionSvc.Paper(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("get paper: %w", err)
	}

	records, err := s.sessionSvc.AnswerLog(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("get answer log: %w", err)
	}

	profile := analytics.ProfileFor(session.Exam)

	conversions, err := s.tableRepo.GetConversionRowsWithFallback(ctx, paper.ID, paper.SiblingPaperID)
	if err != nil {
		return nil, fmt.Errorf("get conversion table: %w", err)
	}

	percentiles, err := s.tableRepo.GetPercentileTables(ctx, session.Exam, s.sectionKeys(records, profile, session.SectionName))
	if err != nil {
		return nil, fmt.Errorf("get percentile tables: %w", err)
	}

	return analytics.BuildReport(records, profile, session.SectionName, conversions, percentiles), nil
}

// sectionKeys decides which distribution tables to load. Closed-set
// profiles name their sections up front; open-set profiles get whatever
// buckets the log actually produces.
func (s *ReportService) sectionKeys(records []analytics.QuestionRecord, profile *analytics.ExamProfile, sectionName string) []string {
	if len(profile.FixedSections) > 0 {
		return profile.FixedSections
	}
	buckets, _ := analytics.AggregateSections(records, analytics.DeriveAll(records), profile, sectionName)
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	return keys
}

// Get returns the session's report, serving the Redis copy when one is
// cached and recomputing on miss.
func (s *ReportService) Get(ctx context.Context, session *model.PracticeSession) (*analytics.SessionReport, error) {
	reportKey := config.CacheKey.SessionReportKey(session.ID.String())

	cached, err := s.rdb.Get(ctx, reportKey).Result()
	if err == nil {
		report := &analytics.SessionReport{}
		if err := json.Unmarshal([]byte(cached), report); err == nil {
			return report, nil
		}
		s.log.Warn().Str("session_id", session.ID.String()).Msg("Dropping undecodable cached report")
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Report cache read failed, recomputing")
	}

	report, err := s.Compute(ctx, session)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, session, report)
	return report, nil
}

func (s *ReportService) cache(ctx context.Context, session *model.PracticeSession, report *analytics.SessionReport) {
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	reportKey := config.CacheKey.SessionReportKey(session.ID.String())
	if err := s.rdb.Set(ctx, reportKey, raw, s.cfg.ReportCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("session_id", session.ID.String()).Msg("Report cache write failed")
	}
}

// Finalize completes a session: flushes any autosaved answers to
// PostgreSQL, computes the final report, stores the derived totals on
// the session row and hands the digest to the report worker for
// leaderboard and cleanup work.
func (s *ReportService) Finalize(ctx context.Context, session *model.PracticeSession) (*analytics.SessionReport, error) {
	if session.Status == model.SessionStatusCompleted {
		return nil, ErrSessionCompleted
	}

	// The autosave worker drains the queue eventually; completion needs
	// the log in PostgreSQL now.
	pending, err := s.sessionSvc.PendingAnswers(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		if err := s.sessionRepo.UpsertAnswers(ctx, session.ID, pending); err != nil {
			return nil, fmt.Errorf("flush answers: %w", err)
		}
	}

	report, err := s.Compute(ctx, session)
	if err != nil {
		return nil, err
	}

	sectionsJSON, err := json.Marshal(report.Sections)
	if err != nil {
		return nil, fmt.Errorf("marshal sections: %w", err)
	}
	if err := s.sessionRepo.Complete(ctx, session.ID, report.ScaledTotal, report.Percentile, sectionsJSON); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}
	session.Status = model.SessionStatusCompleted
	session.ScaledTotal = report.ScaledTotal
	session.Percentile = report.Percentile

	payload, _ := json.Marshal(model.SummaryJob{
		SessionID:   session.ID.String(),
		StudentID:   session.StudentID,
		Exam:        session.Exam,
		ScaledTotal: report.ScaledTotal,
		Percentile:  report.Percentile,
		RawCorrect:  report.RawCorrect,
		Total:       report.TotalQuestions,
	})
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistSummariesQueue, payload).Err(); err != nil {
		s.log.Error().Err(err).Str("session_id", session.ID.String()).Msg("Failed to enqueue summary job")
	}

	s.cache(ctx, session, report)
	return report, nil
}

// History smooths a student's completed sessions into a progress line.
func (s *ReportService) History(ctx context.Context, studentID, limit int) ([]analytics.HistoryPoint, error) {
	summaries, err := s.sessionRepo.ListSummaries(ctx, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return analytics.HistoryTrend(summaries), nil
}
