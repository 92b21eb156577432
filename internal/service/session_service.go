package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/esatlab/insight-backend/internal/analytics"
	"github.com/esatlab/insight-backend/internal/config"
	"github.com/esatlab/insight-backend/internal/model"
	"github.com/esatlab/insight-backend/internal/repository"
)

// Session errors surfaced to handlers.
var (
	ErrNotSessionOwner  = errors.New("session does not belong to this student")
	ErrSessionCompleted = errors.New("session is already completed")
)

// SessionService handles practice session lifecycle: creation, answer
// autosave, and log retrieval.
type SessionService struct {
	sessionRepo *repository.SessionRepository
	paperRepo   *repository.PaperRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	sessionRepo *repository.SessionRepository,
	paperRepo *repository.PaperRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		paperRepo:   paperRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "session_service").Logger(),
	}
}

// Create starts a new practice session against a paper. The session
// inherits the paper's exam so the right profile and tables apply.
func (s *SessionService) Create(ctx context.Context, studentID int, req *model.CreateSessionRequest) (*model.PracticeSession, error) {
	paperID, err := uuid.Parse(req.PaperID)
	if err != nil {
		return nil, fmt.Errorf("parse paper id: %w", err)
	}

	paper, err := s.paperRepo.GetByID(ctx, paperID)
	if err != nil {
		return nil, fmt.Errorf("get paper: %w", err)
	}

	sectionName := req.SectionName
	if sectionName == "" {
		sectionName = paper.Name
	}

	session := &model.PracticeSession{
		StudentID:   studentID,
		PaperID:     paper.ID,
		Exam:        paper.Exam,
		SectionName: sectionName,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// GetOwned retrieves a session and verifies it belongs to the student.
// Prevents IDOR on every session-scoped endpoint.
func (s *SessionService) GetOwned(ctx context.Context, sessionID uuid.UUID, studentID int) (*model.PracticeSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.StudentID != studentID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// List retrieves a student's sessions with pagination.
func (s *SessionService) List(ctx context.Context, studentID, page, perPage int) ([]model.PracticeSession, int64, error) {
	return s.sessionRepo.ListByStudent(ctx, studentID, page, perPage)
}

// SaveAnswers autosaves marked answers: each lands in the session's
// Redis hash for fast reads and on the persistence queue for the
// autosave worker to drain into PostgreSQL.
func (s *SessionService) SaveAnswers(ctx context.Context, session *model.PracticeSession, answers []model.AnswerUpdate) error {
	if session.Status == model.SessionStatusCompleted {
		return ErrSessionCompleted
	}

	answersKey := config.CacheKey.SessionAnswersKey(session.ID.String())
	pipe := s.rdb.Pipeline()

	for _, a := range answers {
		raw, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshal answer: %w", err)
		}
		pipe.HSet(ctx, answersKey, strconv.Itoa(a.Index), raw)

		payload, _ := json.Marshal(model.AnswerJob{
			SessionID: session.ID.String(),
			Answer:    a,
		})
		pipe.RPush(ctx, config.WorkerKey.PersistAnswersQueue, payload)
	}

	// Stale reports are worse than missing ones.
	pipe.Del(ctx, config.CacheKey.SessionReportKey(session.ID.String()))

	_, err := pipe.Exec(ctx)
	return err
}

// SaveAnswer autosaves a single answer (live marking stream path).
func (s *SessionService) SaveAnswer(ctx context.Context, session *model.PracticeSession, a model.AnswerUpdate) error {
	return s.SaveAnswers(ctx, session, []model.AnswerUpdate{a})
}

// PendingAnswers reads the raw autosave hash, for callers that need to
// flush it to PostgreSQL rather than grade it.
func (s *SessionService) PendingAnswers(ctx context.Context, session *model.PracticeSession) ([]model.AnswerUpdate, error) {
	answersKey := config.CacheKey.SessionAnswersKey(session.ID.String())
	fields, err := s.rdb.HGetAll(ctx, answersKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("read autosave hash: %w", err)
	}

	answers := make([]model.AnswerUpdate, 0, len(fields))
	for field, raw := range fields {
		var a model.AnswerUpdate
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			s.log.Warn().Str("session_id", session.ID.String()).Str("field", field).Msg("Dropping malformed autosave entry")
			continue
		}
		answers = append(answers, a)
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].Index < answers[j].Index })
	return answers, nil
}

// AnswerLog assembles the session's ordered answer log. The Redis
// autosave hash is authoritative while a session is live; PostgreSQL
// serves sessions whose hash has been cleared after completion.
func (s *SessionService) AnswerLog(ctx context.Context, session *model.PracticeSession) ([]analytics.QuestionRecord, error) {
	paper, err := s.paperRepo.GetByID(ctx, session.PaperID)
	if err != nil {
		return nil, fmt.Errorf("get paper: %w", err)
	}

	answers, err := s.PendingAnswers(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return s.sessionRepo.GetAnswerLog(ctx, session.ID, paper.RangeStart)
	}

	records := make([]analytics.QuestionRecord, 0, len(answers))
	for _, a := range answers {
		records = append(records, a.Record(paper.RangeStart))
	}
	return records, nil
}

// Paper returns the session's paper.
func (s *SessionService) Paper(ctx context.Context, session *model.PracticeSession) (*model.Paper, error) {
	return s.paperRepo.GetByID(ctx, session.PaperID)
}
