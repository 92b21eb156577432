package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esatlab/insight-backend/internal/analytics"
	"github.com/esatlab/insight-backend/internal/model"
)

// SessionRepository handles practice session and answer log data access.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// GetByID retrieves a session by ID.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PracticeSession, error) {
	s := &model.PracticeSession{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, paper_id, exam, section_name, status, started_at, finished_at, scaled_total, percentile
		 FROM practice_sessions
		 WHERE id = $1`, id,
	).Scan(&s.ID, &s.StudentID, &s.PaperID, &s.Exam, &s.SectionName, &s.Status, &s.StartedAt, &s.FinishedAt, &s.ScaledTotal, &s.Percentile)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new in-progress session.
func (r *SessionRepository) Create(ctx context.Context, s *model.PracticeSession) error {
	s.ID = uuid.New()
	s.Status = model.SessionStatusInProgress
	return r.pool.QueryRow(ctx,
		`INSERT INTO practice_sessions (id, student_id, paper_id, exam, section_name, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING started_at`,
		s.ID, s.StudentID, s.PaperID, s.Exam, s.SectionName, s.Status,
	).Scan(&s.StartedAt)
}

// ListByStudent retrieves a student's sessions, newest first.
func (r *SessionRepository) ListByStudent(ctx context.Context, studentID, page, perPage int) ([]model.PracticeSession, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM practice_sessions WHERE student_id = $1`, studentID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, paper_id, exam, section_name, status, started_at, finished_at, scaled_total, percentile
		 FROM practice_sessions
		 WHERE student_id = $1
		 ORDER BY started_at DESC
		 LIMIT $2 OFFSET $3`,
		studentID, perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sessions []model.PracticeSession
	for rows.Next() {
		var s model.PracticeSession
		if err := rows.Scan(&s.ID, &s.StudentID, &s.PaperID, &s.Exam, &s.SectionName, &s.Status, &s.StartedAt, &s.FinishedAt, &s.ScaledTotal, &s.Percentile); err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, s)
	}
	return sessions, total, rows.Err()
}

// UpsertAnswers bulk-writes answer rows for a session using UNNEST so a
// whole batch lands in one round trip.
func (r *SessionRepository) UpsertAnswers(ctx context.Context, sessionID uuid.UUID, answers []model.AnswerUpdate) error {
	if len(answers) == 0 {
		return nil
	}

	n := len(answers)
	idxs := make([]int, n)
	labels := make([]string, n)
	canonicals := make([]string, n)
	chosens := make([]string, n)
	overrides := make([]*bool, n)
	guessed := make([]bool, n)
	elapsed := make([]float64, n)
	// UNNEST only takes flat arrays, so tag sets travel comma-joined and
	// are split back apart in SQL.
	tags := make([]string, n)

	for i, a := range answers {
		idxs[i] = a.Index
		labels[i] = a.PartLabel
		canonicals[i] = a.Canonical
		chosens[i] = a.Chosen
		overrides[i] = a.Override
		guessed[i] = a.Guessed
		elapsed[i] = a.ElapsedSeconds
		tags[i] = strings.Join(a.MistakeTags, ",")
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO answer_logs (session_id, idx, part_label, canonical, chosen, override, guessed, elapsed_seconds, mistake_tags)
		SELECT $1, u.idx, u.part_label, u.canonical, u.chosen, u.override, u.guessed, u.elapsed_seconds,
		       string_to_array(NULLIF(u.tags, ''), ',')
		FROM UNNEST(
			$2::int[],
			$3::text[],
			$4::text[],
			$5::text[],
			$6::bool[],
			$7::bool[],
			$8::float8[],
			$9::text[]
		) AS u (idx, part_label, canonical, chosen, override, guessed, elapsed_seconds, tags)
		ON CONFLICT (session_id, idx) DO UPDATE
		SET part_label = EXCLUDED.part_label,
		    canonical = EXCLUDED.canonical,
		    chosen = EXCLUDED.chosen,
		    override = EXCLUDED.override,
		    guessed = EXCLUDED.guessed,
		    elapsed_seconds = EXCLUDED.elapsed_seconds,
		    mistake_tags = EXCLUDED.mistake_tags,
		    updated_at = NOW()`,
		sessionID, idxs, labels, canonicals, chosens, overrides, guessed, elapsed, tags,
	)
	return err
}

// UpsertAnswer writes a single answer row (live marking path).
func (r *SessionRepository) UpsertAnswer(ctx context.Context, sessionID uuid.UUID, a model.AnswerUpdate) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO answer_logs (session_id, idx, part_label, canonical, chosen, override, guessed, elapsed_seconds, mistake_tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (session_id, idx) DO UPDATE
		SET part_label = EXCLUDED.part_label,
		    canonical = EXCLUDED.canonical,
		    chosen = EXCLUDED.chosen,
		    override = EXCLUDED.override,
		    guessed = EXCLUDED.guessed,
		    elapsed_seconds = EXCLUDED.elapsed_seconds,
		    mistake_tags = EXCLUDED.mistake_tags,
		    updated_at = NOW()`,
		sessionID, a.Index, a.PartLabel, a.Canonical, a.Chosen, a.Override, a.Guessed, a.ElapsedSeconds, a.MistakeTags,
	)
	return err
}

// GetAnswerLog retrieves the ordered answer log for a session as
// analytics records. questionNumber = rangeStart + idx.
func (r *SessionRepository) GetAnswerLog(ctx context.Context, sessionID uuid.UUID, rangeStart int) ([]analytics.QuestionRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT idx, part_label, canonical, chosen, override, guessed, elapsed_seconds, mistake_tags
		 FROM answer_logs
		 WHERE session_id = $1
		 ORDER BY idx ASC`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []analytics.QuestionRecord
	for rows.Next() {
		var rec analytics.QuestionRecord
		if err := rows.Scan(&rec.Index, &rec.PartLabel, &rec.Canonical, &rec.Chosen, &rec.Override, &rec.Guessed, &rec.ElapsedSeconds, &rec.MistakeTags); err != nil {
			return nil, err
		}
		rec.QuestionNumber = rangeStart + rec.Index
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Complete marks a session finished with its derived totals.
func (r *SessionRepository) Complete(ctx context.Context, sessionID uuid.UUID, scaledTotal, percentile *float64, sectionsJSON []byte) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE practice_sessions
		 SET status = $1, scaled_total = $2, percentile = $3, sections = $4, finished_at = NOW()
		 WHERE id = $5`,
		model.SessionStatusCompleted, scaledTotal, percentile, sectionsJSON, sessionID)
	return err
}

// ListSummaries retrieves completed-session digests for the history
// trend: the student's most recent sessions, returned oldest first.
// The inner DESC limit picks the recent window; without it the limit
// would freeze the trend on the student's earliest sessions.
func (r *SessionRepository) ListSummaries(ctx context.Context, studentID, limit int) ([]analytics.SessionSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.finished_at, s.scaled_total, s.percentile,
		       COALESCE(l.correct, 0), COALESCE(l.total, 0), COALESCE(l.avg_seconds, 0)
		FROM (
			SELECT id, finished_at, scaled_total, percentile
			FROM practice_sessions
			WHERE student_id = $1 AND status = 'COMPLETED'
			ORDER BY finished_at DESC
			LIMIT $2
		) s
		LEFT JOIN (
			SELECT session_id,
			       COUNT(*) FILTER (WHERE override IS TRUE
			                        OR (override IS NULL AND canonical <> '' AND LOWER(chosen) = LOWER(canonical))) AS correct,
			       COUNT(*) AS total,
			       AVG(elapsed_seconds) AS avg_seconds
			FROM answer_logs
			GROUP BY session_id
		) l ON l.session_id = s.id
		ORDER BY s.finished_at ASC`,
		studentID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []analytics.SessionSummary
	for rows.Next() {
		var (
			id         uuid.UUID
			finishedAt *time.Time
			sum        analytics.SessionSummary
		)
		if err := rows.Scan(&id, &finishedAt, &sum.ScaledTotal, &sum.Percentile, &sum.RawCorrect, &sum.Total, &sum.AvgSeconds); err != nil {
			return nil, err
		}
		sum.SessionID = id.String()
		if finishedAt != nil {
			sum.FinishedAt = *finishedAt
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
