package worker

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/esatlab/insight-backend/internal/config"
	"github.com/esatlab/insight-backend/internal/model"
)

const (
	SummaryBatchSize    = 50
	SummaryBatchTimeout = 2 * time.Second
	SummaryPollTimeout  = 1 * time.Second
)

// SummaryWorker consumes persist_summaries_queue after session
// completion: it ranks the score on the exam leaderboard and clears the
// now-redundant autosave hash. The session row itself is already
// completed on the request path.
type SummaryWorker struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewSummaryWorker creates a new SummaryWorker.
func NewSummaryWorker(rdb *redis.Client, log zerolog.Logger) *SummaryWorker {
	return &SummaryWorker{
		rdb: rdb,
		log: log.With().Str("component", "summary_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *SummaryWorker) Start(ctx context.Context) {
	w.log.Info().Msg("SummaryWorker started")

	batch := make([]*model.SummaryJob, 0, SummaryBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= SummaryBatchSize || time.Since(lastFlush) >= SummaryBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, SummaryPollTimeout, config.WorkerKey.PersistSummariesQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var job model.SummaryJob
			if err := json.Unmarshal([]byte(item[1]), &job); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &job)
		}
	}
}

// ----------------------------------------------------------------
// Batch flush: leaderboard ranking + autosave cleanup
// ----------------------------------------------------------------

func (w *SummaryWorker) flushSafe(ctx context.Context, batch []*model.SummaryJob) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkApply(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk summary flush failed, using fallback")

		for _, job := range batch {
			if err := w.applySingle(ctx, job); err != nil {
				w.log.Error().Err(err).Str("session_id", job.SessionID).Msg("applySingle failed — requeueing")
				raw, _ := json.Marshal(job)
				w.rdb.RPush(ctx, config.WorkerKey.PersistSummariesQueue, raw)
			}
		}
	}
}

func (w *SummaryWorker) bulkApply(ctx context.Context, batch []*model.SummaryJob) error {
	pipe := w.rdb.Pipeline()

	for _, job := range batch {
		// ZADD GT keeps the personal best only.
		if job.ScaledTotal != nil {
			pipe.ZAddGT(ctx, config.CacheKey.LeaderboardKey(job.Exam), redis.Z{
				Score:  *job.ScaledTotal,
				Member: strconv.Itoa(job.StudentID),
			})
		}
		pipe.Del(ctx, config.CacheKey.SessionAnswersKey(job.SessionID))
	}

	_, err := pipe.Exec(ctx)
	if err == nil {
		w.log.Debug().Int("count", len(batch)).Msg("Flushed summary batch")
	}
	return err
}

func (w *SummaryWorker) applySingle(ctx context.Context, job *model.SummaryJob) error {
	if job.ScaledTotal != nil {
		if err := w.rdb.ZAddGT(ctx, config.CacheKey.LeaderboardKey(job.Exam), redis.Z{
			Score:  *job.ScaledTotal,
			Member: strconv.Itoa(job.StudentID),
		}).Err(); err != nil {
			return err
		}
	}
	return w.rdb.Del(ctx, config.CacheKey.SessionAnswersKey(job.SessionID)).Err()
}
