package scores

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultSubmitTimeout bounds a single background submission.
const DefaultSubmitTimeout = 5 * time.Second

// AsyncSubmitter is a Sink that forwards records to a Submitter on a
// background goroutine. Failures are logged and never retried.
type AsyncSubmitter struct {
	board   Submitter
	timeout time.Duration
	logger  *log.Logger
	wg      sync.WaitGroup
}

// NewAsyncSubmitter wraps board. A nil logger discards log output.
func NewAsyncSubmitter(board Submitter, timeout time.Duration, logger *log.Logger) *AsyncSubmitter {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &AsyncSubmitter{
		board:   board,
		timeout: timeout,
		logger:  logger,
	}
}

// Publish starts the submission and returns immediately.
func (a *AsyncSubmitter) Publish(rec Record) {
	if a.board == nil {
		a.logger.Debug("no score board configured, dropping record", "nickname", rec.Nickname, "score", rec.Score)
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.board.Submit(ctx, rec); err != nil {
			a.logger.Error("score submit failed",
				"nickname", rec.Nickname,
				"score", rec.Score,
				"session", rec.SessionID,
				"error", err,
			)
			return
		}
		a.logger.Info("score submitted", "nickname", rec.Nickname, "score", rec.Score, "session", rec.SessionID)
	}()
}

// Wait blocks until all in-flight submissions have finished.
func (a *AsyncSubmitter) Wait() {
	a.wg.Wait()
}

// Ranking queries r for the top limit records. Any failure yields an empty
// list; the error is logged, not returned.
func Ranking(ctx context.Context, r Ranker, limit int, logger *log.Logger) []Record {
	if r == nil {
		return nil
	}
	if limit <= 0 {
		limit = DefaultRankingLimit
	}

	records, err := r.Top(ctx, limit)
	if err != nil {
		if logger != nil {
			logger.Warn("fetch ranking failed", "error", err)
		}
		return nil
	}
	return records
}
