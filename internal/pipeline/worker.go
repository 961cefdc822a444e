package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/nexusdoc/internal/generate"
	"github.com/dgallion1/nexusdoc/internal/render"
)

// Worker streams one session at a time from a generator into its buffer.
type Worker struct {
	gen     generate.Generator
	stats   *generate.LatencyStats
	log     *slog.Logger
	timeout time.Duration
	backoff func(attempt int) time.Duration
}

func NewWorker(gen generate.Generator, stats *generate.LatencyStats, log *slog.Logger, timeout time.Duration) *Worker {
	return &Worker{
		gen:     gen,
		stats:   stats,
		log:     log,
		timeout: timeout,
		backoff: Backoff,
	}
}

// Process runs generation for a session until the stream ends, fails, or is
// cancelled.
func (w *Worker) Process(ctx context.Context, sess *Session) {
	log := w.log.With("session_id", sess.ID, "kind", sess.Kind, "dialect", sess.Dialect, "generator", w.gen.Name())

	var genCtx context.Context
	var cancel context.CancelFunc
	if w.timeout > 0 {
		genCtx, cancel = context.WithTimeout(ctx, w.timeout)
	} else {
		genCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	if !sess.begin(cancel) {
		log.Info("session cancelled before start")
		return
	}

	start := time.Now()
	var firstChunk time.Duration
	buf := sess.Buffer()
	onChunk := func(chunk string) error {
		if firstChunk == 0 {
			firstChunk = time.Since(start)
		}
		buf.Append(chunk)
		sess.Touch()
		return nil
	}

	var err error
retry:
	for attempt := range MaxRetries {
		sess.incrAttempts()
		err = w.gen.Stream(genCtx, sess.Prompt(), onChunk)
		if err == nil || !generate.IsRetryable(err) || buf.Chunks() > 0 || attempt == MaxRetries-1 {
			break
		}
		log.Warn("retryable generation error", "attempt", attempt, "error", err)
		sess.AddError(err.Error())
		select {
		case <-time.After(w.backoff(attempt)):
		case <-genCtx.Done():
			err = genCtx.Err()
			break retry
		}
	}

	buf.MarkDone()
	elapsed := time.Since(start)
	if w.stats != nil {
		w.stats.Record(firstChunk, elapsed, err != nil)
	}

	switch {
	case err == nil:
		res := sess.Render()
		if res.Mode == render.ModeError {
			log.Warn("generated document did not render", "bytes", buf.Len(), "raw", render.Truncate(buf.Snapshot(), 200))
		}
		sess.SetStatus(StatusCompleted, string(res.Mode))
		log.Info("generation complete", "chunks", buf.Chunks(), "bytes", buf.Len(), "mode", res.Mode, "duration_ms", elapsed.Milliseconds())

	case sess.CancelRequested() && errors.Is(err, context.Canceled):
		sess.SetStatus(StatusCancelled, "cancelled")
		log.Info("generation cancelled", "chunks", buf.Chunks())

	case errors.Is(err, context.DeadlineExceeded):
		sess.AddError(fmt.Sprintf("generation timed out after %s", w.timeout))
		sess.SetStatus(StatusFailed, "timeout")
		log.Error("generation timed out", "chunks", buf.Chunks(), "timeout", w.timeout)

	default:
		sess.AddError(err.Error())
		sess.SetStatus(StatusFailed, "streaming")
		log.Error("generation failed", "chunks", buf.Chunks(), "error", err)
	}
}
