package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/nexusdoc/internal/config"
	"github.com/dgallion1/nexusdoc/internal/generate"
)

var (
	ErrQueueFull = errors.New("session queue is full")
	ErrStopped   = errors.New("pipeline is stopped")
)

// Orchestrator manages the report generation pipeline.
type Orchestrator struct {
	sessions *SessionStore
	queue    chan *Session
	gen      generate.Generator
	stats    *generate.LatencyStats
	log      *slog.Logger
	cfg      config.Config

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	cleanupInterval time.Duration
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, gen generate.Generator, stats *generate.LatencyStats, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		sessions:        NewSessionStore(cfg.SessionTTL),
		queue:           make(chan *Session, cfg.MaxQueueSize),
		gen:             gen,
		stats:           stats,
		log:             log,
		cfg:             cfg,
		cleanupInterval: 5 * time.Minute,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.gen, o.stats, o.log, o.cfg.GenerationTimeout)
			for {
				select {
				case <-workerCtx.Done():
					return
				case sess, ok := <-o.queue:
					if !ok {
						return
					}
					if workerCtx.Err() != nil {
						sess.SetStatus(StatusFailed, "shutdown")
						continue
					}
					w.Process(workerCtx, sess)
				}
			}
		}()
	}

	// Start session store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(o.cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.sessions.Cleanup()
			}
		}
	}()
}

// Stop cancels in-flight generations and waits for workers to exit. Queued
// sessions that never started are marked failed.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.mu.Unlock()

	o.wg.Wait()

	for sess := range o.queue {
		sess.SetStatus(StatusFailed, "shutdown")
	}
}

// Submit queues a new session for generation.
func (o *Orchestrator) Submit(sess *Session) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return ErrStopped
	}
	o.sessions.Put(sess)
	select {
	case o.queue <- sess:
		return nil
	default:
		sess.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize)
	}
}

// Get returns a session by ID.
func (o *Orchestrator) Get(id string) *Session {
	return o.sessions.Get(id)
}

// Cancel cancels a session. It reports whether the session existed.
func (o *Orchestrator) Cancel(id string) bool {
	sess := o.sessions.Get(id)
	if sess == nil {
		return false
	}
	sess.Cancel()
	return true
}

// Delete cancels a session if still running and forgets it.
func (o *Orchestrator) Delete(id string) bool {
	if sess := o.sessions.Get(id); sess != nil {
		sess.Cancel()
	}
	return o.sessions.Delete(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// SessionCount returns the number of tracked sessions.
func (o *Orchestrator) SessionCount() int {
	return o.sessions.Len()
}

// Stats returns the generator latency tracker.
func (o *Orchestrator) Stats() *generate.LatencyStats {
	return o.stats
}

// GeneratorName names the configured generator.
func (o *Orchestrator) GeneratorName() string {
	return o.gen.Name()
}
