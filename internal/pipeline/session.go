package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/nexusdoc/internal/dialect"
	"github.com/dgallion1/nexusdoc/internal/generate"
	"github.com/dgallion1/nexusdoc/internal/render"
	"github.com/dgallion1/nexusdoc/internal/stream"
)

// Status represents the state of a generation session.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusStreaming Status = "streaming"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transitions can happen.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Kind says what a session generates.
type Kind string

const (
	KindReport   Kind = "report"
	KindAnalysis Kind = "analysis"
)

// Session tracks one streamed generation: its buffer, its renderer, and
// its lifecycle.
type Session struct {
	mu sync.Mutex

	ID      string
	Kind    Kind
	Dialect string

	status    Status
	phase     string
	attempts  int
	errors    []string
	createdAt time.Time
	updatedAt time.Time

	// Internal: not serialized.
	prompt       generate.Prompt
	buf          *stream.Buffer
	renderer     render.Renderer
	previewLimit int
	cancel       context.CancelFunc
	cancelled    bool
}

// NewSession creates a queued session for a dialect.
func NewSession(kind Kind, dialectName string, prompt generate.Prompt, opts dialect.Options) (*Session, error) {
	r, err := dialect.ForName(dialectName, opts)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:           uuid.NewString(),
		Kind:         kind,
		Dialect:      dialectName,
		status:       StatusQueued,
		phase:        "queued",
		createdAt:    now,
		updatedAt:    now,
		prompt:       prompt,
		buf:          stream.NewBuffer(dialect.Completion(dialectName)),
		renderer:     r,
		previewLimit: opts.PreviewLimit,
	}, nil
}

// Prompt returns the prompt the session was created with.
func (s *Session) Prompt() generate.Prompt {
	return s.prompt
}

// Buffer returns the session's stream buffer.
func (s *Session) Buffer() *stream.Buffer {
	return s.buf
}

// Status returns the current status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetStatus updates session status. Terminal states are final.
func (s *Session) SetStatus(status Status, phase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return
	}
	s.status = status
	s.phase = phase
	s.updatedAt = time.Now()
}

// AddError records an error.
func (s *Session) AddError(err string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, err)
	s.updatedAt = time.Now()
}

// Touch records activity, such as a chunk arriving.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
}

// begin moves a queued session to streaming and keeps cancel for Cancel.
// It returns false if the session was cancelled while queued.
func (s *Session) begin(cancel context.CancelFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusQueued {
		return false
	}
	s.status = StatusStreaming
	s.phase = "streaming"
	s.cancel = cancel
	s.updatedAt = time.Now()
	return true
}

func (s *Session) incrAttempts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
}

// Cancel stops the session. A queued session is cancelled immediately; a
// streaming one has its generator context cancelled and the worker records
// the final state. Returns false if the session had already finished.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return false
	}
	s.cancelled = true
	if s.status == StatusQueued {
		s.status = StatusCancelled
		s.phase = "cancelled"
		s.updatedAt = time.Now()
		return true
	}
	if s.cancel != nil {
		s.cancel()
	}
	return true
}

// CancelRequested reports whether Cancel was called.
func (s *Session) CancelRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// Render renders whatever has arrived so far. It never mutates the buffer,
// so it is safe to call on every poll.
func (s *Session) Render() render.Result {
	return render.Snapshot(s.renderer, s.buf.Snapshot(), s.buf.IsComplete(), s.buf.Done(), s.previewLimit)
}

// SessionSnapshot is a read-only, JSON-safe copy of session state.
type SessionSnapshot struct {
	ID        string    `json:"session_id"`
	Kind      Kind      `json:"kind"`
	Dialect   string    `json:"dialect"`
	Status    Status    `json:"status"`
	Phase     string    `json:"phase"`
	Progress  Progress  `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Progress tracks streaming progress.
type Progress struct {
	Chunks   int      `json:"chunks"`
	Bytes    int      `json:"bytes"`
	Complete bool     `json:"complete"`
	Attempts int      `json:"attempts"`
	Errors   []string `json:"errors"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() SessionSnapshot {
	chunks, size, complete := s.buf.Chunks(), s.buf.Len(), s.buf.IsComplete()

	s.mu.Lock()
	defer s.mu.Unlock()
	errs := append([]string{}, s.errors...)
	return SessionSnapshot{
		ID:      s.ID,
		Kind:    s.Kind,
		Dialect: s.Dialect,
		Status:  s.status,
		Phase:   s.phase,
		Progress: Progress{
			Chunks:   chunks,
			Bytes:    size,
			Complete: complete,
			Attempts: s.attempts,
			Errors:   errs,
		},
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
}

func (s *Session) lastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SessionStore is a thread-safe in-memory session registry with TTL eviction.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (s *SessionStore) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

func (s *SessionStore) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// Delete removes a session and reports whether it existed.
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len returns the number of tracked sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup removes finished sessions idle for longer than the TTL.
func (s *SessionStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, sess := range s.sessions {
		if sess.Status().Terminal() && now.Sub(sess.lastUpdate()) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
