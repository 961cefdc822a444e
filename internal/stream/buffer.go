package stream

import (
	"strings"
	"sync"
)

// CompleteFunc decides whether a buffer snapshot is a finished document.
// It must be a cheap string test, never a parse.
type CompleteFunc func(text string) bool

// Buffer accumulates chunks from a streaming generator. One generator
// goroutine appends while renderers take snapshots.
type Buffer struct {
	mu       sync.Mutex
	sb       strings.Builder
	chunks   int
	done     bool
	complete CompleteFunc
}

// NewBuffer creates a buffer that reports completeness with complete. A nil
// predicate means the buffer is complete once MarkDone is called.
func NewBuffer(complete CompleteFunc) *Buffer {
	return &Buffer{complete: complete}
}

// Append adds a chunk in arrival order.
func (b *Buffer) Append(chunk string) {
	if chunk == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sb.WriteString(chunk)
	b.chunks++
}

// Snapshot returns everything appended so far.
func (b *Buffer) Snapshot() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

// Len returns the buffered size in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Len()
}

// Chunks returns how many non-empty chunks were appended.
func (b *Buffer) Chunks() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.chunks
}

// IsComplete reports whether the buffered text is a finished document.
func (b *Buffer) IsComplete() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.complete == nil {
		return b.done
	}
	return b.complete(b.sb.String())
}

// MarkDone records that the upstream stream ended. It does not make an
// unfinished document complete.
func (b *Buffer) MarkDone() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done = true
}

// Done reports whether MarkDone was called.
func (b *Buffer) Done() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done
}
