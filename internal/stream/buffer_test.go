package stream

import (
	"strings"
	"sync"
	"testing"
)

func endsWithEnd(text string) bool {
	return strings.HasSuffix(strings.TrimSpace(text), "</end>")
}

func TestBuffer_AppendAndSnapshot(t *testing.T) {
	b := NewBuffer(endsWithEnd)
	b.Append("<start>")
	b.Append("")
	b.Append("body")

	if got := b.Snapshot(); got != "<start>body" {
		t.Errorf("expected %q, got %q", "<start>body", got)
	}
	if b.Chunks() != 2 {
		t.Errorf("expected 2 chunks (empty chunk ignored), got %d", b.Chunks())
	}
	if b.Len() != len("<start>body") {
		t.Errorf("expected len %d, got %d", len("<start>body"), b.Len())
	}
	if b.IsComplete() {
		t.Error("expected incomplete buffer")
	}

	b.Append("</end>\n")
	if !b.IsComplete() {
		t.Error("expected complete buffer after closing marker")
	}
}

func TestBuffer_SnapshotIsStable(t *testing.T) {
	b := NewBuffer(endsWithEnd)
	b.Append("abc")
	snap := b.Snapshot()
	b.Append("def")
	if snap != "abc" {
		t.Errorf("earlier snapshot changed to %q", snap)
	}
}

func TestBuffer_MarkDoneDoesNotComplete(t *testing.T) {
	b := NewBuffer(endsWithEnd)
	b.Append("<start>")
	b.MarkDone()
	if !b.Done() {
		t.Error("expected Done after MarkDone")
	}
	if b.IsComplete() {
		t.Error("MarkDone must not make an unfinished document complete")
	}
}

func TestBuffer_NilPredicateUsesDone(t *testing.T) {
	b := NewBuffer(nil)
	b.Append("anything")
	if b.IsComplete() {
		t.Error("expected incomplete before MarkDone")
	}
	b.MarkDone()
	if !b.IsComplete() {
		t.Error("expected complete after MarkDone")
	}
}

func TestBuffer_ConcurrentAppendAndSnapshot(t *testing.T) {
	b := NewBuffer(endsWithEnd)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 500 {
			b.Append("x")
		}
	}()
	go func() {
		defer wg.Done()
		prev := 0
		for range 500 {
			n := len(b.Snapshot())
			if n < prev {
				t.Errorf("snapshot shrank from %d to %d", prev, n)
				return
			}
			prev = n
		}
	}()
	wg.Wait()
	if b.Len() != 500 {
		t.Errorf("expected 500 bytes, got %d", b.Len())
	}
}
