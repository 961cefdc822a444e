package generate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err        error
		retryable  bool
		wantStatus int
	}{
		{errors.New("POST /v1/messages: 429 Too Many Requests"), true, 429},
		{errors.New("Error 503, Message: The model is overloaded"), true, 529},
		{errors.New("rpc error: code = Unavailable"), true, 503},
		{errors.New("dial tcp: connection refused"), true, 0},
		{errors.New("400 Bad Request: invalid model"), false, 0},
		{errors.New("max_tokens: 5000 exceeds the model limit"), false, 0},
		{errors.New("field 502 is unavailable in this region"), false, 0},
		{genai.APIError{Code: 503, Message: "The model is overloaded", Status: "UNAVAILABLE"}, true, 503},
		{genai.APIError{Code: 429, Message: "Quota exceeded", Status: "RESOURCE_EXHAUSTED"}, true, 429},
		{genai.APIError{Code: 400, Message: "max_output_tokens 5000 is over the 500 limit", Status: "INVALID_ARGUMENT"}, false, 0},
		{&genai.APIError{Code: 500, Message: "internal", Status: "INTERNAL"}, true, 500},
		{context.Canceled, false, 0},
	}
	for _, tt := range tests {
		err := classify("test", tt.err)
		if got := IsRetryable(err); got != tt.retryable {
			t.Errorf("classify(%q) retryable = %v, want %v", tt.err, got, tt.retryable)
			continue
		}
		var re *RetryableError
		if errors.As(err, &re) && re.StatusCode != tt.wantStatus {
			t.Errorf("classify(%q) status = %d, want %d", tt.err, re.StatusCode, tt.wantStatus)
		}
		if !strings.Contains(err.Error(), tt.err.Error()) {
			t.Errorf("classify(%q) lost the original message: %q", tt.err, err)
		}
	}
	if classify("test", nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestRetryableErrorMessage(t *testing.T) {
	err := &RetryableError{StatusCode: 503, Message: strings.Repeat("x", 300)}
	if !strings.HasPrefix(err.Error(), "retryable error (status 503): ") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !strings.HasSuffix(err.Error(), "...") {
		t.Error("expected long message truncated")
	}
}

func TestChunks(t *testing.T) {
	tests := []struct {
		in   string
		size int
		want []string
	}{
		{"", 3, nil},
		{"abcdef", 0, []string{"abcdef"}},
		{"abcdefg", 3, []string{"abc", "def", "g"}},
		{"aéb", 2, []string{"aé", "b"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Chunks(tt.in, tt.size)); diff != "" {
			t.Errorf("Chunks(%q, %d) mismatch (-want +got):\n%s", tt.in, tt.size, diff)
		}
	}
}

func TestReplayStream(t *testing.T) {
	r := &Replay{Text: "<document></document>", ChunkSize: 5}
	var got strings.Builder
	n := 0
	err := r.Stream(context.Background(), Prompt{}, func(c string) error {
		got.WriteString(c)
		n++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != r.Text {
		t.Errorf("expected text reassembled, got %q", got.String())
	}
	if n != 5 {
		t.Errorf("expected 5 chunks, got %d", n)
	}
}

func TestReplayStream_CallbackErrorStops(t *testing.T) {
	stop := errors.New("stop")
	r := &Replay{Text: "abcdef", ChunkSize: 1}
	calls := 0
	err := r.Stream(context.Background(), Prompt{}, func(string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("expected stop after first chunk, got err=%v calls=%d", err, calls)
	}
}

func TestReplayStream_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Replay{Text: "abcdef", ChunkSize: 1, Delay: time.Hour}
	err := r.Stream(ctx, Prompt{}, func(string) error {
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
