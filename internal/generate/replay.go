package generate

import (
	"context"
	"time"
	"unicode/utf8"
)

// Replay streams a fixed text in fixed-size chunks. It stands in for a live
// model when replaying captured output.
type Replay struct {
	Text      string
	ChunkSize int           // Bytes per chunk, moved forward to a rune boundary; <=0 sends one chunk
	Delay     time.Duration // Pause between chunks
}

func (r *Replay) Name() string { return "replay" }

func (r *Replay) Stream(ctx context.Context, _ Prompt, onChunk ChunkFunc) error {
	for _, chunk := range Chunks(r.Text, r.ChunkSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onChunk(chunk); err != nil {
			return err
		}
		if r.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.Delay):
			}
		}
	}
	return nil
}

// Chunks splits s into pieces of about size bytes without splitting runes.
func Chunks(s string, size int) []string {
	if s == "" {
		return nil
	}
	if size <= 0 || size >= len(s) {
		return []string{s}
	}
	var out []string
	for len(s) > 0 {
		n := size
		if n >= len(s) {
			out = append(out, s)
			break
		}
		for n < len(s) && !utf8.RuneStart(s[n]) {
			n++
		}
		out = append(out, s[:n])
		s = s[n:]
	}
	return out
}
