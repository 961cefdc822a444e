package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/dgallion1/nexusdoc/internal/dialect"
	"github.com/dgallion1/nexusdoc/internal/render"
	"github.com/go-chi/chi/v5"
)

// handleRender renders a raw document body in one dialect. The body is
// treated as a buffer snapshot, so an unfinished NIDL or NADL document comes
// back in pending mode.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "dialect")
	renderer, err := dialect.ForName(name, s.dialectOptions())
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "document exceeds max size", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	res := renderer.Render(string(body))
	if res.Mode == render.ModeError {
		s.log.Warn("render produced error view", "dialect", name, "bytes", len(body))
	}
	writeResult(w, r, res, map[string]any{"dialect": name})
}

func (s *Server) dialectOptions() dialect.Options {
	return dialect.Options{PreviewLimit: s.cfg.PreviewLimit, Log: s.log}
}

// writeResult writes a render result as JSON, or as the bare HTML fragment
// when the caller asks for ?format=html. extra fields are merged into the
// JSON body.
func writeResult(w http.ResponseWriter, r *http.Request, res render.Result, extra map[string]any) {
	w.Header().Set("X-Render-Mode", string(res.Mode))
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, res.HTML)
		return
	}
	body := map[string]any{"mode": res.Mode, "html": res.HTML}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}
