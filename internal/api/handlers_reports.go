package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dgallion1/nexusdoc/internal/dialect"
	"github.com/dgallion1/nexusdoc/internal/generate"
	"github.com/dgallion1/nexusdoc/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var params generate.ReportParameters
	if !s.decodeBody(w, r, &params) {
		return
	}
	if err := params.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.submit(w, pipeline.KindReport, dialect.NIDL, generate.BuildReportPrompt(params))
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req generate.AnalysisRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.submit(w, pipeline.KindAnalysis, dialect.NADL, generate.BuildAnalysisPrompt(req))
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request exceeds max size", http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) submit(w http.ResponseWriter, kind pipeline.Kind, dialectName string, prompt generate.Prompt) {
	sess, err := pipeline.NewSession(kind, dialectName, prompt, s.dialectOptions())
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := s.orchestrator.Submit(sess); err != nil {
		s.log.Warn("session rejected", "session_id", sess.ID, "error", err)
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"session_id": sess.ID,
		"kind":       sess.Kind,
		"dialect":    sess.Dialect,
		"status":     sess.Status(),
		"poll_url":   fmt.Sprintf("/api/reports/%s/status", sess.ID),
		"render_url": fmt.Sprintf("/api/reports/%s/render", sess.ID),
	})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) *pipeline.Session {
	sess := s.orchestrator.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
	}
	return sess
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// handleSessionRender renders the session buffer as it stands. Polling it
// while the stream runs yields pending views until the document closes.
func (s *Server) handleSessionRender(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	writeResult(w, r, sess.Render(), map[string]any{
		"session_id": sess.ID,
		"status":     sess.Status(),
	})
}

func (s *Server) handleSessionRaw(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(sess.Buffer().Snapshot()))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.orchestrator.Delete(id) {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
