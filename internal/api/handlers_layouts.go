package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dgallion1/gridgest/internal/layout"
	"github.com/dgallion1/gridgest/internal/pipeline"
	"github.com/dgallion1/gridgest/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// handleIngest accepts a layout JSON document and queues it for ingestion.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	if len(data) == 0 {
		jsonError(w, "layout document is required", http.StatusBadRequest)
		return
	}
	// Cheap shape check up front; the real build happens in the worker.
	if !json.Valid(data) {
		jsonError(w, "body is not valid JSON", http.StatusBadRequest)
		return
	}

	layoutID := r.URL.Query().Get("layout_id")
	if layoutID == "" {
		layoutID = pipeline.ContentHashHex(data)[:16]
	}
	title := r.URL.Query().Get("title")
	force := r.URL.Query().Get("force") == "true"

	now := time.Now()
	job := &pipeline.Job{
		ID:        uuid.New().String(),
		LayoutID:  layoutID,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Title:     title,
		Force:     force,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetRawDoc(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":    job.ID,
		"layout_id": job.LayoutID,
		"status":    job.Status,
		"poll_url":  fmt.Sprintf("/api/jobs/%s/status", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context(), 200)
	if err != nil {
		jsonError(w, "failed to list layouts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"layouts": list})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadLayout(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":            rec.ID,
		"title":         rec.Title,
		"content_hash":  rec.ContentHash,
		"control_count": rec.ControlCount,
		"valid":         rec.Valid,
		"created_at":    rec.CreatedAt,
		"updated_at":    rec.UpdatedAt,
		"document":      json.RawMessage(rec.Raw),
	})
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	layoutID := chi.URLParam(r, "layoutID")
	ctx := r.Context()

	if err := s.store.Delete(ctx, layoutID); err != nil {
		jsonError(w, "failed to delete layout: "+err.Error(), http.StatusInternalServerError)
		return
	}
	// Index cleanup is best effort; a stale entry is harmless and the
	// index service garbage-collects unknown layout ids.
	if err := s.orchestrator.IndexClient().DeleteLayout(ctx, layoutID); err != nil {
		s.log.Warn("index cleanup failed", "layout_id", layoutID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": layoutID})
}

// handleLayoutText returns the layout's concatenated searchable text.
func (s *Server) handleLayoutText(w http.ResponseWriter, r *http.Request) {
	doc, rec, ok := s.buildLayout(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":    rec.ID,
		"text":  doc.SearchableText(),
		"valid": doc.IsValid(),
	})
}

// handleLayoutControls returns the flattened control list, optionally
// filtered by exact editor alias.
func (s *Server) handleLayoutControls(w http.ResponseWriter, r *http.Request) {
	doc, rec, ok := s.buildLayout(w, r)
	if !ok {
		return
	}

	var controls []layout.Control
	if alias := r.URL.Query().Get("editor"); alias != "" {
		controls = doc.ControlsByEditor(alias)
	} else {
		controls = doc.Controls()
	}

	out := make([]map[string]any, 0, len(controls))
	for _, c := range controls {
		out = append(out, map[string]any{
			"editor": c.Editor().Alias,
			"value":  c.Value(),
			"text":   c.SearchableText(),
			"valid":  c.IsValid(),
			"row_id": c.Area().Row().ID,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":       rec.ID,
		"controls": out,
	})
}

// handleLayoutHTML renders the stored layout to HTML with default views.
func (s *Server) handleLayoutHTML(w http.ResponseWriter, r *http.Request) {
	doc, _, ok := s.buildLayout(w, r)
	if !ok {
		return
	}
	html, err := s.renderer.RenderDocument(doc)
	if err != nil {
		jsonError(w, "render failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.GetStats(r.Context())
	if err != nil {
		jsonError(w, "stats unavailable: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"store":       st,
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}

// loadLayout fetches the stored record for the request's layoutID, writing
// the error response itself when that fails.
func (s *Server) loadLayout(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	layoutID := chi.URLParam(r, "layoutID")
	rec, err := s.store.Get(r.Context(), layoutID)
	if err != nil {
		jsonError(w, "failed to load layout: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	if rec == nil {
		jsonError(w, "layout not found", http.StatusNotFound)
		return nil, false
	}
	return rec, true
}

// buildLayout loads the stored raw document and rebuilds its model.
// Rebuilding per request is cheap relative to a network hop and keeps the
// store the single source of truth.
func (s *Server) buildLayout(w http.ResponseWriter, r *http.Request) (*layout.Document, *store.Record, bool) {
	rec, ok := s.loadLayout(w, r)
	if !ok {
		return nil, nil, false
	}
	doc, err := layout.Parse(bytes.NewReader(rec.Raw), s.factory)
	if err != nil {
		// A stored layout already survived one build; failure here means
		// the data was corrupted after ingest.
		jsonError(w, "stored layout no longer builds: "+err.Error(), http.StatusInternalServerError)
		return nil, nil, false
	}
	return doc, rec, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
