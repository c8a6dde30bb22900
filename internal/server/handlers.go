package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openaims/sectorflow/pkg/allocation"
	"github.com/openaims/sectorflow/pkg/engine"
	"github.com/openaims/sectorflow/pkg/errors"
	"github.com/openaims/sectorflow/pkg/layout"
	"github.com/openaims/sectorflow/pkg/store"
)

// layoutRequest is the body of POST /api/layout. Allocations stay raw so
// the allocation parser applies its own shape validation.
type layoutRequest struct {
	Allocations json.RawMessage `json:"allocations"`
	Mode        string          `json:"mode,omitempty"`
	Canvas      *canvasSpec     `json:"canvas,omitempty"`
	Refresh     bool            `json:"refresh,omitempty"`
}

type canvasSpec struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// viewRequest is the body of POST /api/views.
type viewRequest struct {
	Name        string          `json:"name"`
	Allocations json.RawMessage `json:"allocations"`
	Mode        string          `json:"mode,omitempty"`
	Canvas      *canvasSpec     `json:"canvas,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeBody(r.Body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	allocs, err := allocation.Parse(req.Allocations)
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	mode, canvas, err := s.resolveLayoutParams(req.Mode, req.Canvas)
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	result, cached, err := s.runner.Layout(r.Context(), engine.Options{
		Allocations: allocs,
		Lookup:      s.lookup,
		Mode:        mode,
		Canvas:      canvas,
		Refresh:     req.Refresh,
	})
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	w.Header().Set("X-Cache", cacheHeader(cached))
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListClassifications(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"records": s.lookup.Records(),
	})
}

func (s *Server) handleGetClassification(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := errors.ValidateClassificationCode(code); err != nil {
		s.writeErrorFor(w, err)
		return
	}

	// Unknown codes still resolve via truncation, so report the ancestry
	// along with whether the code is actually in the dataset.
	record, known := s.lookup.Leaf(code)
	ancestry := s.lookup.Resolve(code, record.Name)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"code":     code,
		"known":    known,
		"ancestry": ancestry,
	})
}

func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	views, err := s.views.List(r.Context())
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"views": views})
}

func (s *Server) handleCreateView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := decodeBody(r.Body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "view name is required")
		return
	}

	allocs, err := allocation.Parse(req.Allocations)
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	mode, canvas, err := s.resolveLayoutParams(req.Mode, req.Canvas)
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	view := store.New(req.Name, allocs, string(mode), canvas)
	if err := s.views.Save(r.Context(), view); err != nil {
		s.writeErrorFor(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	view, err := s.loadView(w, r)
	if view == nil || err != nil {
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteView(w http.ResponseWriter, r *http.Request) {
	if err := s.views.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeErrorFor(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleViewLayout recomputes the layout for a saved view.
func (s *Server) handleViewLayout(w http.ResponseWriter, r *http.Request) {
	view, err := s.loadView(w, r)
	if view == nil || err != nil {
		return
	}

	mode, err := engine.ParseMode(view.Mode)
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	result, cached, err := s.runner.Layout(r.Context(), engine.Options{
		Allocations: view.Allocations,
		Lookup:      s.lookup,
		Mode:        mode,
		Canvas:      view.Canvas,
	})
	if err != nil {
		s.writeErrorFor(w, err)
		return
	}

	w.Header().Set("X-Cache", cacheHeader(cached))
	s.writeJSON(w, http.StatusOK, result)
}

// loadView fetches the view from the URL parameter, writing the error
// response itself. Returns nil if the response was already written.
func (s *Server) loadView(w http.ResponseWriter, r *http.Request) (*store.View, error) {
	id := chi.URLParam(r, "id")
	view, err := s.views.Get(r.Context(), id)
	if err != nil {
		s.writeErrorFor(w, err)
		return nil, err
	}
	if view == nil {
		s.writeError(w, http.StatusNotFound, "view not found: "+id)
		return nil, nil
	}
	return view, nil
}

// resolveLayoutParams merges request parameters over configured defaults.
func (s *Server) resolveLayoutParams(modeStr string, spec *canvasSpec) (engine.Mode, layout.Canvas, error) {
	if modeStr == "" {
		modeStr = s.cfg.Layout.Mode
	}
	mode, err := engine.ParseMode(modeStr)
	if err != nil {
		return "", layout.Canvas{}, err
	}

	canvas := s.cfg.Canvas()
	if spec != nil {
		canvas = layout.Canvas{Width: spec.Width, Height: spec.Height}
	}
	if err := errors.ValidateCanvas(canvas.Width, canvas.Height); err != nil {
		return "", layout.Canvas{}, err
	}
	return mode, canvas, nil
}

func decodeBody(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	return dec.Decode(v)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeErrorFor maps structured error codes to HTTP status codes.
func (s *Server) writeErrorFor(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAllocation,
		errors.ErrCodeInvalidMode, errors.ErrCodeInvalidCanvas:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeViewNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	s.writeError(w, status, errors.UserMessage(err))
}
