// Package server exposes placement resolution over HTTP.
//
// # Endpoints
//
//   - POST   /v1/resolve           resolve a scenario, optionally storing it under "id"
//   - GET    /v1/placements/{id}   read the latest stored placement
//   - DELETE /v1/placements/{id}   forget a stored placement
//   - GET    /healthz              liveness and build version
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/anchorage/pkg/anchor"
	"github.com/matzehuels/anchorage/pkg/buildinfo"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/geom"
	"github.com/matzehuels/anchorage/pkg/scenario"
	"github.com/matzehuels/anchorage/pkg/store"
)

// maxBodyBytes bounds request bodies; a scenario is a few hundred bytes.
const maxBodyBytes = 64 << 10

// Server serves the placement API.
type Server struct {
	store  *store.Store
	logger *log.Logger
	router chi.Router
}

// New builds a server over st.
func New(st *store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{store: st, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/resolve", s.handleResolve)
		r.Get("/placements/{id}", s.handleGetPlacement)
		r.Delete("/placements/{id}", s.handleDeletePlacement)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

// =============================================================================
// Handlers
// =============================================================================

type resolveRequest struct {
	ID string `json:"id,omitempty"`
	scenario.Scenario
}

type resolveResponse struct {
	ID        string           `json:"id,omitempty"`
	Placement anchor.Placement `json:"placement"`
	Position  geom.Point       `json:"position"`
	Flipped   bool             `json:"flipped"`
	Revision  uint64           `json:"revision,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case stderrors.As(err, &maxErr):
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", maxErr.Limit)
		case errors.GetCode(err) == "":
			err = errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")
		}
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	p := req.Resolve()
	resp := resolveResponse{
		ID:        req.ID,
		Placement: p,
		Position:  anchor.Absolute(p.Coords, req.Target.Size(), req.Viewport),
		Flipped:   p.Flipped(req.Corner),
	}

	if req.ID != "" {
		rec, err := s.store.Save(r.Context(), req.ID, req.Scenario, p)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.Revision = rec.Revision
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPlacement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no placement stored for %q", id))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeletePlacement(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: RequestIDFrom(r.Context())})
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case stderrors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
