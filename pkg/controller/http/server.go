package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/usecase"
	"github.com/secmon-lab/checkin/pkg/utils/apperr"
)

// UseCases bundles the use cases served over HTTP
type UseCases struct {
	calendar usecase.CalendarUseCase
	project  usecase.ProjectUseCase
	checkIn  usecase.CheckInUseCase
	email    usecase.EmailUseCase
}

// NewUseCases creates a UseCases bundle
func NewUseCases(
	calendar usecase.CalendarUseCase,
	project usecase.ProjectUseCase,
	checkIn usecase.CheckInUseCase,
	email usecase.EmailUseCase,
) *UseCases {
	return &UseCases{
		calendar: calendar,
		project:  project,
		checkIn:  checkIn,
		email:    email,
	}
}

// Option configures the Server
type Option func(*Server)

// WithClock overrides the clock used for due dates and drafts
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithCORS enables permissive CORS headers for a separately hosted frontend
func WithCORS() Option {
	return func(s *Server) {
		s.cors = true
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
	uc     *UseCases
	now    func() time.Time
	cors   bool
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, addr string, uc *UseCases, opts ...Option) *Server {
	s := &Server{
		uc:  uc,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	if s.cors {
		router.Use(CORS)
	}

	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/weeks", s.handleWeeks)
			r.Get("/resolve", s.handleResolve)
			r.Get("/current", s.handleCurrent)
			r.Post("/reselect", s.handleReselect)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.handleListProjects)
			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", s.handleGetProject)
				r.Get("/reports", s.handleReportHistory)
				r.Get("/reports/{reportID}/email", s.handleComposeReport)
				r.Get("/checkins/draft", s.handleDraftCheckIn)
				r.Get("/checkins/latest", s.handleLatestCheckIn)
				r.Post("/checkins", s.handleSubmitCheckIn)
			})
		})

		r.Route("/checkins/{checkInID}", func(r chi.Router) {
			r.Get("/", s.handleGetCheckIn)
			r.Put("/", s.handleUpdateCheckIn)
		})

		r.Route("/email", func(r chi.Router) {
			r.Post("/digest", s.handleComposeDigest)
			r.Post("/send", s.handleSendEmail)
		})

		r.Route("/settings/email", func(r chi.Router) {
			r.Get("/", s.handleGetEmailSettings)
			r.Put("/", s.handlePutEmailSettings)
		})
	})

	s.router = router
	s.Server = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	return s
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "checkin",
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

func readJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(model.ErrValidation, "failed to decode request body", goerr.V("error", err.Error()))
	}
	return nil
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, period.ErrInvalidInput):
		return http.StatusBadRequest
	case usecase.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, period.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes an error response in JSON format
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		apperr.Handle(r.Context(), err)
		msg = "internal server error"
	} else {
		ctxlog.From(r.Context()).Debug("Request rejected", "error", err, "status", status)
	}

	writeJSON(w, r, status, map[string]string{"error": msg})
}
