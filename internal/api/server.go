package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/chart"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/export"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/metrics"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/render"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/session"
)

// Options configures the API server
type Options struct {
	Addr               string
	DefaultHoursPerDay float64
	CSVFileName        string
	XLSXFileName       string
	Metrics            *metrics.Metrics
}

// Server handles HTTP requests for one planning session
type Server struct {
	session *session.Session
	log     *slog.Logger
	opts    Options
}

// New creates a new API server
func New(s *session.Session, log *slog.Logger, opts Options) *Server {
	return &Server{session: s, log: log, opts: opts}
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Subjects
	mux.HandleFunc("GET /subjects", s.listSubjects)
	mux.HandleFunc("POST /subjects", s.addSubject)

	// Plan
	mux.HandleFunc("POST /plan", s.generatePlan)
	mux.HandleFunc("GET /plan", s.getPlan)
	mux.HandleFunc("GET /plan/schedule", s.getSchedule)
	mux.HandleFunc("GET /plan/charts", s.getCharts)
	mux.HandleFunc("GET /plan/export.csv", s.exportCSV)
	mux.HandleFunc("GET /plan/export.xlsx", s.exportXLSX)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	if s.opts.Metrics != nil {
		mux.Handle("GET /metrics", s.opts.Metrics.Handler())
	}

	return s.withLogging(withCORS(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.opts.Addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("HTTP server started", "addr", s.opts.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("graceful shutdown complete")
	return nil
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency", time.Since(start),
		)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AddSubjectRequest is the request body for adding a subject
type AddSubjectRequest = domain.SubjectInput

func (s *Server) addSubject(w http.ResponseWriter, r *http.Request) {
	var req AddSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	subject, err := s.session.AddSubject(req.Subject())
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, subject)
}

func (s *Server) listSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.session.Subjects()
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	if subjects == nil {
		subjects = []domain.Subject{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"subjects": subjects,
	})
}

// GeneratePlanRequest is the request body for generating a plan
type GeneratePlanRequest struct {
	HoursPerDay *float64 `json:"hours_per_day,omitempty"`
}

func (s *Server) generatePlan(w http.ResponseWriter, r *http.Request) {
	var req GeneratePlanRequest
	if r.Body != nil {
		// An empty body means the configured default
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	hours := s.opts.DefaultHoursPerDay
	if req.HoursPerDay != nil {
		hours = *req.HoursPerDay
	}

	plan, err := s.session.GeneratePlan(hours)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.currentPlan(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.currentPlan(w)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.Schedule(&buf, plan); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) getCharts(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.currentPlan(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, chart.Build(plan))
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.currentPlan(w)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, plan); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeAttachment(w, "text/csv", s.opts.CSVFileName, buf.Bytes())
}

func (s *Server) exportXLSX(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.currentPlan(w)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, plan); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", s.opts.XLSXFileName, buf.Bytes())
}

func (s *Server) currentPlan(w http.ResponseWriter) (*domain.Plan, bool) {
	plan, err := s.session.Plan()
	if err != nil {
		s.writeSessionError(w, err)
		return nil, false
	}
	return plan, true
}

func (s *Server) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidSubject),
		errors.Is(err, session.ErrInvalidBudget),
		errors.Is(err, session.ErrNoSubjects):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrDuplicateSubject):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNoPlan):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeAttachment(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
