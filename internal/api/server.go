// Package api exposes blueprint generation over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"cliphunt/internal/blueprint"
	"cliphunt/internal/pipeline"
	"cliphunt/shared/monitoring"
	"cliphunt/shared/storage"
)

// Server serves blueprint generation, the run archive, and health.
type Server struct {
	service *blueprint.Service
	store   *storage.RunStore
	monitor *monitoring.Monitor
	port    int
}

func NewServer(service *blueprint.Service, store *storage.RunStore, monitor *monitoring.Monitor, port int) *Server {
	return &Server{
		service: service,
		store:   store,
		monitor: monitor,
		port:    port,
	}
}

// Handler builds the route table. Exposed separately so tests can drive
// it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate-video", s.generateHandler)
	mux.HandleFunc("GET /runs", s.listRunsHandler)
	mux.HandleFunc("GET /runs/{id}", s.getRunHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /{$}", s.rootHandler)
	return mux
}

// ListenAndServe blocks until the server fails.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("API server starting on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type generateRequest struct {
	Topic       string `json:"topic"`
	MaxIdeators int    `json:"max_ideators"`
}

func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "Topic is required in request body")
		return
	}

	log.Printf("API request: topic=%q max_ideators=%d", req.Topic, req.MaxIdeators)

	start := time.Now()
	record, structure, err := s.service.Generate(r.Context(), req.Topic, req.MaxIdeators)
	if err != nil {
		duration := time.Since(start)
		if errors.Is(err, pipeline.ErrEmptyTopic) || errors.Is(err, pipeline.ErrInvalidIdeators) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.monitor.RecordFailure(err, duration)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate video structure: %v", err))
		return
	}

	summary := fmt.Sprintf("topic %q: %d segments, %d concept fallbacks",
		record.Topic, record.SegmentCount, record.ConceptFallback)
	if record.ConceptFallback > 0 {
		s.monitor.RecordDegraded(summary, record.Duration)
	} else {
		s.monitor.RecordSuccess(summary, record.Duration)
	}

	if record.RunID != "" {
		w.Header().Set("X-Run-ID", record.RunID)
	}
	writeJSON(w, http.StatusOK, structure)
}

func (s *Server) listRunsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"runs": s.store.ListRuns()})
}

func (s *Server) getRunHandler(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("id")

	record, ok := s.store.GetRun(runID)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("run %s not found", runID))
		return
	}

	structure, err := s.store.LoadStructure(runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load blueprint: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run":             record,
		"video_structure": structure,
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if s.monitor.IsHealthy() {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"message": s.monitor.GetStatusSummary(),
		})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"status":  "unhealthy",
		"message": s.monitor.GetStatusSummary(),
	})
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Video Generation API",
		"endpoints": map[string]string{
			"POST /generate-video": "Generate video structure from topic",
			"GET /runs":            "List archived runs",
			"GET /runs/{id}":       "Fetch one archived run and its blueprint",
			"GET /health":          "Health check",
			"GET /":                "This information",
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Warning: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
