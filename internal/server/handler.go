package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/spacesedan/emotiflow/internal/analysis"
	"github.com/spacesedan/emotiflow/internal/cache"
	"github.com/spacesedan/emotiflow/internal/models"
)

const cacheWriteTimeout = 2 * time.Second

// Analyzer is the single operation the transport consumes.
type Analyzer interface {
	Analyze(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResult, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler is the thin HTTP collaborator around the analysis core: framing,
// CORS and status mapping only. resultCache may be nil (cache off).
type Handler struct {
	analyzer    Analyzer
	resultCache *cache.ResultCache
	healthy     *atomic.Bool
}

func NewHandler(analyzer Analyzer, resultCache *cache.ResultCache, healthy *atomic.Bool) *Handler {
	return &Handler{
		analyzer:    analyzer,
		resultCache: resultCache,
		healthy:     healthy,
	}
}

func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", h.handleAnalyze)
	mux.HandleFunc("/healthz", h.handleHealthz)
	return mux
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	writeCORSHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	log := slog.With(slog.String("request_id", uuid.NewString()))

	var request models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := cache.Key(request.Text)
	if cached, ok := h.resultCache.Get(r.Context(), key); ok {
		log.Info("[Server] Serving cached analysis")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	start := time.Now()
	result, err := h.analyzer.Analyze(r.Context(), request)
	if err != nil {
		status, message := statusForError(err)
		log.Warn("[Server] Analysis failed",
			slog.Int("status", status),
			slog.String("error", err.Error()))
		writeError(w, status, message)
		return
	}

	log.Info("[Server] Analysis served",
		slog.Duration("elapsed", time.Since(start)))
	writeJSON(w, http.StatusOK, result)

	// The request context dies with the response; give the cache write its
	// own bounded lifetime.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), cacheWriteTimeout)
	defer cancel()
	h.resultCache.Set(ctx, key, result)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeCORSHeaders(w)

	if h.healthy != nil && !h.healthy.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusForError maps the pipeline's error taxonomy onto transport status
// codes. Model failures surface as a generic server error, never internals.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, analysis.ErrInvalidInput):
		return http.StatusBadRequest, "No text provided."
	case errors.Is(err, analysis.ErrModelUnavailable):
		return http.StatusServiceUnavailable, "An internal error occurred during analysis."
	default:
		return http.StatusInternalServerError, "An internal error occurred during analysis."
	}
}

func writeCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("[Server] Failed to encode response",
			slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
