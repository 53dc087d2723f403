package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/skyward/preflight/internal/config"
	"github.com/skyward/preflight/internal/ingest"
	"github.com/skyward/preflight/internal/report"
	"github.com/skyward/preflight/internal/risk"
	"github.com/skyward/preflight/pkg/logger"
)

// Handler holds the API request handlers
type Handler struct {
	scorer *risk.Scorer
	config *config.Config
	logger *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(scorer *risk.Scorer, config *config.Config, logger *logger.Logger) *Handler {
	return &Handler{
		scorer: scorer,
		config: config,
		logger: logger.Named("api-handler"),
	}
}

// ScoreTable scores an uploaded CSV flight table and responds with the full
// report. The CSV is read from a multipart "file" part when the request is
// multipart/form-data, otherwise from the raw request body.
func (h *Handler) ScoreTable(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Server.MaxUploadBytes)

	source := io.Reader(r.Body)
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mediaType == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "missing multipart file field")
			return
		}
		defer file.Close()
		source = file
	}

	records, err := ingest.ReadTable(source)
	if err != nil {
		if errors.Is(err, ingest.ErrEmptyTable) {
			h.respondError(w, http.StatusBadRequest, "table has no header row")
			return
		}
		h.logger.Warn("rejected invalid table", logger.Error(err))
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := h.scorer.ScoreBatch(records)
	policy := h.scorer.Policy()

	generatedAt := time.Now().UTC()
	if len(results) > 0 {
		generatedAt = results[0].ScoredAt
	}

	h.respondJSON(w, http.StatusOK, report.Build(policy.Version, generatedAt, records, results))
}

// ScoreRecord scores a single flight record posted as a JSON object of
// field name to value.
func (h *Handler) ScoreRecord(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Server.MaxUploadBytes)

	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec := risk.RecordFromValues(values)
	h.respondJSON(w, http.StatusOK, h.scorer.ScoreRecord(rec))
}

// GetPolicy returns the active threshold policy
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.scorer.Policy())
}

// GetHealth returns the service health status
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"model_loaded": h.scorer.HasModel(),
		"policy":       h.scorer.Policy().Version,
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
