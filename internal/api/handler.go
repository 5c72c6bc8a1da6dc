package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/yegors/soda-go/internal/storage/sqlite"
	"github.com/yegors/soda-go/pkg/logger"
)

const defaultTranscriptLimit = 100

// Handler contains the API handlers
type Handler struct {
	transcriptStorage *sqlite.TranscriptStorage
	logger            *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(transcriptStorage *sqlite.TranscriptStorage, logger *logger.Logger) *Handler {
	return &Handler{
		transcriptStorage: transcriptStorage,
		logger:            logger.Named("api-handler"),
	}
}

// GetHealth returns the service health status
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetRecentTranscripts returns the most recent transcripts
func (h *Handler) GetRecentTranscripts(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, defaultTranscriptLimit)

	records, err := h.transcriptStorage.GetRecentTranscripts(limit)
	if err != nil {
		h.logger.Error("Failed to get recent transcripts", logger.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to query transcripts")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"transcripts": records,
		"count":       len(records),
	})
}

// GetTranscriptsBySource returns transcripts for a specific audio source.
// The source is passed as a query parameter because file paths contain
// slashes.
func (h *Handler) GetTranscriptsBySource(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		h.writeError(w, http.StatusBadRequest, "missing source parameter")
		return
	}
	limit := parseLimit(r, defaultTranscriptLimit)

	records, err := h.transcriptStorage.GetTranscriptsBySource(source, limit)
	if err != nil {
		h.logger.Error("Failed to get transcripts by source",
			logger.String("source", source),
			logger.Error(err),
		)
		h.writeError(w, http.StatusInternalServerError, "failed to query transcripts")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"transcripts": records,
		"count":       len(records),
	})
}

// GetTranscriptsByTimeRange returns transcripts within a time range. Both
// bounds are required, RFC3339 formatted.
func (h *Handler) GetTranscriptsByTimeRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		h.writeError(w, http.StatusBadRequest, "missing start or end parameter")
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid start time")
		return
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid end time")
		return
	}

	records, err := h.transcriptStorage.GetTranscriptsByTimeRange(start, end)
	if err != nil {
		h.logger.Error("Failed to get transcripts by time range", logger.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to query transcripts")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"transcripts": records,
		"count":       len(records),
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode JSON response", logger.Error(err))
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func parseLimit(r *http.Request, def int) int {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return def
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}
