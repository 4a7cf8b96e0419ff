package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/pfrederiksen/qt-bible/internal/logger"
	"github.com/pfrederiksen/qt-bible/internal/resolver"
	"github.com/pfrederiksen/qt-bible/internal/schedule"
)

// NoDataMessage accompanies an empty result from /get-qt-bible-data.
const NoDataMessage = "No QT data found for the given timestamp and timezone, or parsing failed."

// ReadingService is the part of *resolver.Resolver the handlers use.
type ReadingService interface {
	Lookup(ctx context.Context, timestampMillis int64, timezone string) (*resolver.Reading, error)
	Month(ctx context.Context, year int, month time.Month) ([]*schedule.Day, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	readings        ReadingService
	defaultTimezone string
}

// NewHandler creates a new handler
func NewHandler(readings ReadingService, defaultTimezone string) *Handler {
	if defaultTimezone == "" {
		defaultTimezone = schedule.DefaultTimezone
	}
	return &Handler{readings: readings, defaultTimezone: defaultTimezone}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "qt-bible",
	})
}

// Metrics returns the process metrics snapshot.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, logger.GetMetricsSnapshot())
}

// GetQTBibleData returns the verse-range units for timestamp_ms in timezone.
func (h *Handler) GetQTBibleData(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	raw := query.Get("timestamp_ms")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "timestamp_ms parameter is required", nil)
		return
	}
	timestampMillis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid timestamp_ms format. Must be an integer.", nil)
		return
	}

	timezone := h.defaultTimezone
	if query.Has("timezone") {
		// An empty value is not a request for the default.
		timezone = query.Get("timezone")
		if strings.TrimSpace(timezone) == "" {
			respondInvalidTimezone(w, timezone)
			return
		}
	}

	reading, err := h.readings.Lookup(r.Context(), timestampMillis, timezone)
	switch {
	case errors.Is(err, schedule.ErrUnknownTimezone):
		respondInvalidTimezone(w, timezone)
		return
	case errors.Is(err, schedule.ErrNoData):
		logger.Warn("Returning no data after failed lookup", logger.Fields{
			"timestamp_ms": timestampMillis,
			"timezone":     timezone,
			"error":        err.Error(),
		})
		respondNoData(w)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Failed to resolve reading", err)
		return
	}

	if len(reading.Passages) == 0 {
		respondNoData(w)
		return
	}

	respondJSON(w, http.StatusOK, reading.Passages)
}

// GetSchedule returns every calendar record of a month.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		respondError(w, http.StatusBadRequest, "Invalid month (use 1-12)", nil)
		return
	}

	days, err := h.readings.Month(r.Context(), year, time.Month(month))
	switch {
	case errors.Is(err, schedule.ErrBadInput):
		respondError(w, http.StatusBadRequest, "Invalid month", err)
		return
	case err != nil:
		respondError(w, http.StatusBadGateway, "Failed to fetch calendar", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

func respondInvalidTimezone(w http.ResponseWriter, timezone string) {
	respondError(w, http.StatusBadRequest, fmt.Sprintf(
		"Invalid timezone: '%s'. Please provide a valid IANA timezone string (e.g., 'Asia/Seoul', 'America/New_York').",
		timezone), nil)
}

func respondNoData(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": NoDataMessage,
		"data":    []interface{}{},
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", nil, err)
	}
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error": message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
