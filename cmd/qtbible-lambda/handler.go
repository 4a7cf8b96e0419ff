package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfrederiksen/qt-bible/internal/bible"
	"github.com/pfrederiksen/qt-bible/internal/logger"
	"github.com/pfrederiksen/qt-bible/internal/resolver"
	"github.com/pfrederiksen/qt-bible/internal/schedule"
)

const noDataMessage = "No QT data found for the given timestamp and timezone, or parsing failed."

// Request is the invocation payload.
type Request struct {
	TimestampMillis *int64 `json:"timestamp_ms"`
	Timezone        string `json:"timezone"`
}

// Response carries the verse-range units for the requested date.
type Response struct {
	Date     string             `json:"date,omitempty"`
	Timezone string             `json:"timezone,omitempty"`
	Data     []bible.VerseRange `json:"data"`
	Message  string             `json:"message,omitempty"`
}

// Looker is the part of *resolver.Resolver the handler uses.
type Looker interface {
	Lookup(ctx context.Context, timestampMillis int64, timezone string) (*resolver.Reading, error)
}

// Handler answers lambda invocations.
type Handler struct {
	readings        Looker
	defaultTimezone string
}

// NewHandler creates a Handler; an empty defaultTimezone selects Asia/Seoul.
func NewHandler(readings Looker, defaultTimezone string) *Handler {
	if defaultTimezone == "" {
		defaultTimezone = schedule.DefaultTimezone
	}
	return &Handler{readings: readings, defaultTimezone: defaultTimezone}
}

// HandleRequest resolves the reading for req. Bad input and unknown timezones
// fail the invocation; a missing reading is a successful empty response.
func (h *Handler) HandleRequest(ctx context.Context, req Request) (Response, error) {
	if req.TimestampMillis == nil {
		return Response{}, fmt.Errorf("%w: timestamp_ms is required", schedule.ErrBadInput)
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = h.defaultTimezone
	}

	reading, err := h.readings.Lookup(ctx, *req.TimestampMillis, timezone)
	switch {
	case errors.Is(err, schedule.ErrNoData):
		logger.Warn("Returning no data after failed lookup", logger.Fields{
			"timestamp_ms": *req.TimestampMillis,
			"timezone":     timezone,
			"error":        err.Error(),
		})
		return Response{Timezone: timezone, Data: []bible.VerseRange{}, Message: noDataMessage}, nil
	case err != nil:
		return Response{}, err
	}

	resp := Response{Date: reading.Date, Timezone: reading.Timezone, Data: reading.Passages}
	if len(resp.Data) == 0 {
		resp.Message = noDataMessage
	}
	return resp, nil
}
