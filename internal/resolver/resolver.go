package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/qt-bible/internal/bible"
	"github.com/pfrederiksen/qt-bible/internal/logger"
	"github.com/pfrederiksen/qt-bible/internal/schedule"
)

// MonthFetcher retrieves one month of calendar records in ascending day order.
type MonthFetcher interface {
	FetchMonth(ctx context.Context, year int, month time.Month) ([]*schedule.Day, error)
}

// Reading is the QT assignment for one civil date.
type Reading struct {
	Date     string             `json:"date"`
	Timezone string             `json:"timezone"`
	Day      *schedule.Day      `json:"day,omitempty"`
	Passages []bible.VerseRange `json:"passages"`
}

// Resolver looks up readings through a MonthFetcher.
type Resolver struct {
	fetcher MonthFetcher
}

// New creates a Resolver backed by fetcher.
func New(fetcher MonthFetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve returns the verse-range units assigned to the civil date of timestampMillis
// in timezone. An empty timezone selects schedule.DefaultTimezone.
//
// Unknown timezones return an error wrapping schedule.ErrUnknownTimezone and failed
// retrievals an error wrapping schedule.ErrFetch. A day without a record or with an
// unparsable reference yields an empty slice and a nil error.
func (r *Resolver) Resolve(ctx context.Context, timestampMillis int64, timezone string) ([]bible.VerseRange, error) {
	reading, err := r.Lookup(ctx, timestampMillis, timezone)
	if err != nil {
		return nil, err
	}
	return reading.Passages, nil
}

// Lookup is Resolve with the civil date and the day's calendar record attached.
func (r *Resolver) Lookup(ctx context.Context, timestampMillis int64, timezone string) (*Reading, error) {
	loc, err := schedule.LoadZone(timezone)
	if err != nil {
		return nil, err
	}

	date := schedule.CivilDateAt(schedule.FromMillis(timestampMillis), loc)
	reading := &Reading{
		Date:     date.String(),
		Timezone: loc.String(),
		Passages: []bible.VerseRange{},
	}

	days, err := r.fetcher.FetchMonth(ctx, date.Year, date.Month)
	if err != nil {
		return nil, fmt.Errorf("fetching %d-%02d: %w", date.Year, int(date.Month), err)
	}

	day := schedule.Find(days, date.Day)
	if day == nil || day.Bible == "" {
		logger.Info("No QT record for date", logger.Fields{
			"date":     reading.Date,
			"timezone": reading.Timezone,
		})
		return reading, nil
	}

	reading.Day = day
	reading.Passages = bible.ParseReference(day.Bible)
	return reading, nil
}

// Month returns the calendar records for a month.
func (r *Resolver) Month(ctx context.Context, year int, month time.Month) ([]*schedule.Day, error) {
	return r.fetcher.FetchMonth(ctx, year, month)
}
