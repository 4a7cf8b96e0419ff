package notifier

import (
	"context"
	"errors"

	"github.com/pfrederiksen/qt-bible/internal/resolver"
)

// ErrEmptyReading is returned when there is no reading to send.
var ErrEmptyReading = errors.New("reading has no calendar record")

// Notifier defines the interface for posting reading notifications
type Notifier interface {
	// Notify posts the reading
	Notify(ctx context.Context, reading *resolver.Reading) error
}

func checkReading(reading *resolver.Reading) error {
	if reading == nil || reading.Day == nil || reading.Day.Bible == "" {
		return ErrEmptyReading
	}
	return nil
}
