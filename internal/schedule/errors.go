package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrBadInput indicates a malformed request (missing timestamp, bad month, ...).
	ErrBadInput = errors.New("bad input")
	// ErrUnknownTimezone indicates a timezone name that is not a known IANA zone.
	ErrUnknownTimezone = errors.New("unknown timezone")
	// ErrNoData indicates that no reading is available for the requested date.
	ErrNoData = errors.New("no data for date")
	// ErrFetch indicates the calendar page could not be retrieved. It is reported
	// upstream as "no data".
	ErrFetch = fmt.Errorf("calendar fetch failed: %w", ErrNoData)
	// ErrInvalidMonth indicates a month outside 1-12.
	ErrInvalidMonth = fmt.Errorf("invalid month: %w", ErrBadInput)
)
