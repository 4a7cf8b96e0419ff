package schedule

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimezone is used when no timezone name is given.
const DefaultTimezone = "Asia/Seoul"

// CivilDate is a calendar date in a particular timezone.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// String formats the date as YYYY-MM-DD.
func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// LoadZone resolves a timezone name. An empty name selects DefaultTimezone.
// Names that are not known zones return an error wrapping ErrUnknownTimezone.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

// FromMillis converts milliseconds since the Unix epoch to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// CivilDateAt returns the calendar date of t in loc.
func CivilDateAt(t time.Time, loc *time.Location) CivilDate {
	local := t.In(loc)
	return CivilDate{
		Year:  local.Year(),
		Month: local.Month(),
		Day:   local.Day(),
	}
}
