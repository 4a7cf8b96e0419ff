package schedule

import (
	"sort"
	"strings"
	"time"
)

// Day is the calendar record for one day of a month.
type Day struct {
	Day   int    `json:"day"`
	Bible string `json:"bible"`
	Week  string `json:"week,omitempty"`
	Title string `json:"title,omitempty"`
}

// NormalizeText trims s and replaces non-breaking spaces with ordinary spaces.
func NormalizeText(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\u00a0", " ")
}

// Merge returns the union of base and overlay keyed by day.
// A day present in overlay replaces the base record entirely. Neither input is modified.
func Merge(base, overlay map[int]*Day) map[int]*Day {
	merged := make(map[int]*Day, len(base)+len(overlay))
	for day, rec := range base {
		merged[day] = rec
	}
	for day, rec := range overlay {
		merged[day] = rec
	}
	return merged
}

// Sorted returns the records of days in ascending day order.
func Sorted(days map[int]*Day) []*Day {
	records := make([]*Day, 0, len(days))
	for _, rec := range days {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Day < records[j].Day
	})
	return records
}

// WithinMonth drops records whose day does not exist in the given month.
func WithinMonth(records []*Day, year int, month time.Month) []*Day {
	last := DaysIn(year, month)
	kept := make([]*Day, 0, len(records))
	for _, rec := range records {
		if rec.Day >= 1 && rec.Day <= last {
			kept = append(kept, rec)
		}
	}
	return kept
}

// DaysIn returns the number of days in month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Find returns the record for day, or nil.
func Find(records []*Day, day int) *Day {
	for _, rec := range records {
		if rec.Day == day {
			return rec
		}
	}
	return nil
}
