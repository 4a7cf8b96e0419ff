package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/qt-bible/internal/bible"
	"github.com/pfrederiksen/qt-bible/internal/resolver"
	"github.com/pfrederiksen/qt-bible/internal/schedule"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

// MonthResult is the month command's JSON document.
type MonthResult struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Days  []*schedule.Day `json:"days"`
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeReading writes a reading in the specified format
func writeReading(w io.Writer, reading *resolver.Reading, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, reading)
	}

	if reading.Day == nil || reading.Day.Bible == "" {
		fmt.Fprintf(w, "No QT reading found for %s (%s).\n", reading.Date, reading.Timezone)
		return nil
	}

	fmt.Fprintf(w, "%s (%s)\n", reading.Date, reading.Timezone)
	if reading.Day.Title != "" {
		fmt.Fprintf(w, "%s\n", reading.Day.Title)
	}
	fmt.Fprintf(w, "%s\n", reading.Day.Bible)

	if len(reading.Passages) == 0 {
		fmt.Fprintln(w, "  (reference could not be parsed)")
		return nil
	}
	for _, unit := range reading.Passages {
		fmt.Fprintf(w, "  %s\n", unit.String())
	}
	return nil
}

// writeMonth writes a month listing in the specified format
func writeMonth(w io.Writer, result *MonthResult, format OutputFormat) error {
	if format == FormatJSON {
		if result.Days == nil {
			result.Days = []*schedule.Day{}
		}
		return writeJSON(w, result)
	}

	if len(result.Days) == 0 {
		fmt.Fprintf(w, "No QT records found for %d-%02d.\n", result.Year, result.Month)
		return nil
	}

	for _, day := range result.Days {
		line := fmt.Sprintf("%d-%02d-%02d", result.Year, result.Month, day.Day)
		if day.Week != "" {
			line += fmt.Sprintf(" (%s)", day.Week)
		}
		line += "  " + day.Bible
		if day.Title != "" {
			line += "  " + day.Title
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\nTotal: %d days\n", len(result.Days))
	return nil
}

// writeUnits writes parsed verse ranges in the specified format
func writeUnits(w io.Writer, units []bible.VerseRange, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, units)
	}

	if len(units) == 0 {
		fmt.Fprintln(w, "No reference found.")
		return nil
	}
	for _, unit := range units {
		fmt.Fprintf(w, "%s\t(book %d, chapter %d, verses %d-%d)\n",
			unit.String(), unit.Book, unit.Chapter, unit.Start, unit.End)
	}
	return nil
}
