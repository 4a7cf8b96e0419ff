// Package calendar exports QT month schedules as iCalendar files.
package calendar

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/qt-bible/internal/bible"
	"github.com/pfrederiksen/qt-bible/internal/schedule"
)

// now is replaced in tests.
var now = time.Now

const maxLineOctets = 75

// GenerateICS generates an iCalendar (.ics) file with one all-day event per
// day of the month that carries a reference. Days outside the month are ignored.
func GenerateICS(days []*schedule.Day, year int, month time.Month) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//QT Bible//qt-bible//KO\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	writeLine(&ics, fmt.Sprintf("X-WR-CALNAME:QT %d-%02d", year, int(month)))

	stamp := formatICSTime(now())
	last := schedule.DaysIn(year, month)

	for _, day := range days {
		if day == nil || day.Bible == "" || day.Day < 1 || day.Day > last {
			continue
		}
		date := time.Date(year, month, day.Day, 0, 0, 0, 0, time.UTC)

		ics.WriteString("BEGIN:VEVENT\r\n")
		writeLine(&ics, fmt.Sprintf("UID:qt-%s@qt-bible", date.Format("20060102")))
		writeLine(&ics, "DTSTAMP:"+stamp)
		// All-day events end on the following date.
		writeLine(&ics, "DTSTART;VALUE=DATE:"+date.Format("20060102"))
		writeLine(&ics, "DTEND;VALUE=DATE:"+date.AddDate(0, 0, 1).Format("20060102"))
		writeLine(&ics, "SUMMARY:"+escapeICS(summary(day)))
		writeLine(&ics, "DESCRIPTION:"+escapeICS(description(day)))
		ics.WriteString("TRANSP:TRANSPARENT\r\n")
		ics.WriteString("END:VEVENT\r\n")
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func summary(day *schedule.Day) string {
	if day.Title != "" {
		return fmt.Sprintf("QT %s - %s", day.Bible, day.Title)
	}
	return "QT " + day.Bible
}

func description(day *schedule.Day) string {
	lines := []string{day.Bible}
	for _, unit := range bible.ParseReference(day.Bible) {
		lines = append(lines, unit.String())
	}
	return strings.Join(lines, "\n")
}

// writeLine writes one content line, folded at 75 octets without splitting a rune.
func writeLine(b *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		// Continuation lines lose one octet to the leading space.
		limit = maxLineOctets - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
