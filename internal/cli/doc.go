// Package cli implements the qtbible command-line interface.
//
// The cli package provides the Cobra-based CLI for looking up the day's QT
// reading, listing a month's calendar (text, JSON or iCalendar), parsing
// reference strings, serving the HTTP API and sending notifications. Settings
// come from the environment (see internal/config) and are overridden by flags.
package cli
