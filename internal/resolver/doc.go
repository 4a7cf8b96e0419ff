// Package resolver answers "which QT reading is assigned to this instant in this
// timezone?".
//
// A Resolver converts a UTC instant to a civil date in the requested timezone, fetches
// that month's calendar, selects the record for the civil day and parses its reference
// text into verse-range units. Nothing is cached between calls.
package resolver
