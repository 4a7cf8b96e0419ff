// Package schedule provides the per-day QT calendar records and the date helpers used
// to pick a record for a point in time.
//
// A month of records is produced by two independent extraction passes over one
// calendar page (see package scraper). Each pass yields a partial map keyed by day of
// month; Merge combines them with the list pass winning, and Sorted returns the
// records in ascending day order. The package also defines the error taxonomy shared
// by the fetcher, the resolver and the outer surfaces.
package schedule
