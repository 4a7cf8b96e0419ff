// Package scraper provides HTTP fetching and HTML parsing for the Duranno QT calendar.
//
// The scraper fetches one month of the public QT calendar page and runs two independent
// extraction passes over it. The table pass reads the grid view (day and reference
// text per cell); the list pass reads the list view (day, weekday, title and reference
// text per row). The passes are merged by day with the list pass winning, and the
// result is returned in ascending day order.
package scraper
