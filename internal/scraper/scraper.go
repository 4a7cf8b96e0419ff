package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/pfrederiksen/qt-bible/internal/logger"
	"github.com/pfrederiksen/qt-bible/internal/schedule"
)

const (
	CalendarURL = "https://www.duranno.com/qt/view/calendar2.asp"
	UserAgent   = "qt-bible/1.0 (github.com/pfrederiksen/qt-bible)"
	Timeout     = 30 * time.Second
)

// Scraper handles fetching and parsing QT calendar months
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a new Scraper instance for the public calendar
func New() *Scraper {
	return NewWithURL(CalendarURL, Timeout)
}

// NewWithURL creates a Scraper for a calendar endpoint with the given request timeout.
// An empty url selects CalendarURL and a non-positive timeout selects Timeout.
func NewWithURL(url string, timeout time.Duration) *Scraper {
	if url == "" {
		url = CalendarURL
	}
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// MonthURL returns the calendar URL for a month, e.g. "...?onDate=2025-05".
func (s *Scraper) MonthURL(year int, month time.Month) string {
	return fmt.Sprintf("%s?onDate=%d-%02d", s.url, year, int(month))
}

// FetchMonth fetches and parses the calendar for one month.
// Retrieval failures wrap schedule.ErrFetch; a month outside 1-12 wraps
// schedule.ErrInvalidMonth.
func (s *Scraper) FetchMonth(ctx context.Context, year int, month time.Month) ([]*schedule.Day, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: %d", schedule.ErrInvalidMonth, int(month))
	}

	url := s.MonthURL(year, month)
	start := time.Now()
	defer func() {
		logger.RecordTiming("calendar.fetch", time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, s.fetchFailed(url, fmt.Errorf("fetching page: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.fetchFailed(url, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, s.fetchFailed(url, fmt.Errorf("decoding page: %w", err))
	}

	days, err := parseMonth(body, year, month)
	if err != nil {
		return nil, s.fetchFailed(url, err)
	}

	logger.Debug("Fetched QT calendar", logger.Fields{
		"url":  url,
		"days": len(days),
	})
	logger.SetGauge("calendar.days", float64(len(days)))

	return days, nil
}

// fetchFailed logs a retrieval failure and wraps it as schedule.ErrFetch
func (s *Scraper) fetchFailed(url string, err error) error {
	logger.Error("QT calendar fetch failed", logger.Fields{"url": url}, err)
	logger.IncrCounter("calendar.fetch_failed")
	return fmt.Errorf("%w: %w", schedule.ErrFetch, err)
}

// parseMonth extracts the merged, day-ordered records from a calendar page
func parseMonth(r io.Reader, year int, month time.Month) ([]*schedule.Day, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	merged := schedule.Merge(parseTable(doc), parseList(doc))
	return schedule.WithinMonth(schedule.Sorted(merged), year, month), nil
}

// parseTable reads the grid view. Each cell with a day marker and a reference
// produces a record without weekday or title.
func parseTable(doc *goquery.Document) map[int]*schedule.Day {
	days := make(map[int]*schedule.Day)

	doc.Find("div.calendar-table").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}

		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			dayEl := cell.Find("span.day").First()
			bibleEl := cell.Find("span.bible").First()
			if dayEl.Length() == 0 || bibleEl.Length() == 0 {
				return
			}

			day, ok := parseDay(dayEl.Text())
			if !ok {
				return
			}

			days[day] = &schedule.Day{
				Day:   day,
				Bible: schedule.NormalizeText(bibleEl.Text()),
			}
		})
	})

	return days
}

// parseList reads the list view. Only rows tagged "person" carry content.
func parseList(doc *goquery.Document) map[int]*schedule.Day {
	days := make(map[int]*schedule.Day)

	doc.Find("div.calendar-list").First().Find("tr.person").Each(func(_ int, row *goquery.Selection) {
		timeCell := row.Find("td.time").First()
		nameCell := row.Find("td.name").First()
		titleCell := row.Find("td.title").First()
		viewsCell := row.Find("td.views").First()
		if timeCell.Length() == 0 || nameCell.Length() == 0 || titleCell.Length() == 0 || viewsCell.Length() == 0 {
			return
		}

		day, ok := parseDay(timeCell.Find("span").First().Text())
		if !ok {
			return
		}

		days[day] = &schedule.Day{
			Day:   day,
			Bible: schedule.NormalizeText(viewsCell.Text()),
			Week:  schedule.NormalizeText(nameCell.Find("span").First().Text()),
			Title: schedule.NormalizeText(titleCell.Find("span").First().Text()),
		}
	})

	return days
}

// parseDay reads a day-of-month marker such as "7" or "07"
func parseDay(text string) (int, bool) {
	day, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || day < 1 {
		return 0, false
	}
	return day, true
}
