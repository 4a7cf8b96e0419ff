package resolver

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/pfrederiksen/qt-bible/internal/bible"
	"github.com/pfrederiksen/qt-bible/internal/schedule"
)

type mockFetcher struct {
	FetchFunc func(year int, month time.Month) ([]*schedule.Day, error)
	calls     []string
}

func (m *mockFetcher) FetchMonth(ctx context.Context, year int, month time.Month) ([]*schedule.Day, error) {
	m.calls = append(m.calls, fmt.Sprintf("%d-%02d", year, int(month)))
	return m.FetchFunc(year, month)
}

func newMockFetcher(days []*schedule.Day, err error) *mockFetcher {
	return &mockFetcher{
		FetchFunc: func(int, time.Month) ([]*schedule.Day, error) {
			return days, err
		},
	}
}

// 2025-05-31T20:00:00Z: May 31st in New York and UTC, June 1st in Seoul.
var boundaryMillis = time.Date(2025, time.May, 31, 20, 0, 0, 0, time.UTC).UnixMilli()

func TestResolver_Resolve(t *testing.T) {
	days := []*schedule.Day{
		{Day: 1, Bible: "시편 1:1", Week: "일", Title: "복 있는 사람"},
		{Day: 30, Bible: "민수기 23:27~29"},
		{Day: 31, Bible: "민수기 23:27~24:9"},
	}

	tests := []struct {
		name      string
		timezone  string
		wantFetch string
		want      []bible.VerseRange
	}{
		{
			name:      "default timezone is Seoul",
			timezone:  "",
			wantFetch: "2025-06",
			want:      []bible.VerseRange{{Book: 19, Chapter: 1, Start: 1, End: 1}},
		},
		{
			name:      "explicit Seoul",
			timezone:  "Asia/Seoul",
			wantFetch: "2025-06",
			want:      []bible.VerseRange{{Book: 19, Chapter: 1, Start: 1, End: 1}},
		},
		{
			name:      "New York is still on the previous day",
			timezone:  "America/New_York",
			wantFetch: "2025-05",
			want: []bible.VerseRange{
				{Book: 4, Chapter: 23, Start: 27, End: 27},
				{Book: 4, Chapter: 24, Start: 9, End: 9},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newMockFetcher(days, nil)

			got, err := New(fetcher).Resolve(context.Background(), boundaryMillis, tt.timezone)
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}

			if !reflect.DeepEqual(fetcher.calls, []string{tt.wantFetch}) {
				t.Errorf("fetch calls = %v, want [%s]", fetcher.calls, tt.wantFetch)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolver_Errors(t *testing.T) {
	tests := []struct {
		name      string
		timezone  string
		fetchErr  error
		wantErr   error
		wantCalls int
	}{
		{
			name:      "unknown timezone is reported and nothing is fetched",
			timezone:  "Not/AZone",
			wantErr:   schedule.ErrUnknownTimezone,
			wantCalls: 0,
		},
		{
			name:      "fetch failure is reported as no data",
			timezone:  "Asia/Seoul",
			fetchErr:  fmt.Errorf("%w: unexpected status code: 503", schedule.ErrFetch),
			wantErr:   schedule.ErrNoData,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newMockFetcher(nil, tt.fetchErr)

			got, err := New(fetcher).Resolve(context.Background(), boundaryMillis, tt.timezone)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve() error = %v, want %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("Resolve() = %v, want nil on error", got)
			}
			if len(fetcher.calls) != tt.wantCalls {
				t.Errorf("fetch calls = %d, want %d", len(fetcher.calls), tt.wantCalls)
			}
		})
	}
}

func TestResolver_EmptyResults(t *testing.T) {
	tests := []struct {
		name string
		days []*schedule.Day
	}{
		{"no records at all", nil},
		{"requested day missing", []*schedule.Day{{Day: 2, Bible: "시편 2:1"}}},
		{"record without reference", []*schedule.Day{{Day: 1, Bible: ""}}},
		{"unparsable reference", []*schedule.Day{{Day: 1, Bible: "휴간"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(newMockFetcher(tt.days, nil)).Resolve(context.Background(), boundaryMillis, "Asia/Seoul")
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("Resolve() = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestResolver_Lookup(t *testing.T) {
	days := []*schedule.Day{{Day: 1, Bible: "시편 1:1", Week: "일", Title: "복 있는 사람"}}

	reading, err := New(newMockFetcher(days, nil)).Lookup(context.Background(), boundaryMillis, "")
	if err != nil {
		t.Fatalf("Lookup() unexpected error: %v", err)
	}

	if reading.Date != "2025-06-01" {
		t.Errorf("Date = %q, want 2025-06-01", reading.Date)
	}
	if reading.Timezone != "Asia/Seoul" {
		t.Errorf("Timezone = %q, want Asia/Seoul", reading.Timezone)
	}
	if reading.Day == nil || reading.Day.Title != "복 있는 사람" {
		t.Errorf("Day = %+v, want the June 1st record", reading.Day)
	}
	if len(reading.Passages) != 1 {
		t.Errorf("Passages = %v, want one unit", reading.Passages)
	}
}

func TestResolver_Month(t *testing.T) {
	days := []*schedule.Day{{Day: 1, Bible: "시편 1:1"}}
	fetcher := newMockFetcher(days, nil)

	got, err := New(fetcher).Month(context.Background(), 2025, time.March)
	if err != nil {
		t.Fatalf("Month() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, days) {
		t.Errorf("Month() = %v, want %v", got, days)
	}
	if !reflect.DeepEqual(fetcher.calls, []string{"2025-03"}) {
		t.Errorf("fetch calls = %v, want [2025-03]", fetcher.calls)
	}
}
