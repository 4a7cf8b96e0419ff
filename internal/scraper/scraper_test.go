package scraper

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/qt-bible/internal/schedule"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/qt_calendar_2025_04.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func loadDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func TestParseTable(t *testing.T) {
	days := parseTable(loadDocument(t, loadFixture(t)))

	want := map[int]*schedule.Day{
		1:  {Day: 1, Bible: "민수기 23:27~"},
		2:  {Day: 2, Bible: "민수기 25:1~9"},
		3:  {Day: 3, Bible: "민수기 25:10~18"},
		4:  {Day: 4, Bible: "시편 1:1"},
		5:  {Day: 5, Bible: "요한일서 4:7~12"},
		31: {Day: 31, Bible: "잠언 3:5~6"},
	}

	if !reflect.DeepEqual(days, want) {
		t.Errorf("parseTable() = %v, want %v", days, want)
	}
}

func TestParseList(t *testing.T) {
	days := parseList(loadDocument(t, loadFixture(t)))

	want := map[int]*schedule.Day{
		1: {Day: 1, Bible: "민수기 23:27~24:9", Week: "화", Title: "저주 대신 축복을"},
		2: {Day: 2, Bible: "민수기 25:1~9", Week: "수", Title: "브올의 바알"},
		7: {Day: 7, Bible: "민수기 26:1~11", Week: "월", Title: "두 번째 인구 조사"},
	}

	if !reflect.DeepEqual(days, want) {
		t.Errorf("parseList() = %v, want %v", days, want)
	}
}

func TestParseMonth_MergesAndOrders(t *testing.T) {
	days, err := parseMonth(strings.NewReader(loadFixture(t)), 2025, time.April)
	if err != nil {
		t.Fatalf("parseMonth failed: %v", err)
	}

	var order []int
	for _, d := range days {
		order = append(order, d.Day)
	}
	if want := []int{1, 2, 3, 4, 5, 7}; !reflect.DeepEqual(order, want) {
		t.Fatalf("day order = %v, want %v", order, want)
	}

	// Day 1 appears in both views: the list view supersedes the table view.
	first := days[0]
	if first.Bible != "민수기 23:27~24:9" || first.Week != "화" || first.Title != "저주 대신 축복을" {
		t.Errorf("day 1 = %+v, want list-view record", first)
	}

	// Day 3 appears only in the table view.
	if third := days[2]; third.Week != "" || third.Title != "" || third.Bible != "민수기 25:10~18" {
		t.Errorf("day 3 = %+v, want table-view record", third)
	}
}

func TestParseMonth_DaysWithinMonth(t *testing.T) {
	for _, month := range []time.Month{time.April, time.May} {
		days, err := parseMonth(strings.NewReader(loadFixture(t)), 2025, month)
		if err != nil {
			t.Fatalf("parseMonth failed: %v", err)
		}

		last := schedule.DaysIn(2025, month)
		prev := 0
		for _, d := range days {
			if d.Day < 1 || d.Day > last {
				t.Errorf("%s: day %d outside [1, %d]", month, d.Day, last)
			}
			if d.Day <= prev {
				t.Errorf("%s: days not strictly ascending at %d", month, d.Day)
			}
			prev = d.Day
		}
	}
}

func TestParseMonth_MissingSections(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		wantDays []int
	}{
		{
			name:     "no calendar at all",
			html:     `<html><body><p>점검 중입니다</p></body></html>`,
			wantDays: nil,
		},
		{
			name: "table view only",
			html: `<div class="calendar-table"><table>
				<tr><th>일</th></tr>
				<tr><td><span class="day">9</span><span class="bible">시편 9:1~2</span></td></tr>
			</table></div>`,
			wantDays: []int{9},
		},
		{
			name: "list view only",
			html: `<div class="calendar-list"><table>
				<tr class="person"><td class="time"><span>10</span></td><td class="name"><span>목</span></td>
				<td class="title"><span>감사</span></td><td class="views">시편 100:1~5</td></tr>
			</table></div>`,
			wantDays: []int{10},
		},
		{
			name: "first table row is always treated as header",
			html: `<div class="calendar-table"><table>
				<tr><td><span class="day">1</span><span class="bible">시편 1:1</span></td></tr>
			</table></div>`,
			wantDays: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := parseMonth(strings.NewReader(tt.html), 2025, time.April)
			if err != nil {
				t.Fatalf("parseMonth failed: %v", err)
			}

			var got []int
			for _, d := range days {
				got = append(got, d.Day)
			}
			if !reflect.DeepEqual(got, tt.wantDays) {
				t.Errorf("days = %v, want %v", got, tt.wantDays)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"7", 7, true},
		{" 07 ", 7, true},
		{"31", 31, true},
		{"", 0, false},
		{"0", 0, false},
		{"마감", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := parseDay(tt.text)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseDay(%q) = (%d, %v), want (%d, %v)", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMonthURL(t *testing.T) {
	s := New()
	if got, want := s.MonthURL(2025, time.May), CalendarURL+"?onDate=2025-05"; got != want {
		t.Errorf("MonthURL() = %q, want %q", got, want)
	}
	if got, want := s.MonthURL(2024, time.December), CalendarURL+"?onDate=2024-12"; got != want {
		t.Errorf("MonthURL() = %q, want %q", got, want)
	}
}
