package bible

import "strings"

// books lists the canonical Korean book names; the book ID is index+1.
var books = []string{
	// Old Testament
	"창세기", "출애굽기", "레위기", "민수기", "신명기",
	"여호수아", "사사기", "룻기", "사무엘상", "사무엘하",
	"열왕기상", "열왕기하", "역대상", "역대하", "에스라",
	"느헤미야", "에스더", "욥기", "시편", "잠언",
	"전도서", "아가", "이사야", "예레미야", "예레미야애가",
	"에스겔", "다니엘", "호세아", "요엘", "아모스",
	"오바댜", "요나", "미가", "나훔", "하박국",
	"스바냐", "학개", "스가랴", "말라기",
	// New Testament
	"마태복음", "마가복음", "누가복음", "요한복음", "사도행전",
	"로마서", "고린도전서", "고린도후서", "갈라디아서", "에베소서",
	"빌립보서", "골로새서", "데살로니가전서", "데살로니가후서", "디모데전서",
	"디모데후서", "디도서", "빌레몬서", "히브리서", "야고보서",
	"베드로전서", "베드로후서", "요한일서", "요한이서", "요한삼서",
	"유다서", "요한계시록",
}

// BookCount is the number of books in the table.
const BookCount = 66

// ordinalEpistles rewrites spoken ordinal epistle suffixes to the numeral form.
// Applied in order, only after an exact lookup misses.
var ordinalEpistles = []struct {
	from string
	to   string
}{
	{"일서", "1서"},
	{"이서", "2서"},
	{"삼서", "3서"},
}

// bookIDs is keyed by lookup spelling: display names, except that the
// Johannine epistles are keyed by their numeral form ("요한1서").
var bookIDs map[string]int

func init() {
	bookIDs = make(map[string]int, len(books))
	for i, name := range books {
		bookIDs[normalizeOrdinal(name)] = i + 1
	}
}

// LookupBook resolves a raw book name to its ID.
// An exact match is tried first, then the ordinal-epistle spelling.
func LookupBook(raw string) (int, bool) {
	if id, ok := bookIDs[raw]; ok {
		return id, true
	}

	normalized := normalizeOrdinal(raw)
	if normalized == raw {
		return 0, false
	}
	id, ok := bookIDs[normalized]
	return id, ok
}

// normalizeOrdinal applies the ordinal-epistle substitutions to name.
func normalizeOrdinal(name string) string {
	for _, sub := range ordinalEpistles {
		name = strings.ReplaceAll(name, sub.from, sub.to)
	}
	return name
}

// BookName returns the canonical name for a book ID, or "" if out of range.
func BookName(id int) string {
	if id < 1 || id > len(books) {
		return ""
	}
	return books[id-1]
}
