package bible

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pfrederiksen/qt-bible/internal/logger"
)

var (
	// ErrEmptyReference is returned for empty or whitespace-only reference text.
	ErrEmptyReference = errors.New("empty reference")
	// ErrGrammarMismatch is returned when no segment of the text yields a unit.
	ErrGrammarMismatch = errors.New("reference matches no supported grammar")
)

// VerseRange is one (book, chapter, start verse, end verse) unit.
type VerseRange struct {
	Book    int `json:"book"`
	Chapter int `json:"chapter"`
	Start   int `json:"start"`
	End     int `json:"end"`
}

// String renders the unit as "민수기 23:27-29" or "시편 1:1".
func (v VerseRange) String() string {
	name := BookName(v.Book)
	if name == "" {
		name = fmt.Sprintf("book %d", v.Book)
	}
	if v.End == v.Start {
		return fmt.Sprintf("%s %d:%d", name, v.Chapter, v.Start)
	}
	return fmt.Sprintf("%s %d:%d-%d", name, v.Chapter, v.Start, v.End)
}

// space also matches U+00A0 and other Unicode space separators.
const space = `[\s\p{Zs}]`

const bookPattern = `([가-힣]+[0-9]*서?)` + space + `*`

var (
	// "민수기 23:27~24:9", "시편 23:1-6"
	rangePattern = regexp.MustCompile(bookPattern + `(\d+):(\d+)[~-](?:(\d+):)?(\d+)`)
	// "시편 1:1"
	singlePattern = regexp.MustCompile(bookPattern + `(\d+):(\d+)`)
	// a further "~25:" after a cross-chapter range
	extraChapterPattern = regexp.MustCompile(`^` + space + `*[~-]` + space + `*\d+:`)
)

// ParseReference parses reference text into verse-range units.
//
// Range references are tried first, then single-verse references. Only the first
// reference whose book resolves is used. A cross-chapter range is reduced to its
// two boundary verses. Unparsable text is logged and yields an empty slice.
func ParseReference(text string) []VerseRange {
	ranges, err := parseReference(text)
	if err != nil && !errors.Is(err, ErrEmptyReference) {
		logger.Warn("Failed to parse reference", logger.Fields{
			"text":  text,
			"error": err.Error(),
		})
		logger.IncrCounter("reference.parse_failed")
	}
	return ranges
}

// parseReference does the work of ParseReference and reports why it came up empty.
func parseReference(text string) ([]VerseRange, error) {
	if strings.TrimSpace(text) == "" {
		return []VerseRange{}, ErrEmptyReference
	}

	ranges, err := matchRange(text)
	if err != nil {
		return []VerseRange{}, err
	}
	if ranges != nil {
		return ranges, nil
	}

	if ranges := matchSingle(text); ranges != nil {
		return ranges, nil
	}

	return []VerseRange{}, fmt.Errorf("%w: %q", ErrGrammarMismatch, text)
}

// matchRange returns the units of the first resolvable range reference, or nil.
// A range whose book resolves but whose numbers are unusable fails the whole text.
func matchRange(text string) ([]VerseRange, error) {
	for _, m := range rangePattern.FindAllStringSubmatchIndex(text, -1) {
		if extraChapterPattern.MatchString(text[m[1]:]) {
			return nil, fmt.Errorf("%w: range spans more than two chapters in %q", ErrGrammarMismatch, text)
		}

		rawBook := group(text, m, 1)
		book, ok := LookupBook(rawBook)
		if !ok {
			warnUnknownBook(rawBook, "range")
			continue
		}

		startCh, ok1 := positive(group(text, m, 2))
		startVs, ok2 := positive(group(text, m, 3))
		endVs, ok3 := positive(group(text, m, 5))
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("%w: non-positive chapter or verse in %q", ErrGrammarMismatch, text)
		}

		endCh := startCh
		if raw := group(text, m, 4); raw != "" {
			var ok bool
			if endCh, ok = positive(raw); !ok {
				return nil, fmt.Errorf("%w: non-positive chapter in %q", ErrGrammarMismatch, text)
			}
		}

		if endCh != startCh {
			return []VerseRange{
				{Book: book, Chapter: startCh, Start: startVs, End: startVs},
				{Book: book, Chapter: endCh, Start: endVs, End: endVs},
			}, nil
		}

		if endVs < startVs {
			return nil, fmt.Errorf("%w: range ends before it starts in %q", ErrGrammarMismatch, text)
		}
		return []VerseRange{{Book: book, Chapter: startCh, Start: startVs, End: endVs}}, nil
	}
	return nil, nil
}

// matchSingle returns the unit of the first resolvable single-verse reference, or nil.
func matchSingle(text string) []VerseRange {
	for _, m := range singlePattern.FindAllStringSubmatchIndex(text, -1) {
		rawBook := group(text, m, 1)
		book, ok := LookupBook(rawBook)
		if !ok {
			warnUnknownBook(rawBook, "single")
			continue
		}

		chapter, ok1 := positive(group(text, m, 2))
		verse, ok2 := positive(group(text, m, 3))
		if !ok1 || !ok2 {
			continue
		}

		return []VerseRange{{Book: book, Chapter: chapter, Start: verse, End: verse}}
	}
	return nil
}

func warnUnknownBook(raw, form string) {
	logger.Warn("Unknown book in reference", logger.Fields{
		"book": raw,
		"form": form,
	})
	logger.IncrCounter("reference.book_not_found")
}

// group returns submatch i from a FindAllStringSubmatchIndex result, or "".
func group(text string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return text[m[2*i]:m[2*i+1]]
}

// positive parses s as an integer greater than zero.
func positive(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
