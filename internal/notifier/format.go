package notifier

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/qt-bible/internal/resolver"
)

// TweetLimit is the maximum tweet length in characters.
const TweetLimit = 280

// FormatMessage renders a reading as notification text.
func FormatMessage(reading *resolver.Reading) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📖 오늘의 QT (%s)\n\n", reading.Date)

	if reading.Day != nil {
		if reading.Day.Title != "" {
			fmt.Fprintf(&b, "%s\n", reading.Day.Title)
		}
		fmt.Fprintf(&b, "%s\n", reading.Day.Bible)
	}

	if len(reading.Passages) > 1 {
		b.WriteString("\n")
		for _, unit := range reading.Passages {
			fmt.Fprintf(&b, "• %s\n", unit.String())
		}
	}

	b.WriteString("\n#QT #큐티")

	return b.String()
}

// formatTweet formats a reading as a tweet
func formatTweet(reading *resolver.Reading) string {
	return truncate(FormatMessage(reading), TweetLimit)
}

// truncate shortens s to at most limit characters, ending in an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
