package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pfrederiksen/qt-bible/internal/resolver"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to out, or stdout when nil.
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out}
}

// Notify prints the tweet that would be posted
func (n *DryRunNotifier) Notify(ctx context.Context, reading *resolver.Reading) error {
	if err := checkReading(reading); err != nil {
		return err
	}

	tweet := formatTweet(reading)
	fmt.Fprintf(n.out, "--- QT %s ---\n", reading.Date)
	fmt.Fprintln(n.out, tweet)
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", utf8.RuneCountInString(tweet))
	return nil
}
