package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/qt-bible/internal/logger"
	"github.com/pfrederiksen/qt-bible/internal/resolver"
)

// ErrMissingCredentials is returned when a Twitter credential is empty.
var ErrMissingCredentials = errors.New("missing required Twitter credentials")

type statusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error)
}

// TwitterNotifier posts readings to Twitter
type TwitterNotifier struct {
	statuses statusUpdater
}

// TwitterCredentials holds the OAuth1 consumer and access keys.
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// NewTwitterNotifier creates a new Twitter notifier.
func NewTwitterNotifier(creds TwitterCredentials) (*TwitterNotifier, error) {
	if creds.APIKey == "" || creds.APISecret == "" || creds.AccessToken == "" || creds.AccessSecret == "" {
		return nil, ErrMissingCredentials
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{statuses: client.Statuses}, nil
}

// Notify posts one tweet for the reading
func (n *TwitterNotifier) Notify(ctx context.Context, reading *resolver.Reading) error {
	if err := checkReading(reading); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tweet, _, err := n.statuses.Update(formatTweet(reading), nil)
	if err != nil {
		return fmt.Errorf("failed to post tweet for %s: %w", reading.Date, err)
	}

	logger.Info("Posted tweet", logger.Fields{
		"date":     reading.Date,
		"tweet_id": tweet.IDStr,
	})
	return nil
}
