package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/qt-bible/internal/api"
	"github.com/pfrederiksen/qt-bible/internal/bible"
	"github.com/pfrederiksen/qt-bible/internal/calendar"
	"github.com/pfrederiksen/qt-bible/internal/logger"
	"github.com/pfrederiksen/qt-bible/internal/notifier"
	"github.com/pfrederiksen/qt-bible/internal/resolver"
	"github.com/pfrederiksen/qt-bible/internal/schedule"
)

// now is replaced in tests.
var now = time.Now

const shutdownTimeout = 10 * time.Second

func newLookupCmd(a *app) *cobra.Command {
	var (
		timestampMillis int64
		timezone        string
		format          string
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Show the QT reading for a moment in time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format, FormatText, FormatJSON)
			if err != nil {
				return err
			}

			reading, err := a.lookup(cmd, timestampMillis, timezone)
			if err != nil {
				return err
			}

			if err := writeReading(cmd.OutOrStdout(), reading, f); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			if len(reading.Passages) == 0 {
				return errNoReading
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&timestampMillis, "timestamp-ms", 0, "Unix time in milliseconds (default now)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone name (default from QT_DEFAULT_TIMEZONE)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}

// lookup resolves the reading, defaulting the moment to now and the timezone
// to the configured default.
func (a *app) lookup(cmd *cobra.Command, timestampMillis int64, timezone string) (*resolver.Reading, error) {
	if !cmd.Flags().Changed("timestamp-ms") {
		timestampMillis = now().UnixMilli()
	}
	if timezone == "" {
		timezone = a.cfg.DefaultTimezone
	}

	reading, err := a.resolver.Lookup(commandContext(cmd), timestampMillis, timezone)
	if err != nil {
		return nil, fmt.Errorf("looking up reading: %w", err)
	}
	return reading, nil
}

func newMonthCmd(a *app) *cobra.Command {
	var (
		year   int
		month  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "month",
		Short: "List the QT calendar for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format, FormatText, FormatJSON, FormatICS)
			if err != nil {
				return err
			}

			if year == 0 || month == 0 {
				loc, err := schedule.LoadZone(a.cfg.DefaultTimezone)
				if err != nil {
					return err
				}
				today := schedule.CivilDateAt(now(), loc)
				if year == 0 {
					year = today.Year
				}
				if month == 0 {
					month = int(today.Month)
				}
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("%w: %d", schedule.ErrInvalidMonth, month)
			}

			days, err := a.resolver.Month(commandContext(cmd), year, time.Month(month))
			if err != nil {
				return fmt.Errorf("fetching month: %w", err)
			}

			out := cmd.OutOrStdout()
			if f == FormatICS {
				_, err = fmt.Fprint(out, calendar.GenerateICS(days, year, time.Month(month)))
			} else {
				err = writeMonth(out, &MonthResult{Year: year, Month: month, Days: days}, f)
			}
			if err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Calendar year (default current)")
	cmd.Flags().IntVar(&month, "month", 0, "Calendar month 1-12 (default current)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or ics")

	return cmd
}

func newParseCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "parse <reference>",
		Short:   "Parse a Korean Bible reference",
		Example: `  qtbible parse "민수기 23:27~24:9"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format, FormatText, FormatJSON)
			if err != nil {
				return err
			}

			units := bible.ParseReference(strings.Join(args, " "))
			if err := writeUnits(cmd.OutOrStdout(), units, f); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			if len(units) == 0 {
				return errNoReading
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the QT reading HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.Port
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := api.NewServer(port, a.resolver, a.cfg.DefaultTimezone)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", logger.Fields{"addr": server.Addr()})
				errCh <- server.Start()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("http server: %w", err)
			case <-ctx.Done():
			}

			logger.Info("Shutting down HTTP server", nil)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default from PORT)")

	return cmd
}

func newNotifyCmd(a *app) *cobra.Command {
	var (
		dryRun          bool
		channel         string
		timestampMillis int64
		timezone        string
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Post the QT reading to Twitter, SNS or Telegram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			n, err := a.notifier(ctx, cmd, channel, dryRun)
			if err != nil {
				return err
			}

			reading, err := a.lookup(cmd, timestampMillis, timezone)
			if err != nil {
				return err
			}
			if reading.Day == nil || reading.Day.Bible == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "No QT reading found for %s.\n", reading.Date)
				return errNoReading
			}

			if err := n.Notify(ctx, reading); err != nil {
				return fmt.Errorf("notifying: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the message without posting")
	cmd.Flags().StringVar(&channel, "channel", "twitter", "Notification channel: twitter, sns or telegram")
	cmd.Flags().Int64Var(&timestampMillis, "timestamp-ms", 0, "Unix time in milliseconds (default now)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone name (default from QT_DEFAULT_TIMEZONE)")

	return cmd
}

func (a *app) notifier(ctx context.Context, cmd *cobra.Command, channel string, dryRun bool) (notifier.Notifier, error) {
	switch strings.ToLower(channel) {
	case "twitter", "sns", "telegram":
	default:
		return nil, fmt.Errorf("invalid channel: %s (must be 'twitter', 'sns' or 'telegram')", channel)
	}

	if dryRun {
		return notifier.NewDryRunNotifier(cmd.OutOrStdout()), nil
	}

	switch strings.ToLower(channel) {
	case "sns":
		return notifier.NewSNSNotifierFromEnv(ctx, a.cfg.SNSTopicARN)
	case "telegram":
		return notifier.NewTelegramNotifier(a.cfg.TelegramBotToken, a.cfg.TelegramChatID)
	}
	return notifier.NewTwitterNotifier(notifier.TwitterCredentials{
		APIKey:       a.cfg.TwitterAPIKey,
		APISecret:    a.cfg.TwitterAPISecret,
		AccessToken:  a.cfg.TwitterAccessToken,
		AccessSecret: a.cfg.TwitterAccessSecret,
	})
}
