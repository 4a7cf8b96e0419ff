package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/qt-bible/internal/config"
	"github.com/pfrederiksen/qt-bible/internal/logger"
	"github.com/pfrederiksen/qt-bible/internal/resolver"
	"github.com/pfrederiksen/qt-bible/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitNoData  = 2
)

// errNoReading makes Execute exit with ExitNoData after output was written.
var errNoReading = errors.New("no reading")

// app carries the state shared by every subcommand.
type app struct {
	cfg      *config.Config
	resolver *resolver.Resolver

	calendarURL string
	timeout     time.Duration
	logLevel    string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "qtbible",
		Short: "Look up the daily QT Bible reading",
		Long: `A CLI tool for the Duranno daily QT (Quiet Time) calendar.
Fetches the month calendar, finds the reading for a date in any timezone and
parses the Korean Bible reference into book, chapter and verse ranges.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.calendarURL, "calendar-url", "", "Calendar page URL (default from QT_CALENDAR_URL)")
	cmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "Calendar request timeout (default from QT_FETCH_TIMEOUT_SECONDS)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from LOG_LEVEL)")

	cmd.AddCommand(
		newLookupCmd(a),
		newMonthCmd(a),
		newParseCmd(a),
		newServeCmd(a),
		newNotifyCmd(a),
	)

	return cmd
}

// setup loads configuration, applies flag overrides and builds the resolver.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("calendar-url") {
		cfg.CalendarURL = a.calendarURL
	}
	if cmd.Flags().Changed("timeout") {
		if a.timeout <= 0 {
			return fmt.Errorf("--timeout must be positive")
		}
		cfg.FetchTimeoutSeconds = int((a.timeout + time.Second - 1) / time.Second)
	}
	if cmd.Flags().Changed("log-level") {
		if _, err := logger.ParseLevel(a.logLevel); err != nil {
			return err
		}
		cfg.LogLevel = a.logLevel
	}

	logger.SetDefault(logger.New(cfg.Level(), cmd.ErrOrStderr()))

	a.cfg = cfg
	a.resolver = resolver.New(scraper.NewWithURL(cfg.CalendarURL, cfg.FetchTimeout()))
	return nil
}

func parseFormat(raw string, allowed ...OutputFormat) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(raw)))
	for _, f := range allowed {
		if format == f {
			return format, nil
		}
	}

	names := make([]string, len(allowed))
	for i, f := range allowed {
		names[i] = "'" + string(f) + "'"
	}
	return "", fmt.Errorf("invalid format: %s (must be %s)", raw, strings.Join(names, " or "))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Execute runs the CLI
func Execute() {
	os.Exit(run(NewRootCmd()))
}

func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errNoReading):
		return ExitNoData
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return ExitError
	}
}
