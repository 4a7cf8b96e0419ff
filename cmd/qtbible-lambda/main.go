package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/pfrederiksen/qt-bible/internal/config"
	"github.com/pfrederiksen/qt-bible/internal/logger"
	"github.com/pfrederiksen/qt-bible/internal/resolver"
	"github.com/pfrederiksen/qt-bible/internal/scraper"
)

func setup() (*Handler, error) {
	if _, err := maxprocs.Set(); err != nil {
		return nil, fmt.Errorf("error setting GOMAXPROCS %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.SetDefault(logger.New(cfg.Level(), os.Stdout))

	readings := resolver.New(scraper.NewWithURL(cfg.CalendarURL, cfg.FetchTimeout()))
	return NewHandler(readings, cfg.DefaultTimezone), nil
}

func main() {
	handler, err := setup()
	if err != nil {
		logger.Error("Lambda setup failed", nil, err)
		os.Exit(1)
	}

	lambda.Start(handler.HandleRequest)
}
