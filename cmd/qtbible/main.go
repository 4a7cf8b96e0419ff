package main

import (
	"fmt"
	_ "time/tzdata"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/pfrederiksen/qt-bible/internal/cli"
	"github.com/pfrederiksen/qt-bible/internal/logger"
)

func main() {
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...), nil)
	})); err != nil {
		logger.Warn("Failed to set GOMAXPROCS", logger.Fields{"error": err.Error()})
	}

	cli.Execute()
}
