package api

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/pfrederiksen/qt-bible/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware logs every request with its status and latency.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		latency := time.Since(start)
		logger.IncrCounter("api.requests")
		logger.RecordTiming("api.latency", latency)

		fields := logger.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  rec.status,
			"latency": latency.String(),
		}
		if r.URL.RawQuery != "" {
			fields["query"] = r.URL.RawQuery
		}

		switch {
		case rec.status >= 500:
			logger.Error("request", fields, nil)
		case rec.status >= 400:
			logger.Warn("request", fields)
		default:
			logger.Info("request", fields)
		}
	})
}

// RecoveryMiddleware turns a handler panic into a 500 response.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rv := recover(); rv != nil {
				logger.Error("panic recovered", logger.Fields{
					"panic":  rv,
					"stack":  string(debug.Stack()),
					"method": r.Method,
					"path":   r.URL.Path,
				}, nil)
				respondError(w, http.StatusInternalServerError, "Internal Server Error", nil)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
