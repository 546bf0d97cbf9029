package api

import (
	"net/http"
	"time"

	"fundnav/src/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// RequestLogger attaches a per-request logger with a request id to the
// context and logs the outcome of every request.
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestLogger := logger.WithField("requestId", uuid.New().String())

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			ctx := utils.WithLogger(r.Context(), requestLogger)
			next.ServeHTTP(rec, r.WithContext(ctx))

			requestLogger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start).String(),
			}).Info("request handled")
		})
	}
}
