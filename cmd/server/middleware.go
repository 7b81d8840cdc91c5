package main

import (
	"net/http"
	"time"

	"github.com/diewo77/glasspro/httpx"
	"github.com/diewo77/glasspro/internal/metrics"
	"github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// instrument logs and counts every request, including ones that panic.
func instrument(log logrus.FieldLogger, m *metrics.Metrics, mux *http.ServeMux) http.Handler {
	return withLogging(log, m, withRecover(log, mux))
}

// withLogging logs every request and feeds the request metrics.
// The mux fills in r.Pattern on the same request, so nothing between
// withLogging and the mux may replace r.
func withLogging(log logrus.FieldLogger, m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		if m != nil {
			m.ObserveRequest(r.Method, route, rec.status, elapsed)
		}
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": elapsed.String(),
		}).Info("request")
	})
}

func withRecover(log logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithFields(logrus.Fields{"panic": rec, "path": r.URL.Path}).Error("recovered from panic")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
