package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"swmmout/internal/rlog"
	"swmmout/metrics"
)

type requestIDKey struct{}

// withRequestID stores id in ctx for downstream handlers and log lines.
func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID retrieves the request ID tagged onto ctx by requestIDMiddleware,
// or "" if none is present.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// requestIDMiddleware tags every request with a UUID for log correlation,
// generated fresh per request rather than trusting a client-supplied header.
func requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := withRequestID(r.Context(), id)
		next(w, r.WithContext(ctx))
	}
}

// loggingMiddleware records method, path, status, duration, and request
// ID for every request.
func loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r)
		rlog.Info("%s %s %d %s id=%s", r.Method, r.URL.Path, sw.status,
			time.Since(start), RequestID(r.Context()))
	}
}

// metricsMiddleware records per-operation query latency, keyed by the
// fixed operation name given at route registration rather than the
// request path (to avoid unbounded label cardinality from path
// parameters like entity kinds).
func metricsMiddleware(operation string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stop := metrics.Timer(operation)
		defer stop()
		next(w, r)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}
