// Package api exposes a read-only HTTP inspection surface over an
// already-open result-file reader. It is an optional companion to the
// core reader, not part of it: the reader itself never touches the
// network, and this layer only republishes query results the reader
// already computed.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"swmmout/rpt"
)

// Server wires a reader, a router, and auth/logging/metrics middleware
// into one http.Handler.
type Server struct {
	reader *rpt.Reader
	router *mux.Router
}

// NewServer builds a Server over an already-open reader. tokenHash is a
// bcrypt hash of the bearer token required on every request, or "" to
// disable auth.
func NewServer(reader *rpt.Reader, tokenHash string) *Server {
	s := &Server{reader: reader, router: mux.NewRouter()}

	auth := bearerAuth(tokenHash)
	wrap := func(operation string, h http.HandlerFunc) http.HandlerFunc {
		return requestIDMiddleware(loggingMiddleware(auth(metricsMiddleware(operation, h))))
	}

	s.router.HandleFunc("/project", wrap("project", s.handleProject)).Methods(http.MethodGet)
	s.router.HandleFunc("/elements/{kind}", wrap("elements", s.handleElements)).Methods(http.MethodGet)
	s.router.HandleFunc("/series", wrap("series", s.handleSeries)).Methods(http.MethodGet)
	s.router.HandleFunc("/attribute", wrap("attribute", s.handleAttribute)).Methods(http.MethodGet)
	s.router.HandleFunc("/result", wrap("result", s.handleResult)).Methods(http.MethodGet)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
