package httpserver

import (
	"net/http"
	"time"
)

// New builds the HTTP server for the shop API. Handler timeouts are applied
// per route group; only the header read is bounded here.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
