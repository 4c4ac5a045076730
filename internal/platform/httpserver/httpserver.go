// Package httpserver owns the HTTP server defaults for the validation
// API.
package httpserver

import (
	"context"
	"net/http"
	"time"
)

// ShutdownTimeout bounds graceful drain: in-flight validations finish
// fast, so anything still open after this is hung.
const ShutdownTimeout = 10 * time.Second

// New builds the server hosting the identifier endpoints. Header reads
// are bounded so a slow client cannot pin a connection before routing.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Shutdown drains srv within ShutdownTimeout.
func Shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
