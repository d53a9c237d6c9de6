package server

import (
	"context"
	"net"
	"net/http"
	"time"
)

const (
	readTimeout       = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
	// An admin refresh walks every listing page, so writes get far longer
	// than a lookup would ever need.
	writeTimeout = 5 * time.Minute
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

// httpServer abstracts the HTTP server implementation for easier testing.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

type netHTTPServer struct {
	srv      *http.Server
	listener net.Listener
}

func newNetHTTPServer(addr string, handler http.Handler) netHTTPServer {
	return netHTTPServer{srv: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}}
}

// ListenAndServe serves on the injected listener when present.
func (s netHTTPServer) ListenAndServe() error {
	if s.listener != nil {
		return s.srv.Serve(s.listener)
	}
	return s.srv.ListenAndServe()
}

func (s netHTTPServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
func (s netHTTPServer) Addr() string                       { return s.srv.Addr }
func (s netHTTPServer) Handler() http.Handler              { return s.srv.Handler }
