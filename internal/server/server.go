// Package server serves a built site for local preview: static files with
// a 404 fallback, the contact endpoint and the live-reload stream.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dcsystems/dcsite/internal/config"
	"github.com/dcsystems/dcsite/internal/contact"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Server is the preview HTTP server
type Server struct {
	root      string
	broker    *Broker
	validator *contact.Validator
	limiter   *rate.Limiter
	log       logrus.FieldLogger
	http      *http.Server
}

// New creates a server for the site built into root
func New(cfg config.ServerConfig, root string, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	limit := rate.Inf
	if cfg.ContactRate > 0 {
		limit = rate.Limit(cfg.ContactRate)
	}
	burst := cfg.ContactBurst
	if burst < 1 {
		burst = 1
	}

	s := &Server{
		root:      root,
		broker:    NewBroker(),
		validator: contact.NewValidator(),
		limiter:   rate.NewLimiter(limit, burst),
		log:       log,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.http.RegisterOnShutdown(s.broker.Close)
	return s
}

// Broker returns the live-reload broker
func (s *Server) Broker() *Broker {
	return s.broker
}

// Handler returns the routed handler with logging and panic recovery
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+LiveReloadPath, s.broker)
	mux.HandleFunc("POST "+ContactPath, s.handleContact)
	mux.Handle("/", staticHandler(s.root))
	return requestLogger(s.log, recovery(s.log, mux))
}

// Serve accepts connections on l until Shutdown
func (s *Server) Serve(l net.Listener) error {
	s.log.WithField("addr", l.Addr().String()).Info("Serving site")
	if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// ListenAndServe listens on the configured address and serves until Shutdown
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(l)
}

// Shutdown stops accepting connections, ends live-reload streams and waits
// for active requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
