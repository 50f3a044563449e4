// ============================================================================
// Pascal - Zeilenorientierter Rechner
// ============================================================================
//
// Package:     server
// Description: HTTP and WebSocket access to calculator sessions
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	mdwlog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/pascal/session"
	"github.com/msto63/pascal/internal/pascal/store"
	"github.com/msto63/pascal/pkg/core/health"
	"github.com/msto63/pascal/pkg/core/logging"
	"github.com/msto63/pascal/pkg/core/version"
)

// Server exposes calculator sessions over HTTP and WebSocket
type Server struct {
	httpServer *http.Server
	ws         *WebSocketHandler
	health     *health.Registry
	logger     *logging.Logger
	config     Config

	mu       sync.Mutex
	listener net.Listener
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxMessageSize int64
	Version        string

	// Session settings
	Precision int
	Presets   string

	// History is optional; sessions are not recorded when nil
	History store.HistoryStore

	Logger *mdwlog.Logger
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:           "127.0.0.1",
		Port:           9310,
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 8192,
		Version:        version.Server,
	}
}

// New creates a new server
func New(cfg Config) *Server {
	defaults := DefaultConfig()
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = defaults.MaxMessageSize
	}
	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	logger := logging.Wrap(cfg.Logger, "pascal-server")

	s := &Server{
		logger: logger,
		config: cfg,
	}
	s.ws = NewWebSocketHandler(s.newSession, WebSocketConfig{
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxMessageSize: cfg.MaxMessageSize,
		Precision:      cfg.Precision,
	}, logger)

	s.health = health.NewRegistry(cfg.Version)
	s.health.RegisterFunc("interpreter", s.checkInterpreter)
	if cfg.History != nil {
		s.health.RegisterFunc("history", s.checkHistory)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", s.ws)
	mux.HandleFunc("/api/v1/eval", s.handleEval)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         s.Address(),
		Handler:      loggingMiddleware(logger, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// newSession creates a session configured like every other session of the server
func (s *Server) newSession() (*session.Session, error) {
	opts := s.sessionOptions()
	if s.config.History != nil {
		opts.Recorder = s.config.History
	}
	return session.New(opts)
}

func (s *Server) sessionOptions() session.Options {
	return session.Options{
		Logger:    s.config.Logger,
		Precision: s.config.Precision,
		Presets:   s.config.Presets,
	}
}

// checkInterpreter evaluates a fixed line in a throwaway session that is
// never recorded
func (s *Server) checkInterpreter(ctx context.Context) health.CheckResult {
	sess, err := session.New(s.sessionOptions())
	if err != nil {
		return health.Failed("interpreter", err)
	}
	res := sess.Eval(ctx, "1 + 1")
	if texts := res.Texts(); len(texts) != 1 || texts[0] != "2" {
		return health.CheckResult{Status: health.StatusUnhealthy, Message: fmt.Sprintf("unexpected result %v", texts)}
	}
	return health.CheckResult{Status: health.StatusOK}
}

func (s *Server) checkHistory(ctx context.Context) health.CheckResult {
	if _, err := s.config.History.Sessions(ctx, 1); err != nil {
		return health.CheckResult{Status: health.StatusDegraded, Message: err.Error()}
	}
	return health.CheckResult{Status: health.StatusOK}
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker for the websocket upgrade
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (w *responseWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Start listens on the configured address and serves until Shutdown
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.Address())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Address(), err)
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener until Shutdown
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.Info("Starting Pascal server",
		"address", ln.Addr().String(),
		"version", s.config.Version,
	)
	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and closes open WebSocket sessions
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping Pascal server")
	s.ws.CloseAll()
	return s.httpServer.Shutdown(ctx)
}

// Address returns the configured listen address
func (s *Server) Address() string {
	return net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))
}

// ListenAddr returns the bound address once the server is serving
func (s *Server) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
