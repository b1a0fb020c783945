// Package fileserver serves a single directory of static files on loopback.
package fileserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"chartview/internal/logger"
	"chartview/internal/portfinder"
)

// ErrBind reports that the listener could not be acquired or did not become
// ready in time.
var ErrBind = errors.New("file server could not start")

const (
	defaultReadyTimeout = 2 * time.Second
	defaultStopTimeout  = 5 * time.Second
)

// Server owns one loopback listener at a time. The port is picked once in New
// and reused by every Start for the lifetime of the Server.
type Server struct {
	root         string
	artifact     string
	port         int
	readyTimeout time.Duration
	logger       logger.Logger

	mu      sync.Mutex
	srv     *http.Server
	done    chan struct{}
	running atomic.Bool
}

type Option func(*Server)

// WithPort pins the port instead of asking the OS for one.
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithArtifact sets the file name the server URL points at.
func WithArtifact(name string) Option {
	return func(s *Server) {
		s.artifact = name
	}
}

func WithReadyTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.readyTimeout = d
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

func New(root string, opts ...Option) (*Server, error) {
	s := &Server{
		root:         root,
		readyTimeout: defaultReadyTimeout,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.port == 0 {
		port, err := portfinder.FindFreePort()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBind, err)
		}
		s.port = port
	}

	return s, nil
}

func (s *Server) Port() int {
	return s.port
}

// Running reports whether the serving goroutine is alive and accepting.
func (s *Server) Running() bool {
	return s.running.Load()
}

func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d/%s", s.port, s.artifact)
}

// Start binds the listener and serves in the background. Calling Start on a
// running server returns the existing URL without binding again. Start returns
// once the serving goroutine has signalled readiness.
func (s *Server) Start(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil && s.running.Load() {
		return s.URL(), nil
	}

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(s.port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.logger.Error("FileServer", err, map[string]interface{}{"addr": addr})
		return "", fmt.Errorf("%w: %w", ErrBind, err)
	}

	srv := &http.Server{
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	ready := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		s.running.Store(true)
		close(ready)

		err := srv.Serve(ln)
		s.running.Store(false)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("FileServer", err, map[string]interface{}{"addr": addr})
		}
	}()

	timer := time.NewTimer(s.readyTimeout)
	defer timer.Stop()

	select {
	case <-ready:
	case <-timer.C:
		_ = srv.Close()
		<-done
		return "", fmt.Errorf("%w: not ready after %s", ErrBind, s.readyTimeout)
	case <-ctx.Done():
		_ = srv.Close()
		<-done
		return "", fmt.Errorf("%w: %w", ErrBind, ctx.Err())
	}

	s.srv = srv
	s.done = done

	url := s.URL()
	s.logger.Info("FileServer", "server started", map[string]interface{}{
		"url":  url,
		"root": s.root,
	})
	return url, nil
}

// Stop shuts the listener down and waits for the serving goroutine to exit.
// It is a no-op when the server is not running.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv == nil {
		return nil
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultStopTimeout)
		defer cancel()
	}

	s.logger.Info("FileServer", "stopping server", map[string]interface{}{"port": s.port})

	err := s.srv.Shutdown(ctx)
	if err != nil {
		// Graceful shutdown timed out; drop remaining connections.
		_ = s.srv.Close()
	}
	<-s.done

	s.srv = nil
	s.done = nil
	return err
}

func (s *Server) handler() http.Handler {
	files := http.FileServer(http.Dir(s.root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		// The artifact is rewritten in place; never let the view cache it.
		rec.Header().Set("Cache-Control", "no-store")
		files.ServeHTTP(rec, r)

		s.logger.Debug("FileServer", "request served", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		})
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
