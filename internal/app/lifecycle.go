package app

import (
	"context"
	"time"

	"chartview/internal/logger"
	"chartview/internal/shutdown"
)

const stopTimeout = 5 * time.Second

type closer interface {
	Close(ctx context.Context) error
}

type stopper interface {
	Stop(ctx context.Context) error
}

// Lifecycle owns the ordered shutdown: close any toggled view, stop the file
// server, terminate the view process and delete its launcher script.
type Lifecycle struct {
	manager *shutdown.Manager
	logger  logger.Logger
}

func NewLifecycle(log logger.Logger, views closer, server stopper, launcher shutdown.Shutdownable) *Lifecycle {
	m := shutdown.NewManager(log)

	m.Register("presenter", shutdown.Func(func() {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := views.Close(ctx); err != nil {
			log.Debug("Lifecycle", "embedded view did not close in time", map[string]interface{}{"error": err.Error()})
		}
	}))
	m.Register("file server", shutdown.Func(func() {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			log.Debug("Lifecycle", "file server stop failed", map[string]interface{}{"error": err.Error()})
		}
	}))
	m.Register("launcher", launcher)

	return &Lifecycle{manager: m, logger: log}
}

// Listen shuts down on SIGINT/SIGTERM and then calls quit.
func (l *Lifecycle) Listen(quit func()) {
	l.manager.Listen(quit)
}

// Shutdown is idempotent; cleanup failures never block it.
func (l *Lifecycle) Shutdown() {
	l.manager.Shutdown()
}

func (l *Lifecycle) Done() <-chan struct{} {
	return l.manager.Done()
}
