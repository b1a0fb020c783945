// Package launcher spawns the embedded-view process through a generated
// launcher script and owns its lifetime.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"chartview/internal/logger"
)

type Launcher struct {
	scriptPath string
	executable string
	width      int
	height     int
	logger     logger.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	exited chan struct{}
}

type Option func(*Launcher)

// WithSize sets the embedded view window size passed to the view command.
func WithSize(width, height int) Option {
	return func(l *Launcher) {
		l.width = width
		l.height = height
	}
}

func WithLogger(log logger.Logger) Option {
	return func(l *Launcher) {
		l.logger = log
	}
}

// New returns a launcher that writes its script to scriptPath and starts
// executable's "view" command from it.
func New(scriptPath, executable string, opts ...Option) *Launcher {
	l := &Launcher{
		scriptPath: scriptPath,
		executable: executable,
		width:      800,
		height:     600,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Launcher) viewArgs(url string) []string {
	return []string{
		"view",
		"--url", url,
		"--width", strconv.Itoa(l.width),
		"--height", strconv.Itoa(l.height),
	}
}

// Launch writes the launcher script and starts it without waiting. A process
// left over from a previous Launch is terminated first so at most one is ever
// outstanding.
func (l *Launcher) Launch(url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cmd != nil {
		l.terminateLocked()
	}

	script := renderScript(l.executable, l.viewArgs(url))
	if err := os.WriteFile(l.scriptPath, []byte(script), 0o755); err != nil {
		return fmt.Errorf("write launcher script: %w", err)
	}

	cmd := scriptCommand(l.scriptPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start launcher: %w", err)
	}

	exited := make(chan struct{})
	go func() {
		err := cmd.Wait()
		l.logger.Debug("Launcher", "view process exited", map[string]interface{}{
			"pid":   cmd.Process.Pid,
			"error": errString(err),
		})
		close(exited)
	}()

	l.cmd = cmd
	l.exited = exited

	l.logger.Info("Launcher", "view process started", map[string]interface{}{
		"pid":    cmd.Process.Pid,
		"script": l.scriptPath,
		"url":    url,
	})
	return nil
}

// Running reports whether the spawned process is still alive.
func (l *Launcher) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cmd == nil {
		return false
	}
	select {
	case <-l.exited:
		return false
	default:
		return true
	}
}

// Exited is closed when the current process exits. It is nil when nothing was
// launched.
func (l *Launcher) Exited() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.exited
}

// Terminate asks the spawned process to exit. Already-exited processes are
// not an error.
func (l *Launcher) Terminate() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.terminateLocked()
}

func (l *Launcher) terminateLocked() error {
	if l.cmd == nil {
		return nil
	}
	cmd, exited := l.cmd, l.exited
	l.cmd, l.exited = nil, nil

	select {
	case <-exited:
		return nil
	default:
	}

	if err := terminate(cmd.Process); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("terminate view process: %w", err)
	}
	l.logger.Info("Launcher", "view process terminated", map[string]interface{}{"pid": cmd.Process.Pid})
	return nil
}

// Cleanup removes the launcher script. A missing script is not an error.
func (l *Launcher) Cleanup() error {
	if err := os.Remove(l.scriptPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove launcher script: %w", err)
	}
	return nil
}

// Shutdown terminates the process and removes the script. Failures are logged
// and dropped.
func (l *Launcher) Shutdown() {
	if err := l.Terminate(); err != nil {
		l.logger.Debug("Launcher", "terminate failed during shutdown", map[string]interface{}{"error": err.Error()})
	}
	if err := l.Cleanup(); err != nil {
		l.logger.Debug("Launcher", "cleanup failed during shutdown", map[string]interface{}{"error": err.Error()})
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
