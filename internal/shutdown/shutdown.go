// Package shutdown provides graceful shutdown coordination for
// cmd/qcachectl: signal handling and ordered resource cleanup. It is a
// trimmed form of this codebase's server shutdown manager, with the
// HTTP-specific pieces (in-flight request draining, middleware, graceful
// HTTP server wrapper) removed — a CLI tool driving an in-memory cache has
// no requests to drain, only a facade and a scheduler goroutine to close.
package shutdown

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Manager coordinates signal handling and resource cleanup on shutdown.
type Manager struct {
	shutdownTimeout time.Duration

	shutdownCh     chan struct{}
	shutdownOnce   sync.Once
	isShuttingDown int32

	closers   []io.Closer
	closersMu sync.Mutex

	onShutdownStart []func()
	onShutdownEnd   []func()
	callbacksMu     sync.Mutex
}

// Config configures a Manager.
type Config struct {
	// ShutdownTimeout is recorded on the Manager. Default: 10 seconds.
	// Shutdown does not apply it: registered closers run to completion
	// however long they take.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default shutdown configuration.
func DefaultConfig() Config {
	return Config{ShutdownTimeout: 10 * time.Second}
}

// NewManager creates a Manager with the given configuration.
func NewManager(config Config) *Manager {
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}
	return &Manager{
		shutdownTimeout: config.ShutdownTimeout,
		shutdownCh:      make(chan struct{}),
	}
}

// RegisterCloser adds a closer to be called during shutdown. Closers are
// called in reverse order of registration (LIFO), so the facade — usually
// registered first — is closed last, after anything built on top of it.
func (m *Manager) RegisterCloser(closer io.Closer) {
	m.closersMu.Lock()
	defer m.closersMu.Unlock()
	m.closers = append(m.closers, closer)
}

// OnShutdownStart registers a callback invoked when shutdown begins.
func (m *Manager) OnShutdownStart(fn func()) {
	m.callbacksMu.Lock()
	defer m.callbacksMu.Unlock()
	m.onShutdownStart = append(m.onShutdownStart, fn)
}

// OnShutdownEnd registers a callback invoked once shutdown completes.
func (m *Manager) OnShutdownEnd(fn func()) {
	m.callbacksMu.Lock()
	defer m.callbacksMu.Unlock()
	m.onShutdownEnd = append(m.onShutdownEnd, fn)
}

// ListenForSignals blocks until SIGTERM, SIGINT, or ctx cancellation, then
// runs Shutdown.
func (m *Manager) ListenForSignals(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		return m.Shutdown(ctx, fmt.Sprintf("received signal: %v", sig))
	case <-ctx.Done():
		return m.Shutdown(ctx, "context cancelled")
	case <-m.shutdownCh:
		return nil
	}
}

// Shutdown runs shutdown-start callbacks, closes every registered closer in
// reverse registration order, then runs shutdown-end callbacks. Safe to
// call more than once; only the first call has effect.
func (m *Manager) Shutdown(ctx context.Context, reason string) error {
	var shutdownErr error

	m.shutdownOnce.Do(func() {
		atomic.StoreInt32(&m.isShuttingDown, 1)
		close(m.shutdownCh)
		log.Printf("shutdown: %s", reason)

		m.callbacksMu.Lock()
		startCallbacks := m.onShutdownStart
		m.callbacksMu.Unlock()
		for _, fn := range startCallbacks {
			fn()
		}

		m.closersMu.Lock()
		closers := m.closers
		m.closersMu.Unlock()

		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil && shutdownErr == nil {
				shutdownErr = fmt.Errorf("shutdown: closing resource: %w", err)
			}
		}

		m.callbacksMu.Lock()
		endCallbacks := m.onShutdownEnd
		m.callbacksMu.Unlock()
		for _, fn := range endCallbacks {
			fn()
		}
	})

	return shutdownErr
}

// IsShuttingDown reports whether shutdown has been initiated.
func (m *Manager) IsShuttingDown() bool {
	return atomic.LoadInt32(&m.isShuttingDown) == 1
}

// ShutdownCh returns a channel closed when shutdown begins.
func (m *Manager) ShutdownCh() <-chan struct{} {
	return m.shutdownCh
}

// CloserFunc adapts an ordinary function to io.Closer.
type CloserFunc func() error

// Close calls the underlying function.
func (f CloserFunc) Close() error {
	return f()
}
