package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/yanqian/ai-wardrobe/internal/infra/config"
)

const defaultDrainTimeout = 10 * time.Second

// App runs the wardrobe API until its context is cancelled.
type App struct {
	server  *http.Server
	drain   time.Duration
	logger  *slog.Logger
	started chan net.Addr
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server) *App {
	drain := cfg.HTTP.DrainTimeout
	if drain <= 0 {
		drain = defaultDrainTimeout
	}
	return &App{
		server:  server,
		drain:   drain,
		logger:  logger.With("component", "bootstrap"),
		started: make(chan net.Addr, 1),
	}
}

// Started yields the bound address once the listener is open.
func (a *App) Started() <-chan net.Addr {
	return a.started
}

// Run binds the listener, serves, and drains in-flight requests on shutdown.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.server.Addr, err)
	}
	a.logger.Info("wardrobe api listening", "address", ln.Addr().String())
	a.started <- ln.Addr()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("draining connections", "timeout", a.drain.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.drain)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("drain: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
