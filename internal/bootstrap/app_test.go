package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-wardrobe/internal/infra/config"
)

func newTestApp(addr string, handler http.Handler) *App {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: addr, DrainTimeout: time.Second}}
	server := &http.Server{Addr: cfg.HTTP.Address, Handler: handler}
	return NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), server)
}

func TestRunServesUntilContextCancel(t *testing.T) {
	app := newTestApp("127.0.0.1:0", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	var addr net.Addr
	select {
	case addr = <-app.Started():
	case err := <-done:
		t.Fatalf("app exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not start")
	}

	resp, err := http.Get("http://" + addr.String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestRunReturnsListenError(t *testing.T) {
	app := newTestApp("127.0.0.1:-1", http.NotFoundHandler())

	err := app.Run(context.Background())
	require.ErrorContains(t, err, "listen on 127.0.0.1:-1")
}

func TestNewAppDefaultsDrainTimeout(t *testing.T) {
	app := NewApp(&config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)), &http.Server{})
	require.Equal(t, defaultDrainTimeout, app.drain)
}
