package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yanqian/ai-wardrobe/pkg/logger"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always executes.
func run() int {
	log := logger.New().With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := initializeApp()
	if err != nil {
		log.Error("failed to wire application", "error", err)
		return 1
	}
	defer cleanup()

	if err := app.Run(ctx); err != nil {
		log.Error("wardrobe api stopped with error", "error", err)
		return 1
	}
	log.Info("wardrobe api stopped")
	return 0
}
