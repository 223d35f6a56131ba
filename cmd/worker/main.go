package main

import (
	"context"
	"os/signal"
	"syscall"

	"go-assethub/internal/app"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunWorker(ctx, app.LoadConfig()); err != nil {
		logger.Fatal("worker failed", zap.Error(err))
	}
}
