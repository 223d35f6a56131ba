package main

import (
	"context"
	"os/signal"
	"syscall"

	"go-assethub/internal/app"
	"go-assethub/internal/bootstrap"

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

	app.RunConsumer(ctx, app.LoadConfig(), bootstrap.NewStdoutAuditLogger())
}
