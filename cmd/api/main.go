package main

import (
	"time"

	"go-assethub/internal/app"
	"go-assethub/internal/bootstrap"
	"go-assethub/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg := app.LoadConfig()
	a, err := app.BuildApp(cfg)
	if err != nil {
		logger.Fatal("app bootstrap failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(a.Router, bootstrap.ServerConfig{
		Port:         cfg.Port,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, bootstrap.NewStdoutAuditLogger())
}
