package app

import (
	"context"
	"database/sql"

	"go-assethub/internal/asset"
	"go-assethub/internal/assetrequest"
	"go-assethub/internal/assignment"
	"go-assethub/internal/messaging/kafka"
	"go-assethub/internal/shared/connection"
	"go-assethub/internal/subscription"
	"go-assethub/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds everything the API binary needs to serve and shut down
type App struct {
	Config Config
	Router *gin.Engine
	DB     *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func BuildApp(cfg Config) (*App, error) {
	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		// Package caching degrades to the database without redis
		zap.L().Warn("redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	subscriptionRepo := subscription.NewRepository(db)
	if err := subscriptionRepo.EnsureDefaultPackages(context.Background(), subscription.DefaultPackages); err != nil {
		return nil, err
	}

	router, err := buildRouter(cfg, db, sqlDB, rdb)
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Router: router,
		DB:     db,
		SQLDB:  sqlDB,
		Redis:  rdb,
	}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&asset.Asset{},
		&assetrequest.AssetRequest{},
		&assignment.AssignedAsset{},
		&subscription.Package{},
		&subscription.CheckoutSession{},
		&subscription.Payment{},
		&kafka.OutboxEventModel{},
	)
}
