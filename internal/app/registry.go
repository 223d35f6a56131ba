package app

import (
	"database/sql"
	"net/http"

	"go-assethub/internal/asset"
	"go-assethub/internal/assetrequest"
	"go-assethub/internal/assignment"
	"go-assethub/internal/auth"
	"go-assethub/internal/messaging/kafka"
	"go-assethub/internal/middleware"
	"go-assethub/internal/rbac"
	"go-assethub/internal/rbac/infra"
	"go-assethub/internal/subscription"
	"go-assethub/internal/team"
	"go-assethub/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// buildRouter wires repositories, services and handlers and mounts every
// route group under /api/v1.
func buildRouter(cfg Config, db *gorm.DB, sqlDB *sql.DB, rdb *redis.Client) (*gin.Engine, error) {
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return nil, err
	}

	userRepo := user.NewRepository(db)
	assetRepo := asset.NewRepository(db)
	requestRepo := assetrequest.NewRepository(db)
	assignmentRepo := assignment.NewRepository(db)
	subscriptionRepo := subscription.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	authService := auth.NewService(userRepo)
	assetService := asset.NewService(sqlDB, assetRepo, userRepo)
	requestService := assetrequest.NewService(sqlDB, requestRepo, assetRepo, assignmentRepo, userRepo, outboxRepo)
	assignmentService := assignment.NewService(sqlDB, assignmentRepo, assetRepo)
	teamService := team.NewService(sqlDB, userRepo, outboxRepo)
	subscriptionService := subscription.NewService(sqlDB, subscriptionRepo, userRepo, rdb, cfg.CheckoutBaseURL)

	authHandler := auth.NewHandler(authService)
	assetHandler := asset.NewHandler(assetService)
	requestHandler := assetrequest.NewHandler(requestService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	teamHandler := team.NewHandler(teamService)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1, authHandler)
		asset.RegisterRoutes(v1, assetHandler, rbacService)
		assetrequest.RegisterRoutes(v1, requestHandler, rbacService)
		assignment.RegisterRoutes(v1, assignmentHandler, rbacService)
		team.RegisterRoutes(v1, teamHandler, rbacService)
		subscription.RegisterRoutes(v1, subscriptionHandler, rbacService)
	}

	return router, nil
}
