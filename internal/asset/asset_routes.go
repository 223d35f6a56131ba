package asset

import (
	"go-assethub/internal/middleware"
	"go-assethub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	assets := r.Group("/assets")
	assets.Use(middleware.AuthMiddleware(), middleware.RateLimitByUser(3, 10))
	{
		assets.GET("", rbac.Authorize(rbacService, "assets", "read"), handler.GetAll)
		// The single-asset fetch is owner-scoped, so it shares the write
		// gate. Employees browse through the catalog listing instead.
		assets.GET("/:id", rbac.Authorize(rbacService, "assets", "write"), handler.GetById)
		assets.POST("", rbac.Authorize(rbacService, "assets", "write"), handler.Create)
		assets.PUT("/:id", rbac.Authorize(rbacService, "assets", "write"), handler.Update)
		assets.DELETE("/:id", rbac.Authorize(rbacService, "assets", "write"), handler.Delete)
	}
}
