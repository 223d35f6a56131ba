package assetrequest

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
	requests := r.Group("/asset-requests")
	requests.Use(middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 10))
	{
		requests.POST("", rbac.Authorize(rbacService, "asset-requests", "create"), handler.Submit)
		requests.GET("", rbac.Authorize(rbacService, "asset-requests", "decide"), handler.GetAll)
		requests.GET("/my", rbac.Authorize(rbacService, "asset-requests", "read"), handler.GetMine)
		requests.PATCH("/:id/approve", rbac.Authorize(rbacService, "asset-requests", "decide"), handler.Approve)
		requests.PATCH("/:id/reject", rbac.Authorize(rbacService, "asset-requests", "decide"), handler.Reject)
	}
}
