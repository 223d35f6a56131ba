package assignment

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
	assignments := r.Group("/assignments")
	assignments.Use(middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 10))
	{
		assignments.GET("", rbac.Authorize(rbacService, "assignments", "read"), handler.GetAll)
		assignments.GET("/my", rbac.Authorize(rbacService, "assignments", "read"), handler.GetMine)
		assignments.PATCH("/:id/return", rbac.Authorize(rbacService, "assignments", "return"), handler.Return)
	}
}
