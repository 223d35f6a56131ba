package team

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
	team := r.Group("/team")
	team.Use(middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5))
	{
		team.GET("", rbac.Authorize(rbacService, "team", "read"), handler.GetMyTeam)
		team.GET("/members", rbac.Authorize(rbacService, "team", "manage"), handler.GetMembers)
		team.POST("/members", rbac.Authorize(rbacService, "team", "manage"), handler.AddMember)
		team.DELETE("/members/:email", rbac.Authorize(rbacService, "team", "manage"), handler.RemoveMember)
	}
}
