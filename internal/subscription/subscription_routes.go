package subscription

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
	// Pricing is public
	r.GET("/packages", handler.GetPackages)

	sub := r.Group("/subscription")
	sub.Use(middleware.AuthMiddleware(), middleware.RateLimitByUser(1, 5))
	{
		sub.POST("/checkout", rbac.Authorize(rbacService, "subscription", "upgrade"), handler.CreateCheckout)
		sub.POST("/payment-success", rbac.Authorize(rbacService, "subscription", "upgrade"), handler.PaymentSuccess)
		sub.GET("/payments", rbac.Authorize(rbacService, "subscription", "read"), handler.GetPayments)
	}
}
