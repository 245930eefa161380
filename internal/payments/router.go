package payments

import (
	"skybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(router *gin.RouterGroup, controller Controller) {
	// User routes - own payment history
	userPayments := router.Group("/payments")
	userPayments.Use(middleware.JWTAuth())
	{
		userPayments.GET("/me", controller.GetMyPayments) // GET /api/v1/payments/me - My purchase history
	}

	// Staff routes - full ledger with optional status filter
	adminPayments := router.Group("/admin/payments")
	adminPayments.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		adminPayments.GET("", controller.ListAllPayments) // GET /api/v1/admin/payments?status= - Full ledger
	}
}
