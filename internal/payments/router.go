package payments

import (
	"casaroja/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(router *gin.RouterGroup, controller Controller) {
	payments := router.Group("/payments")
	payments.Use(middleware.JWTAuth())
	{
		payments.POST("", controller.CreatePayment)
		payments.GET("", controller.GetMyPayments)
		payments.GET("/:id", controller.GetPayment)
		payments.GET("/:id/commission", controller.GetCommission)
	}

	// Gateway callback; authenticated by the processor's signature at the
	// edge, not by a user token
	webhooks := router.Group("/payments")
	{
		webhooks.POST("/:id/webhook", controller.Webhook)
	}
}
