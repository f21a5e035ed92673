package discounts

import (
	"casaroja/internal/shared/middleware"
	"casaroja/internal/users"

	"github.com/gin-gonic/gin"
)

func SetupDiscountRoutes(router *gin.RouterGroup, controller Controller) {
	// Authenticated client routes
	clientDiscounts := router.Group("/discounts")
	clientDiscounts.Use(middleware.JWTAuth())
	{
		clientDiscounts.POST("/preview", controller.PreviewDiscount)
	}

	// Cultor and manager routes
	adminDiscounts := router.Group("/admin/discounts")
	adminDiscounts.Use(middleware.JWTAuth(), middleware.RequireUserTypes(
		users.TypeCultor, users.TypeEventCreator, users.TypeManager))
	{
		adminDiscounts.POST("", controller.CreateDiscount)
		adminDiscounts.GET("/:id", controller.GetDiscount)
		adminDiscounts.PUT("/:id", controller.UpdateDiscount)
		adminDiscounts.DELETE("/:id", controller.DeleteDiscount)
		adminDiscounts.GET("/event/:eventId", controller.GetEventDiscounts)
	}
}
