package transport

import (
	"casaroja/internal/shared/middleware"
	"casaroja/internal/users"

	"github.com/gin-gonic/gin"
)

func SetupTransportRoutes(router *gin.RouterGroup, controller Controller) {
	// Public availability routes
	publicTransport := router.Group("/transport")
	{
		publicTransport.GET("/event/:eventId", controller.GetEventServices)
		publicTransport.GET("/:id", controller.GetService)
	}

	// Transport provider routes
	providerTransport := router.Group("/transport")
	providerTransport.Use(middleware.JWTAuth(), middleware.RequireUserTypes(
		users.TypeTransport, users.TypeManager))
	{
		providerTransport.POST("", controller.CreateService)
		providerTransport.GET("/mine", controller.GetMyServices)
		providerTransport.PUT("/:id", controller.UpdateService)
		providerTransport.GET("/:id/passengers", controller.GetServicePassengers)
	}
}
