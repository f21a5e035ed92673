package events

import (
	"casaroja/internal/shared/middleware"
	"casaroja/internal/users"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.GetAllEvents)
		publicEvents.GET("/upcoming", controller.GetUpcomingEvents)
		publicEvents.GET("/:id", controller.GetEvent)
		publicEvents.GET("/:id/availability", controller.GetAvailableSpots)
	}

	// Cultor and event creator routes
	creatorEvents := router.Group("/events")
	creatorEvents.Use(middleware.JWTAuth(), middleware.RequireUserTypes(
		users.TypeCultor, users.TypeEventCreator, users.TypeManager))
	{
		creatorEvents.POST("", controller.CreateEvent)
		creatorEvents.GET("/mine", controller.GetMyEvents)
		creatorEvents.PUT("/:id", controller.UpdateEvent)
		creatorEvents.DELETE("/:id", controller.DeleteEvent)
		creatorEvents.POST("/:id/publish", controller.PublishEvent)
		creatorEvents.POST("/:id/cancel", controller.CancelEvent)
		creatorEvents.POST("/:id/complete", controller.CompleteEvent)
	}
}
