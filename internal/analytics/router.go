package analytics

import (
	"casaroja/internal/shared/middleware"
	"casaroja/internal/users"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(router *gin.RouterGroup, controller Controller) {
	analytics := router.Group("/analytics")
	analytics.Use(middleware.JWTAuth())
	{
		cultor := analytics.Group("")
		cultor.Use(middleware.RequireUserTypes(users.TypeCultor, users.TypeEventCreator, users.TypeManager))
		{
			cultor.GET("/events/:eventId/revenue", controller.GetEventRevenue)
			cultor.GET("/earnings", controller.GetMyEarnings)
		}

		admin := analytics.Group("")
		admin.Use(middleware.RequireManager())
		{
			admin.GET("/platform", controller.GetPlatformOverview)
		}
	}
}
