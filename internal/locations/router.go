package locations

import (
	"casaroja/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLocationRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes
	publicLocations := router.Group("/locations")
	{
		publicLocations.GET("/active", controller.GetActiveLocations)
		publicLocations.GET("/city/:city", controller.GetLocationsByCity)
		publicLocations.GET("/:id", controller.GetLocation)
	}

	// Manager routes
	adminLocations := router.Group("/admin/locations")
	adminLocations.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		adminLocations.POST("", controller.CreateLocation)
		adminLocations.PUT("/:id", controller.UpdateLocation)
		adminLocations.DELETE("/:id", controller.DeleteLocation)
	}
}
