package categories

import (
	"casaroja/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCategoryRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes
	publicCategories := router.Group("/categories")
	{
		publicCategories.GET("/active", controller.GetActiveCategories)
		publicCategories.GET("/slug/:slug", controller.GetCategoryBySlug)
		publicCategories.GET("/:id", controller.GetCategory)
	}

	// Manager routes
	adminCategories := router.Group("/admin/categories")
	adminCategories.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		adminCategories.POST("", controller.CreateCategory)
		adminCategories.GET("", controller.GetAllCategories)
		adminCategories.PUT("/:id", controller.UpdateCategory)
		adminCategories.DELETE("/:id", controller.DeleteCategory)
	}
}
