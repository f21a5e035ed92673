package tickets

import (
	"casaroja/internal/shared/middleware"
	"casaroja/internal/users"

	"github.com/gin-gonic/gin"
)

func SetupTicketRoutes(router *gin.RouterGroup, controller Controller) {
	tickets := router.Group("/tickets")
	tickets.Use(middleware.JWTAuth())
	{
		tickets.POST("/purchase", controller.Purchase)
		tickets.GET("", controller.GetMyTickets)
		tickets.GET("/:id", controller.GetTicket)
		tickets.POST("/:id/cancel", controller.Cancel)
	}

	// Door staff scan tickets at the venue
	checkin := router.Group("/tickets")
	checkin.Use(middleware.JWTAuth(), middleware.RequireUserTypes(
		users.TypeCultor, users.TypeEventCreator, users.TypeManager))
	{
		checkin.POST("/checkin", controller.CheckIn)
	}
}
