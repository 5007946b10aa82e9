package route

import (
	"github.com/gin-gonic/gin"

	"support-agent/api"
	"support-agent/service"
)

func Register(r *gin.Engine, chatSvc *service.ChatService) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	assistGroup := r.Group("/assist")
	{
		assistGroup.POST("", api.AssistHandler(chatSvc))
		assistGroup.DELETE("/session/:id", api.ClearSessionHandler(chatSvc))
	}

	ticketGroup := r.Group("/tickets")
	{
		ticketGroup.POST("", api.CreateTicketHandler(chatSvc))
		ticketGroup.GET("", api.ListTicketsHandler(chatSvc))
		ticketGroup.GET("/:id", api.GetTicketHandler(chatSvc))
	}
}
