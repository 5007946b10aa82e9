package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"support-agent/model"
	"support-agent/service"
)

// AssistHandler runs one chat turn through the diagnosis engine.
func AssistHandler(chatSvc *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}

		resp, err := chatSvc.HandleMessage(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ClearSessionHandler drops a conversation explicitly, ahead of the TTL.
func ClearSessionHandler(chatSvc *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
			return
		}

		if err := chatSvc.ClearSession(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"cleared": id})
	}
}
