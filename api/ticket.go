package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"support-agent/dao"
	"support-agent/model"
	"support-agent/service"
)

type CreateTicketRequest struct {
	UserID    string           `json:"user_id"`
	SessionID string           `json:"session_id"`
	Ticket    model.TicketData `json:"ticket"`
}

// CreateTicketHandler persists a ticket, typically prefilled by a completed
// troubleshooting flow.
func CreateTicketHandler(chatSvc *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}

		ticket, err := chatSvc.SubmitTicket(c.Request.Context(), req.UserID, req.SessionID, req.Ticket)
		if err != nil {
			if errors.Is(err, service.ErrTicketInvalid) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, ticket)
	}
}

func GetTicketHandler(chatSvc *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket, err := chatSvc.GetTicket(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, dao.ErrTicketNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, ticket)
	}
}

func ListTicketsHandler(chatSvc *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		tickets, err := chatSvc.ListTickets(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"tickets": tickets, "total": len(tickets)})
	}
}
