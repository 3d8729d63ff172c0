package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListNotifications(c *gin.Context) {
	notifications, err := s.notificationRepo.ListByUser(c.Request.Context(), currentUser(c).ID, 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (s *Server) handleMarkNotificationRead(c *gin.Context) {
	if err := s.notificationRepo.MarkRead(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
