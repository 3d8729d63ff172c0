package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createEventRequest struct {
	Title     string   `json:"title" binding:"required"`
	StartTime string   `json:"start_time" binding:"required"`
	Reminders []string `json:"reminders"`
}

// handleTaskCalendar renders the actor's deadline-bearing tasks as calendar
// entries for the frontend calendar widget.
func (s *Server) handleTaskCalendar(c *gin.Context) {
	entries, err := s.tasks.CalendarEntries(c.Request.Context(), currentUser(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleCreateCalendarEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := s.calendar.CreateEvent(c.Request.Context(), currentUser(c), req.Title, req.StartTime, req.Reminders)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (s *Server) handleListCalendarEvents(c *gin.Context) {
	events, err := s.calendar.ListEvents(c.Request.Context(), currentUser(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}
