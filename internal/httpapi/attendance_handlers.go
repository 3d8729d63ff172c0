package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleAttendanceToday(c *gin.Context) {
	record, err := s.attendance.Today(c.Request.Context(), currentUser(c).ID, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// A missing record is a normal answer for the punch widget.
	c.JSON(http.StatusOK, record)
}

func (s *Server) handleAttendancePunch(c *gin.Context) {
	result, err := s.attendance.Punch(c.Request.Context(), currentUser(c).ID, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAttendanceHistory(c *gin.Context) {
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	records, err := s.attendance.History(c.Request.Context(), currentUser(c).ID, month, year)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
