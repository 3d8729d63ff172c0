package httpapi

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleStats(c *gin.Context) {
	projects, err := s.projects.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := s.tasks.BuildStats(c.Request.Context(), projects, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleExportCSV(c *gin.Context) {
	tasks, err := s.tasks.ListByCreator(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	_ = writer.Write([]string{"Title", "Status", "Priority", "Deadline", "Created At"})
	for _, t := range tasks {
		deadline := ""
		if t.Deadline != nil {
			deadline = *t.Deadline
		}
		_ = writer.Write([]string{t.Title, t.Status, t.Priority, deadline, t.CreatedAt.Format(time.RFC3339)})
	}
	writer.Flush()

	c.Header("Content-Disposition", "attachment; filename=tasks_report.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

type updateProfileRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name is required"})
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name is required"})
		return
	}

	if err := s.userRepo.UpdateFullName(c.Request.Context(), currentUser(c).ID, fullName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

type inviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

func (s *Server) handleInvite(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if err := s.invites.Invite(c.Request.Context(), req.Email, req.Role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation and credentials sent to " + req.Email})
}

func (s *Server) handleReverseGeocode(c *gin.Context) {
	lat := c.Query("lat")
	lon := c.Query("lon")

	location := s.geocoder.Reverse(c.Request.Context(), lat, lon)
	c.JSON(http.StatusOK, gin.H{"location": location})
}
