package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"antigravity-pm/internal/model"
	"antigravity-pm/internal/service"
)

type createTaskRequest struct {
	ProjectID   *string `json:"project_id"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Deadline    *string `json:"deadline"`
	AssignedTo  *string `json:"assigned_to"`
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.tasks.ListRecent(c.Request.Context(), currentUser(c), 50)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleListAssignedTasks(c *gin.Context) {
	tasks, err := s.tasks.ListAssigned(c.Request.Context(), currentUser(c), 5)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := s.tasks.CreateTask(c.Request.Context(), currentUser(c), service.TaskInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// updatableTaskFields whitelists the columns a PATCH may touch. The reminder
// idempotency flags are owned by the reminder engine and stay untouchable
// from the API.
var updatableTaskFields = map[string]bool{
	"title":       true,
	"description": true,
	"priority":    true,
	"status":      true,
	"deadline":    true,
	"assigned_to": true,
	"project_id":  true,
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := make(map[string]interface{}, len(payload))
	for key, value := range payload {
		if updatableTaskFields[strings.ToLower(key)] {
			fields[strings.ToLower(key)] = value
		}
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields"})
		return
	}

	task, err := s.tasks.UpdateTask(c.Request.Context(), currentUser(c), c.Param("id"), fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

type createCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func (s *Server) handleListComments(c *gin.Context) {
	comments, err := s.commentRepo.ListByTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) handleCreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := s.tasks.Get(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	comment := model.Comment{
		TaskID: c.Param("id"),
		UserID: currentUser(c).ID,
		Body:   req.Body,
	}
	if err := s.commentRepo.Create(c.Request.Context(), &comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, comment)
}
