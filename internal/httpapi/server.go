package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"antigravity-pm/internal/geocode"
	"antigravity-pm/internal/repository"
	"antigravity-pm/internal/service"
)

// Server wires the HTTP surface to the application services.
type Server struct {
	auth       *service.AuthService
	projects   *service.ProjectService
	tasks      *service.TaskService
	calendar   *service.CalendarService
	attendance *service.AttendanceService
	invites    *service.InviteService
	geocoder   *geocode.Client

	userRepo         *repository.UserRepository
	notificationRepo *repository.NotificationRepository
	commentRepo      *repository.CommentRepository
}

func NewServer(
	auth *service.AuthService,
	projects *service.ProjectService,
	tasks *service.TaskService,
	calendar *service.CalendarService,
	attendance *service.AttendanceService,
	invites *service.InviteService,
	geocoder *geocode.Client,
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	commentRepo *repository.CommentRepository,
) *Server {
	return &Server{
		auth:             auth,
		projects:         projects,
		tasks:            tasks,
		calendar:         calendar,
		attendance:       attendance,
		invites:          invites,
		geocoder:         geocoder,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		commentRepo:      commentRepo,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!"})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/register", s.handleRegister)
		auth.POST("/login", s.handleLogin)
		auth.POST("/logout", s.handleLogout)
	}

	api := router.Group("/api", s.requireAuth())
	{
		api.GET("/team", s.handleListTeam)
		api.DELETE("/team/:id", s.requireAdmin(), s.handleDeleteTeamMember)

		api.GET("/projects", s.handleListProjects)
		api.POST("/projects", s.handleCreateProject)
		api.GET("/projects/:id", s.handleGetProject)
		api.GET("/projects/:id/tasks", s.handleListProjectTasks)

		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.PATCH("/tasks/:id", s.handleUpdateTask)
		api.GET("/tasks/:id/comments", s.handleListComments)
		api.POST("/tasks/:id/comments", s.handleCreateComment)
		api.GET("/user/tasks", s.handleListAssignedTasks)

		api.GET("/notifications", s.handleListNotifications)
		api.POST("/notifications/:id/read", s.handleMarkNotificationRead)

		api.GET("/calendar/events", s.handleTaskCalendar)
		api.POST("/calendar/events", s.handleCreateCalendarEvent)
		api.GET("/calendar/events/list", s.handleListCalendarEvents)

		api.GET("/attendance/today", s.handleAttendanceToday)
		api.POST("/attendance/punch", s.handleAttendancePunch)
		api.GET("/attendance/history", s.handleAttendanceHistory)

		api.GET("/stats", s.handleStats)
		api.GET("/export/csv", s.handleExportCSV)
		api.POST("/user/profile", s.handleUpdateProfile)
		api.POST("/invite", s.requireAdmin(), s.handleInvite)
		api.GET("/reverse-geocode", s.handleReverseGeocode)
	}

	return router
}
