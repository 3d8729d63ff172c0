package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"antigravity-pm/internal/geocode"
	"antigravity-pm/internal/model"
	"antigravity-pm/internal/repository"
	"antigravity-pm/internal/service"
)

type noopMailer struct{}

func (noopMailer) Send(to, subject, htmlBody string) error { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.NewDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	notifier := service.NewNotifierService(userRepo, notificationRepo)
	server := NewServer(
		service.NewAuthService(userRepo, "test-secret"),
		service.NewProjectService(projectRepo, notifier),
		service.NewTaskService(taskRepo, userRepo, notifier),
		service.NewCalendarService(calendarRepo),
		service.NewAttendanceService(attendanceRepo),
		service.NewInviteService(userRepo, noopMailer{}, "http://localhost:5000"),
		geocode.NewClient(),
		userRepo,
		notificationRepo,
		commentRepo,
	)
	return server.Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) *http.Cookie {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"email": email, "password": "hunter42", "full_name": "Test User",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": email, "password": "hunter42",
	}, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	for _, c := range resp.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("login set no session cookie")
	return nil
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/tasks", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	cookie := registerAndLogin(t, router, "flow@example.com")
	resp = doJSON(t, router, http.MethodGet, "/api/tasks", nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email": "flow@example.com", "password": "nope",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreateTaskBroadcastsNotification(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "maker@example.com")

	resp := doJSON(t, router, http.MethodPost, "/api/tasks", gin.H{
		"title":    "Ship the release",
		"priority": "High",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var task model.Task
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &task))
	require.Equal(t, model.StatusToDo, task.Status)

	resp = doJSON(t, router, http.MethodGet, "/api/notifications", nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code)

	var notifications []model.Notification
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	require.Equal(t, "New Task Created", notifications[0].Title)
}

func TestTaskUpdateIgnoresReminderFlags(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "editor@example.com")

	resp := doJSON(t, router, http.MethodPost, "/api/tasks", gin.H{"title": "Flagged"}, cookie)
	require.Equal(t, http.StatusCreated, resp.Code)
	var task model.Task
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &task))

	resp = doJSON(t, router, http.MethodPatch, "/api/tasks/"+task.ID, gin.H{
		"reminder_sent": true,
	}, cookie)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doJSON(t, router, http.MethodPatch, "/api/tasks/"+task.ID, gin.H{
		"status":        model.StatusInProgress,
		"reminder_sent": true,
	}, cookie)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &task))
	require.Equal(t, model.StatusInProgress, task.Status)
	require.False(t, task.ReminderSent)
}

func TestAdminRoutesForbiddenForTeamMembers(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "member@example.com")

	resp := doJSON(t, router, http.MethodPost, "/api/invite", gin.H{
		"email": "new@example.com",
	}, cookie)
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = doJSON(t, router, http.MethodDelete, "/api/team/"+uuid.NewString(), nil, cookie)
	require.Equal(t, http.StatusForbidden, resp.Code)
}

func TestAttendancePunchEndpoint(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "clock@example.com")

	resp := doJSON(t, router, http.MethodPost, "/api/attendance/punch", nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var punch service.PunchResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &punch))
	require.Equal(t, "in", punch.Type)

	resp = doJSON(t, router, http.MethodPost, "/api/attendance/punch", nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &punch))
	require.Equal(t, "out", punch.Type)

	resp = doJSON(t, router, http.MethodPost, "/api/attendance/punch", nil, cookie)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCalendarEventEndpoints(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerAndLogin(t, router, "planner@example.com")

	resp := doJSON(t, router, http.MethodPost, "/api/calendar/events", gin.H{
		"title":      "Planning",
		"start_time": "2026-09-01T10:00:00",
		"reminders":  []string{model.ReminderSameDay},
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = doJSON(t, router, http.MethodGet, "/api/calendar/events/list", nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code)
	var events []model.CalendarEvent
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &events))
	require.Len(t, events, 1)
	require.Equal(t, "2026-09-01T10:00:00Z", events[0].StartTime)
}
