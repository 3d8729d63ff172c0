package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"antigravity-pm/internal/model"
	"antigravity-pm/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	ProjectID   *string
	Title       string
	Description string
	Priority    string
	Deadline    *string
	AssignedTo  *string
}

// CalendarEntry is a task rendered for the calendar view.
type CalendarEntry struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Start           string  `json:"start"`
	AllDay          bool    `json:"allDay"`
	BackgroundColor string  `json:"backgroundColor"`
	BorderColor     string  `json:"borderColor"`
	URL             *string `json:"url"`
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
	userRepo *repository.UserRepository
	notifier *NotifierService
}

func NewTaskService(taskRepo *repository.TaskRepository, userRepo *repository.UserRepository, notifier *NotifierService) *TaskService {
	return &TaskService{taskRepo: taskRepo, userRepo: userRepo, notifier: notifier}
}

// CreateTask stores a new task and broadcasts a creation notice.
func (s *TaskService) CreateTask(ctx context.Context, actor *model.User, input TaskInput) (*model.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = "Medium"
	}

	task := model.Task{
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Status:      model.StatusToDo,
		Deadline:    input.Deadline,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   actor.ID,
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}

	assigneeName := "Unassigned"
	if task.AssignedTo != nil {
		if assignee, err := s.userRepo.FindByID(ctx, *task.AssignedTo); err == nil {
			assigneeName = assignee.FullName
		}
	}

	s.notifier.Broadcast(ctx,
		"New Task Created",
		fmt.Sprintf("%s created a task [%s] and assigned to %s.", actor.FullName, task.Title, assigneeName),
		projectLink(task.ProjectID))

	return &task, nil
}

// UpdateTask applies a partial update; moves to In Progress or Completed are
// broadcast to the workspace.
func (s *TaskService) UpdateTask(ctx context.Context, actor *model.User, taskID string, fields map[string]interface{}) (*model.Task, error) {
	task, err := s.taskRepo.UpdateFields(ctx, taskID, fields)
	if err != nil {
		return nil, err
	}

	if status, ok := fields["status"].(string); ok &&
		(status == model.StatusInProgress || status == model.StatusCompleted) {
		s.notifier.Broadcast(ctx,
			"Task "+status,
			fmt.Sprintf("%s moved task [%s] to %s.", actor.FullName, task.Title, status),
			projectLink(task.ProjectID))
	}

	return task, nil
}

// ListForProject applies role visibility: team members only see their own
// assignments within the project.
func (s *TaskService) ListForProject(ctx context.Context, actor *model.User, projectID string) ([]model.Task, error) {
	assignee := ""
	if !actor.IsAdmin() {
		assignee = actor.ID
	}
	return s.taskRepo.ListByProject(ctx, projectID, assignee)
}

// ListRecent returns the latest tasks visible to the actor.
func (s *TaskService) ListRecent(ctx context.Context, actor *model.User, limit int) ([]model.Task, error) {
	assignee := ""
	if !actor.IsAdmin() {
		assignee = actor.ID
	}
	return s.taskRepo.ListRecent(ctx, assignee, limit)
}

// ListAssigned returns the actor's own latest assignments.
func (s *TaskService) ListAssigned(ctx context.Context, actor *model.User, limit int) ([]model.Task, error) {
	return s.taskRepo.ListRecent(ctx, actor.ID, limit)
}

func (s *TaskService) Get(ctx context.Context, taskID string) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, taskID)
}

// ListByCreator serves the CSV export.
func (s *TaskService) ListByCreator(ctx context.Context, userID string) ([]model.Task, error) {
	return s.taskRepo.ListByCreator(ctx, userID)
}

// CalendarEntries maps the actor's tasks with deadlines onto calendar
// entries. Midnight-UTC deadlines are treated as all-day dates.
func (s *TaskService) CalendarEntries(ctx context.Context, actor *model.User) ([]CalendarEntry, error) {
	tasks, err := s.taskRepo.ListTouchedBy(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]CalendarEntry, 0, len(tasks))
	for _, t := range tasks {
		if t.Deadline == nil {
			continue
		}

		color := "#3b82f6"
		if t.Status == model.StatusCompleted {
			color = "#10b981"
		} else if t.Priority == "High" {
			color = "#ef4444"
		}

		start := *t.Deadline
		allDay := false
		if strings.Contains(start, "T00:00:00") &&
			(strings.Contains(start, "+00:00") || strings.HasSuffix(start, "Z")) {
			allDay = true
			start = strings.SplitN(start, "T", 2)[0]
		}

		var url *string
		if t.ProjectID != nil {
			link := projectLink(t.ProjectID)
			url = &link
		}

		entries = append(entries, CalendarEntry{
			ID:              t.ID,
			Title:           t.Title,
			Start:           start,
			AllDay:          allDay,
			BackgroundColor: color,
			BorderColor:     color,
			URL:             url,
		})
	}
	return entries, nil
}

// Stats aggregates workspace-wide counters for the dashboard.
type Stats struct {
	TotalProjects int            `json:"total_projects"`
	TotalTasks    int            `json:"total_tasks"`
	TaskStats     map[string]int `json:"task_stats"`
	Charts        StatsCharts    `json:"charts"`
}

type StatsCharts struct {
	Status   ChartSeries `json:"status"`
	Projects ChartSeries `json:"projects"`
	Trend    ChartSeries `json:"trend"`
}

type ChartSeries struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// BuildStats computes project/task counters, a status breakdown, the top five
// projects by task count and a seven-day creation trend.
func (s *TaskService) BuildStats(ctx context.Context, projects []model.Project, now time.Time) (*Stats, error) {
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	projectTitles := make(map[string]string, len(projects))
	for _, p := range projects {
		projectTitles[p.ID] = p.Title
	}

	statusCounts := map[string]int{
		model.StatusToDo:       0,
		model.StatusInProgress: 0,
		model.StatusCompleted:  0,
	}
	projectCounts := map[string]int{}
	for _, t := range tasks {
		statusCounts[t.Status]++
		name := "Unknown Project"
		if t.ProjectID != nil {
			if title, ok := projectTitles[*t.ProjectID]; ok {
				name = title
			}
		}
		projectCounts[name]++
	}

	type pair struct {
		name  string
		count int
	}
	sorted := make([]pair, 0, len(projectCounts))
	for name, count := range projectCounts {
		sorted = append(sorted, pair{name, count})
	}
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].count > sorted[i].count {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}

	dates := make([]string, 0, 7)
	trend := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i).Format("2006-01-02")
		dates = append(dates, d)
		trend[d] = 0
	}
	for _, t := range tasks {
		d := t.CreatedAt.Format("2006-01-02")
		if _, ok := trend[d]; ok {
			trend[d]++
		}
	}

	stats := &Stats{
		TotalProjects: len(projects),
		TotalTasks:    len(tasks),
		TaskStats:     statusCounts,
	}
	stats.Charts.Status = ChartSeries{
		Labels: []string{model.StatusToDo, model.StatusInProgress, model.StatusCompleted},
		Data: []int{
			statusCounts[model.StatusToDo],
			statusCounts[model.StatusInProgress],
			statusCounts[model.StatusCompleted],
		},
	}
	for _, p := range sorted {
		stats.Charts.Projects.Labels = append(stats.Charts.Projects.Labels, p.name)
		stats.Charts.Projects.Data = append(stats.Charts.Projects.Data, p.count)
	}
	for _, d := range dates {
		stats.Charts.Trend.Labels = append(stats.Charts.Trend.Labels, d)
		stats.Charts.Trend.Data = append(stats.Charts.Trend.Data, trend[d])
	}
	return stats, nil
}
