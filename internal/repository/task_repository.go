package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"antigravity-pm/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListOpenWithDeadline returns every non-completed task that has a deadline.
// This is the deadline reminder scan set.
func (r *TaskRepository) ListOpenWithDeadline(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("status <> ? AND deadline IS NOT NULL", model.StatusCompleted).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string, assigneeID string) ([]model.Task, error) {
	var tasks []model.Task
	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if assigneeID != "" {
		q = q.Where("assigned_to = ?", assigneeID)
	}
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListRecent returns the latest tasks, optionally restricted to one assignee.
func (r *TaskRepository) ListRecent(ctx context.Context, assigneeID string, limit int) ([]model.Task, error) {
	var tasks []model.Task
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if assigneeID != "" {
		q = q.Where("assigned_to = ?", assigneeID)
	}
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListTouchedBy returns tasks the user is assigned to or created, for the
// personal calendar view.
func (r *TaskRepository) ListTouchedBy(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("assigned_to = ? OR created_by = ?", userID, userID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListByCreator(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("created_by = ?", userID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateFields applies a partial update and returns the fresh row.
func (r *TaskRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Task, error) {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return r.FindByID(ctx, id)
}

// MarkReminderSent flips the approaching-deadline flag. The write is
// conditional on the flag still being false to keep the check-then-set
// window as tight as a single statement.
func (r *TaskRepository) MarkReminderSent(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		Update("reminder_sent", true).Error; err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	return nil
}

// MarkOverdueNotified flips the overdue-email flag, same contract as
// MarkReminderSent.
func (r *TaskRepository) MarkOverdueNotified(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND overdue_notified = ?", id, false).
		Update("overdue_notified", true).Error; err != nil {
		return fmt.Errorf("mark overdue notified: %w", err)
	}
	return nil
}
