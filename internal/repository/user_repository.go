package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"antigravity-pm/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListIDsByRole returns ids of users with the given role, or all ids when
// role is empty.
func (r *UserRepository) ListIDsByRole(ctx context.Context, role string) ([]string, error) {
	var ids []string
	q := r.db.WithContext(ctx).Model(&model.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *UserRepository) UpdateFullName(ctx context.Context, id, fullName string) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("full_name", fullName).Error; err != nil {
		return fmt.Errorf("update user name: %w", err)
	}
	return nil
}

// Delete removes a user and their dependent records. Tasks assigned to the
// user are unassigned first so they survive the removal.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Task{}).Where("assigned_to = ?", id).
		Update("assigned_to", nil).Error; err != nil {
		return fmt.Errorf("unassign tasks: %w", err)
	}
	if err := db.Where("user_id = ?", id).Delete(&model.Attendance{}).Error; err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if err := db.Where("user_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	if err := db.Where("id = ?", id).Delete(&model.User{}).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
