package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"antigravity-pm/internal/model"
)

// ProjectRepository handles CRUD for projects and their member lists.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListVisibleTo returns projects the user owns or is a member of, using
// structured predicates rather than a stitched filter string.
func (r *ProjectRepository) ListVisibleTo(ctx context.Context, userID string) ([]model.Project, error) {
	memberIDs, err := r.listMemberProjectIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var projects []model.Project
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if len(memberIDs) > 0 {
		q = q.Where("owner_id = ? OR id IN ?", userID, memberIDs)
	} else {
		q = q.Where("owner_id = ?", userID)
	}
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) listMemberProjectIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.ProjectMember{}).
		Where("user_id = ?", userID).Pluck("project_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ProjectRepository) AddMembers(ctx context.Context, members []model.ProjectMember) error {
	if len(members) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&members).Error; err != nil {
		return fmt.Errorf("add project members: %w", err)
	}
	return nil
}
