package service

import (
	"context"
	"fmt"
	"strings"

	"antigravity-pm/internal/model"
	"antigravity-pm/internal/repository"
)

// ProjectInput represents data required to create a project.
type ProjectInput struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
	Members     []string
}

// ProjectService wraps project-related business logic.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	notifier    *NotifierService
}

func NewProjectService(projectRepo *repository.ProjectRepository, notifier *NotifierService) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, notifier: notifier}
}

// CreateProject stores the project, attaches its member list (the creator is
// added as Manager) and broadcasts a creation notice.
func (s *ProjectService) CreateProject(ctx context.Context, actor *model.User, input ProjectInput) (*model.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	project := model.Project{
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     actor.ID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      "Active",
	}
	if err := s.projectRepo.Create(ctx, &project); err != nil {
		return nil, err
	}

	members := make([]model.ProjectMember, 0, len(input.Members)+1)
	for _, id := range input.Members {
		if id == "" || id == actor.ID {
			continue
		}
		members = append(members, model.ProjectMember{ProjectID: project.ID, UserID: id, Role: "Member"})
	}
	members = append(members, model.ProjectMember{ProjectID: project.ID, UserID: actor.ID, Role: "Manager"})
	if err := s.projectRepo.AddMembers(ctx, members); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(ctx,
		"New Project",
		fmt.Sprintf("%s created a project [%s].", actor.FullName, project.Title),
		"/projects/"+project.ID)

	return &project, nil
}

// ListVisible applies role visibility: admins see everything, team members
// see owned projects plus projects they are a member of.
func (s *ProjectService) ListVisible(ctx context.Context, actor *model.User) ([]model.Project, error) {
	if actor.IsAdmin() {
		return s.projectRepo.ListAll(ctx)
	}
	return s.projectRepo.ListVisibleTo(ctx, actor.ID)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	return s.projectRepo.FindByID(ctx, id)
}

// ListAll is used by the stats endpoint, which aggregates across the whole
// workspace regardless of role.
func (s *ProjectService) ListAll(ctx context.Context) ([]model.Project, error) {
	return s.projectRepo.ListAll(ctx)
}
