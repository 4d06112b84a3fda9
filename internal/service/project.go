package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/projecthub/internal/domain"
)

// ProjectService manages projects owned by accounts.
type ProjectService struct {
	projects domain.ProjectRepository
	accounts domain.AccountRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects domain.ProjectRepository, accounts domain.AccountRepository) *ProjectService {
	return &ProjectService{projects: projects, accounts: accounts}
}

// Create adds a project owned by ownerID. An empty status means Planning.
func (s *ProjectService) Create(ctx context.Context, ownerID int64, name string, status domain.ProjectStatus) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "This field may not be blank."}
	}
	if utf8.RuneCountInString(name) > domain.MaxProjectNameLength {
		return nil, &domain.ValidationError{Field: "name", Reason: "Ensure this field has no more than 128 characters."}
	}
	if status == "" {
		status = domain.ProjectStatusPlanning
	}
	if !status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("%q is not a valid choice.", status)}
	}

	if _, err := s.accounts.GetByID(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	project := &domain.Project{
		Name:      name,
		Status:    status,
		CreatedBy: ownerID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// ListByOwner returns the projects created by ownerID, oldest first.
func (s *ProjectService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	return s.projects.ListByOwner(ctx, ownerID)
}

// UpdateStatus moves a project to another status.
func (s *ProjectService) UpdateStatus(ctx context.Context, id int64, status domain.ProjectStatus) error {
	if !status.Valid() {
		return &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("%q is not a valid choice.", status)}
	}
	if err := s.projects.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	return nil
}
