package domain

import (
	"context"
	"time"
)

// ProjectStatus is the lifecycle stage of a project. Values are stored as
// their numeric code.
type ProjectStatus string

const (
	ProjectStatusPlanning    ProjectStatus = "1"
	ProjectStatusAccepted    ProjectStatus = "2"
	ProjectStatusInExecution ProjectStatus = "3"
	ProjectStatusFinished    ProjectStatus = "4"
	ProjectStatusArchived    ProjectStatus = "5"
)

var projectStatusLabels = map[ProjectStatus]string{
	ProjectStatusPlanning:    "Planning",
	ProjectStatusAccepted:    "Accepted",
	ProjectStatusInExecution: "In Execution",
	ProjectStatusFinished:    "Finished",
	ProjectStatusArchived:    "Archived",
}

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	_, ok := projectStatusLabels[s]
	return ok
}

// Label returns the human-readable name of the status.
func (s ProjectStatus) Label() string {
	return projectStatusLabels[s]
}

const MaxProjectNameLength = 128

// Project is a unit of tracked work owned by the account that created it.
type Project struct {
	ID        int64
	Name      string
	Status    ProjectStatus
	CreatedBy int64
	CreatedAt time.Time
}

func (p *Project) String() string { return p.Name }

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id int64) (*Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Project, error)
	UpdateStatus(ctx context.Context, id int64, status ProjectStatus) error
}
