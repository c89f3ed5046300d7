package repository

import (
	"context"
	"time"

	"github.com/wattshed/timesheet/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type ProjectRepo interface {
	CreateProject(ctx context.Context, p *models.Project) (int64, error)
	GetProjectByID(ctx context.Context, id int64) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	SoftDeleteProject(ctx context.Context, id int64) error
	// NextPrefix returns the next free auto-range prefix for a division.
	NextPrefix(ctx context.Context, division string) (int64, error)
	PrefixExists(ctx context.Context, prefix int64) (bool, error)
}

// EntryFilter narrows ListEntries. Nil fields are not applied. Start and End
// are compared against the stored start time only.
type EntryFilter struct {
	ProjectID *int64
	UserID    *int64
	Start     *time.Time
	End       *time.Time
}

type EntryRepo interface {
	CreateEntry(ctx context.Context, e *models.TimeEntry) (int64, error)
	GetEntryByID(ctx context.Context, id int64) (*models.TimeEntry, error)
	ListEntries(ctx context.Context, f EntryFilter) ([]models.TimeEntry, error)
	// ListEntriesForExport returns entries ascending by start time.
	ListEntriesForExport(ctx context.Context, projectID *int64) ([]models.TimeEntry, error)
	UpdateEntry(ctx context.Context, e *models.TimeEntry) error
	DeleteEntry(ctx context.Context, id int64) error
}
