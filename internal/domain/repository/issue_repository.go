package repository

import (
	"context"
	"errors"

	"civicreport/internal/domain/entity"
)

// ErrIssueNotFound is returned when no issue matches the lookup.
var ErrIssueNotFound = errors.New("issue not found")

// IssueRepository defines the standard operations for issue persistence.
type IssueRepository interface {
	// FindByID retrieves a single issue by its store-assigned id.
	FindByID(ctx context.Context, id string) (*entity.Issue, error)

	// FindByTitle retrieves a single issue by its exact title.
	FindByTitle(ctx context.Context, title string) (*entity.Issue, error)

	// FindAll lists every issue, newest first.
	FindAll(ctx context.Context) ([]*entity.Issue, error)

	// Create persists a new issue.
	Create(ctx context.Context, issue *entity.Issue) error

	// SetMediaIDs attaches stored media references to an issue.
	SetMediaIDs(ctx context.Context, issueID string, mediaIDs []string) error

	// Delete removes an issue by id.
	Delete(ctx context.Context, id string) error
}
