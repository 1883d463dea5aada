package repository

import (
	"context"

	"civicreport/internal/domain/entity"
)

// MediaRepository defines the standard operations for attachment metadata persistence.
type MediaRepository interface {
	// Create persists a new media record.
	Create(ctx context.Context, media *entity.Media) error

	// FindByIssueID lists the attachments of an issue in creation order.
	FindByIssueID(ctx context.Context, issueID string) ([]*entity.Media, error)

	// FindByIDs resolves a set of media ids.
	FindByIDs(ctx context.Context, ids []string) ([]*entity.Media, error)
}
