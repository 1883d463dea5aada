package mongo

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"civicreport/internal/domain/repository"
)

// classifyStoreError converts driver-level failures into the repository
// error taxonomy: duplicate-key violations become *repository.ConflictError
// carrying the violating field, unreachable-store conditions become
// repository.ErrStoreUnavailable, anything else passes through wrapped.
func classifyStoreError(err error, op string) error {
	if err == nil {
		return nil
	}

	if mongo.IsDuplicateKeyError(err) {
		return &repository.ConflictError{Field: conflictField(err), Err: err}
	}

	if isUnavailable(err) {
		return errors.Wrapf(repository.ErrStoreUnavailable, "%s: %v", op, err)
	}

	return errors.Wrap(err, op)
}

// conflictField inspects a duplicate-key error for the index that was
// violated. Mongo reports it in the message, e.g.
// "E11000 duplicate key error ... index: email_1 dup key: ...".
func conflictField(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "externalId"):
		return repository.ConflictFieldExternalID
	case strings.Contains(msg, "email"):
		return repository.ConflictFieldEmail
	default:
		return ""
	}
}

// isUnavailable reports whether err indicates the store cannot be reached,
// as opposed to a request-level failure.
func isUnavailable(err error) bool {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	// Server selection failures print this prefix and have no exported type.
	return strings.Contains(err.Error(), "server selection error")
}
