package store

import (
	"context"

	"huangye/pkg/model"
)

// SubmissionStore handles contact-form submission persistence.
type SubmissionStore interface {
	SaveSubmission(ctx context.Context, s *model.Submission) error
	ListSubmissions(ctx context.Context, limit int) ([]*model.Submission, error)
}

// Store composes all sub-interfaces for full store access.
// Consumers should depend on specific sub-interfaces when possible.
type Store interface {
	SubmissionStore

	// Close closes the store connection.
	Close() error
}
