package ports

import (
	"context"

	"github.com/pksaconstruction/pksa-api/internal/domain"
)

// ContactMessageRepository defines persistence for contact form submissions.
type ContactMessageRepository interface {
	Save(ctx context.Context, input domain.ContactMessageInput) (*domain.ContactMessage, error)
	// List returns all messages ordered newest-first.
	List(ctx context.Context) ([]domain.ContactMessage, error)
	// Delete removes the message and reports whether a row was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// ProjectSubmissionRepository defines persistence for project listings.
type ProjectSubmissionRepository interface {
	Save(ctx context.Context, input domain.ProjectSubmissionInput) (*domain.ProjectSubmission, error)
	// List returns all submissions ordered newest-first.
	List(ctx context.Context) ([]domain.ProjectSubmission, error)
	// GetByID returns nil when no submission has the given id.
	GetByID(ctx context.Context, id string) (*domain.ProjectSubmission, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository defines persistence for the singleton app settings row.
type SettingsRepository interface {
	// Get returns zero-value settings when the row has never been saved.
	Get(ctx context.Context) (*domain.AppSettings, error)
	// Update upserts all fields by the fixed settings key.
	Update(ctx context.Context, settings domain.AppSettings) (*domain.AppSettings, error)
}
