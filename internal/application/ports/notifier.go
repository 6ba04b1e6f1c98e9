package ports

import (
	"context"

	"github.com/pksaconstruction/pksa-api/internal/domain"
)

// Notifier delivers the notification email for a contact form submission.
// Implementations make at most one delivery attempt and must not panic past
// their boundary; the returned error is informational for the caller.
type Notifier interface {
	NotifyContactMessage(ctx context.Context, msg *domain.ContactMessage) error
}
