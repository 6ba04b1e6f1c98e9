package mailer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	"github.com/pksaconstruction/pksa-api/internal/domain"
)

// NoopNotifier logs submissions instead of emailing them. Used when SMTP is
// not configured.
type NoopNotifier struct {
	log zerolog.Logger
}

func NewNoopNotifier(log zerolog.Logger) *NoopNotifier {
	return &NoopNotifier{log: log}
}

func (n *NoopNotifier) NotifyContactMessage(ctx context.Context, msg *domain.ContactMessage) error {
	n.log.Info().
		Str("name", msg.Name).
		Str("email", msg.Email).
		Str("subject", msg.Subject).
		Msg("contact notification (log only; configure SMTP for real email)")
	return nil
}

var _ ports.Notifier = (*NoopNotifier)(nil)
