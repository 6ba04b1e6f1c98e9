package contact

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	"github.com/pksaconstruction/pksa-api/internal/domain"
)

// SubmitResult reports what actually happened to a submission. Persistence
// and notification fail independently; only persistence decides success, the
// email outcome is reported alongside.
type SubmitResult struct {
	Message   *domain.ContactMessage
	EmailSent bool
	EmailErr  error
}

// Submit persists a contact form submission and sends one best-effort
// notification email. Neither step blocks the other.
type Submit struct {
	messages ports.ContactMessageRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewSubmit(messages ports.ContactMessageRepository, notifier ports.Notifier, log zerolog.Logger) *Submit {
	return &Submit{messages: messages, notifier: notifier, log: log}
}

func (s *Submit) Execute(ctx context.Context, input domain.ContactMessageInput) SubmitResult {
	var result SubmitResult

	stored, err := s.messages.Save(ctx, input)
	if err != nil {
		// Keep going: the notification can still reach the site owner.
		s.log.Error().Err(err).Msg("store contact message failed, continuing with email")
	} else {
		result.Message = stored
	}

	msg := stored
	if msg == nil {
		msg = &domain.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Phone:   input.Phone,
			Subject: input.Subject,
			Message: input.Message,
		}
	}
	if err := s.notifier.NotifyContactMessage(ctx, msg); err != nil {
		result.EmailErr = err
		s.log.Error().Err(err).Str("email", input.Email).Msg("contact notification failed")
	} else {
		result.EmailSent = true
	}

	return result
}

// Succeeded reports whether the submission should be reported as successful.
// A submission that was never stored failed, even when the notification went
// out; the email outcome only shows up in EmailSent.
func (r SubmitResult) Succeeded() bool {
	return r.Message != nil
}
