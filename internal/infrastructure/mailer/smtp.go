package mailer

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"

	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	"github.com/pksaconstruction/pksa-api/internal/config"
	"github.com/pksaconstruction/pksa-api/internal/domain"
)

// SMTPNotifier emails each contact form submission to the site owner.
// One delivery attempt per submission, no retry, no queue.
type SMTPNotifier struct {
	client *gomail.Client
	from   string
	to     string
	log    zerolog.Logger
}

func NewSMTPNotifier(cfg config.SMTPConfig, log zerolog.Logger) (*SMTPNotifier, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	return &SMTPNotifier{client: client, from: cfg.From, to: cfg.To, log: log}, nil
}

func (n *SMTPNotifier) NotifyContactMessage(ctx context.Context, msg *domain.ContactMessage) error {
	m := gomail.NewMsg()
	if err := m.From(n.from); err != nil {
		return err
	}
	if err := m.To(n.to); err != nil {
		return err
	}
	if err := m.ReplyTo(msg.Email); err != nil {
		return err
	}
	m.Subject("Contact Form: " + msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, textBody(msg))
	m.AddAlternativeString(gomail.TypeTextHTML, htmlBody(msg))

	if err := n.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send contact notification: %w", err)
	}
	n.log.Info().Str("to", n.to).Str("reply_to", msg.Email).Msg("contact notification sent")
	return nil
}

func textBody(msg *domain.ContactMessage) string {
	var b strings.Builder
	b.WriteString("New Contact Form Submission\n\n")
	fmt.Fprintf(&b, "Name: %s\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	if msg.Phone != nil && *msg.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", *msg.Phone)
	}
	fmt.Fprintf(&b, "Subject: %s\n\n", msg.Subject)
	fmt.Fprintf(&b, "Message:\n%s\n", msg.Message)
	return b.String()
}

func htmlBody(msg *domain.ContactMessage) string {
	esc := template.HTMLEscapeString
	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", esc(msg.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> <a href=\"mailto:%s\">%s</a></p>", esc(msg.Email), esc(msg.Email))
	if msg.Phone != nil && *msg.Phone != "" {
		fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", esc(*msg.Phone))
	}
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>", esc(msg.Subject))
	fmt.Fprintf(&b, "<p><strong>Message:</strong><br>%s</p>", strings.ReplaceAll(esc(msg.Message), "\n", "<br>"))
	return b.String()
}

var _ ports.Notifier = (*SMTPNotifier)(nil)
