package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"lawfirm/internal/config"
	"lawfirm/internal/domain"
	"lawfirm/pkg/logger"
)

const submittedLayout = "January 2, 2006 at 3:04 PM MST"

// EmailService sends contact message notifications over SMTP.
type EmailService struct {
	cfg config.EmailConfig
	log zerolog.Logger
}

// NewEmailService creates a new email service
func NewEmailService(cfg config.EmailConfig, log zerolog.Logger) *EmailService {
	return &EmailService{cfg: cfg, log: logger.Component(log, "email")}
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// NotifyContactMessage emails the firm about a new contact message. With
// email disabled the message is only logged.
func (s *EmailService) NotifyContactMessage(ctx context.Context, m *domain.ContactMessage) error {
	if !s.cfg.Enabled {
		s.log.Info().
			Uint("contact_message_id", m.ID).
			Str("from", m.Email).
			Msg("email disabled, notification not sent")
		return nil
	}

	msg, err := s.contactMessageMail(m)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *EmailService) contactMessageMail(m *domain.ContactMessage) (*mail.Msg, error) {
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.FromEmail); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(s.cfg.NotifyTo); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if err := msg.ReplyTo(m.Email); err != nil {
		s.log.Debug().Err(err).Str("email", m.Email).Msg("reply-to not set")
	}
	msg.Subject(fmt.Sprintf("New contact message from %s", m.FullName))
	msg.SetBodyString(mail.TypeTextHTML, contactMessageHTML(m))
	msg.AddAlternativeString(mail.TypeTextPlain, contactMessageText(m))
	return msg, nil
}

func (s *EmailService) send(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(s.cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(s.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return "Not provided"
	}
	return *s
}

func contactMessageText(m *domain.ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New contact message\n\n")
	fmt.Fprintf(&b, "Name: %s\n", m.FullName)
	fmt.Fprintf(&b, "Email: %s\n", m.Email)
	fmt.Fprintf(&b, "Phone: %s\n", optional(m.Phone))
	fmt.Fprintf(&b, "Preferred contact method: %s\n", optional(m.PreferredContactMethod))
	fmt.Fprintf(&b, "Submitted: %s\n\n", m.CreatedAt.UTC().Format(submittedLayout))
	fmt.Fprintf(&b, "Message:\n%s\n\n", m.Message)
	fmt.Fprintf(&b, "Contact message ID: #%d\n", m.ID)
	return b.String()
}

func contactMessageHTML(m *domain.ContactMessage) string {
	esc := html.EscapeString
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>New contact message</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #1F2A44;">New contact message</h2>
        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Name:</strong> %s</p>
            <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
            <p><strong>Phone:</strong> %s</p>
            <p><strong>Preferred contact method:</strong> %s</p>
            <p><strong>Submitted:</strong> %s</p>
        </div>
        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #1F2A44; margin: 20px 0;">
            <h3 style="margin-top: 0;">Message</h3>
            <p style="white-space: pre-wrap;">%s</p>
        </div>
        <p style="color: #64748B; font-size: 14px;">Contact message ID: #%d</p>
    </div>
</body>
</html>`,
		esc(m.FullName), esc(m.Email), esc(m.Email),
		esc(optional(m.Phone)), esc(optional(m.PreferredContactMethod)),
		m.CreatedAt.UTC().Format(submittedLayout), esc(m.Message), m.ID)
}
