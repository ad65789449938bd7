package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/dialastudent/stocktaker-intake/pkg/logging"
)

// Service composes and sends applicant notifications.
type Service struct {
	email  EmailSender
	logger *logging.Logger
}

// NewService creates a notification service. A nil sender yields a
// service that silently skips delivery, so callers never branch.
func NewService(email EmailSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, logger: logger}
}

// ApplicationReceived confirms receipt of an application, quoting the
// reference id the applicant needs when phoning in about their booking.
func (s *Service) ApplicationReceived(ctx context.Context, email, name, applicationID string) error {
	if s.email == nil {
		s.logger.Debug("email sender not configured, skipping confirmation")
		return nil
	}

	greeting := "Hello"
	if name != "" {
		greeting = "Hello " + name
	}

	subject := "We received your stocktaker application"
	body := fmt.Sprintf(`%s,

Thank you for applying to Dial a Stocktaker. Your application has been
received and is being reviewed.

Application reference: %s

If you booked an interview slot, please arrive 10 minutes early and
bring your ID document. Quote your application reference in any
correspondence.

Dial a Stocktaker Recruitment`, greeting, applicationID)

	htmlBody := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2>Application received</h2>
<p>%s,</p>
<p>Thank you for applying to Dial a Stocktaker. Your application has been received and is being reviewed.</p>
<p><strong>Application reference:</strong> %s</p>
<p>If you booked an interview slot, please arrive 10 minutes early and bring your ID document.</p>
<p style="color: #6b7280; font-size: 12px;">Dial a Stocktaker Recruitment</p>
</div>`, html.EscapeString(greeting), html.EscapeString(applicationID))

	msg := EmailMessage{
		To:      email,
		ToName:  name,
		Subject: subject,
		Body:    body,
		HTML:    htmlBody,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: application confirmation: %w", err)
	}
	s.logger.Info("application confirmation sent", "to", email, "application_id", applicationID)
	return nil
}
