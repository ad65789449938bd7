package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockEmailSender struct {
	sent    []EmailMessage
	callErr error
}

func (m *mockEmailSender) Send(_ context.Context, msg EmailMessage) error {
	if m.callErr != nil {
		return m.callErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestApplicationReceivedSendsConfirmation(t *testing.T) {
	sender := &mockEmailSender{}
	svc := NewService(sender, nil)

	err := svc.ApplicationReceived(context.Background(), "thandi@example.com", "Thandi", "app-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To != "thandi@example.com" {
		t.Errorf("expected recipient thandi@example.com, got %q", msg.To)
	}
	if !strings.Contains(msg.Body, "app-123") {
		t.Error("body should quote the application reference")
	}
	if !strings.Contains(msg.Body, "Hello Thandi") {
		t.Error("body should greet the applicant by name")
	}
	if msg.HTML == "" {
		t.Error("expected an HTML body")
	}
}

func TestApplicationReceivedWithoutName(t *testing.T) {
	sender := &mockEmailSender{}
	svc := NewService(sender, nil)

	if err := svc.ApplicationReceived(context.Background(), "x@example.com", "", "app-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sender.sent[0].Body, "Hello,") {
		t.Error("expected a neutral greeting when no name is known")
	}
}

func TestApplicationReceivedNilSenderIsNoop(t *testing.T) {
	svc := NewService(nil, nil)
	if err := svc.ApplicationReceived(context.Background(), "x@example.com", "X", "app-1"); err != nil {
		t.Fatalf("nil sender should not error: %v", err)
	}
}

func TestApplicationReceivedPropagatesSendFailure(t *testing.T) {
	sender := &mockEmailSender{callErr: errors.New("smtp down")}
	svc := NewService(sender, nil)

	err := svc.ApplicationReceived(context.Background(), "x@example.com", "X", "app-1")
	if err == nil {
		t.Fatal("expected error from failing sender")
	}
}
