// Package notify holds the outbound notification contracts: push messages to
// a device token and templated HTML email. Both are best-effort from the
// caller's point of view; TryPush/TryEmail log and discard failures so that a
// notification problem never fails the workflow that triggered it.
package notify

import (
	"context"
	"log/slog"
	"strings"
)

// Push payload "type" values, shared between workflows and reminder jobs.
const (
	TypeMessage             = "message"
	TypeAnnouncement        = "announcement"
	TypePaymentStatusUpdate = "payment_status_update"
	TypeMaintenanceUpdate   = "maintenance_update"
	TypeTaskUpdate          = "task_update"
	TypeTaskAssignment      = "task_assignment"
	TypeLeaseExpiry         = "lease_expiry"
	TypePaymentOverdue      = "payment_overdue"
	TypePaymentEscalation   = "payment_escalation"
	TypeRentDue             = "rent_due"
)

// PushSender delivers a push notification to a device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// EmailSender delivers an HTML email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// TryPush sends a push notification and swallows any failure. Empty tokens
// and nil senders are silently skipped.
func TryPush(ctx context.Context, sender PushSender, token, title, body string, data map[string]string) {
	if sender == nil || strings.TrimSpace(token) == "" {
		return
	}
	if err := sender.Send(ctx, token, title, body, data); err != nil {
		slog.Warn("push notification failed", "title", title, "err", err)
	}
}

// TryEmail sends an email and swallows any failure. Empty addresses and nil
// senders are silently skipped.
func TryEmail(ctx context.Context, sender EmailSender, to, subject, htmlBody string) {
	if sender == nil || strings.TrimSpace(to) == "" {
		return
	}
	if err := sender.Send(ctx, to, subject, htmlBody); err != nil {
		slog.Warn("email send failed", "subject", subject, "err", err)
	}
}
