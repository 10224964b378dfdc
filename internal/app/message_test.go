package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"eliterentals/pkg/domain"
)

func TestSendDirectMessageValidatesParticipants(t *testing.T) {
	env := newTestEnv(t)
	sender := env.addUser(t, domain.RoleTenant, "")

	if _, err := env.app.SendDirectMessage(context.Background(), sender.ID, "missing", "hello"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown receiver err = %v, want ErrNotFound", err)
	}
	// The lookup failure must happen before the insert: no message row exists.
	if msgs, _ := env.app.ListSent(sender.ID); len(msgs) != 0 {
		t.Fatalf("message persisted despite unknown receiver: %d rows", len(msgs))
	}

	if _, err := env.app.SendDirectMessage(context.Background(), sender.ID, sender.ID, "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank text err = %v, want ErrValidation", err)
	}
}

func TestSendDirectMessagePushesPreview(t *testing.T) {
	env := newTestEnv(t)
	sender := env.addUser(t, domain.RoleTenant, "")
	receiver := env.addUser(t, domain.RoleCaretaker, "token-r1")

	longText := strings.Repeat("a", 80)
	msg, err := env.app.SendDirectMessage(context.Background(), sender.ID, receiver.ID, longText)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
	sends := env.push.Sends()
	if len(sends) != 1 {
		t.Fatalf("push count = %d, want 1", len(sends))
	}
	want := strings.Repeat("a", 60) + "…"
	if sends[0].Body != want {
		t.Fatalf("preview = %q, want %q", sends[0].Body, want)
	}
}

func TestBroadcastTargetsRoleWithTokens(t *testing.T) {
	env := newTestEnv(t)
	admin := env.addUser(t, domain.RoleAdmin, "token-admin")
	tenantWithToken := env.addUser(t, domain.RoleTenant, "token-tenant")
	tenantNoToken := env.addUser(t, domain.RoleTenant, "")

	msg, err := env.app.SendBroadcast(context.Background(), admin.ID, "Water outage tomorrow", domain.RoleTenant)
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if !msg.IsBroadcast || msg.ReceiverID != "" {
		t.Fatalf("broadcast message = %+v", msg)
	}

	sends := env.push.Sends()
	if len(sends) != 1 {
		t.Fatalf("push count = %d, want 1 (only the tenant with a token)", len(sends))
	}
	if sends[0].Token != tenantWithToken.FCMToken {
		t.Fatalf("pushed token = %q", sends[0].Token)
	}

	// The tokenless tenant still sees the stored broadcast.
	anns, err := env.app.GetAnnouncements(tenantNoToken.ID)
	if err != nil {
		t.Fatalf("announcements: %v", err)
	}
	if len(anns) != 1 || anns[0].ID != msg.ID {
		t.Fatalf("announcements = %+v", anns)
	}

	// A caretaker is outside the target role and sees nothing.
	caretaker := env.addUser(t, domain.RoleCaretaker, "")
	if anns, _ := env.app.GetAnnouncements(caretaker.ID); len(anns) != 0 {
		t.Fatalf("caretaker should not see tenant-scoped broadcast, got %d", len(anns))
	}
}

func TestArchiveRestoreMessage(t *testing.T) {
	env := newTestEnv(t)
	sender := env.addUser(t, domain.RoleTenant, "")
	receiver := env.addUser(t, domain.RoleTenant, "")

	msg, err := env.app.SendDirectMessage(context.Background(), sender.ID, receiver.ID, "hi")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	archived, err := env.app.ArchiveMessage(msg.ID)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if !archived.IsArchived || archived.ArchivedAt == nil {
		t.Fatalf("archived = %+v", archived)
	}
	restored, err := env.app.RestoreMessage(msg.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.IsArchived || restored.ArchivedAt != nil {
		t.Fatalf("restored = %+v", restored)
	}
}
