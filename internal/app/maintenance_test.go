package app

import (
	"context"
	"errors"
	"testing"

	"eliterentals/pkg/domain"
	"eliterentals/pkg/notify"
)

func addMaintenance(t *testing.T, env *testEnv, tenantID, propertyID string) domain.Maintenance {
	t.Helper()
	m, err := env.app.CreateMaintenance(domain.Maintenance{
		TenantID:    tenantID,
		PropertyID:  propertyID,
		Description: "Leaking kitchen tap",
		Category:    "Plumbing",
		Urgency:     "High",
	})
	if err != nil {
		t.Fatalf("create maintenance: %v", err)
	}
	return m
}

func TestUpdateMaintenanceStatusNotifiesTenantAndCaretaker(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.addUser(t, domain.RoleTenant, "token-tenant")
	caretaker := env.addUser(t, domain.RoleCaretaker, "token-caretaker")
	property := env.addProperty(t, domain.PropertyAvailable)
	m := addMaintenance(t, env, tenant.ID, property.ID)

	ctx := context.Background()
	if _, err := env.app.AssignCaretaker(ctx, m.ID, caretaker.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	env.push.mu.Lock()
	env.push.sends = nil
	env.push.mu.Unlock()

	updated, err := env.app.UpdateMaintenanceStatus(ctx, m.ID, domain.MaintenanceInProgress)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != domain.MaintenanceInProgress || updated.UpdatedAt == nil {
		t.Fatalf("updated = %+v", updated)
	}

	sends := env.push.Sends()
	if len(sends) != 2 {
		t.Fatalf("push count = %d, want 2 (tenant + caretaker)", len(sends))
	}
	types := map[string]string{}
	for _, s := range sends {
		types[s.Token] = s.Data["type"]
	}
	if types["token-tenant"] != notify.TypeMaintenanceUpdate {
		t.Fatalf("tenant push type = %q", types["token-tenant"])
	}
	if types["token-caretaker"] != notify.TypeTaskUpdate {
		t.Fatalf("caretaker push type = %q", types["token-caretaker"])
	}
}

func TestUpdateMaintenanceStatusAlwaysWrites(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.addUser(t, domain.RoleTenant, "")
	property := env.addProperty(t, domain.PropertyAvailable)
	m := addMaintenance(t, env, tenant.ID, property.ID)

	// Re-applying the current status still bumps updatedAt.
	updated, err := env.app.UpdateMaintenanceStatus(context.Background(), m.ID, m.Status)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.UpdatedAt == nil {
		t.Fatalf("updatedAt not set on same-status write")
	}
}

func TestAssignCaretakerRequiresCaretakerRole(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.addUser(t, domain.RoleTenant, "")
	notCaretaker := env.addUser(t, domain.RoleTenant, "")
	property := env.addProperty(t, domain.PropertyAvailable)
	m := addMaintenance(t, env, tenant.ID, property.ID)

	if _, err := env.app.AssignCaretaker(context.Background(), m.ID, notCaretaker.ID); !errors.Is(err, ErrNotACaretaker) {
		t.Fatalf("err = %v, want ErrNotACaretaker", err)
	}
	if _, err := env.app.AssignCaretaker(context.Background(), m.ID, "missing"); !errors.Is(err, ErrNotACaretaker) {
		t.Fatalf("unknown user err = %v, want ErrNotACaretaker", err)
	}
}

func TestAssignCaretakerNotifiesAssignee(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.addUser(t, domain.RoleTenant, "")
	caretaker := env.addUser(t, domain.RoleCaretaker, "token-c1")
	property := env.addProperty(t, domain.PropertyAvailable)
	m := addMaintenance(t, env, tenant.ID, property.ID)

	assigned, err := env.app.AssignCaretaker(context.Background(), m.ID, caretaker.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.AssignedCaretakerID != caretaker.ID {
		t.Fatalf("assignment = %+v", assigned)
	}
	sends := env.push.Sends()
	if len(sends) != 1 {
		t.Fatalf("push count = %d, want 1", len(sends))
	}
	data := sends[0].Data
	if data["type"] != notify.TypeTaskAssignment || data["maintenanceId"] != m.ID ||
		data["tenantId"] != tenant.ID || data["propertyId"] != property.ID {
		t.Fatalf("push data = %v", data)
	}
}
