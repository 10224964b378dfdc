package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"eliterentals/pkg/domain"
)

func createLease(t *testing.T, env *testEnv, propertyID, tenantID string) domain.Lease {
	t.Helper()
	lease, err := env.app.CreateLease(context.Background(), CreateLeaseInput{
		PropertyID: propertyID,
		TenantID:   tenantID,
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Deposit:    9500,
	})
	if err != nil {
		t.Fatalf("create lease: %v", err)
	}
	return lease
}

func TestCreateLeaseOccupiesProperty(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.addUser(t, domain.RoleTenant, "")
	property := env.addProperty(t, domain.PropertyAvailable)

	lease := createLease(t, env, property.ID, tenant.ID)
	if lease.Status != domain.LeaseActive {
		t.Fatalf("lease status = %q, want Active", lease.Status)
	}
	got, _ := env.app.GetProperty(property.ID)
	if got.Status != domain.PropertyOccupied {
		t.Fatalf("property status = %q, want Occupied", got.Status)
	}
}

func TestCreateLeaseOnOccupiedPropertyConflicts(t *testing.T) {
	env := newTestEnv(t)
	t1 := env.addUser(t, domain.RoleTenant, "")
	t2 := env.addUser(t, domain.RoleTenant, "")
	property := env.addProperty(t, domain.PropertyAvailable)

	createLease(t, env, property.ID, t1.ID)
	_, err := env.app.CreateLease(context.Background(), CreateLeaseInput{
		PropertyID: property.ID,
		TenantID:   t2.ID,
		StartDate:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrPropertyOccupied) {
		t.Fatalf("second lease err = %v, want ErrPropertyOccupied", err)
	}
	leases, err := env.app.ListLeases()
	if err != nil {
		t.Fatalf("list leases: %v", err)
	}
	if len(leases) != 1 {
		t.Fatalf("lease count = %d, want 1", len(leases))
	}
	got, _ := env.app.GetProperty(property.ID)
	if got.Status != domain.PropertyOccupied {
		t.Fatalf("property status = %q, want Occupied", got.Status)
	}
}

func TestCreateLeaseUnknownPropertyNotFound(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.addUser(t, domain.RoleTenant, "")
	_, err := env.app.CreateLease(context.Background(), CreateLeaseInput{
		PropertyID: "missing",
		TenantID:   tenant.ID,
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestArchiveRestoreRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.addUser(t, domain.RoleTenant, "")
	property := env.addProperty(t, domain.PropertyAvailable)
	lease := createLease(t, env, property.ID, tenant.ID)

	archived, err := env.app.ArchiveLease(lease.ID)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if !archived.IsArchived || archived.Status != domain.LeaseArchived || archived.ArchivedAt == nil {
		t.Fatalf("archived lease = %+v", archived)
	}
	if p, _ := env.app.GetProperty(property.ID); p.Status != domain.PropertyAvailable {
		t.Fatalf("property after archive = %q, want Available", p.Status)
	}

	restored, err := env.app.RestoreLease(lease.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.IsArchived || restored.Status != domain.LeaseActive || restored.ArchivedAt != nil {
		t.Fatalf("restored lease = %+v", restored)
	}
	if p, _ := env.app.GetProperty(property.ID); p.Status != domain.PropertyOccupied {
		t.Fatalf("property after restore = %q, want Occupied", p.Status)
	}
}

func TestDeleteLeaseRequiresArchive(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.addUser(t, domain.RoleTenant, "")
	property := env.addProperty(t, domain.PropertyAvailable)
	lease := createLease(t, env, property.ID, tenant.ID)

	if err := env.app.DeleteLease(context.Background(), lease.ID); !errors.Is(err, ErrLeaseNotArchived) {
		t.Fatalf("delete active lease err = %v, want ErrLeaseNotArchived", err)
	}
	if _, err := env.app.ArchiveLease(lease.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if err := env.app.DeleteLease(context.Background(), lease.ID); err != nil {
		t.Fatalf("delete archived lease: %v", err)
	}
	if _, err := env.app.GetLease(lease.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("lease should be gone, err = %v", err)
	}
	if p, _ := env.app.GetProperty(property.ID); p.Status != domain.PropertyAvailable {
		t.Fatalf("property after delete = %q, want Available", p.Status)
	}
}

func TestUpdateLeaseScalarFieldsOnly(t *testing.T) {
	env := newTestEnv(t)
	tenant := env.addUser(t, domain.RoleTenant, "")
	property := env.addProperty(t, domain.PropertyAvailable)
	lease := createLease(t, env, property.ID, tenant.ID)

	deposit := 12000.0
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	updated, err := env.app.UpdateLease(lease.ID, UpdateLeaseInput{Deposit: &deposit, EndDate: &end})
	if err != nil {
		t.Fatalf("update lease: %v", err)
	}
	if updated.Deposit != deposit || !updated.EndDate.Equal(end) {
		t.Fatalf("updated lease = %+v", updated)
	}
	if updated.PropertyID != property.ID || updated.TenantID != tenant.ID {
		t.Fatalf("associations changed: %+v", updated)
	}
}
