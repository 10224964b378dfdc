package store

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"

	"eliterentals/pkg/domain"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	s, err := NewGormStoreWithDialector(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	return s
}

func seedProperty(t *testing.T, s *GormStore, id string, status domain.PropertyStatus) {
	t.Helper()
	err := s.CreateProperty(domain.Property{
		ID:         id,
		ManagerID:  "manager-1",
		Title:      "Unit " + id,
		RentAmount: 1200,
		Status:     status,
	})
	if err != nil {
		t.Fatalf("seed property: %v", err)
	}
}

func TestCreateLeaseOccupiesProperty(t *testing.T) {
	s := newSQLiteStore(t)
	seedProperty(t, s, "prop-1", domain.PropertyAvailable)

	lease := domain.Lease{
		ID:         "lease-1",
		PropertyID: "prop-1",
		TenantID:   "tenant-1",
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:     domain.LeaseActive,
	}
	if err := s.CreateLease(lease); err != nil {
		t.Fatalf("CreateLease: %v", err)
	}

	prop, ok, err := s.GetProperty("prop-1")
	if err != nil || !ok {
		t.Fatalf("GetProperty: ok=%v err=%v", ok, err)
	}
	if prop.Status != domain.PropertyOccupied {
		t.Errorf("property status = %q, want Occupied", prop.Status)
	}
}

func TestCreateLeaseGuardsOccupiedProperty(t *testing.T) {
	s := newSQLiteStore(t)
	seedProperty(t, s, "prop-1", domain.PropertyOccupied)

	err := s.CreateLease(domain.Lease{ID: "lease-1", PropertyID: "prop-1", TenantID: "tenant-1"})
	if err != ErrPropertyUnavailable {
		t.Fatalf("CreateLease = %v, want ErrPropertyUnavailable", err)
	}
	leases, err := s.ListLeases()
	if err != nil {
		t.Fatalf("ListLeases: %v", err)
	}
	if len(leases) != 0 {
		t.Errorf("got %d leases, want 0 after failed create", len(leases))
	}
}

func TestCreateLeaseMissingProperty(t *testing.T) {
	s := newSQLiteStore(t)
	err := s.CreateLease(domain.Lease{ID: "lease-1", PropertyID: "absent", TenantID: "tenant-1"})
	if err != ErrPropertyUnavailable {
		t.Fatalf("CreateLease = %v, want ErrPropertyUnavailable", err)
	}
}

func TestArchivedLeasesListedSeparately(t *testing.T) {
	s := newSQLiteStore(t)
	seedProperty(t, s, "prop-1", domain.PropertyAvailable)
	seedProperty(t, s, "prop-2", domain.PropertyAvailable)
	if err := s.CreateLease(domain.Lease{ID: "lease-active", PropertyID: "prop-1", TenantID: "t1"}); err != nil {
		t.Fatalf("CreateLease: %v", err)
	}
	if err := s.CreateLease(domain.Lease{ID: "lease-old", PropertyID: "prop-2", TenantID: "t2"}); err != nil {
		t.Fatalf("CreateLease: %v", err)
	}
	archivedAt := time.Now().UTC()
	old, _, err := s.GetLease("lease-old")
	if err != nil {
		t.Fatalf("GetLease: %v", err)
	}
	old.IsArchived = true
	old.Status = domain.LeaseArchived
	old.ArchivedAt = &archivedAt
	if err := s.UpdateLease(old); err != nil {
		t.Fatalf("UpdateLease: %v", err)
	}

	active, err := s.ListLeases()
	if err != nil {
		t.Fatalf("ListLeases: %v", err)
	}
	if len(active) != 1 || active[0].ID != "lease-active" {
		t.Errorf("active leases = %v", active)
	}
	archived, err := s.ListArchivedLeases()
	if err != nil {
		t.Fatalf("ListArchivedLeases: %v", err)
	}
	if len(archived) != 1 || archived[0].ID != "lease-old" {
		t.Errorf("archived leases = %v", archived)
	}
}

func TestUserEmailLookup(t *testing.T) {
	s := newSQLiteStore(t)
	err := s.CreateUser(domain.User{
		ID:    "user-1",
		Email: "jane@example.com",
		Role:  domain.RoleTenant,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, ok, err := s.GetUserByEmail("jane@example.com")
	if err != nil || !ok {
		t.Fatalf("GetUserByEmail: ok=%v err=%v", ok, err)
	}
	if got.ID != "user-1" {
		t.Errorf("ID = %q, want user-1", got.ID)
	}

	has, err := s.HasUserEmail("jane@example.com")
	if err != nil || !has {
		t.Errorf("HasUserEmail = %v, %v, want true", has, err)
	}
	has, err = s.HasUserEmail("nobody@example.com")
	if err != nil || has {
		t.Errorf("HasUserEmail(absent) = %v, %v, want false", has, err)
	}
}

func TestListUsersByRoles(t *testing.T) {
	s := newSQLiteStore(t)
	for _, u := range []domain.User{
		{ID: "u1", Email: "a@example.com", Role: domain.RoleAdmin},
		{ID: "u2", Email: "b@example.com", Role: domain.RolePropertyManager},
		{ID: "u3", Email: "c@example.com", Role: domain.RoleTenant},
	} {
		if err := s.CreateUser(u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}
	staff, err := s.ListUsersByRoles(domain.StaffRoles...)
	if err != nil {
		t.Fatalf("ListUsersByRoles: %v", err)
	}
	if len(staff) != 2 {
		t.Errorf("got %d staff users, want 2", len(staff))
	}
	for _, u := range staff {
		if u.Role == domain.RoleTenant {
			t.Errorf("tenant %s listed as staff", u.ID)
		}
	}
}

func TestListUnpaidPaymentsBefore(t *testing.T) {
	s := newSQLiteStore(t)
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	for _, p := range []domain.Payment{
		{ID: "pay-old-pending", TenantID: "t1", Date: now.AddDate(0, 0, -20), Status: domain.PaymentPending},
		{ID: "pay-old-paid", TenantID: "t1", Date: now.AddDate(0, 0, -20), Status: domain.PaymentPaid},
		{ID: "pay-recent", TenantID: "t1", Date: now.AddDate(0, 0, -3), Status: domain.PaymentPending},
	} {
		if err := s.CreatePayment(p); err != nil {
			t.Fatalf("CreatePayment: %v", err)
		}
	}
	overdue, err := s.ListUnpaidPaymentsBefore(now.AddDate(0, 0, -14))
	if err != nil {
		t.Fatalf("ListUnpaidPaymentsBefore: %v", err)
	}
	if len(overdue) != 1 || overdue[0].ID != "pay-old-pending" {
		t.Errorf("overdue = %v, want only pay-old-pending", overdue)
	}
}

func TestBroadcastsScopedByRole(t *testing.T) {
	s := newSQLiteStore(t)
	msgs := []domain.Message{
		{ID: "m-all", SenderID: "mgr", Text: "water outage", IsBroadcast: true},
		{ID: "m-tenants", SenderID: "mgr", Text: "rent day", IsBroadcast: true, TargetRole: domain.RoleTenant},
		{ID: "m-direct", SenderID: "mgr", ReceiverID: "t1", Text: "hello"},
	}
	for _, m := range msgs {
		if err := s.CreateMessage(m); err != nil {
			t.Fatalf("CreateMessage: %v", err)
		}
	}
	tenantView, err := s.ListBroadcasts(domain.RoleTenant)
	if err != nil {
		t.Fatalf("ListBroadcasts: %v", err)
	}
	if len(tenantView) != 2 {
		t.Errorf("tenant sees %d broadcasts, want 2", len(tenantView))
	}
	caretakerView, err := s.ListBroadcasts(domain.RoleCaretaker)
	if err != nil {
		t.Fatalf("ListBroadcasts: %v", err)
	}
	if len(caretakerView) != 1 || caretakerView[0].ID != "m-all" {
		t.Errorf("caretaker view = %v, want only m-all", caretakerView)
	}
}

func TestNotificationReadFlag(t *testing.T) {
	s := newSQLiteStore(t)
	n := domain.Notification{
		ID:     "n1",
		UserID: "user-1",
		Text:   "Your payment was received",
		Data:   map[string]string{"type": "payment_status_update"},
	}
	if err := s.CreateNotification(n); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if err := s.MarkNotificationRead("n1"); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}
	list, err := s.ListNotificationsByUser("user-1")
	if err != nil {
		t.Fatalf("ListNotificationsByUser: %v", err)
	}
	if len(list) != 1 || !list[0].IsRead {
		t.Errorf("notifications = %v, want single read notification", list)
	}
	if list[0].Data["type"] != "payment_status_update" {
		t.Errorf("data round trip lost type: %v", list[0].Data)
	}
}
