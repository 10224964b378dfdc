package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"eliterentals/internal/util"
	"eliterentals/pkg/domain"
	"eliterentals/pkg/store"
)

type sentPush struct {
	Token string
	Title string
	Data  map[string]string
}

type fakePush struct {
	mu    sync.Mutex
	sends []sentPush
}

func (f *fakePush) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, sentPush{Token: token, Title: title, Data: data})
	return nil
}

func (f *fakePush) Sends() []sentPush {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentPush, len(f.sends))
	copy(out, f.sends)
	return out
}

func (f *fakePush) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = nil
}

type fakeEmail struct {
	mu    sync.Mutex
	count int
}

func (f *fakeEmail) Send(ctx context.Context, to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	return nil
}

func (f *fakeEmail) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

func addUser(t *testing.T, s *store.MemoryStore, role domain.UserRole, token string) domain.User {
	t.Helper()
	user := domain.User{
		ID:        util.NewID(),
		FirstName: "Job",
		Email:     util.NewID() + "@example.com",
		Role:      role,
		IsActive:  true,
		FCMToken:  token,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateUser(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func addLeaseEnding(t *testing.T, s *store.MemoryStore, tenantID string, end time.Time) domain.Lease {
	t.Helper()
	property := domain.Property{
		ID:        util.NewID(),
		ManagerID: util.NewID(),
		Title:     "Unit",
		Status:    domain.PropertyAvailable,
	}
	if err := s.CreateProperty(property); err != nil {
		t.Fatalf("create property: %v", err)
	}
	lease := domain.Lease{
		ID:         util.NewID(),
		PropertyID: property.ID,
		TenantID:   tenantID,
		StartDate:  end.AddDate(-1, 0, 0),
		EndDate:    end,
		Status:     domain.LeaseActive,
	}
	if err := s.CreateLease(lease); err != nil {
		t.Fatalf("create lease: %v", err)
	}
	return lease
}

func TestLeaseExpiryFiresOnExactBoundaries(t *testing.T) {
	memStore := store.NewMemoryStore()
	push := &fakePush{}
	email := &fakeEmail{}
	tenant := addUser(t, memStore, domain.RoleTenant, "token-1")
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	lease := addLeaseEnding(t, memStore, tenant.ID, now.AddDate(0, 0, 14))

	job := &LeaseExpiryJob{Store: memStore, Push: push, Email: email}

	// Day before the 14-day boundary: nothing.
	if err := job.RunOnce(context.Background(), now.AddDate(0, 0, -1)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(push.Sends()) != 0 {
		t.Fatalf("push fired at 15 days remaining")
	}

	// Exactly 14 days remaining: one push + one email.
	if err := job.RunOnce(context.Background(), now); err != nil {
		t.Fatalf("run: %v", err)
	}
	sends := push.Sends()
	if len(sends) != 1 {
		t.Fatalf("push count = %d, want 1", len(sends))
	}
	if sends[0].Data["leaseId"] != lease.ID {
		t.Fatalf("push data = %v", sends[0].Data)
	}
	if email.Count() != 1 {
		t.Fatalf("email count = %d, want 1", email.Count())
	}

	// Day after the boundary (13 days remaining): nothing new.
	push.Reset()
	if err := job.RunOnce(context.Background(), now.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(push.Sends()) != 0 {
		t.Fatalf("push fired at 13 days remaining")
	}
}

func TestLeaseExpirySkipsTokenlessTenants(t *testing.T) {
	memStore := store.NewMemoryStore()
	push := &fakePush{}
	tenant := addUser(t, memStore, domain.RoleTenant, "")
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	addLeaseEnding(t, memStore, tenant.ID, now.AddDate(0, 0, 7))

	job := &LeaseExpiryJob{Store: memStore, Push: push}
	if err := job.RunOnce(context.Background(), now); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(push.Sends()) != 0 {
		t.Fatalf("pushed to tenant without token")
	}
}

func TestOverduePaymentEscalation(t *testing.T) {
	memStore := store.NewMemoryStore()
	push := &fakePush{}
	email := &fakeEmail{}
	tenant := addUser(t, memStore, domain.RoleTenant, "token-tenant")
	manager := addUser(t, memStore, domain.RolePropertyManager, "token-manager")
	addUser(t, memStore, domain.RoleAdmin, "") // tokenless admin gets nothing
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	overdue := domain.Payment{
		ID:       util.NewID(),
		TenantID: tenant.ID,
		Amount:   9500,
		Date:     now.AddDate(0, 0, -15),
		Status:   domain.PaymentPending,
	}
	paidOld := domain.Payment{
		ID:       util.NewID(),
		TenantID: tenant.ID,
		Amount:   9500,
		Date:     now.AddDate(0, 0, -30),
		Status:   domain.PaymentPaid,
	}
	exactlyFourteen := domain.Payment{
		ID:       util.NewID(),
		TenantID: tenant.ID,
		Amount:   9500,
		Date:     now.AddDate(0, 0, -14),
		Status:   domain.PaymentPending,
	}
	for _, p := range []domain.Payment{overdue, paidOld, exactlyFourteen} {
		if err := memStore.CreatePayment(p); err != nil {
			t.Fatalf("create payment: %v", err)
		}
	}

	job := &OverduePaymentJob{Store: memStore, Push: push, Email: email}
	if err := job.RunOnce(context.Background(), now); err != nil {
		t.Fatalf("run: %v", err)
	}

	sends := push.Sends()
	if len(sends) != 2 {
		t.Fatalf("push count = %d, want 2 (tenant + manager)", len(sends))
	}
	byToken := map[string]sentPush{}
	for _, s := range sends {
		byToken[s.Token] = s
	}
	if byToken["token-tenant"].Data["paymentId"] != overdue.ID {
		t.Fatalf("tenant push = %+v", byToken["token-tenant"])
	}
	if byToken["token-manager"].Data["tenantId"] != tenant.ID {
		t.Fatalf("manager push = %+v", byToken["token-manager"])
	}
	_ = manager
}

func TestRentReminderTriggerDay(t *testing.T) {
	memStore := store.NewMemoryStore()
	push := &fakePush{}
	addUser(t, memStore, domain.RoleTenant, "token-1")
	addUser(t, memStore, domain.RoleTenant, "") // no token, no push
	job := &RentReminderJob{Store: memStore, Push: push}

	// April has 30 days: trigger day is the 27th.
	for day := 26; day <= 28; day++ {
		push.Reset()
		now := time.Date(2025, 4, day, 8, 0, 0, 0, time.UTC)
		if err := job.RunOnce(context.Background(), now); err != nil {
			t.Fatalf("run day %d: %v", day, err)
		}
		want := 0
		if day == 27 {
			want = 1
		}
		if got := len(push.Sends()); got != want {
			t.Fatalf("april %d: push count = %d, want %d", day, got, want)
		}
	}

	// May has 31 days: trigger day is the 28th.
	push.Reset()
	if err := job.RunOnce(context.Background(), time.Date(2025, 5, 28, 8, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(push.Sends()) != 1 {
		t.Fatalf("may 28: push count = %d, want 1", len(push.Sends()))
	}
}

func TestRedisLockerSingleFlight(t *testing.T) {
	mr := miniredis.RunT(t)
	locker := NewRedisLocker(mr.Addr(), "")
	ctx := context.Background()

	ok, release, err := locker.TryLock(ctx, "lease-expiry", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first lock: ok=%v err=%v", ok, err)
	}
	ok2, _, err := locker.TryLock(ctx, "lease-expiry", time.Minute)
	if err != nil {
		t.Fatalf("second lock: %v", err)
	}
	if ok2 {
		t.Fatalf("second lock acquired while first held")
	}
	release()
	ok3, release3, err := locker.TryLock(ctx, "lease-expiry", time.Minute)
	if err != nil || !ok3 {
		t.Fatalf("lock after release: ok=%v err=%v", ok3, err)
	}
	release3()
}
