package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"eliterentals/internal/util"
	"eliterentals/pkg/domain"
	"eliterentals/pkg/store"
)

type sentPush struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// fakePush records pushes so tests can assert on exact dispatch counts.
type fakePush struct {
	mu    sync.Mutex
	sends []sentPush
}

func (f *fakePush) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, sentPush{Token: token, Title: title, Body: body, Data: data})
	return nil
}

func (f *fakePush) Sends() []sentPush {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentPush, len(f.sends))
	copy(out, f.sends)
	return out
}

type sentEmail struct {
	To      string
	Subject string
}

type fakeEmail struct {
	mu    sync.Mutex
	sends []sentEmail
}

func (f *fakeEmail) Send(ctx context.Context, to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, sentEmail{To: to, Subject: subject})
	return nil
}

func (f *fakeEmail) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

type testEnv struct {
	app   *App
	store *store.MemoryStore
	push  *fakePush
	email *fakeEmail
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	memStore := store.NewMemoryStore()
	push := &fakePush{}
	email := &fakeEmail{}
	a, err := New(Config{Store: memStore, Push: push, Email: email})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return &testEnv{app: a, store: memStore, push: push, email: email}
}

func (e *testEnv) addUser(t *testing.T, role domain.UserRole, fcmToken string) domain.User {
	t.Helper()
	user := domain.User{
		ID:        util.NewID(),
		FirstName: "Test",
		LastName:  string(role),
		Email:     util.NewID() + "@example.com",
		Role:      role,
		IsActive:  true,
		FCMToken:  fcmToken,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.store.CreateUser(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) addProperty(t *testing.T, status domain.PropertyStatus) domain.Property {
	t.Helper()
	p := domain.Property{
		ID:          util.NewID(),
		ManagerID:   util.NewID(),
		Title:       "2 Bed Apartment",
		RentAmount:  9500,
		Status:      status,
		ListingDate: time.Now().UTC(),
	}
	if err := e.store.CreateProperty(p); err != nil {
		t.Fatalf("create property: %v", err)
	}
	return p
}
