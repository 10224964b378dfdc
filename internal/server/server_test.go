package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"eliterentals/internal/app"
	"eliterentals/internal/ratelimit"
	"eliterentals/internal/util"
	"eliterentals/pkg/auth"
	"eliterentals/pkg/domain"
	"eliterentals/pkg/store"
)

type serverEnv struct {
	ts     *httptest.Server
	store  *store.MemoryStore
	tokens *auth.TokenService
}

func newServerEnv(t *testing.T, limiter *ratelimit.FixedWindowLimiter) *serverEnv {
	t.Helper()
	memStore := store.NewMemoryStore()
	application, err := app.New(app.Config{Store: memStore})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	tokens, err := auth.NewTokenService(auth.TokenServiceConfig{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	srv, err := New(Config{App: application, Tokens: tokens, AuthLimiter: limiter})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return &serverEnv{ts: ts, store: memStore, tokens: tokens}
}

func (e *serverEnv) addUser(t *testing.T, role domain.UserRole) (domain.User, string) {
	t.Helper()
	user := domain.User{
		ID:        util.NewID(),
		FirstName: "Test",
		Email:     util.NewID() + "@example.com",
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.store.CreateUser(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := e.tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return user, token
}

func (e *serverEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	env := newServerEnv(t, nil)
	resp, err := http.Get(env.ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestLeaseEndpointsRequireAuth(t *testing.T) {
	env := newServerEnv(t, nil)
	resp := env.request(t, http.MethodGet, "/api/lease", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLeaseCreateRequiresStaffRole(t *testing.T) {
	env := newServerEnv(t, nil)
	_, tenantToken := env.addUser(t, domain.RoleTenant)
	resp := env.request(t, http.MethodPost, "/api/lease", tenantToken, map[string]any{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestLeaseLifecycleOverHTTP(t *testing.T) {
	env := newServerEnv(t, nil)
	_, adminToken := env.addUser(t, domain.RoleAdmin)
	tenant1, _ := env.addUser(t, domain.RoleTenant)
	tenant2, _ := env.addUser(t, domain.RoleTenant)

	resp := env.request(t, http.MethodPost, "/api/property", adminToken, map[string]any{
		"title":      "Unit P1",
		"rentAmount": 9500,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create property status = %d", resp.StatusCode)
	}
	property := decodeBody[domain.Property](t, resp)

	leaseBody := map[string]any{
		"propertyId": property.ID,
		"tenantId":   tenant1.ID,
		"startDate":  "2025-01-01T00:00:00Z",
		"endDate":    "2025-01-31T00:00:00Z",
		"deposit":    9500,
	}
	resp = env.request(t, http.MethodPost, "/api/lease", adminToken, leaseBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create lease status = %d", resp.StatusCode)
	}
	lease := decodeBody[domain.Lease](t, resp)

	// Property is now occupied.
	resp = env.request(t, http.MethodGet, "/api/property/"+property.ID, "", nil)
	got := decodeBody[domain.Property](t, resp)
	if got.Status != domain.PropertyOccupied {
		t.Fatalf("property status = %q, want Occupied", got.Status)
	}

	// Second lease on the same property conflicts.
	leaseBody["tenantId"] = tenant2.ID
	resp = env.request(t, http.MethodPost, "/api/lease", adminToken, leaseBody)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second lease status = %d, want 409", resp.StatusCode)
	}

	// Hard delete is blocked until archived.
	resp = env.request(t, http.MethodDelete, "/api/lease/"+lease.ID, adminToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusPreconditionFailed {
		t.Fatalf("delete active lease status = %d, want 412", resp.StatusCode)
	}

	resp = env.request(t, http.MethodPut, "/api/lease/archive/"+lease.ID, adminToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("archive status = %d", resp.StatusCode)
	}

	resp = env.request(t, http.MethodDelete, "/api/lease/"+lease.ID, adminToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete archived lease status = %d", resp.StatusCode)
	}
}

func TestSignUpAndLoginOverHTTP(t *testing.T) {
	env := newServerEnv(t, nil)
	resp := env.request(t, http.MethodPost, "/api/users/signup", "", map[string]any{
		"firstName": "Thandi",
		"email":     "thandi@example.com",
		"password":  "longenough",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d", resp.StatusCode)
	}
	signedUp := decodeBody[authResponse](t, resp)
	if signedUp.Token == "" || signedUp.User.Role != domain.RoleTenant {
		t.Fatalf("signup response = %+v", signedUp)
	}

	resp = env.request(t, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "thandi@example.com",
		"password": "longenough",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	loggedIn := decodeBody[authResponse](t, resp)
	if loggedIn.User.ID != signedUp.User.ID {
		t.Fatalf("login returned wrong user")
	}

	resp = env.request(t, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "thandi@example.com",
		"password": "wrong",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(mr.Addr(), "", "test:auth", 3, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	env := newServerEnv(t, limiter)

	body := map[string]any{"email": "x@example.com", "password": "whatever"}
	for i := 0; i < 3; i++ {
		resp := env.request(t, http.MethodPost, "/api/users/login", "", body)
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			t.Fatalf("request %d rate limited early", i+1)
		}
	}
	resp := env.request(t, http.MethodPost, "/api/users/login", "", body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
}

func TestPaymentStatusRoleGate(t *testing.T) {
	env := newServerEnv(t, nil)
	tenant, tenantToken := env.addUser(t, domain.RoleTenant)
	_, managerToken := env.addUser(t, domain.RolePropertyManager)

	resp := env.request(t, http.MethodPost, "/api/payment", tenantToken, map[string]any{
		"amount": 9500,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create payment status = %d", resp.StatusCode)
	}
	payment := decodeBody[domain.Payment](t, resp)
	if payment.TenantID != tenant.ID {
		t.Fatalf("payment tenant = %q, want caller", payment.TenantID)
	}

	statusPath := fmt.Sprintf("/api/payment/%s/status", payment.ID)
	resp = env.request(t, http.MethodPut, statusPath, tenantToken, map[string]any{"status": "Paid"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("tenant status update = %d, want 403", resp.StatusCode)
	}

	resp = env.request(t, http.MethodPut, statusPath, managerToken, map[string]any{"status": "Paid"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("manager status update = %d", resp.StatusCode)
	}
	updated := decodeBody[domain.Payment](t, resp)
	if updated.Status != domain.PaymentPaid {
		t.Fatalf("payment status = %q", updated.Status)
	}
}
