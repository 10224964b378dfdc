package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func securityHeaderResponse(t *testing.T, mutate func(*http.Request)) http.Header {
	t.Helper()
	h := WithSecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/lease", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Header()
}

func TestSecurityHeadersOnPlainHTTP(t *testing.T) {
	headers := securityHeaderResponse(t, nil)

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "no-referrer",
	}
	for name, value := range want {
		if got := headers.Get(name); got != value {
			t.Errorf("%s = %q, want %q", name, got, value)
		}
	}
	if headers.Get("Content-Security-Policy") == "" {
		t.Error("missing Content-Security-Policy")
	}
	if got := headers.Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS set on plain http request: %q", got)
	}
}

func TestSecurityHeadersHSTSBehindProxy(t *testing.T) {
	headers := securityHeaderResponse(t, func(r *http.Request) {
		r.Header.Set("X-Forwarded-Proto", "HTTPS")
	})
	if headers.Get("Strict-Transport-Security") == "" {
		t.Error("expected HSTS when proxy reports https")
	}
}
