package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWithRequestIDEchoesIncomingHeader(t *testing.T) {
	const incoming = "req-abc-123"
	var seenInContext string
	handler := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenInContext = RequestIDFromRequest(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seenInContext != incoming {
		t.Errorf("context request id = %q, want %q", seenInContext, incoming)
	}
	if got := rec.Header().Get(RequestIDHeader); got != incoming {
		t.Errorf("response header = %q, want %q", got, incoming)
	}
}

func TestWithRequestIDMintsWhenAbsent(t *testing.T) {
	var seenInContext string
	handler := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenInContext = RequestIDFromRequest(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seenInContext == "" {
		t.Error("expected a generated request id in context")
	}
	if rec.Header().Get(RequestIDHeader) != seenInContext {
		t.Errorf("response header %q does not match context id %q",
			rec.Header().Get(RequestIDHeader), seenInContext)
	}
}

func TestRequestIDFromContextNil(t *testing.T) {
	if got := RequestIDFromContext(nil); got != "" {
		t.Errorf("nil context returned %q", got)
	}
}
