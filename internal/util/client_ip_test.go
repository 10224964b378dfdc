package util

import (
	"net/http/httptest"
	"net/netip"
	"testing"
)

func TestClientIPSpoofResistance(t *testing.T) {
	trusted, err := NewTrustedProxies([]string{"10.0.0.0/8", "192.168.1.10"})
	if err != nil {
		t.Fatalf("NewTrustedProxies: %v", err)
	}

	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xrip       string
		trusted    *TrustedProxies
		want       string
	}{
		{
			name:       "untrusted peer cannot spoof via forwarded headers",
			remoteAddr: "198.51.100.10:42011",
			xff:        "203.0.113.5",
			xrip:       "203.0.113.6",
			want:       "198.51.100.10",
		},
		{
			name:       "trusted proxy forwards client address",
			remoteAddr: "10.0.0.20:42011",
			xff:        "203.0.113.5",
			trusted:    trusted,
			want:       "203.0.113.5",
		},
		{
			name:       "multi-hop chain resolves first untrusted from the right",
			remoteAddr: "10.0.0.20:42011",
			xff:        "203.0.113.5, 10.0.0.10",
			trusted:    trusted,
			want:       "203.0.113.5",
		},
		{
			name:       "x-real-ip fallback when forwarded-for is garbage",
			remoteAddr: "10.0.0.20:42011",
			xff:        "not-an-ip",
			xrip:       "203.0.113.7",
			trusted:    trusted,
			want:       "203.0.113.7",
		},
		{
			name:       "fully trusted chain yields leftmost hop",
			remoteAddr: "10.0.0.20:42011",
			xff:        "10.0.0.5, 10.0.0.10",
			trusted:    trusted,
			want:       "10.0.0.5",
		},
		{
			name:       "peer without port still parses",
			remoteAddr: "198.51.100.10",
			want:       "198.51.100.10",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "http://example.com", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xrip != "" {
				req.Header.Set("X-Real-IP", tc.xrip)
			}
			if got := ClientIP(req, tc.trusted); got != tc.want {
				t.Fatalf("ClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTrustedProxiesContains(t *testing.T) {
	trusted, err := NewTrustedProxies([]string{"10.0.0.0/8", "192.168.1.10"})
	if err != nil {
		t.Fatalf("NewTrustedProxies: %v", err)
	}
	if !trusted.Contains(netip.MustParseAddr("10.1.2.3")) {
		t.Error("10.1.2.3 should match 10.0.0.0/8")
	}
	if !trusted.Contains(netip.MustParseAddr("192.168.1.10")) {
		t.Error("single-IP entry should match exactly")
	}
	if trusted.Contains(netip.MustParseAddr("192.168.1.11")) {
		t.Error("192.168.1.11 should not match")
	}
	var none *TrustedProxies
	if none.Contains(netip.MustParseAddr("10.1.2.3")) {
		t.Error("nil allowlist must trust nobody")
	}
}

func TestNewTrustedProxiesRejectsGarbage(t *testing.T) {
	if _, err := NewTrustedProxies([]string{"bad-cidr"}); err == nil {
		t.Error("expected parse error for invalid entry")
	}
	empty, err := NewTrustedProxies([]string{"", "  "})
	if err != nil || empty != nil {
		t.Errorf("blank-only input: got %v, %v, want nil, nil", empty, err)
	}
}
