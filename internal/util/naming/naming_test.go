package naming

import (
	"testing"
	"time"
)

func TestInstance(t *testing.T) {
	t.Parallel()
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty gets timestamp", "", "VPN-1700000000"},
		{"default prefix gets timestamp", "VPN", "VPN-1700000000"},
		{"whitespace trimmed", "  VPN ", "VPN-1700000000"},
		{"custom name kept", "office-vpn", "office-vpn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Instance(tt.input, now); got != tt.expected {
				t.Errorf("Instance(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClientConfigURL(t *testing.T) {
	t.Parallel()
	if got := ClientConfigURL("203.0.113.10"); got != "http://203.0.113.10/client.ovpn" {
		t.Errorf("unexpected URL %q", got)
	}
}
