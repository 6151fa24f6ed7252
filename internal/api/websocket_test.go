package api

import (
	"testing"
)

func TestWebSocketRateLimiter(t *testing.T) {
	wrl := NewWebSocketRateLimiter(2)

	if !wrl.Allow("1.2.3.4") || !wrl.Allow("1.2.3.4") {
		t.Fatal("connections under the limit should be allowed")
	}
	if wrl.Allow("1.2.3.4") {
		t.Error("third connection from the same IP should be rejected")
	}
	if !wrl.Allow("5.6.7.8") {
		t.Error("a different IP has its own budget")
	}

	wrl.Release("1.2.3.4")
	if !wrl.Allow("1.2.3.4") {
		t.Error("released slot should be reusable")
	}
	if wrl.GetConnectionCount("1.2.3.4") != 2 {
		t.Errorf("count = %d, want 2", wrl.GetConnectionCount("1.2.3.4"))
	}
}

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"empty", "", false},
		{"localhost any port", "http://localhost:5173", true},
		{"loopback", "http://127.0.0.1:3000", true},
		{"external host", "http://evil.example.com", false},
		{"https external", "https://example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAllowedOrigin(tt.origin); got != tt.want {
				t.Errorf("IsAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestHubBroadcastWithoutClients(t *testing.T) {
	h := NewWebSocketHub(newStubEngine())

	if h.ClientCount() != 0 {
		t.Fatalf("fresh hub has %d clients", h.ClientCount())
	}
	// Broadcast with no consumers must not block; the channel drop is the
	// backpressure path.
	for i := 0; i < 1000; i++ {
		h.Broadcast("sim:state", map[string]int{"tick": i})
	}
}
