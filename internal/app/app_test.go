package app

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kjdelacruz/stagetally/internal/logger"
)

func createTestApp(t *testing.T) *App {
	t.Helper()

	app, err := New(logger.New(), Config{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app
}

func TestNew_InitializesApp(t *testing.T) {
	app := createTestApp(t)

	if app.handlers == nil {
		t.Error("expected handlers to be initialized")
	}
	if app.repo == nil {
		t.Error("expected repo to be initialized")
	}
}

func TestNew_FailsWithBadDBPath(t *testing.T) {
	_, err := New(logger.New(), Config{DBPath: "/nonexistent/path/db.sqlite"})
	if err == nil {
		t.Error("expected error for invalid db path")
	}
}

func TestApp_Router_ServesRequests(t *testing.T) {
	app := createTestApp(t)
	server := httptest.NewServer(app.Router())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/events")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for /api/events, got %d", resp.StatusCode)
	}
}

func TestGetPreferredIP_ReturnsValidIP(t *testing.T) {
	ip := getPreferredIP(realNetworkProvider{})

	if ip == "" {
		t.Error("expected non-empty IP")
	}
	if ip != "localhost" {
		parsed := net.ParseIP(ip)
		if parsed == nil {
			t.Errorf("expected valid IP, got: %s", ip)
		}
		if parsed.To4() == nil {
			t.Errorf("expected IPv4 address, got: %s", ip)
		}
	}
}

func TestIsPrivate172(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"172.15.0.1", false},
		{"172.32.0.1", false},
		{"192.168.1.1", false},
		{"10.0.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			result := isPrivate172(net.ParseIP(tt.ip))
			if result != tt.expected {
				t.Errorf("isPrivate172(%s) = %v, want %v", tt.ip, result, tt.expected)
			}
		})
	}
}

func TestIsPrivate172_NilIP(t *testing.T) {
	if isPrivate172(nil) {
		t.Error("isPrivate172(nil) = true, want false")
	}
}

// mockInterface implements networkInterface for testing
type mockInterface struct {
	flags net.Flags
	addrs []net.Addr
	err   error
}

func (m mockInterface) Flags() net.Flags {
	return m.flags
}

func (m mockInterface) Addrs() ([]net.Addr, error) {
	return m.addrs, m.err
}

// mockNetworkProvider implements networkProvider for testing
type mockNetworkProvider struct {
	interfaces []networkInterface
	err        error
}

func (m mockNetworkProvider) Interfaces() ([]networkInterface, error) {
	return m.interfaces, m.err
}

func TestGetPreferredIP_NetworkError(t *testing.T) {
	ip := getPreferredIP(mockNetworkProvider{err: net.ErrClosed})
	if ip != "localhost" {
		t.Errorf("expected 'localhost' on error, got: %s", ip)
	}
}

func TestGetPreferredIP_InterfaceAddrsError(t *testing.T) {
	provider := mockNetworkProvider{
		interfaces: []networkInterface{
			mockInterface{flags: net.FlagUp, err: net.ErrClosed},
		},
	}

	ip := getPreferredIP(provider)
	if ip != "localhost" {
		t.Errorf("expected 'localhost' when no addresses found, got: %s", ip)
	}
}

func TestGetPreferredIP_PrefersPrivateAddress(t *testing.T) {
	public := &net.IPNet{IP: net.ParseIP("8.8.4.4"), Mask: net.CIDRMask(24, 32)}
	private := &net.IPNet{IP: net.ParseIP("192.168.1.42"), Mask: net.CIDRMask(24, 32)}

	provider := mockNetworkProvider{
		interfaces: []networkInterface{
			mockInterface{flags: net.FlagUp, addrs: []net.Addr{public, private}},
		},
	}

	if ip := getPreferredIP(provider); ip != "192.168.1.42" {
		t.Errorf("expected private address, got: %s", ip)
	}
}

func TestGetPreferredIP_SkipsDownAndLoopback(t *testing.T) {
	down := mockInterface{
		flags: 0,
		addrs: []net.Addr{&net.IPNet{IP: net.ParseIP("192.168.1.1"), Mask: net.CIDRMask(24, 32)}},
	}
	loopback := mockInterface{
		flags: net.FlagUp | net.FlagLoopback,
		addrs: []net.Addr{&net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)}},
	}

	provider := mockNetworkProvider{interfaces: []networkInterface{down, loopback}}

	if ip := getPreferredIP(provider); ip != "localhost" {
		t.Errorf("expected 'localhost', got: %s", ip)
	}
}

func TestGetPreferredIP_FallsBackToFirstCandidate(t *testing.T) {
	public := &net.IPNet{IP: net.ParseIP("8.8.4.4"), Mask: net.CIDRMask(24, 32)}

	provider := mockNetworkProvider{
		interfaces: []networkInterface{
			mockInterface{flags: net.FlagUp, addrs: []net.Addr{public}},
		},
	}

	if ip := getPreferredIP(provider); ip != "8.8.4.4" {
		t.Errorf("expected public fallback, got: %s", ip)
	}
}
