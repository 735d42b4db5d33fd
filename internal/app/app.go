package app

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kjdelacruz/stagetally/internal/handlers"
	"github.com/kjdelacruz/stagetally/internal/logger"
	"github.com/kjdelacruz/stagetally/internal/repository"
	"github.com/kjdelacruz/stagetally/internal/services"
	"github.com/kjdelacruz/stagetally/internal/websocket"
)

// Config holds application configuration
type Config struct {
	DBPath  string
	BaseURL string
}

// App holds all application dependencies
type App struct {
	log      logger.Logger
	handlers *handlers.Handlers
	repo     *repository.Repository
	baseURL  string
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg Config) (*App, error) {
	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	// Initialize services
	auditService := services.NewAuditService(log, repo)
	eventService := services.NewEventService(log, repo, cfg.BaseURL)
	contestantService := services.NewContestantService(log, repo)
	registryService := services.NewRegistryService(log, repo)
	ledgerService := services.NewLedgerService(log, repo)
	standingsService := services.NewStandingsService(log, repo)
	lifecycleService := services.NewLifecycleService(log, repo, standingsService, auditService)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log)
	hub.Start()
	ledgerService.SetBroadcaster(hub)
	lifecycleService.SetBroadcaster(hub)

	h := handlers.New(
		eventService,
		contestantService,
		registryService,
		ledgerService,
		standingsService,
		lifecycleService,
		auditService,
		hub,
		log,
	)

	return &App{
		log:      log,
		handlers: h,
		repo:     repo,
		baseURL:  cfg.BaseURL,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close releases app resources
func (a *App) Close() error {
	return a.repo.Close()
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	url := a.baseURL
	if url == "" {
		ip := getPreferredIP(realNetworkProvider{})
		url = fmt.Sprintf("http://%s%s", ip, addr)
	}

	a.log.Info("Server starting", "url", url)
	return http.ListenAndServe(addr, a.Router())
}

// DefaultBaseURL returns the externally reachable base URL for this host,
// preferring a LAN address so QR codes scanned off the projector resolve.
func DefaultBaseURL(addr string) string {
	ip := getPreferredIP(realNetworkProvider{})
	return fmt.Sprintf("http://%s%s", ip, addr)
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider is an interface for getting network interfaces (for testing)
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the best IP address for LAN access.
// Prefers private network addresses (192.168.x.x, 10.x.x.x, 172.16-31.x.x).
// Falls back to localhost if no suitable address is found.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP

	for _, iface := range ifaces {
		// Skip down, loopback, and point-to-point interfaces
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			// Only consider IPv4 addresses
			if ip == nil || ip.To4() == nil {
				continue
			}

			// Skip loopback
			if ip.IsLoopback() {
				continue
			}

			candidates = append(candidates, ip)
		}
	}

	// Prefer private network addresses
	for _, ip := range candidates {
		ipStr := ip.String()
		if strings.HasPrefix(ipStr, "192.168.") ||
			strings.HasPrefix(ipStr, "10.") ||
			isPrivate172(ip) {
			return ipStr
		}
	}

	if len(candidates) > 0 {
		return candidates[0].String()
	}

	return "localhost"
}

// isPrivate172 checks if IP is in 172.16.0.0/12 range
func isPrivate172(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		return ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31
	}
	return false
}
