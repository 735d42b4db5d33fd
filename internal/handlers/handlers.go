package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/kjdelacruz/stagetally/internal/services"
	"github.com/kjdelacruz/stagetally/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Event      services.EventServicer
	Contestant services.ContestantServicer
	Registry   services.RegistryServicer
	Ledger     services.LedgerServicer
	Standings  services.StandingsServicer
	Lifecycle  services.LifecycleServicer
	Audit      services.AuditServicer
	Hub        *websocket.Hub
	Log        HTTPLogger
	validate   *validator.Validate
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	event services.EventServicer,
	contestant services.ContestantServicer,
	registry services.RegistryServicer,
	ledger services.LedgerServicer,
	standings services.StandingsServicer,
	lifecycle services.LifecycleServicer,
	audit services.AuditServicer,
	hub *websocket.Hub,
	log HTTPLogger,
) *Handlers {
	return &Handlers{
		Event:      event,
		Contestant: contestant,
		Registry:   registry,
		Ledger:     ledger,
		Standings:  standings,
		Lifecycle:  lifecycle,
		Audit:      audit,
		Hub:        hub,
		Log:        log,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance without a websocket hub
func NewForTesting(
	event services.EventServicer,
	contestant services.ContestantServicer,
	registry services.RegistryServicer,
	ledger services.LedgerServicer,
	standings services.StandingsServicer,
	lifecycle services.LifecycleServicer,
	audit services.AuditServicer,
) *Handlers {
	return &Handlers{
		Event:      event,
		Contestant: contestant,
		Registry:   registry,
		Ledger:     ledger,
		Standings:  standings,
		Lifecycle:  lifecycle,
		Audit:      audit,
		Log:        NoopHTTPLogger{},
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}
