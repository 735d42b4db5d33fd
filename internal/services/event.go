package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/kjdelacruz/stagetally/internal/errors"
	"github.com/kjdelacruz/stagetally/internal/logger"
	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/repository"
)

// EventServiceRepository defines the repository methods needed by EventService
type EventServiceRepository interface {
	repository.EventRepository
	repository.AuditRepository
}

// EventService handles event-level business logic
type EventService struct {
	log     logger.Logger
	repo    EventServiceRepository
	baseURL string
}

// NewEventService creates a new EventService. baseURL is the externally
// reachable address encoded into leaderboard QR codes.
func NewEventService(log logger.Logger, repo EventServiceRepository, baseURL string) *EventService {
	return &EventService{log: log, repo: repo, baseURL: baseURL}
}

// CreateEvent creates a pageant or quiz-bee event
func (s *EventService) CreateEvent(ctx context.Context, actorID int64, name string, eventType models.EventType) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.Validation("event name is required")
	}
	if eventType != models.EventPageant && eventType != models.EventQuizBee {
		return 0, errors.Validationf("unknown event type %q", eventType)
	}

	id, err := s.repo.CreateEvent(ctx, name, eventType)
	if err != nil {
		return 0, err
	}

	s.audit(ctx, actorID, "CREATE_EVENT", fmt.Sprintf("Created %s event %q", eventType, name))
	s.log.Info("Event created", "event_id", id, "name", name, "type", eventType)
	return id, nil
}

// GetEvent retrieves one event
func (s *EventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("event %d not found", id)
	}
	return event, err
}

// ListEvents returns all events
func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.repo.ListEvents(ctx)
}

// DeleteEvent removes an event and everything it owns: segments, criteria,
// contestants and their scores all cascade.
func (s *EventService) DeleteEvent(ctx context.Context, actorID, id int64) error {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("event %d not found", id)
		}
		return err
	}

	s.audit(ctx, actorID, "DELETE_EVENT", fmt.Sprintf("Deleted event %q and all owned records", event.Name))
	s.log.Info("Event deleted", "event_id", id, "name", event.Name)
	return nil
}

// GenerateLeaderboardQR renders a QR code PNG pointing at the event's public
// leaderboard page, for projecting at the venue.
func (s *EventService) GenerateLeaderboardQR(ctx context.Context, eventID int64) ([]byte, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	if s.baseURL == "" {
		return nil, errors.State("base_url not configured")
	}
	leaderboardURL := fmt.Sprintf("%s/leaderboard/%d", strings.TrimSuffix(s.baseURL, "/"), eventID)
	return qrcode.Encode(leaderboardURL, qrcode.Medium, 256)
}

func (s *EventService) audit(ctx context.Context, actorID int64, action, detail string) {
	if err := s.repo.AppendAudit(ctx, actorID, action, detail); err != nil {
		s.log.Error("Failed to write audit entry", "action", action, "error", err)
	}
}
