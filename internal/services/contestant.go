package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kjdelacruz/stagetally/internal/errors"
	"github.com/kjdelacruz/stagetally/internal/logger"
	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/repository"
)

// ContestantServiceRepository defines the repository methods needed by ContestantService
type ContestantServiceRepository interface {
	repository.ContestantRepository
	repository.EventRepository
	repository.AuditRepository
}

// ContestantService handles contestant registration and status overrides
type ContestantService struct {
	log  logger.Logger
	repo ContestantServiceRepository
}

// NewContestantService creates a new ContestantService
func NewContestantService(log logger.Logger, repo ContestantServiceRepository) *ContestantService {
	return &ContestantService{log: log, repo: repo}
}

// ContestantInput carries the fields for creating a contestant
type ContestantInput struct {
	EventID         int64
	CandidateNumber int
	Name            string
	Gender          string
	ImagePath       string
	TabulatorID     *int64
}

// AddContestant registers a contestant. Candidate numbers are unique per
// (event, gender) pair, so Male #1 and Female #1 can coexist.
func (s *ContestantService) AddContestant(ctx context.Context, actorID int64, in ContestantInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, errors.Validation("contestant name is required")
	}
	if in.CandidateNumber <= 0 {
		return 0, errors.Validation("candidate number must be positive")
	}
	if in.Gender == "" {
		return 0, errors.Validation("gender is required")
	}

	if _, err := s.repo.GetEvent(ctx, in.EventID); err != nil {
		if err == repository.ErrNotFound {
			return 0, errors.NotFoundf("event %d not found", in.EventID)
		}
		return 0, err
	}

	taken, err := s.repo.CandidateNumberTaken(ctx, in.EventID, in.CandidateNumber, in.Gender, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, errors.Conflictf("candidate #%d (%s) already exists", in.CandidateNumber, in.Gender)
	}

	id, err := s.repo.CreateContestant(ctx, &models.Contestant{
		EventID:         in.EventID,
		CandidateNumber: in.CandidateNumber,
		Name:            in.Name,
		Gender:          in.Gender,
		Status:          models.StatusActive,
		ImagePath:       in.ImagePath,
		TabulatorID:     in.TabulatorID,
	})
	if err != nil {
		return 0, err
	}

	s.audit(ctx, actorID, "ADD_CONTESTANT",
		fmt.Sprintf("Added contestant #%d %s (%s)", in.CandidateNumber, in.Name, in.Gender))
	return id, nil
}

// GetContestant retrieves one contestant
func (s *ContestantService) GetContestant(ctx context.Context, id int64) (*models.Contestant, error) {
	c, err := s.repo.GetContestant(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("contestant %d not found", id)
	}
	return c, err
}

// ListContestants returns an event's contestants, optionally only the
// still-active ones.
func (s *ContestantService) ListContestants(ctx context.Context, eventID int64, activeOnly bool) ([]models.Contestant, error) {
	return s.repo.ListContestants(ctx, eventID, activeOnly)
}

// OverrideStatus is the admin escape hatch for elimination state; normal
// status changes go through the round lifecycle.
func (s *ContestantService) OverrideStatus(ctx context.Context, actorID, contestantID int64, status models.ContestantStatus) error {
	if status != models.StatusActive && status != models.StatusEliminated {
		return errors.Validationf("unknown contestant status %q", status)
	}
	c, err := s.GetContestant(ctx, contestantID)
	if err != nil {
		return err
	}
	if err := s.repo.SetContestantStatus(ctx, contestantID, status); err != nil {
		return err
	}
	s.audit(ctx, actorID, "OVERRIDE_STATUS", fmt.Sprintf("Set %s to %s", c.Name, status))
	return nil
}

// RemoveContestant deletes a contestant; their score history goes with them
func (s *ContestantService) RemoveContestant(ctx context.Context, actorID, id int64) error {
	c, err := s.GetContestant(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteContestant(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("contestant %d not found", id)
		}
		return err
	}
	s.audit(ctx, actorID, "REMOVE_CONTESTANT", fmt.Sprintf("Removed contestant #%d %s", c.CandidateNumber, c.Name))
	return nil
}

func (s *ContestantService) audit(ctx context.Context, actorID int64, action, detail string) {
	if err := s.repo.AppendAudit(ctx, actorID, action, detail); err != nil {
		s.log.Error("Failed to write audit entry", "action", action, "error", err)
	}
}
