package services_test

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/kjdelacruz/stagetally/internal/errors"
	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/repository/mock"
	"github.com/kjdelacruz/stagetally/internal/services"
	"github.com/kjdelacruz/stagetally/internal/testutil"

	"github.com/kjdelacruz/stagetally/internal/logger"
)

func TestAddContestant_DuplicateNumberSameGender(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	eventID := ts.createEvent(t, ctx, "Miss Test", models.EventPageant)

	ts.addContestant(t, ctx, eventID, 1, "Alice", "Female")

	_, err := ts.Contestant.AddContestant(ctx, testActor, services.ContestantInput{
		EventID: eventID, CandidateNumber: 1, Name: "Bea", Gender: "Female",
	})
	if err == nil {
		t.Fatal("expected duplicate candidate number error, got nil")
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.ErrConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestAddContestant_SameNumberAcrossGenders(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	eventID := ts.createEvent(t, ctx, "Miss Test", models.EventPageant)

	ts.addContestant(t, ctx, eventID, 1, "Alice", "Female")
	// Male #1 and Female #1 coexist
	ts.addContestant(t, ctx, eventID, 1, "Dan", "Male")
}

func TestOverrideStatus_RoundTrip(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	eventID := ts.createEvent(t, ctx, "Miss Test", models.EventPageant)
	id := ts.addContestant(t, ctx, eventID, 1, "Alice", "Female")

	if err := ts.Contestant.OverrideStatus(ctx, testActor, id, models.StatusEliminated); err != nil {
		t.Fatalf("OverrideStatus failed: %v", err)
	}
	c, err := ts.Contestant.GetContestant(ctx, id)
	if err != nil {
		t.Fatalf("GetContestant failed: %v", err)
	}
	if c.Status != models.StatusEliminated {
		t.Errorf("expected eliminated, got %s", c.Status)
	}

	if err := ts.Contestant.OverrideStatus(ctx, testActor, id, models.StatusActive); err != nil {
		t.Fatalf("OverrideStatus failed: %v", err)
	}
	c, err = ts.Contestant.GetContestant(ctx, id)
	if err != nil {
		t.Fatalf("GetContestant failed: %v", err)
	}
	if c.Status != models.StatusActive {
		t.Errorf("expected active after restore, got %s", c.Status)
	}
}

func TestAddContestant_RepositoryError(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	mockRepo := mock.NewRepository(repo)
	mockRepo.CreateContestantError = errors.New("database error")
	log := logger.New()

	events := services.NewEventService(log, mockRepo, "")
	contestants := services.NewContestantService(log, mockRepo)

	ctx := context.Background()
	eventID, err := events.CreateEvent(ctx, testActor, "Miss Test", models.EventPageant)
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	_, err = contestants.AddContestant(ctx, testActor, services.ContestantInput{
		EventID: eventID, CandidateNumber: 1, Name: "Alice", Gender: "Female",
	})
	if err == nil {
		t.Error("expected injected repository error, got nil")
	}
}
