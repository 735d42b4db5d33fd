package services_test

import (
	"context"
	"testing"

	"github.com/kjdelacruz/stagetally/internal/logger"
	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/repository"
	"github.com/kjdelacruz/stagetally/internal/services"
	"github.com/kjdelacruz/stagetally/internal/testutil"
)

const testActor = int64(1)

// testServices bundles every service wired over one in-memory repository
type testServices struct {
	Repo       *repository.Repository
	Event      *services.EventService
	Contestant *services.ContestantService
	Registry   *services.RegistryService
	Ledger     *services.LedgerService
	Standings  *services.StandingsService
	Lifecycle  *services.LifecycleService
	Audit      *services.AuditService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	repo := testutil.NewTestRepository(t)
	log := logger.New()

	audit := services.NewAuditService(log, repo)
	standings := services.NewStandingsService(log, repo)
	return &testServices{
		Repo:       repo,
		Event:      services.NewEventService(log, repo, "http://test.local"),
		Contestant: services.NewContestantService(log, repo),
		Registry:   services.NewRegistryService(log, repo),
		Ledger:     services.NewLedgerService(log, repo),
		Standings:  standings,
		Lifecycle:  services.NewLifecycleService(log, repo, standings, audit),
		Audit:      audit,
	}
}

func (ts *testServices) createEvent(t *testing.T, ctx context.Context, name string, eventType models.EventType) int64 {
	t.Helper()
	id, err := ts.Event.CreateEvent(ctx, testActor, name, eventType)
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return id
}

func (ts *testServices) addContestant(t *testing.T, ctx context.Context, eventID int64, number int, name, gender string) int64 {
	t.Helper()
	id, err := ts.Contestant.AddContestant(ctx, testActor, services.ContestantInput{
		EventID:         eventID,
		CandidateNumber: number,
		Name:            name,
		Gender:          gender,
	})
	if err != nil {
		t.Fatalf("AddContestant failed: %v", err)
	}
	return id
}

func (ts *testServices) addSegment(t *testing.T, ctx context.Context, in services.SegmentInput) int64 {
	t.Helper()
	id, err := ts.Registry.AddSegment(ctx, testActor, in)
	if err != nil {
		t.Fatalf("AddSegment failed: %v", err)
	}
	return id
}

func (ts *testServices) addQuizRound(t *testing.T, ctx context.Context, in services.QuizRoundInput) int64 {
	t.Helper()
	id, err := ts.Registry.AddQuizRound(ctx, testActor, in)
	if err != nil {
		t.Fatalf("AddQuizRound failed: %v", err)
	}
	return id
}

func (ts *testServices) addCriteria(t *testing.T, ctx context.Context, in services.CriteriaInput) int64 {
	t.Helper()
	id, err := ts.Registry.AddCriteria(ctx, testActor, in)
	if err != nil {
		t.Fatalf("AddCriteria failed: %v", err)
	}
	return id
}

func (ts *testServices) submitScore(t *testing.T, ctx context.Context, judgeID, contestantID, criteriaID int64, value float64) {
	t.Helper()
	if err := ts.Ledger.SubmitCriteriaScore(ctx, judgeID, contestantID, criteriaID, value); err != nil {
		t.Fatalf("SubmitCriteriaScore failed: %v", err)
	}
}

func (ts *testServices) submitAnswers(t *testing.T, ctx context.Context, contestantID, roundID int64, correctCount int) {
	t.Helper()
	for q := 1; q <= correctCount; q++ {
		if err := ts.Ledger.SubmitAnswer(ctx, testActor, contestantID, roundID, q, true); err != nil {
			t.Fatalf("SubmitAnswer failed: %v", err)
		}
	}
}
