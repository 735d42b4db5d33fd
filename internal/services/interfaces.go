package services

import (
	"context"

	"github.com/kjdelacruz/stagetally/internal/models"
)

// EventServicer defines the interface for event operations
type EventServicer interface {
	CreateEvent(ctx context.Context, actorID int64, name string, eventType models.EventType) (int64, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	DeleteEvent(ctx context.Context, actorID, id int64) error
	GenerateLeaderboardQR(ctx context.Context, eventID int64) ([]byte, error)
}

// ContestantServicer defines the interface for contestant roster operations
type ContestantServicer interface {
	AddContestant(ctx context.Context, actorID int64, in ContestantInput) (int64, error)
	GetContestant(ctx context.Context, id int64) (*models.Contestant, error)
	ListContestants(ctx context.Context, eventID int64, activeOnly bool) ([]models.Contestant, error)
	OverrideStatus(ctx context.Context, actorID, contestantID int64, status models.ContestantStatus) error
	RemoveContestant(ctx context.Context, actorID, id int64) error
}

// RegistryServicer defines the interface for segment, round, and criteria
// configuration
type RegistryServicer interface {
	AddSegment(ctx context.Context, actorID int64, in SegmentInput) (int64, error)
	UpdateSegment(ctx context.Context, actorID, segmentID int64, in SegmentInput) error
	DeleteSegment(ctx context.Context, actorID, segmentID int64) error
	AddQuizRound(ctx context.Context, actorID int64, in QuizRoundInput) (int64, error)
	UpdateQuizRound(ctx context.Context, actorID, roundID int64, in QuizRoundInput) error
	DeleteQuizRound(ctx context.Context, actorID, roundID int64) error
	AddCriteria(ctx context.Context, actorID int64, in CriteriaInput) (int64, error)
	UpdateCriteria(ctx context.Context, actorID, criteriaID int64, in CriteriaInput) error
	DeleteCriteria(ctx context.Context, actorID, criteriaID int64) error
	ListSegments(ctx context.Context, eventID int64) ([]models.Segment, error)
	ListCriteria(ctx context.Context, segmentID int64) ([]models.Criteria, error)
	WeightStatus(ctx context.Context, eventID int64) (*WeightReport, error)
	CriteriaWeightStatus(ctx context.Context, segmentID int64) (*WeightReport, error)
}

// LedgerServicer defines the interface for score submission
type LedgerServicer interface {
	SubmitCriteriaScore(ctx context.Context, judgeID, contestantID, criteriaID int64, value float64) error
	SubmitAnswer(ctx context.Context, tabulatorID, contestantID, roundID int64, questionNumber int, isCorrect bool) error
}

// StandingsServicer defines the interface for computed standings
type StandingsServicer interface {
	SegmentTabulation(ctx context.Context, eventID, segmentID int64) (*SegmentTabulationResult, error)
	OverallBreakdown(ctx context.Context, eventID int64) (*OverallBreakdownResult, error)
	LiveScores(ctx context.Context, eventID int64, specificRoundID *int64, participants []int64) ([]LiveScore, error)
	CheckRoundTies(ctx context.Context, eventID, roundID int64, limit int) (*TieReport, error)
}

// LifecycleServicer defines the interface for round transitions
type LifecycleServicer interface {
	Activate(ctx context.Context, actorID, segmentID int64) error
	DeactivateAll(ctx context.Context, actorID, eventID int64) error
	ActivateFinalRound(ctx context.Context, actorID, eventID, finalSegmentID int64, limit int) (*FinalRoundResult, error)
	AdvanceToNextRound(ctx context.Context, actorID, eventID, currentRoundID int64, qualifiedIDs []int64) (*AdvanceResult, error)
	EliminateContestants(ctx context.Context, actorID, eventID int64, keepingIDs []int64) error
}

// AuditServicer defines the interface for the audit trail
type AuditServicer interface {
	Record(ctx context.Context, actorID int64, action, detail string)
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
}
