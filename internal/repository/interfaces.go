package repository

import (
	"context"

	"github.com/kjdelacruz/stagetally/internal/models"
)

// EventRepository defines event data operations
type EventRepository interface {
	CreateEvent(ctx context.Context, name string, eventType models.EventType) (int64, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// SegmentRepository defines segment (round) data operations
type SegmentRepository interface {
	CreateSegment(ctx context.Context, seg *models.Segment) (int64, error)
	GetSegment(ctx context.Context, id int64) (*models.Segment, error)
	ListSegments(ctx context.Context, eventID int64) ([]models.Segment, error)
	UpdateSegment(ctx context.Context, seg *models.Segment) error
	SetSegmentActive(ctx context.Context, id int64, active bool) error
	DeactivateSegments(ctx context.Context, eventID int64) error
	SetSegmentParticipants(ctx context.Context, id int64, participantIDs []int64) error
	DeleteSegment(ctx context.Context, id int64) error
	OrderIndexTaken(ctx context.Context, eventID int64, orderIndex int, excludeSegmentID int64) (bool, error)
}

// CriteriaRepository defines criteria data operations
type CriteriaRepository interface {
	CreateCriteria(ctx context.Context, crit *models.Criteria) (int64, error)
	GetCriteria(ctx context.Context, id int64) (*models.Criteria, error)
	ListCriteria(ctx context.Context, segmentID int64) ([]models.Criteria, error)
	UpdateCriteria(ctx context.Context, crit *models.Criteria) error
	DeleteCriteria(ctx context.Context, id int64) error
}

// ContestantRepository defines contestant data operations
type ContestantRepository interface {
	CreateContestant(ctx context.Context, c *models.Contestant) (int64, error)
	GetContestant(ctx context.Context, id int64) (*models.Contestant, error)
	ListContestants(ctx context.Context, eventID int64, activeOnly bool) ([]models.Contestant, error)
	CandidateNumberTaken(ctx context.Context, eventID int64, number int, gender string, excludeContestantID int64) (bool, error)
	SetContestantStatus(ctx context.Context, id int64, status models.ContestantStatus) error
	DeleteContestant(ctx context.Context, id int64) error
}

// ScoreRepository defines score ledger data operations
type ScoreRepository interface {
	FindCriteriaScore(ctx context.Context, contestantID, segmentID, criteriaID int64) (*models.Score, error)
	FindAnswerScore(ctx context.Context, contestantID, segmentID int64, questionNumber int) (*models.Score, error)
	InsertScore(ctx context.Context, score *models.Score) (int64, error)
	UpdateScore(ctx context.Context, score *models.Score) error
	ListSegmentScores(ctx context.Context, segmentID int64) ([]models.Score, error)
	ListEventScores(ctx context.Context, eventID int64) ([]models.Score, error)
}

// AuditRepository defines the append-only audit log sink
type AuditRepository interface {
	AppendAudit(ctx context.Context, actorID int64, action, detail string) error
	ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// FullRepository combines all repository interfaces plus transactional scoping.
// Lifecycle transitions that mutate several tables run inside InTx so a
// failure rolls back rather than leaving state half-applied.
type FullRepository interface {
	EventRepository
	SegmentRepository
	CriteriaRepository
	ContestantRepository
	ScoreRepository
	AuditRepository

	InTx(ctx context.Context, fn func(FullRepository) error) error
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
