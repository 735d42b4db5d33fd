package mock

import (
	"context"

	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.CreateSegmentError = errors.New("database error")
//	svc := services.NewRegistryService(log, mockRepo)
//	_, err := svc.AddSegment(ctx, actorID, input)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Event Errors =====
	CreateEventError error
	GetEventError    error
	ListEventsError  error
	DeleteEventError error

	// ===== Segment Errors =====
	CreateSegmentError          error
	GetSegmentError             error
	ListSegmentsError           error
	UpdateSegmentError          error
	SetSegmentActiveError       error
	DeactivateSegmentsError     error
	SetSegmentParticipantsError error
	DeleteSegmentError          error
	OrderIndexTakenError        error

	// ===== Criteria Errors =====
	CreateCriteriaError error
	GetCriteriaError    error
	ListCriteriaError   error
	UpdateCriteriaError error
	DeleteCriteriaError error

	// ===== Contestant Errors =====
	CreateContestantError     error
	GetContestantError        error
	ListContestantsError      error
	SetContestantStatusError  error
	DeleteContestantError     error
	CandidateNumberTakenError error

	// ===== Score Errors =====
	FindCriteriaScoreError error
	FindAnswerScoreError   error
	InsertScoreError       error
	UpdateScoreError       error
	ListSegmentScoresError error
	ListEventScoresError   error

	// ===== Audit Errors =====
	AppendAuditError error
	ListAuditError   error

	// ===== Transaction Errors =====
	InTxError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== Event Methods =====

func (m *Repository) CreateEvent(ctx context.Context, name string, eventType models.EventType) (int64, error) {
	if m.CreateEventError != nil {
		return 0, m.CreateEventError
	}
	return m.FullRepository.CreateEvent(ctx, name, eventType)
}

func (m *Repository) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	if m.GetEventError != nil {
		return nil, m.GetEventError
	}
	return m.FullRepository.GetEvent(ctx, id)
}

func (m *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	if m.ListEventsError != nil {
		return nil, m.ListEventsError
	}
	return m.FullRepository.ListEvents(ctx)
}

func (m *Repository) DeleteEvent(ctx context.Context, id int64) error {
	if m.DeleteEventError != nil {
		return m.DeleteEventError
	}
	return m.FullRepository.DeleteEvent(ctx, id)
}

// ===== Segment Methods =====

func (m *Repository) CreateSegment(ctx context.Context, seg *models.Segment) (int64, error) {
	if m.CreateSegmentError != nil {
		return 0, m.CreateSegmentError
	}
	return m.FullRepository.CreateSegment(ctx, seg)
}

func (m *Repository) GetSegment(ctx context.Context, id int64) (*models.Segment, error) {
	if m.GetSegmentError != nil {
		return nil, m.GetSegmentError
	}
	return m.FullRepository.GetSegment(ctx, id)
}

func (m *Repository) ListSegments(ctx context.Context, eventID int64) ([]models.Segment, error) {
	if m.ListSegmentsError != nil {
		return nil, m.ListSegmentsError
	}
	return m.FullRepository.ListSegments(ctx, eventID)
}

func (m *Repository) UpdateSegment(ctx context.Context, seg *models.Segment) error {
	if m.UpdateSegmentError != nil {
		return m.UpdateSegmentError
	}
	return m.FullRepository.UpdateSegment(ctx, seg)
}

func (m *Repository) SetSegmentActive(ctx context.Context, id int64, active bool) error {
	if m.SetSegmentActiveError != nil {
		return m.SetSegmentActiveError
	}
	return m.FullRepository.SetSegmentActive(ctx, id, active)
}

func (m *Repository) DeactivateSegments(ctx context.Context, eventID int64) error {
	if m.DeactivateSegmentsError != nil {
		return m.DeactivateSegmentsError
	}
	return m.FullRepository.DeactivateSegments(ctx, eventID)
}

func (m *Repository) SetSegmentParticipants(ctx context.Context, id int64, participantIDs []int64) error {
	if m.SetSegmentParticipantsError != nil {
		return m.SetSegmentParticipantsError
	}
	return m.FullRepository.SetSegmentParticipants(ctx, id, participantIDs)
}

func (m *Repository) DeleteSegment(ctx context.Context, id int64) error {
	if m.DeleteSegmentError != nil {
		return m.DeleteSegmentError
	}
	return m.FullRepository.DeleteSegment(ctx, id)
}

func (m *Repository) OrderIndexTaken(ctx context.Context, eventID int64, orderIndex int, excludeSegmentID int64) (bool, error) {
	if m.OrderIndexTakenError != nil {
		return false, m.OrderIndexTakenError
	}
	return m.FullRepository.OrderIndexTaken(ctx, eventID, orderIndex, excludeSegmentID)
}

// ===== Criteria Methods =====

func (m *Repository) CreateCriteria(ctx context.Context, crit *models.Criteria) (int64, error) {
	if m.CreateCriteriaError != nil {
		return 0, m.CreateCriteriaError
	}
	return m.FullRepository.CreateCriteria(ctx, crit)
}

func (m *Repository) GetCriteria(ctx context.Context, id int64) (*models.Criteria, error) {
	if m.GetCriteriaError != nil {
		return nil, m.GetCriteriaError
	}
	return m.FullRepository.GetCriteria(ctx, id)
}

func (m *Repository) ListCriteria(ctx context.Context, segmentID int64) ([]models.Criteria, error) {
	if m.ListCriteriaError != nil {
		return nil, m.ListCriteriaError
	}
	return m.FullRepository.ListCriteria(ctx, segmentID)
}

func (m *Repository) UpdateCriteria(ctx context.Context, crit *models.Criteria) error {
	if m.UpdateCriteriaError != nil {
		return m.UpdateCriteriaError
	}
	return m.FullRepository.UpdateCriteria(ctx, crit)
}

func (m *Repository) DeleteCriteria(ctx context.Context, id int64) error {
	if m.DeleteCriteriaError != nil {
		return m.DeleteCriteriaError
	}
	return m.FullRepository.DeleteCriteria(ctx, id)
}

// ===== Contestant Methods =====

func (m *Repository) CreateContestant(ctx context.Context, c *models.Contestant) (int64, error) {
	if m.CreateContestantError != nil {
		return 0, m.CreateContestantError
	}
	return m.FullRepository.CreateContestant(ctx, c)
}

func (m *Repository) GetContestant(ctx context.Context, id int64) (*models.Contestant, error) {
	if m.GetContestantError != nil {
		return nil, m.GetContestantError
	}
	return m.FullRepository.GetContestant(ctx, id)
}

func (m *Repository) ListContestants(ctx context.Context, eventID int64, activeOnly bool) ([]models.Contestant, error) {
	if m.ListContestantsError != nil {
		return nil, m.ListContestantsError
	}
	return m.FullRepository.ListContestants(ctx, eventID, activeOnly)
}

func (m *Repository) CandidateNumberTaken(ctx context.Context, eventID int64, number int, gender string, excludeContestantID int64) (bool, error) {
	if m.CandidateNumberTakenError != nil {
		return false, m.CandidateNumberTakenError
	}
	return m.FullRepository.CandidateNumberTaken(ctx, eventID, number, gender, excludeContestantID)
}

func (m *Repository) SetContestantStatus(ctx context.Context, id int64, status models.ContestantStatus) error {
	if m.SetContestantStatusError != nil {
		return m.SetContestantStatusError
	}
	return m.FullRepository.SetContestantStatus(ctx, id, status)
}

func (m *Repository) DeleteContestant(ctx context.Context, id int64) error {
	if m.DeleteContestantError != nil {
		return m.DeleteContestantError
	}
	return m.FullRepository.DeleteContestant(ctx, id)
}

// ===== Score Methods =====

func (m *Repository) FindCriteriaScore(ctx context.Context, contestantID, segmentID, criteriaID int64) (*models.Score, error) {
	if m.FindCriteriaScoreError != nil {
		return nil, m.FindCriteriaScoreError
	}
	return m.FullRepository.FindCriteriaScore(ctx, contestantID, segmentID, criteriaID)
}

func (m *Repository) FindAnswerScore(ctx context.Context, contestantID, segmentID int64, questionNumber int) (*models.Score, error) {
	if m.FindAnswerScoreError != nil {
		return nil, m.FindAnswerScoreError
	}
	return m.FullRepository.FindAnswerScore(ctx, contestantID, segmentID, questionNumber)
}

func (m *Repository) InsertScore(ctx context.Context, score *models.Score) (int64, error) {
	if m.InsertScoreError != nil {
		return 0, m.InsertScoreError
	}
	return m.FullRepository.InsertScore(ctx, score)
}

func (m *Repository) UpdateScore(ctx context.Context, score *models.Score) error {
	if m.UpdateScoreError != nil {
		return m.UpdateScoreError
	}
	return m.FullRepository.UpdateScore(ctx, score)
}

func (m *Repository) ListSegmentScores(ctx context.Context, segmentID int64) ([]models.Score, error) {
	if m.ListSegmentScoresError != nil {
		return nil, m.ListSegmentScoresError
	}
	return m.FullRepository.ListSegmentScores(ctx, segmentID)
}

func (m *Repository) ListEventScores(ctx context.Context, eventID int64) ([]models.Score, error) {
	if m.ListEventScoresError != nil {
		return nil, m.ListEventScoresError
	}
	return m.FullRepository.ListEventScores(ctx, eventID)
}

// ===== Audit Methods =====

func (m *Repository) AppendAudit(ctx context.Context, actorID int64, action, detail string) error {
	if m.AppendAuditError != nil {
		return m.AppendAuditError
	}
	return m.FullRepository.AppendAudit(ctx, actorID, action, detail)
}

func (m *Repository) ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if m.ListAuditError != nil {
		return nil, m.ListAuditError
	}
	return m.FullRepository.ListAudit(ctx, limit)
}

// ===== Transaction Methods =====

func (m *Repository) InTx(ctx context.Context, fn func(repository.FullRepository) error) error {
	if m.InTxError != nil {
		return m.InTxError
	}
	return m.FullRepository.InTx(ctx, fn)
}
