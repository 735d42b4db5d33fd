package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/kjdelacruz/stagetally/internal/errors"
	"github.com/kjdelacruz/stagetally/internal/logger"
	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/repository"
)

// weightSumTolerance bounds the float drift allowed before a weight sum is
// reported incomplete.
const weightSumTolerance = 1e-3

// RegistryServiceRepository defines the repository methods needed by RegistryService
type RegistryServiceRepository interface {
	repository.SegmentRepository
	repository.CriteriaRepository
	repository.EventRepository
	repository.AuditRepository
}

// RegistryService maintains the scoring structure of an event: pageant
// segments with their criteria, and quiz rounds.
type RegistryService struct {
	log  logger.Logger
	repo RegistryServiceRepository
}

// NewRegistryService creates a new RegistryService
func NewRegistryService(log logger.Logger, repo RegistryServiceRepository) *RegistryService {
	return &RegistryService{log: log, repo: repo}
}

// SegmentInput carries the fields for creating or updating a pageant segment.
// Weight is raw operator input and goes through NormalizeWeight.
type SegmentInput struct {
	EventID          int64
	Name             string
	Weight           float64
	OrderIndex       int
	Kind             models.RoundKind
	QualifierLimit   int
	RelatedSegmentID *int64
}

// QuizRoundInput carries the fields for creating or updating a quiz round
type QuizRoundInput struct {
	EventID           int64
	Name              string
	PointsPerQuestion float64
	TotalQuestions    int
	OrderIndex        int
	Kind              models.RoundKind
	RelatedSegmentID  *int64
}

// CriteriaInput carries the fields for creating or updating a criteria.
// Weight is raw operator input and goes through NormalizeWeight.
type CriteriaInput struct {
	SegmentID int64
	Name      string
	Weight    float64
	MaxScore  float64
}

// WeightReport surfaces an advisory weight-sum check. Deviation is how far
// the total is from 1.0; writes are never blocked on it.
type WeightReport struct {
	Total     float64 `json:"total"`
	Deviation float64 `json:"deviation"`
	Complete  bool    `json:"complete"`
}

// checkOrderIndex rejects an order_index already used by another segment of
// the event. Clincher sub-rounds are exempt: they share or follow their
// parent's position.
func (s *RegistryService) checkOrderIndex(ctx context.Context, eventID int64, orderIndex int, excludeID int64, relatedSegmentID *int64) error {
	if relatedSegmentID != nil {
		return nil
	}
	taken, err := s.repo.OrderIndexTaken(ctx, eventID, orderIndex, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return errors.Conflictf("order index %d is already used in this event", orderIndex)
	}
	return nil
}

// AddSegment creates a pageant segment
func (s *RegistryService) AddSegment(ctx context.Context, actorID int64, in SegmentInput) (int64, error) {
	seg, err := s.buildSegment(ctx, in)
	if err != nil {
		return 0, err
	}
	if err := s.checkOrderIndex(ctx, in.EventID, in.OrderIndex, 0, in.RelatedSegmentID); err != nil {
		return 0, err
	}

	id, err := s.repo.CreateSegment(ctx, seg)
	if err != nil {
		return 0, err
	}
	s.audit(ctx, actorID, "ADD_SEGMENT", fmt.Sprintf("Added segment %q (%s)", seg.Name, seg.Kind))
	return id, nil
}

// UpdateSegment updates a pageant segment. Changing order_index to its own
// current value is a no-op collision-wise and always passes the check.
func (s *RegistryService) UpdateSegment(ctx context.Context, actorID, segmentID int64, in SegmentInput) error {
	existing, err := s.getSegment(ctx, segmentID)
	if err != nil {
		return err
	}
	in.EventID = existing.EventID

	seg, err := s.buildSegment(ctx, in)
	if err != nil {
		return err
	}
	if err := s.checkOrderIndex(ctx, existing.EventID, in.OrderIndex, segmentID, in.RelatedSegmentID); err != nil {
		return err
	}

	seg.ID = segmentID
	seg.IsActive = existing.IsActive
	seg.ParticipantIDs = existing.ParticipantIDs
	if err := s.repo.UpdateSegment(ctx, seg); err != nil {
		return err
	}
	s.audit(ctx, actorID, "UPDATE_SEGMENT", fmt.Sprintf("Updated segment %q", seg.Name))
	return nil
}

// DeleteSegment removes a segment; its criteria and scores cascade
func (s *RegistryService) DeleteSegment(ctx context.Context, actorID, segmentID int64) error {
	return s.deleteRound(ctx, actorID, segmentID, "DELETE_SEGMENT", "segment")
}

func (s *RegistryService) buildSegment(ctx context.Context, in SegmentInput) (*models.Segment, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, errors.Validation("segment name is required")
	}
	if _, err := s.repo.GetEvent(ctx, in.EventID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("event %d not found", in.EventID)
		}
		return nil, err
	}

	kind := in.Kind
	if kind == "" {
		kind = models.RoundNormal
	}
	switch kind {
	case models.RoundNormal, models.RoundFinal, models.RoundClincher:
	default:
		return nil, errors.Validationf("unknown round kind %q", kind)
	}

	var weight float64
	if kind == models.RoundFinal {
		// Final rounds carry no preliminary weight; their scoring starts
		// from zero.
		if in.QualifierLimit <= 0 {
			return nil, errors.Validation("final round needs a positive qualifier limit")
		}
	} else {
		var err error
		weight, err = NormalizeWeight(in.Weight)
		if err != nil {
			return nil, err
		}
	}

	if in.RelatedSegmentID != nil {
		if _, err := s.getSegment(ctx, *in.RelatedSegmentID); err != nil {
			return nil, err
		}
	}

	return &models.Segment{
		EventID:          in.EventID,
		Name:             in.Name,
		OrderIndex:       in.OrderIndex,
		PercentageWeight: weight,
		Kind:             kind,
		QualifierLimit:   in.QualifierLimit,
		RelatedSegmentID: in.RelatedSegmentID,
	}, nil
}

// AddQuizRound creates a quiz round
func (s *RegistryService) AddQuizRound(ctx context.Context, actorID int64, in QuizRoundInput) (int64, error) {
	seg, err := s.buildQuizRound(ctx, in)
	if err != nil {
		return 0, err
	}
	if err := s.checkOrderIndex(ctx, in.EventID, in.OrderIndex, 0, in.RelatedSegmentID); err != nil {
		return 0, err
	}

	id, err := s.repo.CreateSegment(ctx, seg)
	if err != nil {
		return 0, err
	}
	s.audit(ctx, actorID, "ADD_QUIZ_ROUND",
		fmt.Sprintf("Added round %q (%g pts x %d questions)", seg.Name, seg.PointsPerQuestion, seg.TotalQuestions))
	return id, nil
}

// UpdateQuizRound updates a quiz round
func (s *RegistryService) UpdateQuizRound(ctx context.Context, actorID, roundID int64, in QuizRoundInput) error {
	existing, err := s.getSegment(ctx, roundID)
	if err != nil {
		return err
	}
	in.EventID = existing.EventID

	seg, err := s.buildQuizRound(ctx, in)
	if err != nil {
		return err
	}
	if err := s.checkOrderIndex(ctx, existing.EventID, in.OrderIndex, roundID, in.RelatedSegmentID); err != nil {
		return err
	}

	seg.ID = roundID
	seg.IsActive = existing.IsActive
	seg.ParticipantIDs = existing.ParticipantIDs
	seg.QualifierLimit = existing.QualifierLimit
	if err := s.repo.UpdateSegment(ctx, seg); err != nil {
		return err
	}
	s.audit(ctx, actorID, "UPDATE_QUIZ_ROUND", fmt.Sprintf("Updated round %q", seg.Name))
	return nil
}

// DeleteQuizRound removes a quiz round; its scores cascade
func (s *RegistryService) DeleteQuizRound(ctx context.Context, actorID, roundID int64) error {
	return s.deleteRound(ctx, actorID, roundID, "DELETE_QUIZ_ROUND", "round")
}

func (s *RegistryService) buildQuizRound(ctx context.Context, in QuizRoundInput) (*models.Segment, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, errors.Validation("round name is required")
	}
	if in.PointsPerQuestion <= 0 {
		return nil, errors.Validation("points per question must be positive")
	}
	if in.TotalQuestions <= 0 {
		return nil, errors.Validation("total questions must be positive")
	}
	if _, err := s.repo.GetEvent(ctx, in.EventID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("event %d not found", in.EventID)
		}
		return nil, err
	}

	kind := in.Kind
	if kind == "" {
		kind = models.RoundNormal
	}
	switch kind {
	case models.RoundNormal, models.RoundFinal, models.RoundClincher:
	default:
		return nil, errors.Validationf("unknown round kind %q", kind)
	}

	if in.RelatedSegmentID != nil {
		if _, err := s.getSegment(ctx, *in.RelatedSegmentID); err != nil {
			return nil, err
		}
	}

	return &models.Segment{
		EventID:           in.EventID,
		Name:              in.Name,
		OrderIndex:        in.OrderIndex,
		Kind:              kind,
		PointsPerQuestion: in.PointsPerQuestion,
		TotalQuestions:    in.TotalQuestions,
		RelatedSegmentID:  in.RelatedSegmentID,
	}, nil
}

func (s *RegistryService) deleteRound(ctx context.Context, actorID, segmentID int64, action, noun string) error {
	seg, err := s.getSegment(ctx, segmentID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteSegment(ctx, segmentID); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("segment %d not found", segmentID)
		}
		return err
	}
	s.audit(ctx, actorID, action, fmt.Sprintf("Deleted %s %q and its scores", noun, seg.Name))
	return nil
}

// AddCriteria creates a judged criteria within a pageant segment
func (s *RegistryService) AddCriteria(ctx context.Context, actorID int64, in CriteriaInput) (int64, error) {
	crit, err := s.buildCriteria(ctx, in)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.CreateCriteria(ctx, crit)
	if err != nil {
		return 0, err
	}
	s.audit(ctx, actorID, "ADD_CRITERIA", fmt.Sprintf("Added criteria %q", crit.Name))
	return id, nil
}

// UpdateCriteria updates a criteria
func (s *RegistryService) UpdateCriteria(ctx context.Context, actorID, criteriaID int64, in CriteriaInput) error {
	existing, err := s.repo.GetCriteria(ctx, criteriaID)
	if err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("criteria %d not found", criteriaID)
		}
		return err
	}
	in.SegmentID = existing.SegmentID

	crit, err := s.buildCriteria(ctx, in)
	if err != nil {
		return err
	}
	crit.ID = criteriaID
	if err := s.repo.UpdateCriteria(ctx, crit); err != nil {
		return err
	}
	s.audit(ctx, actorID, "UPDATE_CRITERIA", fmt.Sprintf("Updated criteria %q", crit.Name))
	return nil
}

// DeleteCriteria removes a criteria; its scores cascade
func (s *RegistryService) DeleteCriteria(ctx context.Context, actorID, criteriaID int64) error {
	crit, err := s.repo.GetCriteria(ctx, criteriaID)
	if err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("criteria %d not found", criteriaID)
		}
		return err
	}
	if err := s.repo.DeleteCriteria(ctx, criteriaID); err != nil {
		return err
	}
	s.audit(ctx, actorID, "DELETE_CRITERIA", fmt.Sprintf("Deleted criteria %q", crit.Name))
	return nil
}

func (s *RegistryService) buildCriteria(ctx context.Context, in CriteriaInput) (*models.Criteria, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, errors.Validation("criteria name is required")
	}
	if in.MaxScore <= 0 {
		return nil, errors.Validation("max score must be positive")
	}
	weight, err := NormalizeWeight(in.Weight)
	if err != nil {
		return nil, err
	}
	if _, err := s.getSegment(ctx, in.SegmentID); err != nil {
		return nil, err
	}
	return &models.Criteria{
		SegmentID: in.SegmentID,
		Name:      in.Name,
		Weight:    weight,
		MaxScore:  in.MaxScore,
	}, nil
}

// ListSegments returns an event's segments ordered by position
func (s *RegistryService) ListSegments(ctx context.Context, eventID int64) ([]models.Segment, error) {
	return s.repo.ListSegments(ctx, eventID)
}

// ListCriteria returns a segment's criteria
func (s *RegistryService) ListCriteria(ctx context.Context, segmentID int64) ([]models.Criteria, error) {
	return s.repo.ListCriteria(ctx, segmentID)
}

// WeightStatus reports how far the non-final segment weights of an event are
// from summing to 1.0. Advisory only: deviations are surfaced, never enforced.
func (s *RegistryService) WeightStatus(ctx context.Context, eventID int64) (*WeightReport, error) {
	segments, err := s.repo.ListSegments(ctx, eventID)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, seg := range segments {
		if !seg.IsFinal() {
			total += seg.PercentageWeight
		}
	}
	return weightReport(total), nil
}

// CriteriaWeightStatus is the same advisory check for criteria weights
// within one segment.
func (s *RegistryService) CriteriaWeightStatus(ctx context.Context, segmentID int64) (*WeightReport, error) {
	criteria, err := s.repo.ListCriteria(ctx, segmentID)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, crit := range criteria {
		total += crit.Weight
	}
	return weightReport(total), nil
}

func weightReport(total float64) *WeightReport {
	deviation := total - 1.0
	return &WeightReport{
		Total:     total,
		Deviation: deviation,
		Complete:  math.Abs(deviation) <= weightSumTolerance,
	}
}

func (s *RegistryService) getSegment(ctx context.Context, id int64) (*models.Segment, error) {
	seg, err := s.repo.GetSegment(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("segment %d not found", id)
	}
	return seg, err
}

func (s *RegistryService) audit(ctx context.Context, actorID int64, action, detail string) {
	if err := s.repo.AppendAudit(ctx, actorID, action, detail); err != nil {
		s.log.Error("Failed to write audit entry", "action", action, "error", err)
	}
}
