package services

import (
	"context"

	"github.com/kjdelacruz/stagetally/internal/errors"
	"github.com/kjdelacruz/stagetally/internal/logger"
	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/repository"
)

// Broadcaster defines the interface for pushing standings updates to
// connected display clients.
type Broadcaster interface {
	BroadcastStandings(eventID int64)
}

// LedgerServiceRepository defines the repository methods needed by LedgerService
type LedgerServiceRepository interface {
	repository.ScoreRepository
	repository.CriteriaRepository
	repository.SegmentRepository
	repository.ContestantRepository
}

// LedgerService records score entries. Every submission is an idempotent
// upsert on the entry's natural key: resubmitting overwrites the existing
// row, it never duplicates it.
type LedgerService struct {
	log         logger.Logger
	repo        LedgerServiceRepository
	broadcaster Broadcaster
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(log logger.Logger, repo LedgerServiceRepository) *LedgerService {
	return &LedgerService{log: log, repo: repo}
}

// SetBroadcaster attaches the standings push hub
func (s *LedgerService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SubmitCriteriaScore records a judge's score for one contestant on one
// pageant criteria, keyed by (contestant, segment, criteria).
func (s *LedgerService) SubmitCriteriaScore(ctx context.Context, judgeID, contestantID, criteriaID int64, value float64) error {
	crit, err := s.repo.GetCriteria(ctx, criteriaID)
	if err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("criteria %d not found", criteriaID)
		}
		return err
	}
	if value < 0 || value > crit.MaxScore {
		return errors.Validationf("score must be between 0 and %g", crit.MaxScore)
	}

	seg, err := s.repo.GetSegment(ctx, crit.SegmentID)
	if err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("segment %d not found", crit.SegmentID)
		}
		return err
	}
	if err := s.checkContestant(ctx, contestantID, seg); err != nil {
		return err
	}

	existing, err := s.repo.FindCriteriaScore(ctx, contestantID, seg.ID, criteriaID)
	switch err {
	case nil:
		existing.JudgeID = judgeID
		existing.Value = value
		if err := s.repo.UpdateScore(ctx, existing); err != nil {
			return err
		}
	case repository.ErrNotFound:
		critID := criteriaID
		_, err := s.repo.InsertScore(ctx, &models.Score{
			ContestantID: contestantID,
			SegmentID:    seg.ID,
			JudgeID:      judgeID,
			CriteriaID:   &critID,
			Value:        value,
		})
		if err != nil {
			return err
		}
	default:
		return err
	}

	s.log.Debug("Criteria score recorded",
		"judge_id", judgeID, "contestant_id", contestantID, "criteria_id", criteriaID, "value", value)
	s.notify(seg.EventID)
	return nil
}

// SubmitAnswer records a correct/wrong answer for one quiz question, keyed
// by (contestant, round, question). The awarded points are derived from the
// round settings; callers never supply a raw quiz score.
func (s *LedgerService) SubmitAnswer(ctx context.Context, tabulatorID, contestantID, roundID int64, questionNumber int, isCorrect bool) error {
	seg, err := s.repo.GetSegment(ctx, roundID)
	if err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("round %d not found", roundID)
		}
		return err
	}
	if seg.TotalQuestions <= 0 {
		return errors.Validationf("segment %q is not a quiz round", seg.Name)
	}
	if questionNumber < 1 || questionNumber > seg.TotalQuestions {
		return errors.Validationf("question number must be between 1 and %d", seg.TotalQuestions)
	}
	if err := s.checkContestant(ctx, contestantID, seg); err != nil {
		return err
	}

	var points float64
	if isCorrect {
		points = seg.PointsPerQuestion
	}
	correct := isCorrect

	existing, err := s.repo.FindAnswerScore(ctx, contestantID, roundID, questionNumber)
	switch err {
	case nil:
		existing.JudgeID = tabulatorID
		existing.IsCorrect = &correct
		existing.Value = points
		if err := s.repo.UpdateScore(ctx, existing); err != nil {
			return err
		}
	case repository.ErrNotFound:
		question := questionNumber
		_, err := s.repo.InsertScore(ctx, &models.Score{
			ContestantID:   contestantID,
			SegmentID:      roundID,
			JudgeID:        tabulatorID,
			QuestionNumber: &question,
			IsCorrect:      &correct,
			Value:          points,
		})
		if err != nil {
			return err
		}
	default:
		return err
	}

	s.log.Debug("Answer recorded",
		"tabulator_id", tabulatorID, "contestant_id", contestantID, "round_id", roundID,
		"question", questionNumber, "correct", isCorrect)
	s.notify(seg.EventID)
	return nil
}

// checkContestant verifies the contestant belongs to the segment's event and
// is allowed to be scored in it.
func (s *LedgerService) checkContestant(ctx context.Context, contestantID int64, seg *models.Segment) error {
	c, err := s.repo.GetContestant(ctx, contestantID)
	if err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("contestant %d not found", contestantID)
		}
		return err
	}
	if c.EventID != seg.EventID {
		return errors.Validationf("contestant %d does not belong to this event", contestantID)
	}
	if !seg.Permits(contestantID) {
		return errors.Validationf("contestant %d is not participating in %q", contestantID, seg.Name)
	}
	return nil
}

func (s *LedgerService) notify(eventID int64) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastStandings(eventID)
	}
}
