package services

import (
	"context"
	"fmt"

	"github.com/kjdelacruz/stagetally/internal/errors"
	"github.com/kjdelacruz/stagetally/internal/logger"
	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/repository"
)

// LifecycleService drives round transitions: activation, final-round
// qualification with elimination, clincher-aware advancement, and manual
// elimination. Transitions that touch several tables run inside one
// transaction so a half-applied cutover can never be observed.
type LifecycleService struct {
	log       logger.Logger
	repo      repository.FullRepository
	standings *StandingsService
	audit     *AuditService
	b         Broadcaster
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(log logger.Logger, repo repository.FullRepository, standings *StandingsService, audit *AuditService) *LifecycleService {
	return &LifecycleService{log: log, repo: repo, standings: standings, audit: audit}
}

// SetBroadcaster wires the hub that pushes standings updates after
// transitions.
func (s *LifecycleService) SetBroadcaster(b Broadcaster) {
	s.b = b
}

// FinalRoundResult reports the outcome of activating a final round.
type FinalRoundResult struct {
	QualifiedIDs  []int64 `json:"qualified_ids"`
	EliminatedIDs []int64 `json:"eliminated_ids"`
}

// AdvanceResult reports the outcome of advancing past a quiz round.
type AdvanceResult struct {
	Concluded     bool    `json:"concluded"`
	NextRoundID   int64   `json:"next_round_id,omitempty"`
	NextRoundName string  `json:"next_round_name,omitempty"`
	EliminatedIDs []int64 `json:"eliminated_ids"`
}

// Activate makes segmentID the sole active segment of its event. While a
// final round is active, no other segment may take its place; the final must
// be deactivated explicitly first.
func (s *LifecycleService) Activate(ctx context.Context, actorID, segmentID int64) error {
	seg, err := s.repo.GetSegment(ctx, segmentID)
	if err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("segment %d not found", segmentID)
		}
		return err
	}

	segments, err := s.repo.ListSegments(ctx, seg.EventID)
	if err != nil {
		return err
	}
	for _, other := range segments {
		if other.IsActive && other.IsFinal() && other.ID != segmentID {
			return errors.Statef("final round %q is active; deactivate it before switching segments", other.Name)
		}
	}

	err = s.repo.InTx(ctx, func(tx repository.FullRepository) error {
		if err := tx.DeactivateSegments(ctx, seg.EventID); err != nil {
			return err
		}
		return tx.SetSegmentActive(ctx, segmentID, true)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, "ACTIVATE_SEGMENT", fmt.Sprintf("activated %q", seg.Name))
	s.notify(seg.EventID)
	return nil
}

// DeactivateAll clears the active segment of an event.
func (s *LifecycleService) DeactivateAll(ctx context.Context, actorID, eventID int64) error {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("event %d not found", eventID)
		}
		return err
	}
	if err := s.repo.DeactivateSegments(ctx, eventID); err != nil {
		return err
	}
	s.audit.Record(ctx, actorID, "DEACTIVATE_SEGMENTS", fmt.Sprintf("deactivated all segments of event %d", eventID))
	s.notify(eventID)
	return nil
}

// ActivateFinalRound cuts a pageant over to its final round: the top limit
// contestants per gender by cumulative standing qualify, everyone else is
// eliminated, and the final becomes the active segment with its participant
// list pinned to the qualifiers. Positional order breaks boundary ties, so
// exactly limit contestants per gender advance.
func (s *LifecycleService) ActivateFinalRound(ctx context.Context, actorID, eventID, finalSegmentID int64, limit int) (*FinalRoundResult, error) {
	if limit <= 0 {
		return nil, errors.Validation("qualifier limit must be positive")
	}

	seg, err := s.repo.GetSegment(ctx, finalSegmentID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("segment %d not found", finalSegmentID)
		}
		return nil, err
	}
	if seg.EventID != eventID {
		return nil, errors.NotFoundf("segment %d not found in event %d", finalSegmentID, eventID)
	}
	if !seg.IsFinal() {
		return nil, errors.Statef("segment %q is not a final round", seg.Name)
	}

	// Rankings read the score ledger, so compute them before opening the
	// transaction.
	breakdown, err := s.standings.OverallBreakdown(ctx, eventID)
	if err != nil {
		return nil, err
	}

	result := &FinalRoundResult{}
	for _, rows := range [][]OverallRow{breakdown.Male, breakdown.Female} {
		for i, row := range rows {
			if i < limit {
				result.QualifiedIDs = append(result.QualifiedIDs, row.ContestantID)
			} else {
				result.EliminatedIDs = append(result.EliminatedIDs, row.ContestantID)
			}
		}
	}

	err = s.repo.InTx(ctx, func(tx repository.FullRepository) error {
		for _, id := range result.EliminatedIDs {
			if err := tx.SetContestantStatus(ctx, id, models.StatusEliminated); err != nil {
				return err
			}
		}
		if err := tx.SetSegmentParticipants(ctx, finalSegmentID, result.QualifiedIDs); err != nil {
			return err
		}
		if err := tx.DeactivateSegments(ctx, eventID); err != nil {
			return err
		}
		if err := tx.SetSegmentActive(ctx, finalSegmentID, true); err != nil {
			return err
		}
		return tx.AppendAudit(ctx, actorID, "ACTIVATE_FINAL_ROUND",
			fmt.Sprintf("activated final round %q with %d qualifiers", seg.Name, len(result.QualifiedIDs)))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("final round activated", "segment", seg.Name,
		"qualified", len(result.QualifiedIDs), "eliminated", len(result.EliminatedIDs))
	s.notify(eventID)
	return result, nil
}

// AdvanceToNextRound closes a quiz round and opens the next one. Contestants
// at risk in the current round who are not in qualifiedIDs are eliminated;
// the qualifiers are merged into the next round's participant list. Clincher
// rounds are skipped when looking for the next round, and advancing out of a
// clincher resumes from its parent round's position. When no later round
// exists the event is concluded.
func (s *LifecycleService) AdvanceToNextRound(ctx context.Context, actorID, eventID, currentRoundID int64, qualifiedIDs []int64) (*AdvanceResult, error) {
	current, err := s.repo.GetSegment(ctx, currentRoundID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("round %d not found", currentRoundID)
		}
		return nil, err
	}
	if current.EventID != eventID {
		return nil, errors.NotFoundf("round %d not found in event %d", currentRoundID, eventID)
	}

	qualified := make(map[int64]bool, len(qualifiedIDs))
	for _, id := range qualifiedIDs {
		qualified[id] = true
	}

	// At risk: the round's own participant list when pinned, else every
	// still-active contestant.
	atRisk := current.ParticipantIDs
	if len(atRisk) == 0 {
		contestants, err := s.repo.ListContestants(ctx, eventID, true)
		if err != nil {
			return nil, err
		}
		for _, c := range contestants {
			atRisk = append(atRisk, c.ID)
		}
	}

	result := &AdvanceResult{}
	for _, id := range atRisk {
		if !qualified[id] {
			result.EliminatedIDs = append(result.EliminatedIDs, id)
		}
	}

	// Advancing out of a clincher resumes from the round it was attached to.
	baseOrder := current.OrderIndex
	if current.IsClincher() && current.RelatedSegmentID != nil {
		parent, err := s.repo.GetSegment(ctx, *current.RelatedSegmentID)
		if err == nil {
			baseOrder = parent.OrderIndex
		}
	}

	segments, err := s.repo.ListSegments(ctx, eventID)
	if err != nil {
		return nil, err
	}
	var next *models.Segment
	for i := range segments {
		seg := &segments[i]
		if seg.IsClincher() || seg.ID == currentRoundID {
			continue
		}
		if seg.OrderIndex > baseOrder && (next == nil || seg.OrderIndex < next.OrderIndex) {
			next = seg
		}
	}

	err = s.repo.InTx(ctx, func(tx repository.FullRepository) error {
		for _, id := range result.EliminatedIDs {
			if err := tx.SetContestantStatus(ctx, id, models.StatusEliminated); err != nil {
				return err
			}
		}
		if err := tx.DeactivateSegments(ctx, eventID); err != nil {
			return err
		}
		if next == nil {
			result.Concluded = true
			return tx.AppendAudit(ctx, actorID, "CONCLUDE_EVENT",
				fmt.Sprintf("concluded after %q, %d contestants eliminated", current.Name, len(result.EliminatedIDs)))
		}
		merged := mergeParticipants(next.ParticipantIDs, qualifiedIDs)
		if err := tx.SetSegmentParticipants(ctx, next.ID, merged); err != nil {
			return err
		}
		if err := tx.SetSegmentActive(ctx, next.ID, true); err != nil {
			return err
		}
		result.NextRoundID = next.ID
		result.NextRoundName = next.Name
		return tx.AppendAudit(ctx, actorID, "ADVANCE_ROUND",
			fmt.Sprintf("advanced from %q to %q, %d contestants eliminated", current.Name, next.Name, len(result.EliminatedIDs)))
	})
	if err != nil {
		return nil, err
	}

	s.notify(eventID)
	return result, nil
}

// EliminateContestants keeps only the listed contestants active: everyone
// else in the event is eliminated, and contestants in the list are restored
// to active in case an earlier elimination is being corrected.
func (s *LifecycleService) EliminateContestants(ctx context.Context, actorID, eventID int64, keepingIDs []int64) error {
	contestants, err := s.repo.ListContestants(ctx, eventID, false)
	if err != nil {
		return err
	}
	if len(contestants) == 0 {
		return errors.NotFoundf("event %d has no contestants", eventID)
	}

	keep := make(map[int64]bool, len(keepingIDs))
	for _, id := range keepingIDs {
		keep[id] = true
	}

	var eliminated int
	err = s.repo.InTx(ctx, func(tx repository.FullRepository) error {
		for _, c := range contestants {
			status := models.StatusEliminated
			if keep[c.ID] {
				status = models.StatusActive
			} else {
				eliminated++
			}
			if c.Status == status {
				continue
			}
			if err := tx.SetContestantStatus(ctx, c.ID, status); err != nil {
				return err
			}
		}
		return tx.AppendAudit(ctx, actorID, "ELIMINATE_CONTESTANTS",
			fmt.Sprintf("kept %d contestants active in event %d", len(keepingIDs), eventID))
	})
	if err != nil {
		return err
	}

	s.log.Info("contestants eliminated", "event_id", eventID, "eliminated", eliminated, "kept", len(keepingIDs))
	s.notify(eventID)
	return nil
}

func (s *LifecycleService) notify(eventID int64) {
	if s.b != nil {
		s.b.BroadcastStandings(eventID)
	}
}

// mergeParticipants unions newIDs into existing, preserving order and
// dropping duplicates.
func mergeParticipants(existing, newIDs []int64) []int64 {
	seen := make(map[int64]bool, len(existing)+len(newIDs))
	merged := make([]int64, 0, len(existing)+len(newIDs))
	for _, id := range existing {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	for _, id := range newIDs {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	return merged
}
