package services

import (
	"context"
	"math"
	"sort"

	"github.com/kjdelacruz/stagetally/internal/errors"
	"github.com/kjdelacruz/stagetally/internal/logger"
	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/repository"
)

// scoreEpsilon is the tolerance used when comparing aggregate percentages
// for rank equality.
const scoreEpsilon = 1e-9

// StandingsServiceRepository defines the repository methods needed by StandingsService
type StandingsServiceRepository interface {
	repository.EventRepository
	repository.SegmentRepository
	repository.CriteriaRepository
	repository.ContestantRepository
	repository.ScoreRepository
}

// StandingsService computes ranked standings from the score ledger: pageant
// tabulations on a 0-100 percentage basis and quiz running totals under
// cumulative, final-reset, and isolated scoring windows.
type StandingsService struct {
	log  logger.Logger
	repo StandingsServiceRepository
}

// NewStandingsService creates a new StandingsService
func NewStandingsService(log logger.Logger, repo StandingsServiceRepository) *StandingsService {
	return &StandingsService{log: log, repo: repo}
}

// TabulationRow is one contestant's line in a segment tabulation matrix.
// JudgeTotals aligns with the matrix's Judges column order; a nil entry means
// that judge has not scored this contestant.
type TabulationRow struct {
	ContestantID    int64      `json:"contestant_id"`
	CandidateNumber int        `json:"candidate_number"`
	Name            string     `json:"name"`
	JudgeTotals     []*float64 `json:"judge_totals"`
	Average         float64    `json:"average"`
	Rank            int        `json:"rank"`
}

// SegmentTabulationResult is the per-judge breakdown matrix for one segment,
// split by gender the way standings are displayed.
type SegmentTabulationResult struct {
	SegmentID   int64           `json:"segment_id"`
	SegmentName string          `json:"segment_name"`
	Judges      []int64         `json:"judges"`
	Male        []TabulationRow `json:"Male"`
	Female      []TabulationRow `json:"Female"`
}

// OverallRow is one contestant's line in the overall breakdown matrix.
// SegmentScores aligns with the matrix's Segments column order and holds the
// already-weighted contribution of each segment.
type OverallRow struct {
	ContestantID    int64     `json:"contestant_id"`
	CandidateNumber int       `json:"candidate_number"`
	Name            string    `json:"name"`
	SegmentScores   []float64 `json:"segment_scores"`
	Overall         float64   `json:"overall"`
	Rank            int       `json:"rank"`
}

// OverallBreakdownResult is the weighted cumulative standing across all
// non-final segments of a pageant.
type OverallBreakdownResult struct {
	Segments []string     `json:"segments"`
	Male     []OverallRow `json:"Male"`
	Female   []OverallRow `json:"Female"`
}

// LiveScore is one contestant's running total in a quiz standing. Totals are
// whole points; display rank is positional and assigned by the caller, unlike
// the dense-ranked pageant paths.
type LiveScore struct {
	ContestantID int64  `json:"contestant_id"`
	Name         string `json:"name"`
	Total        int    `json:"total_score"`
}

// TieReport describes the boundary of a qualification cutoff. When the score
// at the cutoff equals the score just past it, the tied group must be
// resolved by an operator (typically via a clincher round) rather than
// auto-broken by the engine.
type TieReport struct {
	HasTie          bool        `json:"has_tie"`
	CleanWinners    []LiveScore `json:"clean_winners"`
	TiedContestants []LiveScore `json:"tied_contestants"`
	SpotsRemaining  int         `json:"spots_remaining"`
}

// SegmentTabulation computes the per-judge, per-criterion breakdown of a
// pageant segment. Each judge's segment total for a contestant is
// sum(score/max_score * weight * 100); the contestant's average is the mean
// over the judges who scored them; ranks are dense per gender.
func (s *StandingsService) SegmentTabulation(ctx context.Context, eventID, segmentID int64) (*SegmentTabulationResult, error) {
	seg, err := s.repo.GetSegment(ctx, segmentID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("segment %d not found", segmentID)
		}
		return nil, err
	}
	if seg.EventID != eventID {
		return nil, errors.NotFoundf("segment %d not found in event %d", segmentID, eventID)
	}

	criteria, err := s.repo.ListCriteria(ctx, segmentID)
	if err != nil {
		return nil, err
	}
	critByID := make(map[int64]models.Criteria, len(criteria))
	for _, c := range criteria {
		critByID[c.ID] = c
	}

	contestants, err := s.eligibleContestants(ctx, eventID, seg, nil)
	if err != nil {
		return nil, err
	}
	eligible := make(map[int64]models.Contestant, len(contestants))
	for _, c := range contestants {
		eligible[c.ID] = c
	}

	scores, err := s.repo.ListSegmentScores(ctx, segmentID)
	if err != nil {
		return nil, err
	}

	// judge -> contestant -> weighted percentage total
	perJudge := make(map[int64]map[int64]float64)
	for _, score := range scores {
		if score.CriteriaID == nil {
			continue
		}
		crit, ok := critByID[*score.CriteriaID]
		if !ok || crit.MaxScore <= 0 {
			continue
		}
		if _, ok := eligible[score.ContestantID]; !ok {
			continue
		}
		contribution := score.Value / crit.MaxScore * crit.Weight * 100
		totals := perJudge[score.JudgeID]
		if totals == nil {
			totals = make(map[int64]float64)
			perJudge[score.JudgeID] = totals
		}
		totals[score.ContestantID] += contribution
	}

	judges := make([]int64, 0, len(perJudge))
	for judgeID := range perJudge {
		judges = append(judges, judgeID)
	}
	sort.Slice(judges, func(i, j int) bool { return judges[i] < judges[j] })

	result := &SegmentTabulationResult{
		SegmentID:   seg.ID,
		SegmentName: seg.Name,
		Judges:      judges,
	}

	buildRows := func(gender string) []TabulationRow {
		var rows []TabulationRow
		for _, c := range contestants {
			if c.Gender != gender {
				continue
			}
			row := TabulationRow{
				ContestantID:    c.ID,
				CandidateNumber: c.CandidateNumber,
				Name:            c.Name,
				JudgeTotals:     make([]*float64, len(judges)),
			}
			var sum float64
			var scored int
			for i, judgeID := range judges {
				if total, ok := perJudge[judgeID][c.ID]; ok {
					t := total
					row.JudgeTotals[i] = &t
					sum += total
					scored++
				}
			}
			if scored > 0 {
				row.Average = sum / float64(scored)
			}
			rows = append(rows, row)
		}
		sortAndDenseRank(rows,
			func(i, j int) bool { return rows[i].Average > rows[j].Average },
			func(i int) float64 { return rows[i].Average },
			func(i, rank int) { rows[i].Rank = rank })
		return rows
	}

	result.Male = buildRows("Male")
	result.Female = buildRows("Female")
	return result, nil
}

// OverallBreakdown computes each contestant's weighted cumulative standing:
// sum over the event's non-final segments of the contestant's segment
// average times the segment weight. Final rounds are a separate standings
// track and never fold into this tally.
func (s *StandingsService) OverallBreakdown(ctx context.Context, eventID int64) (*OverallBreakdownResult, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("event %d not found", eventID)
		}
		return nil, err
	}

	segments, err := s.repo.ListSegments(ctx, eventID)
	if err != nil {
		return nil, err
	}
	var prelim []models.Segment
	for _, seg := range segments {
		if !seg.IsFinal() {
			prelim = append(prelim, seg)
		}
	}

	contestants, err := s.repo.ListContestants(ctx, eventID, true)
	if err != nil {
		return nil, err
	}

	result := &OverallBreakdownResult{}
	// contestant -> per-segment weighted contributions, aligned with
	// result.Segments
	contributions := make(map[int64][]float64, len(contestants))
	for _, c := range contestants {
		contributions[c.ID] = make([]float64, len(prelim))
	}

	for i, seg := range prelim {
		result.Segments = append(result.Segments, seg.Name)
		averages, err := s.segmentAverages(ctx, &seg)
		if err != nil {
			return nil, err
		}
		for contestantID, avg := range averages {
			if row, ok := contributions[contestantID]; ok {
				row[i] = avg * seg.PercentageWeight
			}
		}
	}

	buildRows := func(gender string) []OverallRow {
		var rows []OverallRow
		for _, c := range contestants {
			if c.Gender != gender {
				continue
			}
			row := OverallRow{
				ContestantID:    c.ID,
				CandidateNumber: c.CandidateNumber,
				Name:            c.Name,
				SegmentScores:   contributions[c.ID],
			}
			for _, contribution := range row.SegmentScores {
				row.Overall += contribution
			}
			rows = append(rows, row)
		}
		sortAndDenseRank(rows,
			func(i, j int) bool { return rows[i].Overall > rows[j].Overall },
			func(i int) float64 { return rows[i].Overall },
			func(i, rank int) { rows[i].Rank = rank })
		return rows
	}

	result.Male = buildRows("Male")
	result.Female = buildRows("Female")
	return result, nil
}

// segmentAverages computes each eligible contestant's judge-averaged
// percentage for one segment.
func (s *StandingsService) segmentAverages(ctx context.Context, seg *models.Segment) (map[int64]float64, error) {
	criteria, err := s.repo.ListCriteria(ctx, seg.ID)
	if err != nil {
		return nil, err
	}
	critByID := make(map[int64]models.Criteria, len(criteria))
	for _, c := range criteria {
		critByID[c.ID] = c
	}

	scores, err := s.repo.ListSegmentScores(ctx, seg.ID)
	if err != nil {
		return nil, err
	}

	// contestant -> judge -> percentage total
	perContestant := make(map[int64]map[int64]float64)
	for _, score := range scores {
		if score.CriteriaID == nil {
			continue
		}
		crit, ok := critByID[*score.CriteriaID]
		if !ok || crit.MaxScore <= 0 {
			continue
		}
		judges := perContestant[score.ContestantID]
		if judges == nil {
			judges = make(map[int64]float64)
			perContestant[score.ContestantID] = judges
		}
		judges[score.JudgeID] += score.Value / crit.MaxScore * crit.Weight * 100
	}

	averages := make(map[int64]float64, len(perContestant))
	for contestantID, judges := range perContestant {
		var sum float64
		for _, total := range judges {
			sum += total
		}
		averages[contestantID] = sum / float64(len(judges))
	}
	return averages, nil
}

// LiveScores computes quiz running totals. The scoring window depends on the
// most relevant segment: the explicitly requested round, or the event's last
// round by position.
//
//  1. isolated: a clincher, or an explicitly requested non-final round, sums
//     only its own rows;
//  2. final-reset: a final round sums only rows of final rounds, starting
//     the standings from zero;
//  3. cumulative: everything else sums all rows except final and clincher
//     rounds.
//
// Only active contestants appear, intersected with the explicit participant
// list or the relevant segment's own allow-list.
func (s *StandingsService) LiveScores(ctx context.Context, eventID int64, specificRoundID *int64, participants []int64) ([]LiveScore, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("event %d not found", eventID)
		}
		return nil, err
	}

	segments, err := s.repo.ListSegments(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return []LiveScore{}, nil
	}

	var relevant *models.Segment
	if specificRoundID != nil {
		for i := range segments {
			if segments[i].ID == *specificRoundID {
				relevant = &segments[i]
				break
			}
		}
		if relevant == nil {
			return nil, errors.NotFoundf("round %d not found in event %d", *specificRoundID, eventID)
		}
	} else {
		relevant = &segments[len(segments)-1]
	}

	window := make(map[int64]bool)
	switch {
	case relevant.IsClincher() || (specificRoundID != nil && !relevant.IsFinal()):
		window[relevant.ID] = true
	case relevant.IsFinal():
		for _, seg := range segments {
			if seg.IsFinal() {
				window[seg.ID] = true
			}
		}
	default:
		for _, seg := range segments {
			if !seg.IsFinal() && !seg.IsClincher() {
				window[seg.ID] = true
			}
		}
	}

	contestants, err := s.eligibleContestants(ctx, eventID, relevant, participants)
	if err != nil {
		return nil, err
	}

	scores, err := s.repo.ListEventScores(ctx, eventID)
	if err != nil {
		return nil, err
	}
	totals := make(map[int64]float64)
	for _, score := range scores {
		if window[score.SegmentID] {
			totals[score.ContestantID] += score.Value
		}
	}

	results := make([]LiveScore, 0, len(contestants))
	for _, c := range contestants {
		results = append(results, LiveScore{
			ContestantID: c.ID,
			Name:         c.Name,
			Total:        int(totals[c.ID]),
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Total > results[j].Total })
	return results, nil
}

// CheckRoundTies inspects the qualification boundary of one round scored in
// isolation. A tie exists when the score at the cutoff position equals the
// score just below it; the engine reports the tied group and leaves the
// resolution to the operator.
func (s *StandingsService) CheckRoundTies(ctx context.Context, eventID, roundID int64, limit int) (*TieReport, error) {
	if limit <= 0 {
		return nil, errors.Validation("limit must be positive")
	}
	roundRef := roundID
	scores, err := s.LiveScores(ctx, eventID, &roundRef, nil)
	if err != nil {
		return nil, err
	}

	report := &TieReport{SpotsRemaining: 0}
	if len(scores) <= limit {
		report.CleanWinners = scores
		return report, nil
	}
	if scores[limit-1].Total != scores[limit].Total {
		report.CleanWinners = scores[:limit]
		return report, nil
	}

	boundary := scores[limit-1].Total
	for _, entry := range scores {
		switch {
		case entry.Total > boundary:
			report.CleanWinners = append(report.CleanWinners, entry)
		case entry.Total == boundary:
			report.TiedContestants = append(report.TiedContestants, entry)
		}
	}
	report.HasTie = true
	report.SpotsRemaining = limit - len(report.CleanWinners)
	return report, nil
}

// eligibleContestants returns the event's active contestants, narrowed by an
// explicit participant list when supplied, else by the segment's own
// allow-list when set.
func (s *StandingsService) eligibleContestants(ctx context.Context, eventID int64, seg *models.Segment, participants []int64) ([]models.Contestant, error) {
	contestants, err := s.repo.ListContestants(ctx, eventID, true)
	if err != nil {
		return nil, err
	}
	allowed := participants
	if len(allowed) == 0 && seg != nil {
		allowed = seg.ParticipantIDs
	}
	if len(allowed) == 0 {
		return contestants, nil
	}
	allowedSet := make(map[int64]bool, len(allowed))
	for _, id := range allowed {
		allowedSet[id] = true
	}
	var filtered []models.Contestant
	for _, c := range contestants {
		if allowedSet[c.ID] {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// sortAndDenseRank orders rows descending by score and assigns dense ranks:
// equal scores share a rank and the next distinct score continues at rank+1.
func sortAndDenseRank[T any](rows []T, less func(i, j int) bool, score func(i int) float64, setRank func(i, rank int)) {
	sort.SliceStable(rows, less)
	rank := 0
	prev := math.Inf(1)
	for i := range rows {
		if math.Abs(score(i)-prev) > scoreEpsilon {
			rank++
			prev = score(i)
		}
		setRank(i, rank)
	}
}
