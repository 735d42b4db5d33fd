package services_test

import (
	"context"
	"math"
	"testing"

	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/services"
)

// TestPageantFlow_EndToEnd walks a pageant from setup through the final
// round: three weighted segments, two judges, a top-two cutover, then a
// fresh final tabulation restricted to the qualifiers.
func TestPageantFlow_EndToEnd(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	f := setupPageant(t, ctx, ts)
	finalID := ts.addSegment(t, ctx, services.SegmentInput{
		EventID: f.eventID, Name: "Final Q&A", OrderIndex: 9, Kind: models.RoundFinal, QualifierLimit: 2,
	})
	finalCrit := ts.addCriteria(t, ctx, services.CriteriaInput{
		SegmentID: finalID, Name: "Final Answer", Weight: 100, MaxScore: 100,
	})

	names := []string{"Alice", "Bea", "Cara", "Dana"}
	prelims := []float64{90, 85, 70, 60}
	var ids []int64
	for i, name := range names {
		id := ts.addContestant(t, ctx, f.eventID, i+1, name, "Female")
		ids = append(ids, id)
		for _, critID := range f.criteria {
			ts.submitScore(t, ctx, 7, id, critID, prelims[i])
			ts.submitScore(t, ctx, 8, id, critID, prelims[i])
		}
	}

	// Cut over to the final: Alice and Bea qualify
	result, err := ts.Lifecycle.ActivateFinalRound(ctx, testActor, f.eventID, finalID, 2)
	if err != nil {
		t.Fatalf("ActivateFinalRound failed: %v", err)
	}
	if len(result.QualifiedIDs) != 2 {
		t.Fatalf("expected 2 qualifiers, got %d", len(result.QualifiedIDs))
	}

	// Preliminary standings do not leak into the final: Bea can win it
	ts.submitScore(t, ctx, 7, ids[0], finalCrit, 80)
	ts.submitScore(t, ctx, 7, ids[1], finalCrit, 95)

	tab, err := ts.Standings.SegmentTabulation(ctx, f.eventID, finalID)
	if err != nil {
		t.Fatalf("SegmentTabulation failed: %v", err)
	}
	if len(tab.Female) != 2 {
		t.Fatalf("expected only the 2 finalists, got %d rows", len(tab.Female))
	}
	if tab.Female[0].Name != "Bea" || tab.Female[0].Rank != 1 {
		t.Errorf("expected Bea to lead the final, got %s at rank %d", tab.Female[0].Name, tab.Female[0].Rank)
	}

	// Eliminated contestants cannot be scored in the final
	if err := ts.Ledger.SubmitCriteriaScore(ctx, 7, ids[3], finalCrit, 50); err == nil {
		t.Error("expected error scoring an eliminated contestant in the final, got nil")
	}

	// The prelim overall standings still read 90/85/70/60 weighted
	breakdown, err := ts.Standings.OverallBreakdown(ctx, f.eventID)
	if err != nil {
		t.Fatalf("OverallBreakdown failed: %v", err)
	}
	// Only active contestants appear; Cara and Dana were eliminated
	if len(breakdown.Female) != 2 {
		t.Errorf("expected 2 active rows in overall standings, got %d", len(breakdown.Female))
	}
	if math.Abs(breakdown.Female[0].Overall-90.0) > 1e-9 {
		t.Errorf("expected Alice's prelim overall 90.0, got %g", breakdown.Female[0].Overall)
	}
}

// TestQuizFlow_EndToEnd walks a quiz bee through a tied elimination round, a
// clincher, and advancement into the next round.
func TestQuizFlow_EndToEnd(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	eventID, elims, teams := setupQuiz(t, ctx, ts)
	semis := ts.addQuizRound(t, ctx, services.QuizRoundInput{
		EventID: eventID, Name: "Semifinals", PointsPerQuestion: 15, TotalQuestions: 10, OrderIndex: 2,
	})

	correct := []int{10, 9, 8, 8, 8, 6}
	for i, id := range teams {
		ts.submitAnswers(t, ctx, id, elims, correct[i])
	}

	report, err := ts.Standings.CheckRoundTies(ctx, eventID, elims, 4)
	if err != nil {
		t.Fatalf("CheckRoundTies failed: %v", err)
	}
	if !report.HasTie || report.SpotsRemaining != 2 {
		t.Fatalf("expected tie with 2 spots remaining, got %+v", report)
	}

	// Run a clincher among the three tied teams for the two open spots
	var tiedIDs []int64
	for _, entry := range report.TiedContestants {
		tiedIDs = append(tiedIDs, entry.ContestantID)
	}
	clincher := ts.addQuizRound(t, ctx, services.QuizRoundInput{
		EventID: eventID, Name: "Tie-Breaker", PointsPerQuestion: 1, TotalQuestions: 3,
		OrderIndex: 1, Kind: models.RoundClincher, RelatedSegmentID: &elims,
	})
	if err := ts.Repo.SetSegmentParticipants(ctx, clincher, tiedIDs); err != nil {
		t.Fatalf("SetSegmentParticipants failed: %v", err)
	}
	clincherCorrect := []int{3, 2, 1}
	for i, id := range tiedIDs {
		ts.submitAnswers(t, ctx, id, clincher, clincherCorrect[i])
	}

	clincherScores, err := ts.Standings.LiveScores(ctx, eventID, &clincher, nil)
	if err != nil {
		t.Fatalf("LiveScores failed: %v", err)
	}
	if len(clincherScores) != 3 {
		t.Fatalf("expected 3 clincher rows, got %d", len(clincherScores))
	}

	// Winners: the two clean qualifiers plus the clincher's top two
	qualified := []int64{
		report.CleanWinners[0].ContestantID,
		report.CleanWinners[1].ContestantID,
		clincherScores[0].ContestantID,
		clincherScores[1].ContestantID,
	}
	result, err := ts.Lifecycle.AdvanceToNextRound(ctx, testActor, eventID, clincher, qualified)
	if err != nil {
		t.Fatalf("AdvanceToNextRound failed: %v", err)
	}
	if result.Concluded {
		t.Fatal("expected advancement into semifinals, got concluded")
	}
	if result.NextRoundID != semis {
		t.Errorf("expected next round %d, got %d", semis, result.NextRoundID)
	}
	// Only the clincher's own participants were at risk: its loser goes out
	if len(result.EliminatedIDs) != 1 {
		t.Errorf("expected 1 elimination from the tie-breaker, got %d", len(result.EliminatedIDs))
	}

	// Sweep the remaining non-qualifiers out of the roster
	if err := ts.Lifecycle.EliminateContestants(ctx, testActor, eventID, qualified); err != nil {
		t.Fatalf("EliminateContestants failed: %v", err)
	}

	// The semifinal standings start from zero for the four survivors
	scores, err := ts.Standings.LiveScores(ctx, eventID, &semis, nil)
	if err != nil {
		t.Fatalf("LiveScores failed: %v", err)
	}
	if len(scores) != 4 {
		t.Fatalf("expected 4 semifinalists, got %d", len(scores))
	}
	for _, s := range scores {
		if s.Total != 0 {
			t.Errorf("expected fresh semifinal totals, got %d for %s", s.Total, s.Name)
		}
	}
}
