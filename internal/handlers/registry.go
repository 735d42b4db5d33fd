package handlers

import (
	"net/http"

	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/services"
)

func segmentInputFromRequest(eventID int64, req SegmentCreateRequest) services.SegmentInput {
	return services.SegmentInput{
		EventID:          eventID,
		Name:             req.Name,
		Weight:           req.Weight,
		OrderIndex:       req.OrderIndex,
		Kind:             models.RoundKind(req.Kind),
		QualifierLimit:   req.QualifierLimit,
		RelatedSegmentID: req.RelatedSegmentID,
	}
}

func quizRoundInputFromRequest(eventID int64, req QuizRoundCreateRequest) services.QuizRoundInput {
	return services.QuizRoundInput{
		EventID:           eventID,
		Name:              req.Name,
		PointsPerQuestion: req.PointsPerQuestion,
		TotalQuestions:    req.TotalQuestions,
		OrderIndex:        req.OrderIndex,
		Kind:              models.RoundKind(req.Kind),
		RelatedSegmentID:  req.RelatedSegmentID,
	}
}

// handleListSegments returns an event's segments in stage order
func (h *Handlers) handleListSegments(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	segments, err := h.Registry.ListSegments(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, segments)
}

// handleAddSegment creates a pageant segment
func (h *Handlers) handleAddSegment(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req SegmentCreateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Registry.AddSegment(r.Context(), req.ActorID, segmentInputFromRequest(eventID, req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]int64{"id": id})
}

// handleUpdateSegment updates a pageant segment
func (h *Handlers) handleUpdateSegment(w http.ResponseWriter, r *http.Request) {
	segmentID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req SegmentCreateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Registry.UpdateSegment(r.Context(), req.ActorID, segmentID, segmentInputFromRequest(0, req)); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Segment updated")
}

// handleDeleteSegment deletes a pageant segment and its criteria and scores
func (h *Handlers) handleDeleteSegment(w http.ResponseWriter, r *http.Request) {
	segmentID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req DeleteRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Registry.DeleteSegment(r.Context(), req.ActorID, segmentID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Segment deleted")
}

// handleAddQuizRound creates a quiz round
func (h *Handlers) handleAddQuizRound(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req QuizRoundCreateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Registry.AddQuizRound(r.Context(), req.ActorID, quizRoundInputFromRequest(eventID, req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]int64{"id": id})
}

// handleUpdateQuizRound updates a quiz round
func (h *Handlers) handleUpdateQuizRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req QuizRoundCreateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Registry.UpdateQuizRound(r.Context(), req.ActorID, roundID, quizRoundInputFromRequest(0, req)); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Round updated")
}

// handleDeleteQuizRound deletes a quiz round and its scores
func (h *Handlers) handleDeleteQuizRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req DeleteRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Registry.DeleteQuizRound(r.Context(), req.ActorID, roundID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Round deleted")
}

// handleListCriteria returns a segment's judging criteria
func (h *Handlers) handleListCriteria(w http.ResponseWriter, r *http.Request) {
	segmentID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	criteria, err := h.Registry.ListCriteria(r.Context(), segmentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, criteria)
}

// handleAddCriteria creates a judging criterion under a segment
func (h *Handlers) handleAddCriteria(w http.ResponseWriter, r *http.Request) {
	segmentID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req CriteriaCreateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Registry.AddCriteria(r.Context(), req.ActorID, services.CriteriaInput{
		SegmentID: segmentID,
		Name:      req.Name,
		Weight:    req.Weight,
		MaxScore:  req.MaxScore,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]int64{"id": id})
}

// handleUpdateCriteria updates a judging criterion
func (h *Handlers) handleUpdateCriteria(w http.ResponseWriter, r *http.Request) {
	criteriaID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req CriteriaCreateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Registry.UpdateCriteria(r.Context(), req.ActorID, criteriaID, services.CriteriaInput{
		Name:     req.Name,
		Weight:   req.Weight,
		MaxScore: req.MaxScore,
	}); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Criteria updated")
}

// handleDeleteCriteria deletes a judging criterion and its scores
func (h *Handlers) handleDeleteCriteria(w http.ResponseWriter, r *http.Request) {
	criteriaID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req DeleteRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Registry.DeleteCriteria(r.Context(), req.ActorID, criteriaID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Criteria deleted")
}

// handleWeightStatus reports whether the event's segment weights sum to 100%
func (h *Handlers) handleWeightStatus(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := h.Registry.WeightStatus(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, report)
}

// handleCriteriaWeightStatus reports whether a segment's criteria weights sum
// to 100%
func (h *Handlers) handleCriteriaWeightStatus(w http.ResponseWriter, r *http.Request) {
	segmentID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := h.Registry.CriteriaWeightStatus(r.Context(), segmentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, report)
}
