package handlers

import (
	"net/http"
	"strconv"
)

// handleActivateSegment makes a segment the event's sole active one
func (h *Handlers) handleActivateSegment(w http.ResponseWriter, r *http.Request) {
	segmentID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ActivateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Lifecycle.Activate(r.Context(), req.ActorID, segmentID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Segment activated")
}

// handleDeactivateSegments clears the event's active segment
func (h *Handlers) handleDeactivateSegments(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ActivateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Lifecycle.DeactivateAll(r.Context(), req.ActorID, eventID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Segments deactivated")
}

// handleActivateFinalRound qualifies the top contestants into a final round
// and eliminates the rest
func (h *Handlers) handleActivateFinalRound(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req FinalRoundRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Lifecycle.ActivateFinalRound(r.Context(), req.ActorID, eventID, req.SegmentID, req.QualifierLimit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleAdvanceRound closes a quiz round and opens the next one
func (h *Handlers) handleAdvanceRound(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req AdvanceRoundRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Lifecycle.AdvanceToNextRound(r.Context(), req.ActorID, eventID, req.CurrentRoundID, req.QualifiedIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleEliminateContestants keeps only the listed contestants active
func (h *Handlers) handleEliminateContestants(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req EliminateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Lifecycle.EliminateContestants(r.Context(), req.ActorID, eventID, req.KeepingIDs); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Contestants eliminated")
}

// handleListAudit returns the most recent audit trail entries
func (h *Handlers) handleListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, BadRequest("Invalid limit parameter"))
			return
		}
		limit = parsed
	}

	entries, err := h.Audit.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, entries)
}
