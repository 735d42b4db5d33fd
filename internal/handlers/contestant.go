package handlers

import (
	"net/http"

	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/services"
)

// handleListContestants returns an event's contestants, optionally only the
// still-active ones
func (h *Handlers) handleListContestants(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	contestants, err := h.Contestant.ListContestants(r.Context(), eventID, activeOnly)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, contestants)
}

// handleAddContestant registers a contestant under an event
func (h *Handlers) handleAddContestant(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ContestantCreateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Contestant.AddContestant(r.Context(), req.ActorID, services.ContestantInput{
		EventID:         eventID,
		CandidateNumber: req.CandidateNumber,
		Name:            req.Name,
		Gender:          req.Gender,
		ImagePath:       req.ImagePath,
		TabulatorID:     req.TabulatorID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]int64{"id": id})
}

// handleGetContestant returns one contestant
func (h *Handlers) handleGetContestant(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	contestant, err := h.Contestant.GetContestant(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, contestant)
}

// handleOverrideStatus manually flips a contestant between active and
// eliminated
func (h *Handlers) handleOverrideStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ContestantStatusRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Contestant.OverrideStatus(r.Context(), req.ActorID, id, models.ContestantStatus(req.Status)); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Contestant status updated")
}

// handleRemoveContestant deletes a contestant and their scores
func (h *Handlers) handleRemoveContestant(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req DeleteRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Contestant.RemoveContestant(r.Context(), req.ActorID, id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Contestant removed")
}
