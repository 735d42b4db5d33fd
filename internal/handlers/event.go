package handlers

import (
	"net/http"

	"github.com/kjdelacruz/stagetally/internal/models"
)

// handleListEvents returns all events
func (h *Handlers) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Event.ListEvents(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, events)
}

// eventTypes maps wire names to model constants. Validation guarantees the
// request carries one of these keys.
var eventTypes = map[string]models.EventType{
	"pageant":  models.EventPageant,
	"quiz_bee": models.EventQuizBee,
}

// handleCreateEvent creates a pageant or quiz-bee event
func (h *Handlers) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventCreateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Event.CreateEvent(r.Context(), req.ActorID, req.Name, eventTypes[req.EventType])
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]int64{"id": id})
}

// handleGetEvent returns one event
func (h *Handlers) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	event, err := h.Event.GetEvent(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, event)
}

// handleDeleteEvent deletes an event and all records it owns
func (h *Handlers) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Event.DeleteEvent(r.Context(), req.ActorID, id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Event deleted")
}

// handleLeaderboardQR serves a QR code PNG linking to the event's leaderboard
func (h *Handlers) handleLeaderboardQR(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := h.Event.GenerateLeaderboardQR(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
