package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// handleSegmentTabulation returns the per-judge breakdown matrix for a
// pageant segment
func (h *Handlers) handleSegmentTabulation(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	segmentID, err := parseInt64Param(r, "segmentID")
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Standings.SegmentTabulation(r.Context(), eventID, segmentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleOverallBreakdown returns the weighted cumulative standings across
// all preliminary segments
func (h *Handlers) handleOverallBreakdown(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Standings.OverallBreakdown(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleLiveScores returns quiz running totals. Optional query params:
// round_id pins the scoring window to one round, participants narrows the
// roster to a comma-separated id list.
func (h *Handlers) handleLiveScores(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var roundID *int64
	if raw := r.URL.Query().Get("round_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, BadRequest("Invalid round_id parameter"))
			return
		}
		roundID = &id
	}

	var participants []int64
	if raw := r.URL.Query().Get("participants"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				respondError(w, BadRequest("Invalid participants parameter"))
				return
			}
			participants = append(participants, id)
		}
	}

	scores, err := h.Standings.LiveScores(r.Context(), eventID, roundID, participants)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, scores)
}

// handleCheckRoundTies reports whether a round's qualification cutoff lands
// on a tie
func (h *Handlers) handleCheckRoundTies(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	roundID, err := parseInt64Param(r, "roundID")
	if err != nil {
		respondError(w, err)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		respondError(w, BadRequest("Invalid limit parameter"))
		return
	}

	report, err := h.Standings.CheckRoundTies(r.Context(), eventID, roundID, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, report)
}
