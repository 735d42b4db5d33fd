package handlers

import (
	"net/http"
)

// handleSubmitScore records or revises a judge's criterion score
func (h *Handlers) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreSubmitRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	err := h.Ledger.SubmitCriteriaScore(r.Context(), req.JudgeID, req.ContestantID, req.CriteriaID, req.Value)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Score recorded")
}

// handleSubmitAnswer records or revises a quiz answer verdict
func (h *Handlers) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerSubmitRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	err := h.Ledger.SubmitAnswer(r.Context(), req.TabulatorID, req.ContestantID, req.RoundID, req.QuestionNumber, req.IsCorrect)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Answer recorded")
}
