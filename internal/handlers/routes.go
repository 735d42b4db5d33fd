package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Events
	r.Get("/api/events", h.handleListEvents)
	r.Post("/api/events", h.handleCreateEvent)
	r.Get("/api/events/{id}", h.handleGetEvent)
	r.Delete("/api/events/{id}", h.handleDeleteEvent)
	r.Get("/api/events/{id}/qr", h.handleLeaderboardQR)

	// Contestants
	r.Get("/api/events/{id}/contestants", h.handleListContestants)
	r.Post("/api/events/{id}/contestants", h.handleAddContestant)
	r.Get("/api/contestants/{id}", h.handleGetContestant)
	r.Put("/api/contestants/{id}/status", h.handleOverrideStatus)
	r.Delete("/api/contestants/{id}", h.handleRemoveContestant)

	// Segments and quiz rounds
	r.Get("/api/events/{id}/segments", h.handleListSegments)
	r.Post("/api/events/{id}/segments", h.handleAddSegment)
	r.Put("/api/segments/{id}", h.handleUpdateSegment)
	r.Delete("/api/segments/{id}", h.handleDeleteSegment)
	r.Post("/api/events/{id}/rounds", h.handleAddQuizRound)
	r.Put("/api/rounds/{id}", h.handleUpdateQuizRound)
	r.Delete("/api/rounds/{id}", h.handleDeleteQuizRound)

	// Criteria
	r.Get("/api/segments/{id}/criteria", h.handleListCriteria)
	r.Post("/api/segments/{id}/criteria", h.handleAddCriteria)
	r.Put("/api/criteria/{id}", h.handleUpdateCriteria)
	r.Delete("/api/criteria/{id}", h.handleDeleteCriteria)

	// Weight sanity checks
	r.Get("/api/events/{id}/weight-status", h.handleWeightStatus)
	r.Get("/api/segments/{id}/weight-status", h.handleCriteriaWeightStatus)

	// Score ledger
	r.Post("/api/scores", h.handleSubmitScore)
	r.Post("/api/answers", h.handleSubmitAnswer)

	// Standings
	r.Get("/api/events/{id}/segments/{segmentID}/tabulation", h.handleSegmentTabulation)
	r.Get("/api/events/{id}/overall", h.handleOverallBreakdown)
	r.Get("/api/events/{id}/live-scores", h.handleLiveScores)
	r.Get("/api/events/{id}/rounds/{roundID}/ties", h.handleCheckRoundTies)

	// Round lifecycle
	r.Post("/api/segments/{id}/activate", h.handleActivateSegment)
	r.Post("/api/events/{id}/deactivate", h.handleDeactivateSegments)
	r.Post("/api/events/{id}/final-round", h.handleActivateFinalRound)
	r.Post("/api/events/{id}/advance", h.handleAdvanceRound)
	r.Post("/api/events/{id}/eliminate", h.handleEliminateContestants)

	// Audit trail
	r.Get("/api/audit", h.handleListAudit)

	return r
}
