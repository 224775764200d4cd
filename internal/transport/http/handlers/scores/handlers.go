package scoreshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rpe/internal/domain/cycles"
	"rpe/internal/domain/scores"
	"rpe/internal/domain/users"
	"rpe/internal/transport/http/api"
	"rpe/internal/transport/http/middleware"
)

type Handler struct {
	Service *scores.Service
}

func NewHandler(service *scores.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/scores", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/timeline/{userID}", h.handleTimeline)
		r.Get("/evolutions/{userID}", h.handleEvolutions)
		r.Get("/self-review/current", h.handleCurrentSelfReview)
		r.Get("/user/{userID}", h.handleScoresByUser)
		r.With(middleware.RequireRole(users.RoleHR, users.RoleCommittee)).Get("/overview", h.handleOverview)
		r.With(middleware.RequireRole(users.RoleLeader)).Get("/team", h.handleTeam)
		r.With(middleware.RequireRole(users.RoleHR, users.RoleCommittee)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(users.RoleHR, users.RoleCommittee)).Patch("/{scoreID}", h.handleUpdate)
	})
}

func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.Service.TimelineByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "timeline_failed", "failed to build score timeline", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, timeline, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEvolutions(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.EvolutionsByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evolutions_failed", "failed to build evolutions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, groups, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCurrentSelfReview(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	result, err := h.Service.CurrentSelfReview(r.Context(), user.UserID)
	if errors.Is(err, cycles.ErrNoCurrentCycle) {
		api.Fail(w, http.StatusNotFound, "no_current_cycle", "no evaluation cycle is open", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, users.ErrUserNotFound) {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "self_review_failed", "failed to load self review", middleware.GetRequestID(r.Context()))
		return
	}
	if result.Fallback != nil {
		api.Success(w, result.Fallback, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result.Evaluations, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleScoresByUser(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ScoresByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_list_failed", "failed to list scores", middleware.GetRequestID(r.Context()))
		return
	}
	if rows == nil {
		rows = []scores.ScorePerCycle{}
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Service.OverviewCurrentCycle(r.Context())
	if errors.Is(err, cycles.ErrNoCycles) {
		api.Fail(w, http.StatusNotFound, "no_cycles", "no evaluation cycles exist", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "overview_failed", "failed to build overview", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, overview, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTeam(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	overview, err := h.Service.TeamOverview(r.Context(), user.UserID)
	if errors.Is(err, users.ErrUserNotFound) {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_overview_failed", "failed to build team overview", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, overview, middleware.GetRequestID(r.Context()))
}

type createScoreRequest struct {
	UserID      string    `json:"userId"`
	CycleID     string    `json:"cycleId"`
	SelfScore   *float64  `json:"selfScore"`
	LeaderScore *float64  `json:"leaderScore"`
	FinalScore  *float64  `json:"finalScore"`
	Feedback    *string   `json:"feedback"`
	PeerScores  []float64 `json:"peerScores"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.UserID == "" || payload.CycleID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	created, err := h.Service.Create(r.Context(), scores.ScorePerCycle{
		UserID:      payload.UserID,
		CycleID:     payload.CycleID,
		SelfScore:   payload.SelfScore,
		LeaderScore: payload.LeaderScore,
		FinalScore:  payload.FinalScore,
		Feedback:    payload.Feedback,
		PeerScores:  payload.PeerScores,
	})
	if errors.Is(err, scores.ErrDuplicateScore) {
		api.Fail(w, http.StatusConflict, "score_exists", "score already exists for user and cycle", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_create_failed", "failed to create score", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch scores.ScorePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	updated, err := h.Service.Update(r.Context(), chi.URLParam(r, "scoreID"), patch)
	if errors.Is(err, scores.ErrScoreNotFound) {
		api.Fail(w, http.StatusNotFound, "score_not_found", "score not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_update_failed", "failed to update score", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}
