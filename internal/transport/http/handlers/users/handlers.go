package usershandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rpe/internal/domain/evaluations"
	"rpe/internal/domain/users"
	"rpe/internal/transport/http/api"
	"rpe/internal/transport/http/middleware"
)

type Handler struct {
	Service     *users.Service
	Evaluations *evaluations.Store
}

func NewHandler(service *users.Service, evaluationStore *evaluations.Store) *Handler {
	return &Handler{Service: service, Evaluations: evaluationStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireRole(users.RoleHR, users.RoleCommittee)).Get("/", h.handleList)
		r.Get("/me", h.handleMe)
		r.Get("/{userID}", h.handleGet)
		r.Get("/{userID}/evaluations-received", h.handleEvaluationsReceived)
		r.Get("/{userID}/track", h.handleTrack)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_list_failed", "failed to list users", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	h.writeUser(w, r, user.UserID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	h.writeUser(w, r, chi.URLParam(r, "userID"))
}

func (h *Handler) writeUser(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := h.Service.Get(r.Context(), userID)
	if errors.Is(err, users.ErrUserNotFound) {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_get_failed", "failed to load user", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEvaluationsReceived(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	received, err := h.Evaluations.ListReceived(r.Context(), userID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_list_failed", "failed to list evaluations", middleware.GetRequestID(r.Context()))
		return
	}
	if received == nil {
		received = []evaluations.Evaluation{}
	}
	api.Success(w, received, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTrack(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	track, err := h.Service.Track(r.Context(), userID)
	if errors.Is(err, users.ErrUserNotFound) {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "track_failed", "failed to load track", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"track": track}, middleware.GetRequestID(r.Context()))
}
