package goalshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rpe/internal/domain/goals"
	"rpe/internal/transport/http/api"
	"rpe/internal/transport/http/middleware"
)

type Handler struct {
	Service *goals.Service
}

func NewHandler(service *goals.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{goalID}", h.handleGet)
		r.Delete("/{goalID}", h.handleDelete)
		r.Post("/{goalID}/actions", h.handleAddAction)
		r.Patch("/actions/{actionID}", h.handleCompleteAction)
		r.Delete("/actions/{actionID}", h.handleDeleteAction)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	list, err := h.Service.GoalsByUser(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_list_failed", "failed to list goals", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

type createGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Title == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	created, err := h.Service.Create(r.Context(), user.UserID, payload.Title, payload.Description, payload.Type)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_create_failed", "failed to create goal", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	goal, err := h.Service.GetGoal(r.Context(), chi.URLParam(r, "goalID"))
	if errors.Is(err, goals.ErrGoalNotFound) {
		api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_get_failed", "failed to load goal", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, goal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), chi.URLParam(r, "goalID"))
	if errors.Is(err, goals.ErrGoalNotFound) {
		api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_delete_failed", "failed to delete goal", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

type addActionRequest struct {
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

func (h *Handler) handleAddAction(w http.ResponseWriter, r *http.Request) {
	var payload addActionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Description == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	deadline, err := time.Parse("2006-01-02", payload.Deadline)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_deadline", "invalid action deadline", middleware.GetRequestID(r.Context()))
		return
	}
	action, err := h.Service.AddAction(r.Context(), chi.URLParam(r, "goalID"), payload.Description, deadline)
	if errors.Is(err, goals.ErrGoalNotFound) {
		api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "action_create_failed", "failed to create action", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, action, middleware.GetRequestID(r.Context()))
}

type completeActionRequest struct {
	Completed bool `json:"completed"`
}

func (h *Handler) handleCompleteAction(w http.ResponseWriter, r *http.Request) {
	var payload completeActionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	action, err := h.Service.CompleteAction(r.Context(), chi.URLParam(r, "actionID"), payload.Completed)
	if errors.Is(err, goals.ErrActionNotFound) {
		api.Fail(w, http.StatusNotFound, "action_not_found", "goal action not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "action_update_failed", "failed to update action", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, action, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteAction(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteAction(r.Context(), chi.URLParam(r, "actionID"))
	if errors.Is(err, goals.ErrActionNotFound) {
		api.Fail(w, http.StatusNotFound, "action_not_found", "goal action not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "action_delete_failed", "failed to delete action", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
