package cycleshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rpe/internal/domain/cycles"
	"rpe/internal/domain/users"
	"rpe/internal/transport/http/api"
	"rpe/internal/transport/http/middleware"
)

type Handler struct {
	Service *cycles.Service
}

func NewHandler(service *cycles.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cycles", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/current", h.handleCurrent)
		r.Get("/{cycleID}", h.handleGet)
		r.With(middleware.RequireRole(users.RoleHR, users.RoleCommittee)).Post("/", h.handleCreate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_list_failed", "failed to list cycles", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

// handleCurrent returns the open cycle, falling back to the most recently
// closed one.
func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.Service.CurrentOrLastClosed(r.Context(), time.Now())
	if errors.Is(err, cycles.ErrNoCycles) {
		api.Fail(w, http.StatusNotFound, "no_cycles", "no evaluation cycles exist", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_get_failed", "failed to load cycle", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cycle, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.Service.Get(r.Context(), chi.URLParam(r, "cycleID"))
	if errors.Is(err, cycles.ErrCycleNotFound) {
		api.Fail(w, http.StatusNotFound, "cycle_not_found", "cycle not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_get_failed", "failed to load cycle", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cycle, middleware.GetRequestID(r.Context()))
}

type createCycleRequest struct {
	Name       string `json:"name"`
	StartDate  string `json:"startDate"`
	ReviewDate string `json:"reviewDate"`
	EndDate    string `json:"endDate"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	start, err1 := time.Parse("2006-01-02", payload.StartDate)
	review, err2 := time.Parse("2006-01-02", payload.ReviewDate)
	end, err3 := time.Parse("2006-01-02", payload.EndDate)
	if err1 != nil || err2 != nil || err3 != nil || end.Before(start) {
		api.Fail(w, http.StatusBadRequest, "invalid_dates", "invalid cycle dates", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.Create(r.Context(), payload.Name, start, review, end)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_create_failed", "failed to create cycle", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}
