package criteriahandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rpe/internal/domain/criteria"
	"rpe/internal/domain/users"
	"rpe/internal/transport/http/api"
	"rpe/internal/transport/http/middleware"
)

type Handler struct {
	Service  *criteria.Service
	Migrator *criteria.Migrator
}

func NewHandler(service *criteria.Service, migrator *criteria.Migrator) *Handler {
	return &Handler{Service: service, Migrator: migrator}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/criteria", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{criterionID}", h.handleGet)
		r.With(middleware.RequireRole(users.RoleHR)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(users.RoleHR)).Delete("/{criterionID}", h.handleDelete)
		r.With(middleware.RequireRole(users.RoleHR)).Post("/migrate", h.handleMigrate)
		r.Get("/assignments/{positionID}", h.handleListAssignments)
		r.With(middleware.RequireRole(users.RoleHR)).Post("/assignments", h.handleAssign)
		r.With(middleware.RequireRole(users.RoleHR)).Delete("/assignments/{assignmentID}", h.handleUnassign)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "criteria_list_failed", "failed to list criteria", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	criterion, err := h.Service.Get(r.Context(), chi.URLParam(r, "criterionID"))
	if errors.Is(err, criteria.ErrCriterionNotFound) {
		api.Fail(w, http.StatusNotFound, "criterion_not_found", "criterion not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "criterion_get_failed", "failed to load criterion", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, criterion, middleware.GetRequestID(r.Context()))
}

type createCriterionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createCriterionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Title == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	created, err := h.Service.Create(r.Context(), payload.Title, payload.Description, payload.Category)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "criterion_create_failed", "failed to create criterion", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), chi.URLParam(r, "criterionID"))
	if errors.Is(err, criteria.ErrCriterionNotFound) {
		api.Fail(w, http.StatusNotFound, "criterion_not_found", "criterion not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "criterion_delete_failed", "failed to delete criterion", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

type migrateRequest struct {
	Mapping map[string]string `json:"mapping"`
}

func (h *Handler) handleMigrate(w http.ResponseWriter, r *http.Request) {
	var payload migrateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload.Mapping) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	report, err := h.Migrator.Run(r.Context(), payload.Mapping)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "migration_failed", "criteria migration failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.Service.ListAssignments(r.Context(), chi.URLParam(r, "positionID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_list_failed", "failed to list assignments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assignments, middleware.GetRequestID(r.Context()))
}

type assignRequest struct {
	CriterionID string `json:"criterionId"`
	PositionID  string `json:"positionId"`
	IsRequired  bool   `json:"isRequired"`
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	var payload assignRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.CriterionID == "" || payload.PositionID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	assignment, err := h.Service.Assign(r.Context(), payload.CriterionID, payload.PositionID, payload.IsRequired)
	if errors.Is(err, criteria.ErrDuplicateAssignment) {
		api.Fail(w, http.StatusConflict, "assignment_exists", "criterion already assigned to position", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_create_failed", "failed to create assignment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, assignment, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUnassign(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Unassign(r.Context(), chi.URLParam(r, "assignmentID"))
	if errors.Is(err, criteria.ErrAssignmentNotFound) {
		api.Fail(w, http.StatusNotFound, "assignment_not_found", "assignment not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_delete_failed", "failed to delete assignment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
