package reportshandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rpe/internal/domain/reports"
	"rpe/internal/domain/users"
	"rpe/internal/transport/http/api"
	"rpe/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireRole(users.RoleHR, users.RoleCommittee, users.RoleLeader)).
			Get("/score-timeline/{userID}", h.handleScoreTimeline)
	})
}

func (h *Handler) handleScoreTimeline(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	pdf, err := h.Service.ScoreTimelinePDF(r.Context(), userID)
	if errors.Is(err, users.ErrUserNotFound) {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="score-timeline.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("report write failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
	}
}
