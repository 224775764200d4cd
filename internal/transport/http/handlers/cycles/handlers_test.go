package cycleshandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"rpe/internal/domain/auth"
	"rpe/internal/domain/cycles"
	"rpe/internal/domain/users"
	"rpe/internal/transport/http/middleware"
)

type fakeCycleStore struct {
	cyclesList []cycles.Cycle
}

func (f *fakeCycleStore) ListCycles(_ context.Context) ([]cycles.Cycle, error) {
	return f.cyclesList, nil
}

func (f *fakeCycleStore) GetCycle(_ context.Context, cycleID string) (cycles.Cycle, error) {
	for _, c := range f.cyclesList {
		if c.ID == cycleID {
			return c, nil
		}
	}
	return cycles.Cycle{}, cycles.ErrCycleNotFound
}

func (f *fakeCycleStore) CreateCycle(_ context.Context, name string, startDate, reviewDate, endDate time.Time) (cycles.Cycle, error) {
	created := cycles.Cycle{ID: "cyc-new", Name: name, StartDate: startDate, ReviewDate: reviewDate, EndDate: endDate}
	f.cyclesList = append(f.cyclesList, created)
	return created, nil
}

func (f *fakeCycleStore) CurrentCycle(_ context.Context, now time.Time) (cycles.Cycle, error) {
	for _, c := range f.cyclesList {
		if !c.StartDate.After(now) && !c.EndDate.Before(now) {
			return c, nil
		}
	}
	return cycles.Cycle{}, cycles.ErrNoCurrentCycle
}

func (f *fakeCycleStore) LastClosedCycle(_ context.Context, now time.Time) (cycles.Cycle, error) {
	var best *cycles.Cycle
	for i, c := range f.cyclesList {
		if c.EndDate.Before(now) && (best == nil || c.EndDate.After(best.EndDate)) {
			best = &f.cyclesList[i]
		}
	}
	if best == nil {
		return cycles.Cycle{}, cycles.ErrCycleNotFound
	}
	return *best, nil
}

func (f *fakeCycleStore) RecentCycles(_ context.Context, _ time.Time, limit int) ([]cycles.Cycle, error) {
	if len(f.cyclesList) > limit {
		return f.cyclesList[:limit], nil
	}
	return f.cyclesList, nil
}

const testSecret = "test-secret"

func newTestRouter(store *fakeCycleStore) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Auth(testSecret))
	NewHandler(cycles.NewService(store)).RegisterRoutes(router)
	return router
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return "Bearer " + token
}

func TestCurrentFallsBackToLastClosed(t *testing.T) {
	past := cycles.Cycle{
		ID: "cyc-1", Name: "2020.1",
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2020, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	router := newTestRouter(&fakeCycleStore{cyclesList: []cycles.Cycle{past}})

	req := httptest.NewRequest(http.MethodGet, "/cycles/current", nil)
	req.Header.Set("Authorization", bearer(t, users.RoleCollaborator))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool         `json:"success"`
		Data    cycles.Cycle `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !body.Success || body.Data.ID != "cyc-1" {
		t.Fatalf("expected the closed cycle, got %+v", body)
	}
}

func TestCurrentWithNoCyclesIs404(t *testing.T) {
	router := newTestRouter(&fakeCycleStore{})

	req := httptest.NewRequest(http.MethodGet, "/cycles/current", nil)
	req.Header.Set("Authorization", bearer(t, users.RoleCollaborator))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateRequiresPrivilegedRole(t *testing.T) {
	router := newTestRouter(&fakeCycleStore{})
	payload := `{"name":"2025.1","startDate":"2025-01-01","reviewDate":"2025-06-01","endDate":"2025-06-30"}`

	req := httptest.NewRequest(http.MethodPost, "/cycles/", strings.NewReader(payload))
	req.Header.Set("Authorization", bearer(t, users.RoleCollaborator))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for collaborator, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/cycles/", strings.NewReader(payload))
	req.Header.Set("Authorization", bearer(t, users.RoleHR))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for HR, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateRejectsInvertedDates(t *testing.T) {
	router := newTestRouter(&fakeCycleStore{})
	payload := `{"name":"2025.1","startDate":"2025-06-30","reviewDate":"2025-06-01","endDate":"2025-01-01"}`

	req := httptest.NewRequest(http.MethodPost, "/cycles/", strings.NewReader(payload))
	req.Header.Set("Authorization", bearer(t, users.RoleHR))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
