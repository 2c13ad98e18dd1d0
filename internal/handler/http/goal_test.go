package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-budget-tracker/internal/store"
	"github.com/MKhiriev/go-budget-tracker/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoalRouter(h *Handler, userID int64) *chi.Mux {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, asAuthenticated(r, userID, models.RoleUser))
		})
	})

	router.Post("/api/goals", h.createGoal)
	router.Get("/api/goals", h.listGoals)
	router.Get("/api/goals/{id}", h.getGoal)
	router.Put("/api/goals/{id}", h.updateGoal)
	router.Delete("/api/goals/{id}", h.deleteGoal)

	return router
}

func TestCreateGoal_Success(t *testing.T) {
	budget := &mockBudgetService{
		createGoalFn: func(_ context.Context, goal models.Goal) (models.Goal, error) {
			assert.Equal(t, int64(7), goal.UserID)
			assert.Equal(t, "vacation", goal.Name)
			goal.ID = 5
			return goal, nil
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newGoalRouter(h, 7)

	req := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(`{"name":"vacation","target_cents":250000}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)
}

func TestGetGoal_NotFound(t *testing.T) {
	budget := &mockBudgetService{
		getGoalFn: func(_ context.Context, _, _ int64) (models.Goal, error) {
			return models.Goal{}, store.ErrGoalNotFound
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newGoalRouter(h, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/goals/5", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateGoal_PartialUpdate(t *testing.T) {
	budget := &mockBudgetService{
		updateGoalFn: func(_ context.Context, update models.GoalUpdate) error {
			assert.Equal(t, int64(5), update.ID)
			assert.Equal(t, int64(7), update.UserID)
			require.NotNil(t, update.SavedCents)
			assert.Equal(t, int64(50000), *update.SavedCents)
			assert.Nil(t, update.Name)
			return nil
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newGoalRouter(h, 7)

	req := httptest.NewRequest(http.MethodPut, "/api/goals/5", strings.NewReader(`{"saved_cents":50000}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestDeleteGoal_Success(t *testing.T) {
	budget := &mockBudgetService{
		deleteGoalFn: func(_ context.Context, userID, id int64) error {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, int64(5), id)
			return nil
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newGoalRouter(h, 7)

	req := httptest.NewRequest(http.MethodDelete, "/api/goals/5", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListGoals_Success(t *testing.T) {
	budget := &mockBudgetService{
		listGoalsFn: func(_ context.Context, userID int64) ([]models.Goal, error) {
			assert.Equal(t, int64(7), userID)
			return []models.Goal{{ID: 5, Name: "vacation", TargetCents: 250000, SavedCents: 50000}}, nil
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newGoalRouter(h, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"vacation"`)
}
