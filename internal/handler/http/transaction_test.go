// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-budget-tracker/internal/store"
	"github.com/MKhiriev/go-budget-tracker/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBudgetRouter mounts the ledger routes on a bare chi router so URL
// parameters resolve, pre-authenticating every request as the given user.
func newBudgetRouter(h *Handler, userID int64) *chi.Mux {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, asAuthenticated(r, userID, models.RoleUser))
		})
	})

	router.Post("/api/transactions", h.createTransaction)
	router.Get("/api/transactions", h.listTransactions)
	router.Get("/api/transactions/{id}", h.getTransaction)
	router.Put("/api/transactions/{id}", h.updateTransaction)
	router.Delete("/api/transactions/{id}", h.deleteTransaction)
	router.Get("/api/summary", h.summary)

	return router
}

// TestCreateTransaction_Success verifies that the owner is taken from the
// request context and the created entry is echoed back with 201.
func TestCreateTransaction_Success(t *testing.T) {
	budget := &mockBudgetService{
		createTransactionFn: func(_ context.Context, tx models.Transaction) (models.Transaction, error) {
			assert.Equal(t, int64(7), tx.UserID)
			assert.Equal(t, models.TransactionExpense, tx.Type)
			tx.ID = 42
			return tx, nil
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newBudgetRouter(h, 7)

	body := `{"type":"expense","amount_cents":1250,"occurred_on":"2026-08-20T00:00:00Z","note":"groceries"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":42`)
}

// TestCreateTransaction_OwnerNotTakenFromBody verifies that a user_id smuggled
// into the body cannot reassign ownership.
func TestCreateTransaction_OwnerNotTakenFromBody(t *testing.T) {
	budget := &mockBudgetService{
		createTransactionFn: func(_ context.Context, tx models.Transaction) (models.Transaction, error) {
			assert.Equal(t, int64(7), tx.UserID)
			return tx, nil
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newBudgetRouter(h, 7)

	body := `{"user_id":999,"type":"income","amount_cents":100,"occurred_on":"2026-08-20T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

// TestListTransactions_FilterFromQuery verifies that the query string is
// translated into a repository filter.
func TestListTransactions_FilterFromQuery(t *testing.T) {
	var gotFilter models.TransactionFilter
	budget := &mockBudgetService{
		listTransactionsFn: func(_ context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
			gotFilter = filter
			return []models.Transaction{}, nil
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newBudgetRouter(h, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?type=expense&category_id=3&from=2026-08-01&to=2026-08-31", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotFilter.UserID)
	assert.Equal(t, models.TransactionExpense, gotFilter.Type)
	require.NotNil(t, gotFilter.CategoryID)
	assert.Equal(t, int64(3), *gotFilter.CategoryID)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), gotFilter.From)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), gotFilter.To)
}

// TestListTransactions_BadFilter verifies that malformed query parameters
// are rejected with 400 before reaching the service.
func TestListTransactions_BadFilter(t *testing.T) {
	h := newTestHandler(nil, nil, &mockBudgetService{
		listTransactionsFn: func(_ context.Context, _ models.TransactionFilter) ([]models.Transaction, error) {
			t.Fatal("service must not be called for a malformed filter")
			return nil, nil
		},
	})
	router := newBudgetRouter(h, 7)

	tests := []struct {
		name string
		url  string
	}{
		{name: "unknown type", url: "/api/transactions?type=transfer"},
		{name: "non-numeric category", url: "/api/transactions?category_id=abc"},
		{name: "bad date", url: "/api/transactions?from=20-08-2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

// TestGetTransaction_NotFound verifies that a missing entry maps to 404.
func TestGetTransaction_NotFound(t *testing.T) {
	budget := &mockBudgetService{
		getTransactionFn: func(_ context.Context, userID, id int64) (models.Transaction, error) {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, int64(42), id)
			return models.Transaction{}, store.ErrTransactionNotFound
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newBudgetRouter(h, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/42", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestUpdateTransaction_Success verifies that the id and owner come from the
// URL and context, not the body.
func TestUpdateTransaction_Success(t *testing.T) {
	budget := &mockBudgetService{
		updateTransactionFn: func(_ context.Context, update models.TransactionUpdate) error {
			assert.Equal(t, int64(42), update.ID)
			assert.Equal(t, int64(7), update.UserID)
			require.NotNil(t, update.AmountCents)
			assert.Equal(t, int64(9900), *update.AmountCents)
			return nil
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newBudgetRouter(h, 7)

	req := httptest.NewRequest(http.MethodPut, "/api/transactions/42", strings.NewReader(`{"amount_cents":9900}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

// TestUpdateTransaction_BadID verifies that a non-numeric id parameter maps
// to 400 Bad Request.
func TestUpdateTransaction_BadID(t *testing.T) {
	h := newTestHandler(nil, nil, &mockBudgetService{})
	router := newBudgetRouter(h, 7)

	req := httptest.NewRequest(http.MethodPut, "/api/transactions/abc", strings.NewReader(`{"amount_cents":100}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestDeleteTransaction_Success verifies the happy path of entry deletion.
func TestDeleteTransaction_Success(t *testing.T) {
	deleted := false
	budget := &mockBudgetService{
		deleteTransactionFn: func(_ context.Context, userID, id int64) error {
			deleted = true
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, int64(42), id)
			return nil
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newBudgetRouter(h, 7)

	req := httptest.NewRequest(http.MethodDelete, "/api/transactions/42", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deleted)
}

// TestSummary_Success verifies that the summary endpoint returns the totals
// computed by the service.
func TestSummary_Success(t *testing.T) {
	budget := &mockBudgetService{
		summarizeFn: func(_ context.Context, filter models.TransactionFilter) (models.Summary, error) {
			assert.Equal(t, int64(7), filter.UserID)
			return models.Summary{
				IncomeCents:  10000,
				ExpenseCents: 3500,
				BalanceCents: 6500,
				ByCategory: []models.CategoryTotal{
					{CategoryName: "groceries", Type: models.TransactionExpense, TotalCents: 3500},
				},
			}, nil
		},
	}

	h := newTestHandler(nil, nil, budget)
	router := newBudgetRouter(h, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance_cents":6500`)
	assert.Contains(t, rec.Body.String(), `"category_name":"groceries"`)
}
