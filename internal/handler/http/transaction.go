package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/service"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
	"github.com/MKhiriev/go-budget-tracker/models"

	"github.com/go-chi/chi/v5"
)

// filterDateLayout is the calendar-date format accepted by the from/to
// query parameters.
const filterDateLayout = "2006-01-02"

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	tx.UserID = userID

	created, err := h.services.BudgetService.CreateTransaction(ctx, tx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createTransaction").Msg("transaction creation ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	found, err := h.services.BudgetService.GetTransaction(r.Context(), userID, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("transaction lookup ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, found, http.StatusOK)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	filter, err := parseTransactionFilter(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	transactions, err := h.services.BudgetService.ListTransactions(r.Context(), filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTransactions").Msg("transaction listing ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, transactions, http.StatusOK)
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var update models.TransactionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	update.ID = id
	update.UserID = userID

	if err := h.services.BudgetService.UpdateTransaction(ctx, update); err != nil {
		log.Err(err).Int64("id", id).Str("func", "*Handler.updateTransaction").Msg("transaction update ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true}, http.StatusOK)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.services.BudgetService.DeleteTransaction(r.Context(), userID, id); err != nil {
		log.Err(err).Int64("id", id).Msg("transaction deletion ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true}, http.StatusOK)
}

// summary aggregates the filtered ledger into period totals and a
// per-category breakdown.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	filter, err := parseTransactionFilter(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.services.BudgetService.Summarize(r.Context(), filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.summary").Msg("summary computation ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// parseIDParam reads the {id} URL parameter as a positive integer.
func parseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrInvalidDataProvided
	}
	return id, nil
}

// parseTransactionFilter builds a ledger filter from the query string.
// Recognised parameters: type, category_id, from, to. The owner is always
// taken from the request context, never from the query.
func parseTransactionFilter(r *http.Request) (models.TransactionFilter, error) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		return models.TransactionFilter{}, err
	}

	filter := models.TransactionFilter{UserID: userID}
	query := r.URL.Query()

	if v := query.Get("type"); v != "" {
		filter.Type = models.TransactionType(v)
		if !filter.Type.Valid() {
			return models.TransactionFilter{}, service.ErrInvalidDataProvided
		}
	}

	if v := query.Get("category_id"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || categoryID <= 0 {
			return models.TransactionFilter{}, service.ErrInvalidDataProvided
		}
		filter.CategoryID = &categoryID
	}

	if v := query.Get("from"); v != "" {
		from, err := time.Parse(filterDateLayout, v)
		if err != nil {
			return models.TransactionFilter{}, service.ErrInvalidDataProvided
		}
		filter.From = from
	}

	if v := query.Get("to"); v != "" {
		to, err := time.Parse(filterDateLayout, v)
		if err != nil {
			return models.TransactionFilter{}, service.ErrInvalidDataProvided
		}
		filter.To = to
	}

	return filter, nil
}
