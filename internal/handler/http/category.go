package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
	"github.com/MKhiriev/go-budget-tracker/models"
)

type renameCategoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	category.UserID = userID

	created, err := h.services.BudgetService.CreateCategory(ctx, category)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createCategory").Msg("category creation ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	categories, err := h.services.BudgetService.ListCategories(r.Context(), userID)
	if err != nil {
		log.Err(err).Msg("category listing ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, categories, http.StatusOK)
}

func (h *Handler) renameCategory(w http.ResponseWriter, r *http.Request) {
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

	var req renameCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	if err := h.services.BudgetService.RenameCategory(ctx, userID, id, req.Name); err != nil {
		log.Err(err).Int64("id", id).Str("func", "*Handler.renameCategory").Msg("category rename ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true}, http.StatusOK)
}

// deleteCategory removes the category. Transactions that referenced it keep
// existing with their category cleared by the schema's ON DELETE SET NULL.
func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
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

	if err := h.services.BudgetService.DeleteCategory(r.Context(), userID, id); err != nil {
		log.Err(err).Int64("id", id).Msg("category deletion ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true}, http.StatusOK)
}
