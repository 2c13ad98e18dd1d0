package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
	"github.com/MKhiriev/go-budget-tracker/models"
)

func (h *Handler) createGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var goal models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	goal.UserID = userID

	created, err := h.services.BudgetService.CreateGoal(ctx, goal)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createGoal").Msg("goal creation ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getGoal(w http.ResponseWriter, r *http.Request) {
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

	found, err := h.services.BudgetService.GetGoal(r.Context(), userID, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("goal lookup ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, found, http.StatusOK)
}

func (h *Handler) listGoals(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	goals, err := h.services.BudgetService.ListGoals(r.Context(), userID)
	if err != nil {
		log.Err(err).Msg("goal listing ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, goals, http.StatusOK)
}

func (h *Handler) updateGoal(w http.ResponseWriter, r *http.Request) {
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

	var update models.GoalUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}
	update.ID = id
	update.UserID = userID

	if err := h.services.BudgetService.UpdateGoal(ctx, update); err != nil {
		log.Err(err).Int64("id", id).Str("func", "*Handler.updateGoal").Msg("goal update ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true}, http.StatusOK)
}

func (h *Handler) deleteGoal(w http.ResponseWriter, r *http.Request) {
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

	if err := h.services.BudgetService.DeleteGoal(r.Context(), userID, id); err != nil {
		log.Err(err).Int64("id", id).Msg("goal deletion ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true}, http.StatusOK)
}
