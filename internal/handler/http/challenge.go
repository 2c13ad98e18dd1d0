package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/service"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
	"github.com/MKhiriev/go-budget-tracker/models"

	"github.com/go-chi/chi/v5"
)

type emailRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// sendOTP issues a verification challenge and mails the one-time code.
func (h *Handler) sendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	if err := h.services.ChallengeService.IssueChallenge(ctx, req.Email); err != nil {
		log.Err(err).Str("func", "*Handler.sendOTP").Msg("challenge issue ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true, Message: "verification code sent"}, http.StatusOK)
}

// verifyOTP validates a submitted code. A wrong code is not an HTTP error;
// the outcome travels in the response body so the client can let the user
// retry.
func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	result, err := h.services.ChallengeService.VerifyChallenge(ctx, req.Email, req.Code)
	if err != nil {
		log.Err(err).Str("func", "*Handler.verifyOTP").Msg("challenge verification ended with error")
		h.writeError(w, err)
		return
	}

	response := models.VerifyResponse{Verified: result == service.Verified}
	if !response.Verified {
		response.Message = string(result)
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// forgotPassword starts the password reset flow. The response is identical
// for known and unknown addresses so the endpoint cannot be used to tell
// which emails are registered.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	if err := h.services.ChallengeService.ForgotPassword(ctx, req.Email); err != nil {
		log.Err(err).Str("func", "*Handler.forgotPassword").Msg("forgot-password ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true, Message: "if the address is registered, a reset link has been sent"}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	rawToken := chi.URLParam(r, "resetToken")

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	if err := h.services.ChallengeService.ResetPassword(ctx, rawToken, req.NewPassword); err != nil {
		log.Err(err).Str("func", "*Handler.resetPassword").Msg("password reset ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true}, http.StatusOK)
}
