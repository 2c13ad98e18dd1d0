package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/service"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
	"github.com/MKhiriev/go-budget-tracker/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	// Login accepts either the username or the email address.
	Login    string `json:"login"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("user registration ended with error")
		h.writeError(w, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.writeError(w, service.ErrTokenCreationFailed)
		return
	}

	h.setTokenCookie(w, token.SignedString)
	utils.WriteJSON(w, models.AuthResponse{Success: true, Token: token.SignedString, User: &registeredUser}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Login, req.Password)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("user login ended with error")
		h.writeError(w, err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.writeError(w, service.ErrTokenCreationFailed)
		return
	}

	h.setTokenCookie(w, token.SignedString)
	utils.WriteJSON(w, models.AuthResponse{Success: true, Token: token.SignedString, User: &foundUser}, http.StatusOK)
}

// logout clears the token cookie. The JWT itself stays valid until expiry;
// clients are expected to drop their copy.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, models.Response{Success: true}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("current user lookup ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Response{Success: false, Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.UpdatePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		log.Err(err).Str("func", "*Handler.updatePassword").Msg("password update ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true}, http.StatusOK)
}

func (h *Handler) checkUsername(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	username := r.URL.Query().Get("username")
	if username == "" {
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	available, err := h.services.AuthService.UsernameAvailable(r.Context(), username)
	if err != nil {
		log.Err(err).Msg("username availability check ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.AvailabilityResponse{Available: available}, http.StatusOK)
}

func (h *Handler) checkEmail(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	available, err := h.services.AuthService.EmailAvailable(r.Context(), email)
	if err != nil {
		log.Err(err).Msg("email availability check ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.AvailabilityResponse{Available: available}, http.StatusOK)
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, signedToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    signedToken,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.Auth.TokenDuration),
		HttpOnly: true,
		Secure:   !h.cfg.App.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	})
}
