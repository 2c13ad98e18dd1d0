package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-budget-tracker/internal/mailer"
	"github.com/MKhiriev/go-budget-tracker/internal/service"
	"github.com/MKhiriev/go-budget-tracker/internal/store"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
	"github.com/MKhiriev/go-budget-tracker/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongCredentials:        http.StatusUnauthorized,
	service.ErrAccountLocked:           http.StatusLocked,
	service.ErrEmailNotVerified:        http.StatusForbidden,
	service.ErrResendCooldown:          http.StatusTooManyRequests,
	service.ErrResetTokenInvalid:       http.StatusBadRequest,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	ErrNoAuthCredentials:          http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrInsufficientRole:           http.StatusForbidden,

	mailer.ErrDeliveryFailed: http.StatusBadGateway,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrCategoryAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrNoChallengeWasFound:   http.StatusNotFound,
	store.ErrTransactionNotFound:   http.StatusNotFound,
	store.ErrCategoryNotFound:      http.StatusNotFound,
	store.ErrGoalNotFound:          http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError translates a service or store error into the uniform JSON
// error envelope. Server-side failures hide their detail outside of the
// development environment.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status >= http.StatusInternalServerError && !h.cfg.App.IsDevelopment() {
		message = http.StatusText(status)
	}

	utils.WriteJSON(w, models.Response{Success: false, Message: message}, status)
}
