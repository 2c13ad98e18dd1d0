package http

import (
	"net/http"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
)

// listUsers returns every registered account. Reachable only through the
// admin route group.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	users, err := h.services.AuthService.ListUsers(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listUsers").Msg("user listing ended with error")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}
