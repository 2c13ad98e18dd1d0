// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing, and CORS concerns are
// all handled at this layer before requests are forwarded to the service
// layer.
package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
	"github.com/MKhiriev/go-budget-tracker/models"
)

// tokenCookieName is the HTTP-only cookie the login and register endpoints
// set alongside the token returned in the response body.
const tokenCookieName = "token"

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// The access token is taken from the "Authorization" header when present and
// from the "token" cookie otherwise, so both API clients and the browser SPA
// can authenticate. The token is validated via
// [service.AuthService.ParseToken] and the account is then re-read from
// storage, which rejects tokens of users that no longer exist. On success
// the user's ID and role are stored in the request context under
// [utils.UserIDCtxKey] and [utils.RoleCtxKey] before delegating to the next
// handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when no token
// is supplied, when the header cannot be parsed as a bearer token, or when
// the token is expired, invalid, or refers to a missing account.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromRequest(r)
		if err != nil {
			log.Err(err).Send()
			h.writeError(w, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			h.writeError(w, err)
			return
		}

		// Re-reading the account catches tokens that outlived their user and
		// picks up role changes made after the token was issued.
		user, err := h.services.AuthService.GetUser(ctx, token.UserID)
		if err != nil {
			log.Err(err).Int64("user_id", token.UserID).Msg("token refers to unknown user")
			h.writeError(w, ErrNoAuthCredentials)
			return
		}

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, user.UserID)
		ctx = context.WithValue(ctx, utils.RoleCtxKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authorize returns a middleware that allows the request through only when
// the authenticated user's role is one of the given roles. It must be
// mounted after auth.
func (h *Handler) authorize(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				log.Err(ErrNoAuthCredentials).Msg("no role in request context")
				h.writeError(w, ErrNoAuthCredentials)
				return
			}

			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Err(ErrInsufficientRole).Str("role", string(role)).Send()
			h.writeError(w, ErrInsufficientRole)
		})
	}
}

// userIDFromRequest returns the authenticated user's ID placed in the
// request context by the auth middleware.
func userIDFromRequest(r *http.Request) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, ErrNoAuthCredentials
	}
	return userID, nil
}

// getTokenFromRequest extracts the access token from the request, preferring
// the "Authorization" header over the "token" cookie.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header cannot be parsed as a
//     scheme plus a non-empty token.
//   - [ErrNoAuthCredentials] — if neither the header nor the cookie carries
//     a token.
func getTokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			return "", ErrInvalidAuthorizationHeader
		}

		return tokenString, nil
	}

	if cookie, err := r.Cookie(tokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", ErrNoAuthCredentials
}
