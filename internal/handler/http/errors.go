// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when extracting the
// access token from a request. Callers can match against them with [errors.Is].
var (
	// ErrNoAuthCredentials is returned by the auth middleware when the
	// incoming request carries neither an "Authorization" header nor a
	// "token" cookie.
	ErrNoAuthCredentials = errors.New("no token in `Authorization` header or `token` cookie")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be parsed as a scheme followed by a
	// non-empty token value.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInsufficientRole is returned when an authenticated user reaches an
	// endpoint their role does not grant access to.
	ErrInsufficientRole = errors.New("insufficient role for this endpoint")
)
