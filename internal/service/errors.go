package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongCredentials    = errors.New("wrong username or password")
	ErrAccountLocked       = errors.New("account is locked")
	ErrEmailNotVerified    = errors.New("email is not verified")
	ErrResendCooldown      = errors.New("verification code was requested too recently")
	ErrResetTokenInvalid   = errors.New("reset token is invalid or expired")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
