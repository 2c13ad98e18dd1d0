package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-budget-tracker/internal/config"
	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/store"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
	"github.com/MKhiriev/go-budget-tracker/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, lockout policy, and
// the JWT token lifecycle using repositories for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// challengeRepository is consulted at registration time: an account is
	// only created for an email with a verified (consumed) challenge.
	challengeRepository store.ChallengeRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is the bcrypt cost factor applied when hashing passwords.
	bcryptCost int

	// maxLoginAttempts is the number of consecutive failed password checks
	// after which the account locks.
	maxLoginAttempts int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, challengeRepository store.ChallengeRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:      userRepository,
		challengeRepository: challengeRepository,
		tokenSignKey:        cfg.TokenSignKey,
		tokenIssuer:         cfg.TokenIssuer,
		tokenDuration:       cfg.TokenDuration,
		bcryptCost:          cfg.BcryptCost,
		maxLoginAttempts:    cfg.MaxLoginAttempts,
		logger:              logger,
	}
}

// RegisterUser creates a new user account.
//
// Registration only succeeds for an email whose verification challenge has
// been consumed, proving the caller controls the address. The completed
// registration discards that challenge for good.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if any field is empty or the email is malformed.
//   - ErrEmailNotVerified if no consumed challenge exists for the email.
//   - A wrapped storage error if the repository call fails (e.g. username or
//     email already taken — see store.ErrUsernameAlreadyExists and
//     store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, username, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" || !validEmail(email) {
		log.Error().Str("username", username).Str("email", email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	challenge, err := a.challengeRepository.FindChallenge(ctx, email)
	if err != nil || !challenge.Consumed {
		log.Error().Str("email", email).Msg("registration attempted without verified email")
		return models.User{}, ErrEmailNotVerified
	}

	passwordHash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	// the consumed challenge served its purpose
	if err := a.challengeRepository.DeleteChallenge(ctx, email); err != nil {
		log.Err(err).Str("email", email).Msg("failed to discard consumed challenge")
	}

	return registeredUser, nil
}

// Login authenticates an existing user by username or email.
//
// A locked account rejects logins even with the correct password until a
// completed password reset unlocks it. Every password check is recorded:
// failures increment the attempt counter and lock the account at the
// configured threshold, successes reset the counter and stamp last_login.
//
// Returns the authenticated post-update user record or:
//   - ErrInvalidDataProvided if the login or password is empty.
//   - ErrWrongCredentials if no account matches or the password is wrong.
//   - ErrAccountLocked if the account is locked.
func (a *authService) Login(ctx context.Context, usernameOrEmail, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if usernameOrEmail == "" || password == "" {
		log.Error().Str("login", usernameOrEmail).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrWrongCredentials
		}
		log.Err(err).Str("login", usernameOrEmail).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if foundUser.AccountLocked {
		log.Warn().Int64("id", foundUser.UserID).Msg("login attempt on locked account")
		return models.User{}, ErrAccountLocked
	}

	if !utils.CheckPassword(foundUser.PasswordHash, password) {
		updatedUser, recordErr := a.userRepository.RecordLoginAttempt(ctx, foundUser.UserID, false, a.maxLoginAttempts)
		if recordErr != nil {
			log.Err(recordErr).Int64("id", foundUser.UserID).Msg("failed to record login failure")
		} else if updatedUser.AccountLocked {
			log.Warn().Int64("id", foundUser.UserID).Msg("account locked after repeated failures")
		}
		return models.User{}, ErrWrongCredentials
	}

	updatedUser, err := a.userRepository.RecordLoginAttempt(ctx, foundUser.UserID, true, a.maxLoginAttempts)
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("failed to record login success")
		return models.User{}, fmt.Errorf("failed to record login success: %w", err)
	}

	return updatedUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// GetUser returns the account with the given id.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// UsernameAvailable reports whether the username is free to register.
func (a *authService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, ErrInvalidDataProvided
	}

	taken, err := a.userRepository.UsernameExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("username availability check failed: %w", err)
	}

	return !taken, nil
}

// EmailAvailable reports whether the email is free to register.
func (a *authService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, ErrInvalidDataProvided
	}

	taken, err := a.userRepository.EmailExists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("email availability check failed: %w", err)
	}

	return !taken, nil
}

// UpdatePassword changes the password of an authenticated user after
// re-checking the current one.
//
// Returns ErrWrongCredentials when the current password does not match.
func (a *authService) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if currentPassword == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !utils.CheckPassword(foundUser.PasswordHash, currentPassword) {
		return ErrWrongCredentials
	}

	passwordHash, err := utils.HashPassword(newPassword, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, passwordHash); err != nil {
		log.Err(err).Int64("id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// ListUsers returns every registered account for the administrative listing.
func (a *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := a.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	return users, nil
}
