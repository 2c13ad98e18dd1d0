package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-budget-tracker/internal/config"
	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/mailer"
	"github.com/MKhiriev/go-budget-tracker/internal/store"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
	"github.com/MKhiriev/go-budget-tracker/models"
)

// challengeService is the concrete implementation of ChallengeService.
// It owns the lifecycle of email verification codes and password reset
// tokens: issuance, delivery, validation, and cleanup.
type challengeService struct {
	challengeRepository store.ChallengeRepository
	userRepository      store.UserRepository
	mailer              mailer.Mailer

	// challengeTTL bounds the validity of an emailed verification code.
	challengeTTL time.Duration

	// resetTokenTTL bounds the validity of a password reset token.
	resetTokenTTL time.Duration

	// resendCooldown is the minimum interval between two codes issued for
	// the same email.
	resendCooldown time.Duration

	// bcryptCost is the bcrypt cost factor applied to new passwords set via
	// the reset flow.
	bcryptCost int

	logger *logger.Logger
}

// NewChallengeService constructs a ChallengeService wired to the given
// repositories and mail delivery backend.
func NewChallengeService(challengeRepository store.ChallengeRepository, userRepository store.UserRepository, mail mailer.Mailer, cfg config.Auth, logger *logger.Logger) ChallengeService {
	return &challengeService{
		challengeRepository: challengeRepository,
		userRepository:      userRepository,
		mailer:              mail,
		challengeTTL:        cfg.ChallengeTTL,
		resetTokenTTL:       cfg.ResetTokenTTL,
		resendCooldown:      cfg.ResendCooldown,
		bcryptCost:          cfg.BcryptCost,
		logger:              logger,
	}
}

// IssueChallenge generates a fresh 6-digit code for the email, stores it, and
// mails it to the address.
//
// Issuing supersedes any previous challenge for the same email; only the
// newest code is valid. A challenge issued less than the resend cooldown ago
// blocks re-issuance with ErrResendCooldown. When mail delivery fails the
// stored challenge is rolled back and mailer.ErrDeliveryFailed propagates:
// the caller is never told a code was sent when it was not.
func (c *challengeService) IssueChallenge(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if !validEmail(email) {
		return ErrInvalidDataProvided
	}

	now := time.Now()

	existing, err := c.challengeRepository.FindChallenge(ctx, email)
	if err == nil && !existing.Consumed && now.Sub(existing.IssuedAt) < c.resendCooldown {
		log.Warn().Str("email", email).Msg("verification code requested during cooldown")
		return ErrResendCooldown
	}
	if err != nil && !errors.Is(err, store.ErrNoChallengeWasFound) {
		log.Err(err).Str("email", email).Msg("challenge lookup failed")
		return fmt.Errorf("challenge lookup failed: %w", err)
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		log.Err(err).Msg("code generation failed")
		return fmt.Errorf("code generation failed: %w", err)
	}

	challenge := models.VerificationChallenge{
		Email:     email,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(c.challengeTTL),
	}
	if _, err := c.challengeRepository.UpsertChallenge(ctx, challenge); err != nil {
		log.Err(err).Str("email", email).Msg("challenge upsert failed")
		return fmt.Errorf("challenge upsert failed: %w", err)
	}

	if err := c.mailer.SendVerificationCode(ctx, email, code); err != nil {
		// never report a code as sent when delivery failed
		if deleteErr := c.challengeRepository.DeleteChallenge(ctx, email); deleteErr != nil {
			log.Err(deleteErr).Str("email", email).Msg("challenge rollback failed")
		}
		log.Err(err).Str("email", email).Msg("verification code delivery failed")
		return err
	}

	return nil
}

// VerifyChallenge validates a submitted code against the active challenge for
// the email.
//
// Outcomes:
//   - no challenge or already consumed → Invalid;
//   - past expiry → Expired, and the challenge is discarded;
//   - wrong code → Invalid, the challenge stays retryable until expiry;
//   - match → Verified, the challenge is marked consumed atomically and can
//     never verify again.
//
// The code comparison is constant-time.
func (c *challengeService) VerifyChallenge(ctx context.Context, email, code string) (VerificationResult, error) {
	log := logger.FromContext(ctx)

	if email == "" || code == "" {
		return Invalid, ErrInvalidDataProvided
	}

	challenge, err := c.challengeRepository.FindChallenge(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoChallengeWasFound) {
			return Invalid, nil
		}
		log.Err(err).Str("email", email).Msg("challenge lookup failed")
		return Invalid, fmt.Errorf("challenge lookup failed: %w", err)
	}

	if challenge.Consumed {
		return Invalid, nil
	}

	if time.Now().After(challenge.ExpiresAt) {
		if err := c.challengeRepository.DeleteChallenge(ctx, email); err != nil {
			log.Err(err).Str("email", email).Msg("expired challenge cleanup failed")
		}
		return Expired, nil
	}

	if !utils.SecureCompare(challenge.Code, code) {
		return Invalid, nil
	}

	consumed, err := c.challengeRepository.ConsumeChallenge(ctx, email, code)
	if err != nil {
		log.Err(err).Str("email", email).Msg("challenge consumption failed")
		return Invalid, fmt.Errorf("challenge consumption failed: %w", err)
	}
	if !consumed {
		// lost the race to a concurrent verify or re-issue
		return Invalid, nil
	}

	return Verified, nil
}

// ForgotPassword issues a password reset token for the account with the given
// email and mails the raw token.
//
// An unknown email reports success without storing or sending anything so the
// endpoint does not leak account existence. For the same reason a mail
// delivery failure is logged but not reported to the caller; the stored token
// stays valid, so the user can simply request another reset. The raw token is
// never stored; only its SHA-256 digest lands on the user row, valid until
// resetTokenTTL elapses.
func (c *challengeService) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return ErrInvalidDataProvided
	}

	foundUser, err := c.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Str("email", email).Msg("password reset requested for unknown email")
			return nil
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	rawToken, tokenHash, err := utils.GenerateResetToken()
	if err != nil {
		log.Err(err).Msg("reset token generation failed")
		return fmt.Errorf("reset token generation failed: %w", err)
	}

	expiry := time.Now().Add(c.resetTokenTTL)
	if err := c.userRepository.SetResetToken(ctx, foundUser.UserID, tokenHash, expiry); err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("reset token persistence failed")
		return fmt.Errorf("reset token persistence failed: %w", err)
	}

	if err := c.mailer.SendPasswordReset(ctx, email, rawToken); err != nil {
		// Surfacing the failure would reveal that the address is registered.
		log.Err(err).Str("email", email).Msg("reset token delivery failed")
	}

	return nil
}

// ResetPassword sets a new password for the account matching the raw reset
// token.
//
// The submitted token is hashed and compared against the stored digest; an
// unknown or expired token yields ErrResetTokenInvalid. A successful reset
// stores the new bcrypt hash, clears the token, zeroes the failure counter,
// and unlocks the account.
func (c *challengeService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	log := logger.FromContext(ctx)

	if rawToken == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	foundUser, err := c.userRepository.FindUserByResetTokenHash(ctx, utils.HashResetToken(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrResetTokenInvalid
		}
		log.Err(err).Msg("user search by reset token failed")
		return fmt.Errorf("user search by reset token failed: %w", err)
	}

	if foundUser.ResetPasswordExpiry == nil || time.Now().After(*foundUser.ResetPasswordExpiry) {
		return ErrResetTokenInvalid
	}

	passwordHash, err := utils.HashPassword(newPassword, c.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := c.userRepository.UpdatePassword(ctx, foundUser.UserID, passwordHash); err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// PurgeExpired removes every challenge past its expiry and returns the number
// of rows removed. Called by the janitor worker.
func (c *challengeService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	purged, err := c.challengeRepository.DeleteExpiredChallenges(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("expired challenge purge failed: %w", err)
	}

	return purged, nil
}
