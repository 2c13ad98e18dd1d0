package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and login bookkeeping against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser reads one users row into a [models.User].
func scanUser(row interface{ Scan(...any) error }, user *models.User) error {
	return row.Scan(
		&user.UserID, &user.Username, &user.Email, &user.PasswordHash, &user.Role,
		&user.FailedLoginAttempts, &user.AccountLocked, &user.LastLogin,
		&user.ResetPasswordTokenHash, &user.ResetPasswordExpiry, &user.CreatedAt,
	)
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on the username constraint →
//     [ErrUsernameAlreadyExists]; on the email constraint →
//     [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Username, user.Email, user.PasswordHash, user.Role)

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			if postgresConstraint(err) == "users_email_key" {
				return models.User{}, ErrEmailAlreadyExists
			}
			return models.User{}, ErrUsernameAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved user from db
	if err := scanUser(row, &user); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return user, nil
}

// FindUserByLogin retrieves the user whose username or email matches the
// given login string. Returns [ErrNoUserWasFound] when no account matches.
func (r *userRepository) FindUserByLogin(ctx context.Context, usernameOrEmail string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByLogin", findUserByLogin, usernameOrEmail)
}

// FindUserByID retrieves the user with the given internal identifier.
// Returns [ErrNoUserWasFound] when no account matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", findUserByID, userID)
}

// FindUserByEmail retrieves the user with the given email address.
// Returns [ErrNoUserWasFound] when no account matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", findUserByEmail, email)
}

// FindUserByResetTokenHash retrieves the user whose stored password reset
// token digest matches. Returns [ErrNoUserWasFound] when no account matches.
func (r *userRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByResetTokenHash", findUserByResetTokenHash, tokenHash)
}

// findOne runs a single-row SELECT and scans the result into a fresh user.
func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error: row is nil")
		switch postgresError(err) {
		case pgerrcode.NoDataFound:
			return models.User{}, ErrNoUserWasFound
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := scanUser(row, &foundUser); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error: scanning error")
		return models.User{}, err
	}

	return foundUser, nil
}

// UsernameExists reports whether a user with the given username is already
// registered.
func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "*userRepository.UsernameExists", usernameExists, username)
}

// EmailExists reports whether a user with the given email is already
// registered.
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "*userRepository.EmailExists", emailExists, email)
}

func (r *userRepository) exists(ctx context.Context, funcName, query string, arg any) (bool, error) {
	log := logger.FromContext(ctx)

	var found bool
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error: row is nil")
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&found); err != nil {
		log.Err(err).Str("func", funcName).Msg("error: scanning error")
		return false, err
	}

	return found, nil
}

// RecordLoginAttempt updates the login bookkeeping fields after a password
// check and returns the user's post-update state.
//
// On success the failure counter resets to zero and LastLogin is set to the
// current time. On failure the counter increments, and the account locks once
// the counter reaches lockThreshold. Locking and counting happen in a single
// UPDATE so concurrent attempts cannot skip past the threshold.
func (r *userRepository) RecordLoginAttempt(ctx context.Context, userID int64, success bool, lockThreshold int) (models.User, error) {
	log := logger.FromContext(ctx)

	var row *sql.Row
	if success {
		row = r.db.QueryRowContext(ctx, recordLoginSuccess, userID)
	} else {
		row = r.db.QueryRowContext(ctx, recordLoginFailure, userID, lockThreshold)
	}

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.RecordLoginAttempt").Msg("error: row is nil")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var updatedUser models.User
	if err := scanUser(row, &updatedUser); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.RecordLoginAttempt").Msg("error: scanning error")
		return models.User{}, err
	}

	return updatedUser, nil
}

// SetResetToken stores the password reset token digest and its expiry on the
// user record. Returns [ErrNoUserWasFound] when the user does not exist.
func (r *userRepository) SetResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error {
	return r.execOnUser(ctx, "*userRepository.SetResetToken", setResetToken, userID, tokenHash, expiry)
}

// UpdatePassword replaces the user's password hash, clears any pending reset
// token, resets the failure counter, and unlocks the account.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.execOnUser(ctx, "*userRepository.UpdatePassword", updatePassword, userID, passwordHash)
}

// execOnUser runs an UPDATE keyed by user_id and verifies one row changed.
func (r *userRepository) execOnUser(ctx context.Context, funcName, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error: reading affected rows")
		return err
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// ListUsers returns every registered account ordered by creation, for the
// administrative user listing.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: iterating rows")
		return nil, err
	}

	return users, nil
}
