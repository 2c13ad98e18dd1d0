package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/models"
)

// challengeRepository is the PostgreSQL-backed implementation of
// [ChallengeRepository]. The verification_challenges table keeps at most one
// row per email, enforced by the primary key and the upsert query.
type challengeRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewChallengeRepository constructs a [ChallengeRepository] backed by the
// provided database connection and logger.
func NewChallengeRepository(db *DB, logger *logger.Logger) ChallengeRepository {
	logger.Debug().Msg("creating challenge repository")
	return &challengeRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertChallenge atomically creates or replaces the challenge row for the
// given email. Re-issuing always resets the consumed flag, so a superseded
// code can never verify.
//
// A transient driver failure (connection loss, deadlock rollback) is retried
// once based on the connection's error classifier.
func (r *challengeRepository) UpsertChallenge(ctx context.Context, challenge models.VerificationChallenge) (models.VerificationChallenge, error) {
	log := logger.FromContext(ctx)

	saved, err := r.upsertOnce(ctx, challenge)
	if err != nil && r.db.errorClassificator.Classify(err) == Retryable {
		log.Warn().Err(err).Str("func", "*challengeRepository.UpsertChallenge").Msg("retrying upsert after transient error")
		saved, err = r.upsertOnce(ctx, challenge)
	}
	if err != nil {
		log.Err(err).Str("func", "*challengeRepository.UpsertChallenge").Msg("error: upsert failed")
		return models.VerificationChallenge{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

func (r *challengeRepository) upsertOnce(ctx context.Context, challenge models.VerificationChallenge) (models.VerificationChallenge, error) {
	row := r.db.QueryRowContext(ctx, upsertChallenge, challenge.Email, challenge.Code, challenge.IssuedAt, challenge.ExpiresAt)

	if err := row.Err(); err != nil {
		return models.VerificationChallenge{}, err
	}

	var saved models.VerificationChallenge
	if err := row.Scan(&saved.Email, &saved.Code, &saved.IssuedAt, &saved.ExpiresAt, &saved.Consumed); err != nil {
		return models.VerificationChallenge{}, err
	}

	return saved, nil
}

// FindChallenge retrieves the challenge issued for the given email.
// Returns [ErrNoChallengeWasFound] when none exists.
func (r *challengeRepository) FindChallenge(ctx context.Context, email string) (models.VerificationChallenge, error) {
	log := logger.FromContext(ctx)

	var found models.VerificationChallenge
	row := r.db.QueryRowContext(ctx, findChallenge, email)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*challengeRepository.FindChallenge").Msg("error: row is nil")
		return models.VerificationChallenge{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&found.Email, &found.Code, &found.IssuedAt, &found.ExpiresAt, &found.Consumed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VerificationChallenge{}, ErrNoChallengeWasFound
		}
		log.Err(err).Str("func", "*challengeRepository.FindChallenge").Msg("error: scanning error")
		return models.VerificationChallenge{}, err
	}

	return found, nil
}

// ConsumeChallenge marks the challenge consumed when the stored code matches,
// the challenge is unconsumed, and it has not expired. The comparison and the
// state change happen in one UPDATE so a code can be consumed exactly once.
//
// Returns true when the challenge was consumed by this call. A false result
// with a nil error means the code was wrong, already consumed, or expired;
// the row is left untouched so the caller can distinguish those cases.
func (r *challengeRepository) ConsumeChallenge(ctx context.Context, email string, code string) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, consumeChallenge, email, code)
	if err != nil {
		log.Err(err).Str("func", "*challengeRepository.ConsumeChallenge").Msg("error: executing statement")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*challengeRepository.ConsumeChallenge").Msg("error: reading affected rows")
		return false, err
	}

	return affected == 1, nil
}

// DeleteChallenge removes the challenge row for the given email, if any.
// Used to roll back an issued challenge when code delivery fails.
func (r *challengeRepository) DeleteChallenge(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteChallenge, email); err != nil {
		log.Err(err).Str("func", "*challengeRepository.DeleteChallenge").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteExpiredChallenges purges every challenge whose expiry is at or before
// the given moment and returns the number of rows removed.
func (r *challengeRepository) DeleteExpiredChallenges(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteExpiredChallenges, now)
	if err != nil {
		log.Err(err).Str("func", "*challengeRepository.DeleteExpiredChallenges").Msg("error: executing statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*challengeRepository.DeleteExpiredChallenges").Msg("error: reading affected rows")
		return 0, err
	}

	return affected, nil
}
