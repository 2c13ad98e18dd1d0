package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/models"
)

// goalRepository is the PostgreSQL-backed implementation of [GoalRepository].
type goalRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewGoalRepository constructs a [GoalRepository] backed by the provided
// database connection and logger.
func NewGoalRepository(db *DB, logger *logger.Logger) GoalRepository {
	logger.Debug().Msg("creating goal repository")
	return &goalRepository{
		db:     db,
		logger: logger,
	}
}

func scanGoal(row interface{ Scan(...any) error }, goal *models.Goal) error {
	return row.Scan(
		&goal.ID, &goal.UserID, &goal.Name, &goal.TargetCents, &goal.SavedCents,
		&goal.Deadline, &goal.CreatedAt, &goal.UpdatedAt,
	)
}

func (r *goalRepository) CreateGoal(ctx context.Context, goal models.Goal) (models.Goal, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createGoal, goal.UserID, goal.Name, goal.TargetCents, goal.SavedCents, goal.Deadline)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*goalRepository.CreateGoal").Msg("error: row is nil")
		return models.Goal{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := scanGoal(row, &goal); err != nil {
		log.Err(err).Str("func", "*goalRepository.CreateGoal").Msg("error: scanning error")
		return models.Goal{}, err
	}

	return goal, nil
}

func (r *goalRepository) GetGoal(ctx context.Context, userID, id int64) (models.Goal, error) {
	log := logger.FromContext(ctx)

	var found models.Goal
	row := r.db.QueryRowContext(ctx, getGoal, id, userID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*goalRepository.GetGoal").Msg("error: row is nil")
		return models.Goal{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := scanGoal(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Goal{}, ErrGoalNotFound
		}
		log.Err(err).Str("func", "*goalRepository.GetGoal").Msg("error: scanning error")
		return models.Goal{}, err
	}

	return found, nil
}

func (r *goalRepository) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listGoals, userID)
	if err != nil {
		log.Err(err).Str("func", "*goalRepository.ListGoals").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := scanGoal(rows, &goal); err != nil {
			log.Err(err).Str("func", "*goalRepository.ListGoals").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*goalRepository.ListGoals").Msg("error: iterating rows")
		return nil, err
	}

	return goals, nil
}

// UpdateGoal applies a partial update to one goal. Only the non-nil fields of
// the update participate in the SET clause.
func (r *goalRepository) UpdateGoal(ctx context.Context, update models.GoalUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := r.buildUpdateQuery(update)
	if err != nil {
		log.Err(err).Str("func", "*goalRepository.UpdateGoal").Msg("error: building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*goalRepository.UpdateGoal").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*goalRepository.UpdateGoal").Msg("error: reading affected rows")
		return err
	}
	if affected == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) DeleteGoal(ctx context.Context, userID, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteGoal, id, userID)
	if err != nil {
		log.Err(err).Str("func", "*goalRepository.DeleteGoal").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*goalRepository.DeleteGoal").Msg("error: reading affected rows")
		return err
	}
	if affected == 0 {
		return ErrGoalNotFound
	}

	return nil
}
