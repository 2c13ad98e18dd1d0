package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/models"
	"github.com/jackc/pgerrcode"
)

// categoryRepository is the PostgreSQL-backed implementation of
// [CategoryRepository]. Category names are unique per owner, enforced by the
// categories_user_name_key constraint.
type categoryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCategoryRepository constructs a [CategoryRepository] backed by the
// provided database connection and logger.
func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCategory persists a new category and returns it with server-assigned
// fields. A unique_violation maps to [ErrCategoryAlreadyExists].
func (r *categoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createCategory, category.UserID, category.Name, category.Kind)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*categoryRepository.CreateCategory").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Category{}, ErrCategoryAlreadyExists
		default:
			return models.Category{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := row.Scan(&category.ID, &category.UserID, &category.Name, &category.Kind, &category.CreatedAt); err != nil {
		log.Err(err).Str("func", "*categoryRepository.CreateCategory").Msg("error: scanning error")
		return models.Category{}, err
	}

	return category, nil
}

// GetCategory retrieves one category owned by the given user.
// Returns [ErrCategoryNotFound] when no such category exists.
func (r *categoryRepository) GetCategory(ctx context.Context, userID, id int64) (models.Category, error) {
	log := logger.FromContext(ctx)

	var found models.Category
	row := r.db.QueryRowContext(ctx, getCategory, id, userID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*categoryRepository.GetCategory").Msg("error: row is nil")
		return models.Category{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&found.ID, &found.UserID, &found.Name, &found.Kind, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, ErrCategoryNotFound
		}
		log.Err(err).Str("func", "*categoryRepository.GetCategory").Msg("error: scanning error")
		return models.Category{}, err
	}

	return found, nil
}

// ListCategories returns all of the user's categories ordered by name.
func (r *categoryRepository) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listCategories, userID)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.ListCategories").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Kind, &category.CreatedAt); err != nil {
			log.Err(err).Str("func", "*categoryRepository.ListCategories").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*categoryRepository.ListCategories").Msg("error: iterating rows")
		return nil, err
	}

	return categories, nil
}

// RenameCategory changes the display name of one category. A unique_violation
// maps to [ErrCategoryAlreadyExists]; a missing row to [ErrCategoryNotFound].
func (r *categoryRepository) RenameCategory(ctx context.Context, userID, id int64, name string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, renameCategory, id, userID, name)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.RenameCategory").Msg("error: executing statement")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrCategoryAlreadyExists
		default:
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.RenameCategory").Msg("error: reading affected rows")
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// DeleteCategory removes one category owned by the given user. Transactions
// referencing it keep their rows; the schema nulls their category_id.
// Returns [ErrCategoryNotFound] when no such category exists.
func (r *categoryRepository) DeleteCategory(ctx context.Context, userID, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteCategory, id, userID)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Msg("error: reading affected rows")
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
