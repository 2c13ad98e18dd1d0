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

// transactionRepository is the PostgreSQL-backed implementation of
// [TransactionRepository]. Every query is scoped by user_id so one user can
// never see or modify another user's ledger.
type transactionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTransactionRepository constructs a [TransactionRepository] backed by the
// provided database connection and logger.
func NewTransactionRepository(db *DB, logger *logger.Logger) TransactionRepository {
	logger.Debug().Msg("creating transaction repository")
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

func scanTransaction(row interface{ Scan(...any) error }, tx *models.Transaction) error {
	return row.Scan(
		&tx.ID, &tx.UserID, &tx.CategoryID, &tx.Type, &tx.AmountCents,
		&tx.OccurredOn, &tx.Note, &tx.CreatedAt, &tx.UpdatedAt,
	)
}

// CreateTransaction persists a new ledger entry and returns it with
// server-assigned fields (ID, CreatedAt, UpdatedAt).
//
// A foreign_key_violation on category_id maps to [ErrCategoryNotFound] so the
// caller can reject references to categories that do not exist.
func (r *transactionRepository) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTransaction, tx.UserID, tx.CategoryID, tx.Type, tx.AmountCents, tx.OccurredOn, tx.Note)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*transactionRepository.CreateTransaction").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Transaction{}, ErrCategoryNotFound
		default:
			return models.Transaction{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := scanTransaction(row, &tx); err != nil {
		log.Err(err).Str("func", "*transactionRepository.CreateTransaction").Msg("error: scanning error")
		return models.Transaction{}, err
	}

	return tx, nil
}

// GetTransaction retrieves one ledger entry owned by the given user.
// Returns [ErrTransactionNotFound] when no such entry exists.
func (r *transactionRepository) GetTransaction(ctx context.Context, userID, id int64) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	var found models.Transaction
	row := r.db.QueryRowContext(ctx, getTransaction, id, userID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*transactionRepository.GetTransaction").Msg("error: row is nil")
		return models.Transaction{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := scanTransaction(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, ErrTransactionNotFound
		}
		log.Err(err).Str("func", "*transactionRepository.GetTransaction").Msg("error: scanning error")
		return models.Transaction{}, err
	}

	return found, nil
}

// ListTransactions returns the user's ledger entries matching the filter,
// newest first.
func (r *transactionRepository) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTransactionsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.ListTransactions").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.ListTransactions").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := scanTransaction(rows, &tx); err != nil {
			log.Err(err).Str("func", "*transactionRepository.ListTransactions").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*transactionRepository.ListTransactions").Msg("error: iterating rows")
		return nil, err
	}

	return transactions, nil
}

// UpdateTransaction applies a partial update to one ledger entry. Only the
// non-nil fields of the update participate in the SET clause.
// Returns [ErrTransactionNotFound] when the entry does not exist or belongs
// to another user.
func (r *transactionRepository) UpdateTransaction(ctx context.Context, update models.TransactionUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := r.buildUpdateQuery(update)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.UpdateTransaction").Msg("error: building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.UpdateTransaction").Msg("error: executing statement")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return ErrCategoryNotFound
		default:
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.UpdateTransaction").Msg("error: reading affected rows")
		return err
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

// DeleteTransaction removes one ledger entry owned by the given user.
// Returns [ErrTransactionNotFound] when no such entry exists.
func (r *transactionRepository) DeleteTransaction(ctx context.Context, userID, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteTransaction, id, userID)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.DeleteTransaction").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.DeleteTransaction").Msg("error: reading affected rows")
		return err
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

// Summarize aggregates the filtered ledger into period totals and a
// per-category breakdown. Totals and breakdown run as two queries; both are
// grouped in the database so amounts never round-trip through Go floats.
func (r *transactionRepository) Summarize(ctx context.Context, filter models.TransactionFilter) (models.Summary, error) {
	log := logger.FromContext(ctx)

	summary := models.Summary{From: filter.From, To: filter.To}

	query, args, err := buildSummaryTotalsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.Summarize").Msg("error: building totals query")
		return models.Summary{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.Summarize").Msg("error: executing totals query")
		return models.Summary{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var txType models.TransactionType
		var total int64
		if err := rows.Scan(&txType, &total); err != nil {
			log.Err(err).Str("func", "*transactionRepository.Summarize").Msg("error: scanning totals")
			return models.Summary{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		switch txType {
		case models.TransactionIncome:
			summary.IncomeCents = total
		case models.TransactionExpense:
			summary.ExpenseCents = total
		}
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*transactionRepository.Summarize").Msg("error: iterating totals")
		return models.Summary{}, err
	}
	summary.BalanceCents = summary.IncomeCents - summary.ExpenseCents

	byCategory, err := r.summarizeByCategory(ctx, filter)
	if err != nil {
		return models.Summary{}, err
	}
	summary.ByCategory = byCategory

	return summary, nil
}

func (r *transactionRepository) summarizeByCategory(ctx context.Context, filter models.TransactionFilter) ([]models.CategoryTotal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSummaryByCategoryQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.summarizeByCategory").Msg("error: building breakdown query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.summarizeByCategory").Msg("error: executing breakdown query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var breakdown []models.CategoryTotal
	for rows.Next() {
		var total models.CategoryTotal
		if err := rows.Scan(&total.CategoryID, &total.CategoryName, &total.Type, &total.TotalCents); err != nil {
			log.Err(err).Str("func", "*transactionRepository.summarizeByCategory").Msg("error: scanning breakdown")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		breakdown = append(breakdown, total)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*transactionRepository.summarizeByCategory").Msg("error: iterating breakdown")
		return nil, err
	}

	return breakdown, nil
}
