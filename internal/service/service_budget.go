package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/store"
	"github.com/MKhiriev/go-budget-tracker/models"
)

// budgetService is the concrete implementation of BudgetService.
// It validates ledger, category, and goal mutations before delegating to the
// repositories. Every operation is scoped by the owning user id.
type budgetService struct {
	transactionRepository store.TransactionRepository
	categoryRepository    store.CategoryRepository
	goalRepository        store.GoalRepository
	logger                *logger.Logger
}

// NewBudgetService constructs a BudgetService wired to the given repositories.
func NewBudgetService(transactionRepository store.TransactionRepository, categoryRepository store.CategoryRepository, goalRepository store.GoalRepository, logger *logger.Logger) BudgetService {
	return &budgetService{
		transactionRepository: transactionRepository,
		categoryRepository:    categoryRepository,
		goalRepository:        goalRepository,
		logger:                logger,
	}
}

// CreateTransaction records a new ledger entry.
//
// The type must be income or expense and the amount positive. A referenced
// category must belong to the same user and carry a matching kind.
func (b *budgetService) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	if !tx.Type.Valid() || tx.AmountCents <= 0 || tx.OccurredOn.IsZero() {
		log.Error().Any("transaction", tx).Msg("invalid transaction data provided")
		return models.Transaction{}, ErrInvalidDataProvided
	}

	if tx.CategoryID != nil {
		if err := b.checkCategory(ctx, tx.UserID, *tx.CategoryID, tx.Type); err != nil {
			return models.Transaction{}, err
		}
	}

	created, err := b.transactionRepository.CreateTransaction(ctx, tx)
	if err != nil {
		log.Err(err).Msg("transaction creation ended with error")
		return models.Transaction{}, fmt.Errorf("transaction creation ended with error: %w", err)
	}

	return created, nil
}

func (b *budgetService) GetTransaction(ctx context.Context, userID, id int64) (models.Transaction, error) {
	found, err := b.transactionRepository.GetTransaction(ctx, userID, id)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction lookup failed: %w", err)
	}

	return found, nil
}

// ListTransactions returns the user's ledger entries matching the filter.
func (b *budgetService) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, ErrInvalidDataProvided
	}

	transactions, err := b.transactionRepository.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("transaction listing failed: %w", err)
	}

	return transactions, nil
}

// UpdateTransaction applies a partial update to one ledger entry.
func (b *budgetService) UpdateTransaction(ctx context.Context, update models.TransactionUpdate) error {
	log := logger.FromContext(ctx)

	if update.Type != nil && !update.Type.Valid() {
		return ErrInvalidDataProvided
	}
	if update.AmountCents != nil && *update.AmountCents <= 0 {
		return ErrInvalidDataProvided
	}

	if update.CategoryID != nil {
		kind := models.TransactionType("")
		if update.Type != nil {
			kind = *update.Type
		}
		if err := b.checkCategory(ctx, update.UserID, *update.CategoryID, kind); err != nil {
			return err
		}
	}

	if err := b.transactionRepository.UpdateTransaction(ctx, update); err != nil {
		log.Err(err).Int64("id", update.ID).Msg("transaction update ended with error")
		return fmt.Errorf("transaction update ended with error: %w", err)
	}

	return nil
}

func (b *budgetService) DeleteTransaction(ctx context.Context, userID, id int64) error {
	if err := b.transactionRepository.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("transaction deletion failed: %w", err)
	}

	return nil
}

// Summarize aggregates the filtered ledger into period totals and the
// per-category breakdown.
func (b *budgetService) Summarize(ctx context.Context, filter models.TransactionFilter) (models.Summary, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return models.Summary{}, ErrInvalidDataProvided
	}

	summary, err := b.transactionRepository.Summarize(ctx, filter)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summary computation failed: %w", err)
	}

	return summary, nil
}

// checkCategory verifies that a referenced category exists, belongs to the
// user, and (when a kind is given) matches the transaction type.
func (b *budgetService) checkCategory(ctx context.Context, userID, categoryID int64, kind models.TransactionType) error {
	category, err := b.categoryRepository.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return fmt.Errorf("category lookup failed: %w", err)
	}
	if kind != "" && category.Kind != kind {
		return ErrInvalidDataProvided
	}

	return nil
}

// CreateCategory adds a new user-defined label for grouping transactions.
func (b *budgetService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	log := logger.FromContext(ctx)

	if category.Name == "" || !category.Kind.Valid() {
		log.Error().Any("category", category).Msg("invalid category data provided")
		return models.Category{}, ErrInvalidDataProvided
	}

	created, err := b.categoryRepository.CreateCategory(ctx, category)
	if err != nil {
		log.Err(err).Str("name", category.Name).Msg("category creation ended with error")
		return models.Category{}, fmt.Errorf("category creation ended with error: %w", err)
	}

	return created, nil
}

func (b *budgetService) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	categories, err := b.categoryRepository.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("category listing failed: %w", err)
	}

	return categories, nil
}

func (b *budgetService) RenameCategory(ctx context.Context, userID, id int64, name string) error {
	if name == "" {
		return ErrInvalidDataProvided
	}

	if err := b.categoryRepository.RenameCategory(ctx, userID, id, name); err != nil {
		return fmt.Errorf("category rename failed: %w", err)
	}

	return nil
}

func (b *budgetService) DeleteCategory(ctx context.Context, userID, id int64) error {
	if err := b.categoryRepository.DeleteCategory(ctx, userID, id); err != nil {
		return fmt.Errorf("category deletion failed: %w", err)
	}

	return nil
}

// CreateGoal adds a new savings goal with a positive target.
func (b *budgetService) CreateGoal(ctx context.Context, goal models.Goal) (models.Goal, error) {
	log := logger.FromContext(ctx)

	if goal.Name == "" || goal.TargetCents <= 0 || goal.SavedCents < 0 {
		log.Error().Any("goal", goal).Msg("invalid goal data provided")
		return models.Goal{}, ErrInvalidDataProvided
	}

	created, err := b.goalRepository.CreateGoal(ctx, goal)
	if err != nil {
		log.Err(err).Str("name", goal.Name).Msg("goal creation ended with error")
		return models.Goal{}, fmt.Errorf("goal creation ended with error: %w", err)
	}

	return created, nil
}

func (b *budgetService) GetGoal(ctx context.Context, userID, id int64) (models.Goal, error) {
	found, err := b.goalRepository.GetGoal(ctx, userID, id)
	if err != nil {
		return models.Goal{}, fmt.Errorf("goal lookup failed: %w", err)
	}

	return found, nil
}

func (b *budgetService) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	goals, err := b.goalRepository.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("goal listing failed: %w", err)
	}

	return goals, nil
}

// UpdateGoal applies a partial update to one savings goal.
func (b *budgetService) UpdateGoal(ctx context.Context, update models.GoalUpdate) error {
	if update.Name != nil && *update.Name == "" {
		return ErrInvalidDataProvided
	}
	if update.TargetCents != nil && *update.TargetCents <= 0 {
		return ErrInvalidDataProvided
	}
	if update.SavedCents != nil && *update.SavedCents < 0 {
		return ErrInvalidDataProvided
	}

	if err := b.goalRepository.UpdateGoal(ctx, update); err != nil {
		return fmt.Errorf("goal update ended with error: %w", err)
	}

	return nil
}

func (b *budgetService) DeleteGoal(ctx context.Context, userID, id int64) error {
	if err := b.goalRepository.DeleteGoal(ctx, userID, id); err != nil {
		return fmt.Errorf("goal deletion failed: %w", err)
	}

	return nil
}
