package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-budget-tracker/models"
)

// UserRepository persists and retrieves user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, usernameOrEmail string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByResetTokenHash(ctx context.Context, tokenHash string) (models.User, error)

	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	RecordLoginAttempt(ctx context.Context, userID int64, success bool, lockThreshold int) (models.User, error)
	SetResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	ListUsers(ctx context.Context) ([]models.User, error)
}

// ChallengeRepository persists email verification challenges.
// Upsert is keyed by email: the store guarantees at most one row per address.
type ChallengeRepository interface {
	UpsertChallenge(ctx context.Context, challenge models.VerificationChallenge) (models.VerificationChallenge, error)
	FindChallenge(ctx context.Context, email string) (models.VerificationChallenge, error)
	ConsumeChallenge(ctx context.Context, email string, code string) (bool, error)
	DeleteChallenge(ctx context.Context, email string) error
	DeleteExpiredChallenges(ctx context.Context, now time.Time) (int64, error)
}

// TransactionRepository persists ledger entries.
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id int64) (models.Transaction, error)
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, update models.TransactionUpdate) error
	DeleteTransaction(ctx context.Context, userID, id int64) error
	Summarize(ctx context.Context, filter models.TransactionFilter) (models.Summary, error)
}

// CategoryRepository persists user-defined transaction categories.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	GetCategory(ctx context.Context, userID, id int64) (models.Category, error)
	ListCategories(ctx context.Context, userID int64) ([]models.Category, error)
	RenameCategory(ctx context.Context, userID, id int64, name string) error
	DeleteCategory(ctx context.Context, userID, id int64) error
}

// GoalRepository persists savings goals.
type GoalRepository interface {
	CreateGoal(ctx context.Context, goal models.Goal) (models.Goal, error)
	GetGoal(ctx context.Context, userID, id int64) (models.Goal, error)
	ListGoals(ctx context.Context, userID int64) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, update models.GoalUpdate) error
	DeleteGoal(ctx context.Context, userID, id int64) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implementations inspect driver-specific error codes.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
