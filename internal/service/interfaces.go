package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-budget-tracker/models"
)

// VerificationResult is the outcome of a challenge validation attempt.
type VerificationResult string

const (
	// Verified means the submitted code matched and the challenge is now
	// consumed.
	Verified VerificationResult = "verified"

	// Invalid means no active challenge exists or the code did not match.
	Invalid VerificationResult = "invalid"

	// Expired means the challenge's validity window has passed.
	Expired VerificationResult = "expired"
)

type AuthService interface {
	RegisterUser(ctx context.Context, username, email, password string) (models.User, error)
	Login(ctx context.Context, usernameOrEmail, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	GetUser(ctx context.Context, userID int64) (models.User, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)

	UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

type ChallengeService interface {
	IssueChallenge(ctx context.Context, email string) error
	VerifyChallenge(ctx context.Context, email, code string) (VerificationResult, error)

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error

	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type BudgetService interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id int64) (models.Transaction, error)
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, update models.TransactionUpdate) error
	DeleteTransaction(ctx context.Context, userID, id int64) error
	Summarize(ctx context.Context, filter models.TransactionFilter) (models.Summary, error)

	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	ListCategories(ctx context.Context, userID int64) ([]models.Category, error)
	RenameCategory(ctx context.Context, userID, id int64, name string) error
	DeleteCategory(ctx context.Context, userID, id int64) error

	CreateGoal(ctx context.Context, goal models.Goal) (models.Goal, error)
	GetGoal(ctx context.Context, userID, id int64) (models.Goal, error)
	ListGoals(ctx context.Context, userID int64) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, update models.GoalUpdate) error
	DeleteGoal(ctx context.Context, userID, id int64) error
}
