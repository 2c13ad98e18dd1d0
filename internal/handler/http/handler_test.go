// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-budget-tracker/internal/config"
	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/service"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
	"github.com/MKhiriev/go-budget-tracker/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn      func(ctx context.Context, username, email, password string) (models.User, error)
	loginFn             func(ctx context.Context, usernameOrEmail, password string) (models.User, error)
	createTokenFn       func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn        func(ctx context.Context, tokenString string) (models.Token, error)
	getUserFn           func(ctx context.Context, userID int64) (models.User, error)
	usernameAvailableFn func(ctx context.Context, username string) (bool, error)
	emailAvailableFn    func(ctx context.Context, email string) (bool, error)
	updatePasswordFn    func(ctx context.Context, userID int64, currentPassword, newPassword string) error
	listUsersFn         func(ctx context.Context) ([]models.User, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, username, email, password string) (models.User, error) {
	return m.registerUserFn(ctx, username, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, usernameOrEmail, password string) (models.User, error) {
	return m.loginFn(ctx, usernameOrEmail, password)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockAuthService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	return m.usernameAvailableFn(ctx, username)
}

func (m *mockAuthService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	return m.emailAvailableFn(ctx, email)
}

func (m *mockAuthService) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	return m.updatePasswordFn(ctx, userID, currentPassword, newPassword)
}

func (m *mockAuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listUsersFn(ctx)
}

// ─────────────────────────────────────────────
// Mock ChallengeService
// ─────────────────────────────────────────────

type mockChallengeService struct {
	issueChallengeFn  func(ctx context.Context, email string) error
	verifyChallengeFn func(ctx context.Context, email, code string) (service.VerificationResult, error)
	forgotPasswordFn  func(ctx context.Context, email string) error
	resetPasswordFn   func(ctx context.Context, rawToken, newPassword string) error
	purgeExpiredFn    func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockChallengeService) IssueChallenge(ctx context.Context, email string) error {
	return m.issueChallengeFn(ctx, email)
}

func (m *mockChallengeService) VerifyChallenge(ctx context.Context, email, code string) (service.VerificationResult, error) {
	return m.verifyChallengeFn(ctx, email, code)
}

func (m *mockChallengeService) ForgotPassword(ctx context.Context, email string) error {
	return m.forgotPasswordFn(ctx, email)
}

func (m *mockChallengeService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	return m.resetPasswordFn(ctx, rawToken, newPassword)
}

func (m *mockChallengeService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return m.purgeExpiredFn(ctx, now)
}

// ─────────────────────────────────────────────
// Mock BudgetService
// ─────────────────────────────────────────────

type mockBudgetService struct {
	createTransactionFn func(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	getTransactionFn    func(ctx context.Context, userID, id int64) (models.Transaction, error)
	listTransactionsFn  func(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	updateTransactionFn func(ctx context.Context, update models.TransactionUpdate) error
	deleteTransactionFn func(ctx context.Context, userID, id int64) error
	summarizeFn         func(ctx context.Context, filter models.TransactionFilter) (models.Summary, error)

	createCategoryFn func(ctx context.Context, category models.Category) (models.Category, error)
	listCategoriesFn func(ctx context.Context, userID int64) ([]models.Category, error)
	renameCategoryFn func(ctx context.Context, userID, id int64, name string) error
	deleteCategoryFn func(ctx context.Context, userID, id int64) error

	createGoalFn func(ctx context.Context, goal models.Goal) (models.Goal, error)
	getGoalFn    func(ctx context.Context, userID, id int64) (models.Goal, error)
	listGoalsFn  func(ctx context.Context, userID int64) ([]models.Goal, error)
	updateGoalFn func(ctx context.Context, update models.GoalUpdate) error
	deleteGoalFn func(ctx context.Context, userID, id int64) error
}

func (m *mockBudgetService) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	return m.createTransactionFn(ctx, tx)
}

func (m *mockBudgetService) GetTransaction(ctx context.Context, userID, id int64) (models.Transaction, error) {
	return m.getTransactionFn(ctx, userID, id)
}

func (m *mockBudgetService) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	return m.listTransactionsFn(ctx, filter)
}

func (m *mockBudgetService) UpdateTransaction(ctx context.Context, update models.TransactionUpdate) error {
	return m.updateTransactionFn(ctx, update)
}

func (m *mockBudgetService) DeleteTransaction(ctx context.Context, userID, id int64) error {
	return m.deleteTransactionFn(ctx, userID, id)
}

func (m *mockBudgetService) Summarize(ctx context.Context, filter models.TransactionFilter) (models.Summary, error) {
	return m.summarizeFn(ctx, filter)
}

func (m *mockBudgetService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	return m.createCategoryFn(ctx, category)
}

func (m *mockBudgetService) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	return m.listCategoriesFn(ctx, userID)
}

func (m *mockBudgetService) RenameCategory(ctx context.Context, userID, id int64, name string) error {
	return m.renameCategoryFn(ctx, userID, id, name)
}

func (m *mockBudgetService) DeleteCategory(ctx context.Context, userID, id int64) error {
	return m.deleteCategoryFn(ctx, userID, id)
}

func (m *mockBudgetService) CreateGoal(ctx context.Context, goal models.Goal) (models.Goal, error) {
	return m.createGoalFn(ctx, goal)
}

func (m *mockBudgetService) GetGoal(ctx context.Context, userID, id int64) (models.Goal, error) {
	return m.getGoalFn(ctx, userID, id)
}

func (m *mockBudgetService) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	return m.listGoalsFn(ctx, userID)
}

func (m *mockBudgetService) UpdateGoal(ctx context.Context, update models.GoalUpdate) error {
	return m.updateGoalFn(ctx, update)
}

func (m *mockBudgetService) DeleteGoal(ctx context.Context, userID, id int64) error {
	return m.deleteGoalFn(ctx, userID, id)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler around the given service mocks. Any of the
// arguments may be nil when the test exercises none of its methods.
func newTestHandler(auth service.AuthService, challenge service.ChallengeService, budget service.BudgetService) *Handler {
	cfg := config.StructuredConfig{
		App:    config.App{Environment: "development"},
		Auth:   config.Auth{TokenDuration: time.Hour},
		Server: config.Server{CORSOrigin: "http://localhost:3000"},
	}

	return NewHandler(&service.Services{
		AuthService:      auth,
		ChallengeService: challenge,
		BudgetService:    budget,
	}, cfg, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// asAuthenticated attaches a user ID and role to the request context the way
// the auth middleware would.
func asAuthenticated(r *http.Request, userID int64, role models.Role) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
	ctx = context.WithValue(ctx, utils.RoleCtxKey, role)
	return r.WithContext(ctx)
}

// stubToken returns a models.Token with the given signed string and user ID.
func stubToken(signed string, userID int64) models.Token {
	return models.Token{SignedString: signed, UserID: userID}
}
