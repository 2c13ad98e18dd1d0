package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-budget-tracker/models"
)

const (
	userColumns = `user_id, username, email, password_hash, role, failed_login_attempts, account_locked, last_login, reset_password_token_hash, reset_password_expiry, created_at`

	createUser = `INSERT INTO users (username, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + userColumns + `;`

	findUserByLogin = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1 OR email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByResetTokenHash = `SELECT ` + userColumns + `
    FROM users
    WHERE reset_password_token_hash = $1;`

	usernameExists = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1);`
	emailExists    = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1);`

	recordLoginSuccess = `UPDATE users
    SET failed_login_attempts = 0, last_login = NOW()
    WHERE user_id = $1
    RETURNING ` + userColumns + `;`

	recordLoginFailure = `UPDATE users
    SET failed_login_attempts = failed_login_attempts + 1,
        account_locked = account_locked OR (failed_login_attempts + 1 >= $2)
    WHERE user_id = $1
    RETURNING ` + userColumns + `;`

	setResetToken = `UPDATE users
    SET reset_password_token_hash = $2, reset_password_expiry = $3
    WHERE user_id = $1;`

	updatePassword = `UPDATE users
    SET password_hash = $2,
        failed_login_attempts = 0,
        account_locked = FALSE,
        reset_password_token_hash = NULL,
        reset_password_expiry = NULL
    WHERE user_id = $1;`

	listUsers = `SELECT ` + userColumns + `
    FROM users
    ORDER BY user_id;`

	challengeColumns = `email, code, issued_at, expires_at, consumed`

	upsertChallenge = `INSERT INTO verification_challenges (email, code, issued_at, expires_at, consumed)
    VALUES ($1, $2, $3, $4, FALSE)
    ON CONFLICT (email) DO UPDATE
    SET code = EXCLUDED.code, issued_at = EXCLUDED.issued_at, expires_at = EXCLUDED.expires_at, consumed = FALSE
    RETURNING ` + challengeColumns + `;`

	findChallenge = `SELECT ` + challengeColumns + `
    FROM verification_challenges
    WHERE email = $1;`

	consumeChallenge = `UPDATE verification_challenges
    SET consumed = TRUE
    WHERE email = $1 AND code = $2 AND consumed = FALSE AND expires_at > NOW();`

	deleteChallenge = `DELETE FROM verification_challenges
    WHERE email = $1;`

	deleteExpiredChallenges = `DELETE FROM verification_challenges
    WHERE expires_at <= $1;`

	transactionColumns = `id, user_id, category_id, type, amount_cents, occurred_on, note, created_at, updated_at`

	createTransaction = `INSERT INTO transactions (user_id, category_id, type, amount_cents, occurred_on, note)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING ` + transactionColumns + `;`

	getTransaction = `SELECT ` + transactionColumns + `
    FROM transactions
    WHERE id = $1 AND user_id = $2;`

	deleteTransaction = `DELETE FROM transactions
    WHERE id = $1 AND user_id = $2;`

	updateTransactionBase = `
		UPDATE transactions
		SET updated_at = NOW()`

	categoryColumns = `id, user_id, name, kind, created_at`

	createCategory = `INSERT INTO categories (user_id, name, kind)
    VALUES ($1, $2, $3)
    RETURNING ` + categoryColumns + `;`

	getCategory = `SELECT ` + categoryColumns + `
    FROM categories
    WHERE id = $1 AND user_id = $2;`

	listCategories = `SELECT ` + categoryColumns + `
    FROM categories
    WHERE user_id = $1
    ORDER BY name;`

	renameCategory = `UPDATE categories
    SET name = $3
    WHERE id = $1 AND user_id = $2;`

	deleteCategory = `DELETE FROM categories
    WHERE id = $1 AND user_id = $2;`

	goalColumns = `id, user_id, name, target_cents, saved_cents, deadline, created_at, updated_at`

	createGoal = `INSERT INTO goals (user_id, name, target_cents, saved_cents, deadline)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING ` + goalColumns + `;`

	getGoal = `SELECT ` + goalColumns + `
    FROM goals
    WHERE id = $1 AND user_id = $2;`

	listGoals = `SELECT ` + goalColumns + `
    FROM goals
    WHERE user_id = $1
    ORDER BY created_at;`

	updateGoalBase = `
		UPDATE goals
		SET updated_at = NOW()`

	deleteGoal = `DELETE FROM goals
    WHERE id = $1 AND user_id = $2;`
)

// psql is the shared squirrel builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// transactionFilterConditions translates a [models.TransactionFilter] into
// squirrel predicates shared by the list and summary queries.
func transactionFilterConditions(filter models.TransactionFilter) []sq.Sqlizer {
	conditions := []sq.Sqlizer{sq.Eq{"t.user_id": filter.UserID}}

	if filter.Type != "" {
		conditions = append(conditions, sq.Eq{"t.type": filter.Type})
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, sq.Eq{"t.category_id": *filter.CategoryID})
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, sq.GtOrEq{"t.occurred_on": filter.From})
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, sq.LtOrEq{"t.occurred_on": filter.To})
	}

	return conditions
}

// buildListTransactionsQuery produces the filtered SELECT over the ledger,
// newest entries first.
func buildListTransactionsQuery(filter models.TransactionFilter) (string, []any, error) {
	builder := psql.
		Select("t.id", "t.user_id", "t.category_id", "t.type", "t.amount_cents", "t.occurred_on", "t.note", "t.created_at", "t.updated_at").
		From("transactions t").
		OrderBy("t.occurred_on DESC", "t.id DESC")

	for _, condition := range transactionFilterConditions(filter) {
		builder = builder.Where(condition)
	}

	return builder.ToSql()
}

// buildSummaryTotalsQuery produces the income/expense totals over the
// filtered period, one row per transaction type.
func buildSummaryTotalsQuery(filter models.TransactionFilter) (string, []any, error) {
	builder := psql.
		Select("t.type", "COALESCE(SUM(t.amount_cents), 0)").
		From("transactions t").
		GroupBy("t.type")

	for _, condition := range transactionFilterConditions(filter) {
		builder = builder.Where(condition)
	}

	return builder.ToSql()
}

// buildSummaryByCategoryQuery produces the per-category breakdown over the
// filtered period. Uncategorised transactions group under a NULL category.
func buildSummaryByCategoryQuery(filter models.TransactionFilter) (string, []any, error) {
	builder := psql.
		Select("t.category_id", "COALESCE(c.name, '')", "t.type", "COALESCE(SUM(t.amount_cents), 0)").
		From("transactions t").
		LeftJoin("categories c ON c.id = t.category_id").
		GroupBy("t.category_id", "c.name", "t.type").
		OrderBy("4 DESC")

	for _, condition := range transactionFilterConditions(filter) {
		builder = builder.Where(condition)
	}

	return builder.ToSql()
}

// buildUpdateQuery dynamically builds the partial UPDATE for a ledger entry.
func (r *transactionRepository) buildUpdateQuery(update models.TransactionUpdate) (string, []any, error) {
	queryBuilder := new(strings.Builder)
	queryBuilder.WriteString(updateTransactionBase)

	args := make([]any, 0, 7)
	setClauses := make([]string, 0, 5)
	argIndex := 1

	if update.CategoryID != nil {
		setClauses = append(setClauses, fmt.Sprintf("category_id = $%d", argIndex))
		args = append(args, *update.CategoryID)
		argIndex++
	}

	if update.Type != nil {
		setClauses = append(setClauses, fmt.Sprintf("type = $%d", argIndex))
		args = append(args, *update.Type)
		argIndex++
	}

	if update.AmountCents != nil {
		setClauses = append(setClauses, fmt.Sprintf("amount_cents = $%d", argIndex))
		args = append(args, *update.AmountCents)
		argIndex++
	}

	if update.OccurredOn != nil {
		setClauses = append(setClauses, fmt.Sprintf("occurred_on = $%d", argIndex))
		args = append(args, *update.OccurredOn)
		argIndex++
	}

	if update.Note != nil {
		setClauses = append(setClauses, fmt.Sprintf("note = $%d", argIndex))
		args = append(args, *update.Note)
		argIndex++
	}

	if len(setClauses) > 0 {
		queryBuilder.WriteString(", ")
		queryBuilder.WriteString(strings.Join(setClauses, ", "))
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE id = $%d AND user_id = $%d", argIndex, argIndex+1))
	args = append(args, update.ID, update.UserID)

	return queryBuilder.String(), args, nil
}

// buildUpdateQuery dynamically builds the partial UPDATE for a savings goal.
func (r *goalRepository) buildUpdateQuery(update models.GoalUpdate) (string, []any, error) {
	queryBuilder := new(strings.Builder)
	queryBuilder.WriteString(updateGoalBase)

	args := make([]any, 0, 6)
	setClauses := make([]string, 0, 4)
	argIndex := 1

	if update.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *update.Name)
		argIndex++
	}

	if update.TargetCents != nil {
		setClauses = append(setClauses, fmt.Sprintf("target_cents = $%d", argIndex))
		args = append(args, *update.TargetCents)
		argIndex++
	}

	if update.SavedCents != nil {
		setClauses = append(setClauses, fmt.Sprintf("saved_cents = $%d", argIndex))
		args = append(args, *update.SavedCents)
		argIndex++
	}

	if update.Deadline != nil {
		setClauses = append(setClauses, fmt.Sprintf("deadline = $%d", argIndex))
		args = append(args, *update.Deadline)
		argIndex++
	}

	if len(setClauses) > 0 {
		queryBuilder.WriteString(", ")
		queryBuilder.WriteString(strings.Join(setClauses, ", "))
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE id = $%d AND user_id = $%d", argIndex, argIndex+1))
	args = append(args, update.ID, update.UserID)

	return queryBuilder.String(), args, nil
}
