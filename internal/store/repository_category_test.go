package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/models"
	"github.com/jackc/pgerrcode"
)

var categoryCols = []string{"id", "user_id", "name", "kind", "created_at"}

func newTestCategoryRepo(t *testing.T) (*categoryRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &categoryRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateCategory_Success(t *testing.T) {
	repo, mock, db := newTestCategoryRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	category := models.Category{UserID: 1, Name: "food", Kind: models.TransactionExpense}

	rows := sqlmock.NewRows(categoryCols).
		AddRow(3, category.UserID, category.Name, category.Kind, now)

	mock.ExpectQuery("INSERT INTO categories").
		WithArgs(category.UserID, category.Name, category.Kind).
		WillReturnRows(rows)

	created, err := repo.CreateCategory(ctx, category)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 3 {
		t.Errorf("expected ID=3, got %d", created.ID)
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	repo, mock, db := newTestCategoryRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO categories").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateCategory(ctx, models.Category{UserID: 1, Name: "food"})
	if !errors.Is(err, ErrCategoryAlreadyExists) {
		t.Fatalf("expected ErrCategoryAlreadyExists, got %v", err)
	}
}

func TestRenameCategory_NotFound(t *testing.T) {
	repo, mock, db := newTestCategoryRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE categories").
		WithArgs(int64(42), int64(1), "snacks").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RenameCategory(ctx, 1, 42, "snacks")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestListCategories_Success(t *testing.T) {
	repo, mock, db := newTestCategoryRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows(categoryCols).
		AddRow(1, 1, "food", "expense", now).
		AddRow(2, 1, "salary", "income", now)

	mock.ExpectQuery("SELECT id").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	categories, err := repo.ListCategories(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
}

func TestDeleteCategory_Success(t *testing.T) {
	repo, mock, db := newTestCategoryRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM categories").
		WithArgs(int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteCategory(ctx, 1, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
