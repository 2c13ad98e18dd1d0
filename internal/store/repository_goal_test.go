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
)

var goalCols = []string{
	"id", "user_id", "name", "target_cents", "saved_cents",
	"deadline", "created_at", "updated_at",
}

func newTestGoalRepo(t *testing.T) (*goalRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &goalRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateGoal_Success(t *testing.T) {
	repo, mock, db := newTestGoalRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	goal := models.Goal{UserID: 1, Name: "vacation", TargetCents: 200000}

	rows := sqlmock.NewRows(goalCols).
		AddRow(5, goal.UserID, goal.Name, goal.TargetCents, 0, nil, now, now)

	mock.ExpectQuery("INSERT INTO goals").
		WithArgs(goal.UserID, goal.Name, goal.TargetCents, goal.SavedCents, goal.Deadline).
		WillReturnRows(rows)

	created, err := repo.CreateGoal(ctx, goal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 5 {
		t.Errorf("expected ID=5, got %d", created.ID)
	}
}

func TestGetGoal_NotFound(t *testing.T) {
	repo, mock, db := newTestGoalRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id").
		WithArgs(int64(42), int64(1)).
		WillReturnRows(sqlmock.NewRows(goalCols))

	_, err := repo.GetGoal(ctx, 1, 42)
	if !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestUpdateGoal_Success(t *testing.T) {
	repo, mock, db := newTestGoalRepo(t)
	defer db.Close()

	ctx := context.Background()
	saved := int64(75000)

	mock.ExpectExec("UPDATE goals").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateGoal(ctx, models.GoalUpdate{ID: 5, UserID: 1, SavedCents: &saved})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteGoal_NotFound(t *testing.T) {
	repo, mock, db := newTestGoalRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM goals").
		WithArgs(int64(42), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteGoal(ctx, 1, 42)
	if !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}
