package store

import "github.com/MKhiriev/go-budget-tracker/internal/logger"

// Storages groups every repository behind one value for dependency injection
// into the service layer.
type Storages struct {
	UserRepository        UserRepository
	ChallengeRepository   ChallengeRepository
	TransactionRepository TransactionRepository
	CategoryRepository    CategoryRepository
	GoalRepository        GoalRepository
}

// NewStorages constructs every repository on top of the shared database
// connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:        NewUserRepository(db, log),
		ChallengeRepository:   NewChallengeRepository(db, log),
		TransactionRepository: NewTransactionRepository(db, log),
		CategoryRepository:    NewCategoryRepository(db, log),
		GoalRepository:        NewGoalRepository(db, log),
	}
}
