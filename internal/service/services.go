package service

import (
	"github.com/MKhiriev/go-budget-tracker/internal/config"
	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/mailer"
	"github.com/MKhiriev/go-budget-tracker/internal/store"
)

type Services struct {
	AuthService      AuthService
	ChallengeService ChallengeService
	BudgetService    BudgetService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, mail mailer.Mailer, logger *logger.Logger) *Services {
	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, storages.ChallengeRepository, cfg.Auth, logger),
		ChallengeService: NewChallengeService(storages.ChallengeRepository, storages.UserRepository, mail, cfg.Auth, logger),
		BudgetService:    NewBudgetService(storages.TransactionRepository, storages.CategoryRepository, storages.GoalRepository, logger),
	}
}
