package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MKhiriev/go-budget-tracker/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.Server.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/send-otp", h.sendOTP)
		r.Post("/api/auth/verify-otp", h.verifyOTP)
		r.Get("/api/auth/check-username", h.checkUsername)
		r.Get("/api/auth/check-email", h.checkEmail)
		r.Post("/api/auth/forgot-password", h.forgotPassword)
		r.Put("/api/auth/reset-password/{resetToken}", h.resetPassword)
	})

	// routes that require a valid token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/me", h.me)
		r.Put("/api/auth/update-password", h.updatePassword)

		r.Post("/api/transactions", h.createTransaction)
		r.Get("/api/transactions", h.listTransactions)
		r.Get("/api/transactions/{id}", h.getTransaction)
		r.Put("/api/transactions/{id}", h.updateTransaction)
		r.Delete("/api/transactions/{id}", h.deleteTransaction)

		r.Get("/api/summary", h.summary)

		r.Post("/api/categories", h.createCategory)
		r.Get("/api/categories", h.listCategories)
		r.Put("/api/categories/{id}", h.renameCategory)
		r.Delete("/api/categories/{id}", h.deleteCategory)

		r.Post("/api/goals", h.createGoal)
		r.Get("/api/goals", h.listGoals)
		r.Get("/api/goals/{id}", h.getGoal)
		r.Put("/api/goals/{id}", h.updateGoal)
		r.Delete("/api/goals/{id}", h.deleteGoal)
	})

	// administrative routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.authorize(models.RoleAdmin))

		r.Get("/api/admin/users", h.listUsers)
	})

	return router
}
