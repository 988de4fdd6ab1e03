package handlers

import (
	"net/http"
	"time"

	"fintrack/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Routes assembles the API router. loginRatePerMin bounds how often the
// unauthenticated auth endpoints may be hit per client IP.
func (h *Handlers) Routes(loginRatePerMin int) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.log))

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(loginRatePerMin, time.Minute))
			r.Post("/auth/signup", h.Signup)
			r.Post("/auth/login", h.Login)
		})
		r.Post("/auth/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Get("/me", h.Me)
			r.Put("/plan", h.UpdatePlan)

			r.Get("/expenses", h.ListExpenses)
			r.Post("/expenses", h.CreateExpense)
			r.Put("/expenses/{id}", h.UpdateExpense)
			r.Delete("/expenses/{id}", h.DeleteExpense)

			r.Get("/limits", h.Limits)
			r.Get("/insights", h.ListInsights)
			r.Get("/stats", h.Statistics)

			r.Get("/categories", h.ListCategories)
			r.Put("/categories", h.ReplaceCategories)

			r.Get("/goals", h.ListGoals)
			r.Post("/goals", h.CreateGoal)
			r.Put("/goals/{id}", h.UpdateGoal)
			r.Delete("/goals/{id}", h.DeleteGoal)

			r.Get("/cards", h.ListCards)
			r.Post("/cards", h.CreateCard)
			r.Put("/cards/{id}", h.UpdateCard)
			r.Delete("/cards/{id}", h.DeleteCard)
			r.Post("/cards/{id}/bill", h.AddCardBill)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
