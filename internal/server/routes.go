package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spendly/internal/handlers"
	"spendly/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.CorsFromEnv())
	r.Use(middlewares.Trace)
	r.Use(middlewares.NewRateLimiter().Limit)
	r.Use(middlewares.NewPrometheusMiddleware().Instrument)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.LivenessHandler).Methods("GET")
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	uh := handlers.NewUserHandler(s.userService)
	r.HandleFunc("/login", uh.Login).Methods("POST", "OPTIONS")

	lh := handlers.NewLimitHandler(s.limitService)
	r.HandleFunc("/spendingLimit", lh.SetLimit).Methods("POST", "OPTIONS")

	eh := handlers.NewExpenseHandler(s.expenseService, s.summaryService)
	r.HandleFunc("/expenses", eh.RecordExpense).Methods("POST", "OPTIONS")
	r.HandleFunc("/expenses/{userId}/monthly", eh.GetMonthlySummary).Methods("GET", "OPTIONS")
	r.HandleFunc("/expenses/{userId}/daily", eh.GetDailySummary).Methods("GET", "OPTIONS")

	return r
}
