package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/waliags/tradermindset/internal/middleware"
	"github.com/waliags/tradermindset/internal/monitoring"
	"github.com/waliags/tradermindset/internal/stats"
	"github.com/waliags/tradermindset/internal/store"
)

const maxBodyBytes = 1 << 20

// Router wires every endpoint onto a mux router with the shared middleware
// chain. CORS is layered on by the caller.
func Router(st store.Store, statsService *stats.Service, log *zap.SugaredLogger, metrics *monitoring.Metrics, limiter *middleware.RateLimiter) http.Handler {
	habits := NewHabitHandler(st, log)
	checkIns := NewCheckInHandler(st, log)
	journal := NewJournalHandler(st, log)
	trades := NewTradeHandler(st, log)
	goals := NewGoalHandler(st, log)
	risk := NewRiskHandler(st, log)
	analytics := NewAnalyticsHandler(statsService, log)

	router := mux.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(metrics.Instrument)
	router.Use(limiter.RateLimit)

	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", monitoring.Healthz(st)).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.Use(middleware.MaxBodySize(maxBodyBytes))

	api.HandleFunc("/habits", habits.List).Methods("GET")
	api.HandleFunc("/habits", habits.Create).Methods("POST")
	api.HandleFunc("/habits/{id}", habits.Update).Methods("PUT")
	api.HandleFunc("/habits/{id}", habits.Delete).Methods("DELETE")
	api.HandleFunc("/habit-completions", habits.UpsertCompletion).Methods("POST")

	api.HandleFunc("/emotional-checkin/{date}", checkIns.Get).Methods("GET")
	api.HandleFunc("/emotional-checkin", checkIns.Upsert).Methods("POST")

	api.HandleFunc("/journal/{date}", journal.Get).Methods("GET")
	api.HandleFunc("/journal", journal.Upsert).Methods("POST")

	api.HandleFunc("/habits-with-stats/{date}", analytics.HabitsWithStats).Methods("GET")
	api.HandleFunc("/weekly-progress", analytics.WeeklyProgress).Methods("GET")
	api.HandleFunc("/monthly-stats/{year}/{month}", analytics.MonthlyStats).Methods("GET")

	api.HandleFunc("/trades", trades.List).Methods("GET")
	api.HandleFunc("/trades", trades.Create).Methods("POST")
	api.HandleFunc("/trades/{id}", trades.Update).Methods("PUT")
	api.HandleFunc("/trades/{id}", trades.Delete).Methods("DELETE")
	api.HandleFunc("/trading-stats", analytics.TradingStats).Methods("GET")

	api.HandleFunc("/goals", goals.List).Methods("GET")
	api.HandleFunc("/goals", goals.Create).Methods("POST")
	api.HandleFunc("/goals/{id}", goals.Update).Methods("PUT")
	api.HandleFunc("/goals/{id}", goals.Delete).Methods("DELETE")

	api.HandleFunc("/risk-metrics/{date}", risk.Get).Methods("GET")
	api.HandleFunc("/risk-metrics", risk.Upsert).Methods("POST")

	return router
}
