package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// User Activity Metrics
	NewUsersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_new_users_total",
		Help: "Total number of new user registrations.",
	})
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_login_attempts_total",
		Help: "Total number of login attempts (new and returning).",
	}, []string{"status"}) // status: "created" or "existing"

	// Application-Specific Feature Usage Metrics
	LimitsConfiguredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_limits_configured_total",
		Help: "Total number of spending limit writes.",
	})
	ExpensesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_expenses_recorded_total",
		Help: "Total number of expenses recorded.",
	})
	ExpensesRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_expenses_rejected_total",
		Help: "Total number of rejected expense writes.",
	}, []string{"reason"}) // reason: "validation", "no_limit" or "limit_exceeded"
	SummariesServedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_summaries_served_total",
		Help: "Total number of expense summaries served.",
	})
)
