package services

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"spendly/internal/metrics"
	"spendly/internal/models"
	"spendly/internal/notifier"
	"spendly/internal/repositories"
)

// ExpenseService defines the interface for the expense write path.
type ExpenseService interface {
	RecordExpense(ctx context.Context, req *models.RecordExpenseRequest) (*models.Expense, error)
}

type expenseService struct {
	expenseRepo  repositories.ExpenseRepository
	limitService LimitService
	publisher    notifier.Publisher
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo repositories.ExpenseRepository, limitService LimitService, publisher notifier.Publisher) ExpenseService {
	return &expenseService{
		expenseRepo:  expenseRepo,
		limitService: limitService,
		publisher:    publisher,
	}
}

// RecordExpense validates the request, checks the cumulative category spend
// against the user's configured ceiling and accumulates the amount into the
// (userId, category) document. Exactly one write happens on success and none
// on any rejection. The limit check and the write are two round trips, so two
// concurrent writes for the same key can both pass against a stale total.
func (s *expenseService) RecordExpense(ctx context.Context, req *models.RecordExpenseRequest) (*models.Expense, error) {
	log.Debug().Str("userID", req.UserID).Str("category", req.Category).Msg("Attempting to record expense")

	amount, verr := s.validate(req)
	if verr != nil {
		log.Warn().Strs("fields", verr.Fields).Str("userID", req.UserID).Msg("Expense request failed validation")
		metrics.ExpensesRejectedTotal.WithLabelValues("validation").Inc()
		return nil, verr
	}

	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	limit, err := s.limitService.GetLimit(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if limit == nil {
		log.Warn().Str("userID", req.UserID).Msg("No spending limit configured, rejecting expense")
		metrics.ExpensesRejectedTotal.WithLabelValues("no_limit").Inc()
		return nil, &PreconditionError{Message: "spending limit not set for this user, please set a limit first"}
	}

	currentTotal, err := s.expenseRepo.SumByUserAndCategory(ctx, req.UserID, req.Category)
	if err != nil {
		return nil, err
	}

	// A limit document without a ceiling for this category means no cap,
	// not a zero cap.
	if ceiling, ok := limit.Ceiling(req.Category); ok && currentTotal+amount > ceiling {
		log.Warn().
			Str("userID", req.UserID).
			Str("category", req.Category).
			Float64("current_total", currentTotal).
			Float64("amount", amount).
			Float64("ceiling", ceiling).
			Msg("Expense would exceed spending limit")
		metrics.ExpensesRejectedTotal.WithLabelValues("limit_exceeded").Inc()
		s.notifyBreach(req.UserID, req.Category, amount, currentTotal, ceiling)
		return nil, &LimitExceededError{Category: req.Category, Ceiling: ceiling}
	}

	expense, err := s.expenseRepo.UpsertIncrement(ctx, req.UserID, req.Category, req.Purpose, date, amount)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("userID", req.UserID).
		Str("category", req.Category).
		Float64("amount", amount).
		Float64("new_total", expense.Amount).
		Msg("Expense recorded")
	metrics.ExpensesRecordedTotal.Inc()
	return expense, nil
}

func (s *expenseService) validate(req *models.RecordExpenseRequest) (float64, *ValidationError) {
	var invalid []string
	if req.Category == "" {
		invalid = append(invalid, "category")
	}
	if req.Purpose == "" {
		invalid = append(invalid, "purpose")
	}
	if req.UserID == "" {
		invalid = append(invalid, "userId")
	}

	// ParseFloat accepts "NaN" and "Inf", and NaN compares false against
	// everything, so non-finite values would slip past both this guard and
	// the ceiling check and poison the accumulated amount.
	amount, err := strconv.ParseFloat(string(req.Amount), 64)
	if req.Amount == "" || err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		invalid = append(invalid, "amount")
	}

	if len(invalid) > 0 {
		return 0, &ValidationError{Fields: invalid}
	}
	return amount, nil
}

// notifyBreach is fire-and-forget: a failed publish is logged and never
// changes the outcome of the request.
func (s *expenseService) notifyBreach(userID, category string, amount, currentTotal, ceiling float64) {
	alert := notifier.LimitAlert{
		UserID:       userID,
		Category:     category,
		Amount:       amount,
		CurrentTotal: currentTotal,
		Ceiling:      ceiling,
	}
	if err := s.publisher.Publish(alert); err != nil {
		log.Error().Err(err).Str("userID", userID).Str("category", category).Msg("Failed to publish limit alert")
	}
}
