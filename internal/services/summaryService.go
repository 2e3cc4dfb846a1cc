package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"spendly/internal/metrics"
	"spendly/internal/models"
	"spendly/internal/repositories"
)

// SummaryService defines the interface for expense summary reads.
type SummaryService interface {
	// GetMonthlySummary groups one month's expenses into date -> category ->
	// summed amount. Month must be formatted as YYYY-MM.
	GetMonthlySummary(ctx context.Context, userID, month string) (models.MonthlySummary, error)
	// GetDailySummary groups one day's expenses by category. Date must be
	// formatted as YYYY-MM-DD.
	GetDailySummary(ctx context.Context, userID, date string) (*models.DailySummary, error)
}

type summaryService struct {
	expenseRepo repositories.ExpenseRepository
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(expenseRepo repositories.ExpenseRepository) SummaryService {
	return &summaryService{expenseRepo: expenseRepo}
}

func (s *summaryService) GetMonthlySummary(ctx context.Context, userID, month string) (models.MonthlySummary, error) {
	log.Debug().Str("userID", userID).Str("month", month).Msg("Building monthly summary")

	if userID == "" {
		return nil, &ValidationError{Fields: []string{"userId"}}
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		log.Warn().Str("month", month).Msg("Invalid month format, expected YYYY-MM")
		return nil, &ValidationError{Fields: []string{"month"}}
	}

	// Day 0 of the following month normalizes to the last day of this one,
	// including December rolling into the next year.
	end := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, time.UTC)

	expenses, err := s.expenseRepo.FindByUserAndDateRange(ctx, userID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	summary := make(models.MonthlySummary)
	for _, expense := range expenses {
		if summary[expense.Date] == nil {
			summary[expense.Date] = make(map[string]float64)
		}
		summary[expense.Date][expense.Category] += expense.Amount
	}

	log.Debug().Str("userID", userID).Str("month", month).Int("days", len(summary)).Msg("Monthly summary built")
	metrics.SummariesServedTotal.Inc()
	return summary, nil
}

func (s *summaryService) GetDailySummary(ctx context.Context, userID, date string) (*models.DailySummary, error) {
	log.Debug().Str("userID", userID).Str("date", date).Msg("Building daily summary")

	if userID == "" {
		return nil, &ValidationError{Fields: []string{"userId"}}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		log.Warn().Str("date", date).Msg("Invalid date format, expected YYYY-MM-DD")
		return nil, &ValidationError{Fields: []string{"date"}}
	}

	expenses, err := s.expenseRepo.FindByUserAndDateRange(ctx, userID, date, date)
	if err != nil {
		return nil, err
	}

	summary := &models.DailySummary{
		Expenses: make(map[string]float64),
		Date:     date,
	}
	for _, expense := range expenses {
		summary.Expenses[expense.Category] += expense.Amount
		summary.TotalExpense += expense.Amount
	}

	metrics.SummariesServedTotal.Inc()
	return summary, nil
}
