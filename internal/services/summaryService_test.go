package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMonthlySummaryGroupsByDateAndCategory(t *testing.T) {
	expenseRepo := newFakeExpenseRepo()
	svc := NewSummaryService(expenseRepo)

	ctx := context.Background()
	_, _ = expenseRepo.UpsertIncrement(ctx, "u1", "food", "groceries", "2024-06-01", 30)
	_, _ = expenseRepo.UpsertIncrement(ctx, "u1", "transport", "bus", "2024-06-01", 5)
	_, _ = expenseRepo.UpsertIncrement(ctx, "u1", "rent", "june rent", "2024-06-15", 800)
	_, _ = expenseRepo.UpsertIncrement(ctx, "u1", "games", "outside window", "2024-07-01", 60)
	_, _ = expenseRepo.UpsertIncrement(ctx, "u2", "food", "other user", "2024-06-01", 99)

	summary, err := svc.GetMonthlySummary(ctx, "u1", "2024-06")
	assert.NoError(t, err)
	assert.Len(t, summary, 2)
	assert.Equal(t, 30.0, summary["2024-06-01"]["food"])
	assert.Equal(t, 5.0, summary["2024-06-01"]["transport"])
	assert.Equal(t, 800.0, summary["2024-06-15"]["rent"])

	// summing every category total across all dates must equal the sum of
	// all ledger entries in the window
	var total float64
	for _, byCategory := range summary {
		for _, amount := range byCategory {
			total += amount
		}
	}
	assert.Equal(t, 835.0, total)
}

func TestGetMonthlySummaryEmptyLedger(t *testing.T) {
	svc := NewSummaryService(newFakeExpenseRepo())

	summary, err := svc.GetMonthlySummary(context.Background(), "u1", "2024-06")
	assert.NoError(t, err)
	assert.NotNil(t, summary)
	assert.Empty(t, summary)
}

func TestGetMonthlySummaryDecemberRange(t *testing.T) {
	expenseRepo := newFakeExpenseRepo()
	svc := NewSummaryService(expenseRepo)

	ctx := context.Background()
	_, _ = expenseRepo.UpsertIncrement(ctx, "u1", "gifts", "new year's eve", "2024-12-31", 50)
	_, _ = expenseRepo.UpsertIncrement(ctx, "u1", "food", "next year", "2025-01-01", 20)

	summary, err := svc.GetMonthlySummary(ctx, "u1", "2024-12")
	assert.NoError(t, err)
	assert.Len(t, summary, 1)
	assert.Equal(t, 50.0, summary["2024-12-31"]["gifts"])
}

func TestGetMonthlySummaryValidation(t *testing.T) {
	svc := NewSummaryService(newFakeExpenseRepo())

	var valErr *ValidationError
	_, err := svc.GetMonthlySummary(context.Background(), "", "2024-06")
	assert.ErrorAs(t, err, &valErr)

	_, err = svc.GetMonthlySummary(context.Background(), "u1", "June 2024")
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, []string{"month"}, valErr.Fields)
}

func TestGetDailySummary(t *testing.T) {
	expenseRepo := newFakeExpenseRepo()
	svc := NewSummaryService(expenseRepo)

	ctx := context.Background()
	_, _ = expenseRepo.UpsertIncrement(ctx, "u1", "food", "lunch", "2024-06-01", 12)
	_, _ = expenseRepo.UpsertIncrement(ctx, "u1", "transport", "bus", "2024-06-01", 3)
	_, _ = expenseRepo.UpsertIncrement(ctx, "u1", "games", "other day", "2024-06-02", 40)

	summary, err := svc.GetDailySummary(ctx, "u1", "2024-06-01")
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-01", summary.Date)
	assert.Equal(t, 12.0, summary.Expenses["food"])
	assert.Equal(t, 3.0, summary.Expenses["transport"])
	assert.Equal(t, 15.0, summary.TotalExpense)

	empty, err := svc.GetDailySummary(ctx, "u1", "2024-06-03")
	assert.NoError(t, err)
	assert.Empty(t, empty.Expenses)
	assert.Equal(t, 0.0, empty.TotalExpense)
}
