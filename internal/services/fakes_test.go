package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"spendly/internal/models"
	"spendly/internal/notifier"
)

// fakeLimitRepo keeps limit documents in memory, keyed by userId.
type fakeLimitRepo struct {
	limits  map[string]map[string]float64
	failAll bool
}

func newFakeLimitRepo() *fakeLimitRepo {
	return &fakeLimitRepo{limits: make(map[string]map[string]float64)}
}

func (f *fakeLimitRepo) Upsert(_ context.Context, userID string, limits map[string]float64) (*mongo.UpdateResult, error) {
	if f.failAll {
		return nil, errors.New("storage unavailable")
	}
	_, existed := f.limits[userID]
	copied := make(map[string]float64, len(limits))
	for k, v := range limits {
		copied[k] = v
	}
	f.limits[userID] = copied
	if existed {
		return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return &mongo.UpdateResult{UpsertedCount: 1}, nil
}

func (f *fakeLimitRepo) FindByUserID(_ context.Context, userID string) (*models.SpendingLimit, error) {
	if f.failAll {
		return nil, errors.New("storage unavailable")
	}
	limits, ok := f.limits[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &models.SpendingLimit{UserID: userID, Limits: limits}, nil
}

func (f *fakeLimitRepo) Exists(_ context.Context, userID string) (bool, error) {
	if f.failAll {
		return false, errors.New("storage unavailable")
	}
	_, ok := f.limits[userID]
	return ok, nil
}

// fakeExpenseRepo keeps one expense document per (userId, category), the
// same shape the real collection uses.
type fakeExpenseRepo struct {
	expenses map[string]*models.Expense
	writes   int
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[string]*models.Expense)}
}

func (f *fakeExpenseRepo) key(userID, category string) string {
	return userID + "/" + category
}

func (f *fakeExpenseRepo) UpsertIncrement(_ context.Context, userID, category, purpose, date string, amount float64) (*models.Expense, error) {
	f.writes++
	e, ok := f.expenses[f.key(userID, category)]
	if !ok {
		e = &models.Expense{ID: primitive.NewObjectID(), UserID: userID, Category: category}
		f.expenses[f.key(userID, category)] = e
	}
	e.Amount += amount
	e.Purpose = purpose
	e.Date = date
	return e, nil
}

func (f *fakeExpenseRepo) SumByUserAndCategory(_ context.Context, userID, category string) (float64, error) {
	var total float64
	for _, e := range f.expenses {
		if e.UserID == userID && e.Category == category {
			total += e.Amount
		}
	}
	return total, nil
}

func (f *fakeExpenseRepo) FindByUserAndDateRange(_ context.Context, userID, startDate, endDate string) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range f.expenses {
		if e.UserID == userID && e.Date >= startDate && e.Date <= endDate {
			out = append(out, *e)
		}
	}
	return out, nil
}

// fakeUserRepo keeps users in memory, keyed by email.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

// recordingPublisher captures published alerts and can be told to fail.
type recordingPublisher struct {
	alerts []notifier.LimitAlert
	err    error
}

func (p *recordingPublisher) Publish(alert notifier.LimitAlert) error {
	if p.err != nil {
		return p.err
	}
	p.alerts = append(p.alerts, alert)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
