package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"spendly/internal/models"
)

func TestSetLimitUpsertPolicy(t *testing.T) {
	limitRepo := newFakeLimitRepo()
	svc := NewLimitService(limitRepo, DuplicateUpsert)

	req := &models.SetLimitRequest{
		UserID: "u1",
		Limits: map[string]float64{"food": 100, "transport": 50},
	}

	result, err := svc.SetLimit(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Upserted)
	assert.Equal(t, int64(0), result.Matched)

	// idempotent: same payload twice leaves the same observable state
	result, err = svc.SetLimit(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Matched)

	limit, err := svc.GetLimit(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, map[string]float64{"food": 100, "transport": 50}, limit.Limits)

	// replacement is wholesale, not a merge
	_, err = svc.SetLimit(context.Background(), &models.SetLimitRequest{
		UserID: "u1",
		Limits: map[string]float64{"food": 200},
	})
	assert.NoError(t, err)
	limit, _ = svc.GetLimit(context.Background(), "u1")
	assert.Equal(t, map[string]float64{"food": 200}, limit.Limits)
}

func TestSetLimitRejectPolicy(t *testing.T) {
	limitRepo := newFakeLimitRepo()
	svc := NewLimitService(limitRepo, DuplicateReject)

	req := &models.SetLimitRequest{
		UserID: "u1",
		Limits: map[string]float64{"food": 100},
	}

	_, err := svc.SetLimit(context.Background(), req)
	assert.NoError(t, err)

	_, err = svc.SetLimit(context.Background(), req)
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)

	// first write stays intact
	limit, err := svc.GetLimit(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, map[string]float64{"food": 100}, limit.Limits)
}

func TestSetLimitValidation(t *testing.T) {
	svc := NewLimitService(newFakeLimitRepo(), DuplicateUpsert)

	_, err := svc.SetLimit(context.Background(), &models.SetLimitRequest{
		Limits: map[string]float64{"food": 100},
	})
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, []string{"userId"}, valErr.Fields)

	_, err = svc.SetLimit(context.Background(), &models.SetLimitRequest{UserID: "u1"})
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, []string{"limits"}, valErr.Fields)

	_, err = svc.SetLimit(context.Background(), &models.SetLimitRequest{
		UserID: "u1",
		Limits: map[string]float64{"food": -10},
	})
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, []string{"food"}, valErr.Fields)
}

func TestGetLimitAbsenceIsNotAnError(t *testing.T) {
	svc := NewLimitService(newFakeLimitRepo(), DuplicateUpsert)

	limit, err := svc.GetLimit(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, limit)
}

func TestNewLimitServiceDefaultsToUpsert(t *testing.T) {
	limitRepo := newFakeLimitRepo()
	svc := NewLimitService(limitRepo, DuplicatePolicy("bogus"))

	req := &models.SetLimitRequest{
		UserID: "u1",
		Limits: map[string]float64{"food": 100},
	}
	_, err := svc.SetLimit(context.Background(), req)
	assert.NoError(t, err)
	_, err = svc.SetLimit(context.Background(), req)
	assert.NoError(t, err)
}
