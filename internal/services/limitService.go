package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"spendly/internal/metrics"
	"spendly/internal/models"
	"spendly/internal/repositories"
)

// DuplicatePolicy controls what SetLimit does when a spending limit document
// already exists for the user.
type DuplicatePolicy string

const (
	// DuplicateUpsert replaces the existing ceilings with the new payload.
	DuplicateUpsert DuplicatePolicy = "upsert"
	// DuplicateReject refuses the write when a limit is already configured.
	DuplicateReject DuplicatePolicy = "reject"
)

// SetLimitResult reports whether the write updated an existing document or
// created a new one.
type SetLimitResult struct {
	Matched  int64 `json:"matchedCount"`
	Upserted int64 `json:"upsertedCount"`
}

// LimitService defines the interface for spending limit business logic.
type LimitService interface {
	SetLimit(ctx context.Context, req *models.SetLimitRequest) (*SetLimitResult, error)
	// GetLimit returns nil, nil when no limit is configured for the user.
	GetLimit(ctx context.Context, userID string) (*models.SpendingLimit, error)
}

type limitService struct {
	limitRepo repositories.LimitRepository
	policy    DuplicatePolicy
}

// NewLimitService creates a new LimitService with the given duplicate policy.
func NewLimitService(limitRepo repositories.LimitRepository, policy DuplicatePolicy) LimitService {
	if policy != DuplicateReject {
		policy = DuplicateUpsert
	}
	return &limitService{limitRepo: limitRepo, policy: policy}
}

func (s *limitService) SetLimit(ctx context.Context, req *models.SetLimitRequest) (*SetLimitResult, error) {
	log.Debug().Str("userID", req.UserID).Int("categories", len(req.Limits)).Msg("Attempting to set spending limit")

	if req.UserID == "" {
		log.Warn().Msg("Spending limit request missing userId")
		return nil, &ValidationError{Fields: []string{"userId"}}
	}
	if len(req.Limits) == 0 {
		log.Warn().Str("userID", req.UserID).Msg("Spending limit request has no category ceilings")
		return nil, &ValidationError{Fields: []string{"limits"}}
	}
	for category, ceiling := range req.Limits {
		if ceiling <= 0 {
			log.Warn().Str("userID", req.UserID).Str("category", category).Float64("ceiling", ceiling).Msg("Rejecting non-positive ceiling")
			return nil, &ValidationError{Fields: []string{category}}
		}
	}

	if s.policy == DuplicateReject {
		exists, err := s.limitRepo.Exists(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		if exists {
			log.Warn().Str("userID", req.UserID).Msg("Spending limit already configured, rejecting per policy")
			return nil, &ConflictError{Message: "spending limit already exists for this user"}
		}
	}

	result, err := s.limitRepo.Upsert(ctx, req.UserID, req.Limits)
	if err != nil {
		log.Error().Err(err).Str("userID", req.UserID).Msg("Failed to save spending limit")
		return nil, err
	}

	log.Info().Str("userID", req.UserID).Int64("matched", result.MatchedCount).Int64("upserted", result.UpsertedCount).Msg("Spending limit saved")
	metrics.LimitsConfiguredTotal.Inc()
	return &SetLimitResult{Matched: result.MatchedCount, Upserted: result.UpsertedCount}, nil
}

func (s *limitService) GetLimit(ctx context.Context, userID string) (*models.SpendingLimit, error) {
	limit, err := s.limitRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		log.Error().Err(err).Str("userID", userID).Msg("Failed to look up spending limit")
		return nil, err
	}
	return limit, nil
}
