package repositories

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spendly/internal/database"
	"spendly/internal/models"
	"spendly/internal/utils"
)

type LimitRepository interface {
	Upsert(ctx context.Context, userID string, limits map[string]float64) (*mongo.UpdateResult, error)
	FindByUserID(ctx context.Context, userID string) (*models.SpendingLimit, error)
	Exists(ctx context.Context, userID string) (bool, error)
}

type limitRepository struct {
	db database.Service
}

func NewLimitRepository(db database.Service) LimitRepository {
	return &limitRepository{db: db}
}

func (r *limitRepository) collection() *mongo.Collection {
	return r.db.Client().Database(database.Name).Collection("spendingLimits")
}

// Upsert replaces the user's per-category ceilings wholesale, creating the
// document when absent. Calling it twice with the same payload is a no-op
// the second time.
func (r *limitRepository) Upsert(ctx context.Context, userID string, limits map[string]float64) (*mongo.UpdateResult, error) {
	queryType := "upsert"
	repository := "limit"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	filter := bson.M{"userId": userID}
	update := bson.M{"$set": bson.M{"userId": userID, "limits": limits}}
	opts := options.Update().SetUpsert(true)

	result, err := r.collection().UpdateOne(ctx, filter, update, opts)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to upsert spending limit")
		return nil, fmt.Errorf("failed to upsert spending limit: %w", err)
	}
	return result, nil
}

func (r *limitRepository) FindByUserID(ctx context.Context, userID string) (*models.SpendingLimit, error) {
	queryType := "findByUserId"
	repository := "limit"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var limit models.SpendingLimit
	err := r.collection().FindOne(ctx, bson.M{"userId": userID}).Decode(&limit)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, err // Can be mongo.ErrNoDocuments
	}
	return &limit, nil
}

func (r *limitRepository) Exists(ctx context.Context, userID string) (bool, error) {
	queryType := "exists"
	repository := "limit"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	count, err := r.collection().CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to check spending limit existence")
		return false, fmt.Errorf("failed to check spending limit existence: %w", err)
	}
	return count > 0, nil
}
