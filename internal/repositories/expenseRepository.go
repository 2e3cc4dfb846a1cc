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

type ExpenseRepository interface {
	UpsertIncrement(ctx context.Context, userID, category, purpose, date string, amount float64) (*models.Expense, error)
	SumByUserAndCategory(ctx context.Context, userID, category string) (float64, error)
	FindByUserAndDateRange(ctx context.Context, userID, startDate, endDate string) ([]models.Expense, error)
}

type expenseRepository struct {
	db database.Service
}

func NewExpenseRepository(db database.Service) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) collection() *mongo.Collection {
	return r.db.Client().Database(database.Name).Collection("expenses")
}

// UpsertIncrement adds amount to the (userId, category) document, creating it
// when absent. Purpose and date are overwritten so the document always carries
// the most recent write. Returns the document as it looks after the update.
func (r *expenseRepository) UpsertIncrement(ctx context.Context, userID, category, purpose, date string, amount float64) (*models.Expense, error) {
	queryType := "upsertIncrement"
	repository := "expense"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	filter := bson.M{"userId": userID, "category": category}
	update := bson.M{
		"$inc": bson.M{"amount": amount},
		"$set": bson.M{"purpose": purpose, "date": date},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var expense models.Expense
	err := r.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&expense)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Str("user_id", userID).Str("category", category).Msg("Failed to upsert expense")
		return nil, fmt.Errorf("failed to upsert expense: %w", err)
	}
	return &expense, nil
}

// SumByUserAndCategory aggregates the cumulative spend for one
// (userId, category) key. Returns 0 when no documents match.
func (r *expenseRepository) SumByUserAndCategory(ctx context.Context, userID, category string) (float64, error) {
	queryType := "sumByUserAndCategory"
	repository := "expense"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}, {Key: "category", Value: category}}}},
		bson.D{{Key: "$group", Value: bson.D{{Key: "_id", Value: nil}, {Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}}}}},
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Str("user_id", userID).Str("category", category).Msg("Failed to aggregate expenses")
		return 0, fmt.Errorf("failed to aggregate expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return 0, fmt.Errorf("failed to decode expense aggregation: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (r *expenseRepository) FindByUserAndDateRange(ctx context.Context, userID, startDate, endDate string) ([]models.Expense, error) {
	queryType := "findByUserAndDateRange"
	repository := "expense"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	filter := bson.M{
		"userId": userID,
		"date": bson.M{
			"$gte": startDate,
			"$lte": endDate,
		},
	}

	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch expenses by date range")
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var expenses []models.Expense
	if err := cursor.All(ctx, &expenses); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to decode expenses: %w", err)
	}
	return expenses, nil
}
