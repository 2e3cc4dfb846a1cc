package services

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"spendly/internal/metrics"
	"spendly/internal/models"
	"spendly/internal/repositories"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	// Login creates the user on first call and returns the stored record on
	// every call. The bool reports whether a new user was created.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, bool, error)
	GetTotalUsers(ctx context.Context) (int64, error)
}

type userService struct {
	userRepo        repositories.UserRepository
	totalUsersGauge prometheus.Gauge
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) UserService {
	s := &userService{
		userRepo: userRepo,
		totalUsersGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "app_total_users",
			Help: "Total number of registered users in the application.",
		}),
	}
	go s.updateTotalUsersPeriodically()
	return s
}

func (s *userService) GetTotalUsers(ctx context.Context) (int64, error) {
	return s.userRepo.CountAll(ctx)
}

func (s *userService) updateTotalUsersPeriodically() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		count, err := s.GetTotalUsers(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Error updating total users gauge")
		} else {
			s.totalUsersGauge.Set(float64(count))
		}
		cancel()
	}
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, bool, error) {
	log.Debug().Str("email", req.Email).Msg("Attempting login")

	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		log.Warn().Strs("fields", missing).Msg("Login request missing required fields")
		return nil, false, &ValidationError{Fields: missing}
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		log.Info().Str("user_id", existing.ID.Hex()).Str("email", existing.Email).Msg("Returning user logged in")
		metrics.LoginAttemptsTotal.WithLabelValues("existing").Inc()
		return existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to look up user by email")
		return nil, false, err
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, false, err
	}

	log.Info().Str("user_id", created.ID.Hex()).Str("email", created.Email).Msg("New user created on first login")
	metrics.LoginAttemptsTotal.WithLabelValues("created").Inc()
	metrics.NewUsersTotal.Inc()

	if count, err := s.GetTotalUsers(ctx); err == nil {
		s.totalUsersGauge.Set(float64(count))
	}
	return created, true, nil
}
