package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"

	"spendly/internal/database"
	"spendly/internal/notifier"
	"spendly/internal/repositories"
	"spendly/internal/services"
)

type Server struct {
	port           int
	httpServer     *http.Server
	db             database.Service
	publisher      notifier.Publisher
	userService    services.UserService
	limitService   services.LimitService
	expenseService services.ExpenseService
	summaryService services.SummaryService
}

func NewServer() *Server {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
		log.Warn().Str("port", os.Getenv("PORT")).Msg("Invalid or missing PORT environment variable, using default 8080")
	}

	db := database.New()

	publisher := newPublisher()

	userRepo := repositories.NewUserRepository(db)
	limitRepo := repositories.NewLimitRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)

	limitService := services.NewLimitService(limitRepo, services.DuplicatePolicy(os.Getenv("LIMIT_DUPLICATE_POLICY")))

	s := &Server{
		port:           port,
		db:             db,
		publisher:      publisher,
		userService:    services.NewUserService(userRepo),
		limitService:   limitService,
		expenseService: services.NewExpenseService(expenseRepo, limitService, publisher),
		summaryService: services.NewSummaryService(expenseRepo),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// newPublisher connects to RabbitMQ when AMQP_URL is set; limit alerts are
// silently discarded otherwise.
func newPublisher() notifier.Publisher {
	amqpURL := os.Getenv("AMQP_URL")
	if amqpURL == "" {
		log.Info().Msg("AMQP_URL not set, limit alerts disabled")
		return notifier.Noop{}
	}

	publisher, err := notifier.NewRabbitMQPublisher(amqpURL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to RabbitMQ, limit alerts disabled")
		return notifier.Noop{}
	}
	log.Info().Msg("Connected to RabbitMQ for limit alerts")
	return publisher
}

func (s *Server) Start() error {
	log.Info().Int("port", s.port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	if err := s.publisher.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing alert publisher")
	}
	if err := s.db.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing database connection")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
