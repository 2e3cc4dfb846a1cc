package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"spendly/internal/database"
	"spendly/internal/services"
	"spendly/internal/utils"
)

type CommonHandler struct {
	db database.Service
}

func NewCommonHandler(db database.Service) *CommonHandler {
	return &CommonHandler{db: db}
}

// LivenessHandler answers GET / with a fixed string.
func (h *CommonHandler) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("spendly is running"))
}

func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.db.Health())
}

// sendServiceError maps the service error taxonomy onto HTTP statuses.
// Unrecognized errors are reported as a generic 500; their details stay in
// the server logs.
func sendServiceError(w http.ResponseWriter, err error) {
	var (
		validationErr    *services.ValidationError
		preconditionErr  *services.PreconditionError
		limitExceededErr *services.LimitExceededError
		conflictErr      *services.ConflictError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &preconditionErr), errors.As(err, &limitExceededErr):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &conflictErr):
		utils.SendJSONError(w, err.Error(), http.StatusConflict)
	default:
		log.Error().Err(err).Msg("Unexpected service error")
		utils.SendJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
