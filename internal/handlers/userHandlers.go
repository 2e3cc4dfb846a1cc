package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"spendly/internal/models"
	"spendly/internal/services"
	"spendly/internal/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Login creates the user on first call; subsequent calls with the same email
// return the stored record unchanged.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Invalid request body for Login")
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, created, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Login rejected by service")
		sendServiceError(w, err)
		return
	}

	if created {
		utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "User created successfully.",
			"user":    user,
		})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User already exists.",
		"user":    user,
	})
}
