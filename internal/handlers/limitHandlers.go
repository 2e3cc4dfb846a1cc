package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"spendly/internal/models"
	"spendly/internal/services"
	"spendly/internal/utils"
)

type LimitHandler struct {
	limitService services.LimitService
}

func NewLimitHandler(limitService services.LimitService) *LimitHandler {
	return &LimitHandler{limitService: limitService}
}

func (h *LimitHandler) SetLimit(w http.ResponseWriter, r *http.Request) {
	var req models.SetLimitRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Invalid request body for SetLimit")
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.limitService.SetLimit(r.Context(), &req)
	if err != nil {
		log.Warn().Err(err).Str("user_id", req.UserID).Msg("Spending limit write rejected by service")
		sendServiceError(w, err)
		return
	}

	message := "New user's spending limit added successfully."
	if result.Matched > 0 {
		message = "Existing user's spending limit updated successfully."
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"result":  result,
	})
}
