package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"spendly/internal/models"
	"spendly/internal/services"
	"spendly/internal/utils"
)

type ExpenseHandler struct {
	expenseService services.ExpenseService
	summaryService services.SummaryService
}

func NewExpenseHandler(expenseService services.ExpenseService, summaryService services.SummaryService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		summaryService: summaryService,
	}
}

func (h *ExpenseHandler) RecordExpense(w http.ResponseWriter, r *http.Request) {
	var req models.RecordExpenseRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Invalid request body for RecordExpense")
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	expense, err := h.expenseService.RecordExpense(r.Context(), &req)
	if err != nil {
		log.Warn().Err(err).Str("user_id", req.UserID).Str("category", req.Category).Msg("Expense write rejected by service")
		sendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Expense updated successfully.",
		"expense": expense,
	})
}

func (h *ExpenseHandler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	month := r.URL.Query().Get("month")

	summary, err := h.summaryService.GetMonthlySummary(r.Context(), userID, month)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("month", month).Msg("Monthly summary request rejected by service")
		sendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, summary)
}

func (h *ExpenseHandler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	date := r.URL.Query().Get("date")

	summary, err := h.summaryService.GetDailySummary(r.Context(), userID, date)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("date", date).Msg("Daily summary request rejected by service")
		sendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, summary)
}
