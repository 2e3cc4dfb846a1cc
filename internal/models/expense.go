package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expense keeps one document per (userId, category). Amount accumulates
// across writes; Purpose and Date always reflect the most recent write.
// Date is stored as a YYYY-MM-DD string.
type Expense struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID   string             `json:"userId" bson:"userId"`
	Category string             `json:"category" bson:"category"`
	Purpose  string             `json:"purpose" bson:"purpose"`
	Amount   float64            `json:"amount" bson:"amount"`
	Date     string             `json:"date" bson:"date"`
}

// Amount tolerates both a JSON number and a numeric string on the wire.
// Validation of the parsed value happens in the service layer.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// RecordExpenseRequest is the body of POST /expenses.
type RecordExpenseRequest struct {
	UserID   string `json:"userId"`
	Category string `json:"category"`
	Purpose  string `json:"purpose"`
	Amount   Amount `json:"amount"`
	Date     string `json:"date"`
}

// MonthlySummary maps date -> category -> summed amount.
type MonthlySummary map[string]map[string]float64

// DailySummary groups one day's expenses by category.
type DailySummary struct {
	Expenses     map[string]float64 `json:"expenses"`
	TotalExpense float64            `json:"totalExpense"`
	Date         string             `json:"date"`
}
