package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordExpenseRequestAmountForms(t *testing.T) {
	var req RecordExpenseRequest
	err := json.Unmarshal([]byte(`{"userId": "u1", "category": "food", "purpose": "lunch", "amount": 12.5, "date": "2024-06-01"}`), &req)
	assert.NoError(t, err)
	assert.Equal(t, Amount("12.5"), req.Amount)

	err = json.Unmarshal([]byte(`{"amount": "42"}`), &req)
	assert.NoError(t, err)
	assert.Equal(t, Amount("42"), req.Amount)

	err = json.Unmarshal([]byte(`{"amount": true}`), &req)
	assert.Error(t, err)
}
