package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpendingLimit holds at most one document per userId. Limits maps a
// lower-cased category name to its ceiling amount; a category missing from
// the map has no cap.
type SpendingLimit struct {
	ID     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID string             `json:"userId" bson:"userId"`
	Limits map[string]float64 `json:"limits" bson:"limits"`
}

// Ceiling returns the configured ceiling for a category. The second return
// is false when no ceiling is configured for that category.
func (l *SpendingLimit) Ceiling(category string) (float64, bool) {
	v, ok := l.Limits[strings.ToLower(category)]
	return v, ok
}

// SetLimitRequest accepts both wire forms for POST /spendingLimit:
//
//	{"userId": "u1", "food": 100, "transport": 50}
//	{"userId": "u1", "limits": {"food": 100, "transport": 50}}
//
// Category keys are normalized to lower case.
type SetLimitRequest struct {
	UserID string
	Limits map[string]float64
}

func (r *SetLimitRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Limits = make(map[string]float64)

	for key, val := range raw {
		switch key {
		case "userId":
			if err := json.Unmarshal(val, &r.UserID); err != nil {
				return fmt.Errorf("userId must be a string")
			}
		case "limits":
			nested := make(map[string]float64)
			if err := json.Unmarshal(val, &nested); err != nil {
				return fmt.Errorf("limits must map categories to numbers")
			}
			for cat, ceiling := range nested {
				r.Limits[strings.ToLower(cat)] = ceiling
			}
		default:
			var ceiling float64
			if err := json.Unmarshal(val, &ceiling); err != nil {
				return fmt.Errorf("limit for %q must be a number", key)
			}
			r.Limits[strings.ToLower(key)] = ceiling
		}
	}

	return nil
}
