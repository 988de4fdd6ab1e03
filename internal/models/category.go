package models

import "github.com/shopspring/decimal"

// Category is a user-editable spending category. Expenses reference it by
// name only; deleting a category leaves existing expenses untouched.
type Category struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Color         string   `json:"color"`
	Subcategories []string `json:"subcategories"`
}

// Insight types.
const (
	InsightWarning = "warning"
	InsightTip     = "tip"
	InsightSuccess = "success"
)

// AIInsight is a templated advisory message derived from recent spending.
type AIInsight struct {
	ID               string           `json:"id"`
	Type             string           `json:"type"`
	Message          string           `json:"message"`
	Category         string           `json:"category,omitempty"`
	PotentialSavings *decimal.Decimal `json:"potentialSavings,omitempty"`
	Date             string           `json:"date"`
}
