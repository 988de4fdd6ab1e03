package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format used for expense dates and the
// daily quota counters. No time-of-day component.
const DateLayout = "2006-01-02"

// IncomeMarker prefixes the description of income entries. Income is not a
// distinct type; the prefix is the contract with already-stored data.
const IncomeMarker = "[RECEITA] "

// Expense represents a financial transaction record.
type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	EditedAt    *time.Time      `json:"editedAt,omitempty"`
}

// IsIncome reports whether the entry carries the income marker.
func (e Expense) IsIncome() bool {
	return strings.HasPrefix(e.Description, IncomeMarker)
}

// NewID generates the caller-side timestamp-based identifier used for
// expenses, goals, cards and insights.
func NewID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// Day formats t as a calendar day.
func Day(t time.Time) string {
	return t.Format(DateLayout)
}
