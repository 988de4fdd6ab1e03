package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings goal tracked against a monthly contribution.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	MonthlySaving decimal.Decimal `json:"monthlySaving"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Progress returns the percentage of the target already saved, capped at 100.
func (g Goal) Progress() decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	if g.TargetAmount.IsZero() {
		return hundred
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// MonthsToGoal returns the number of whole months of saving still needed,
// or -1 when the monthly contribution is zero and the goal is unreachable.
func (g Goal) MonthsToGoal() int {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	if g.MonthlySaving.LessThanOrEqual(decimal.Zero) {
		return -1
	}
	return int(remaining.Div(g.MonthlySaving).Ceil().IntPart())
}

// CreditCard tracks a card's limit, billing cycle and running bill.
type CreditCard struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Limit       decimal.Decimal `json:"limit"`
	ClosingDay  int             `json:"closingDay"`
	DueDay      int             `json:"dueDay"`
	CurrentBill decimal.Decimal `json:"currentBill"`
	Color       string          `json:"color"`
}
