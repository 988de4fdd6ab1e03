package models

import "time"

// Plan tiers.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// User represents the active account on this device. There is exactly one;
// it is overwritten on each login and removed on logout.
type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsPremium reports whether the user is on the premium plan.
func (u User) IsPremium() bool {
	return u.Plan == PlanPremium
}

// DailyLimits holds the per-day usage counters for the free tier. The
// counters apply to the stored calendar day; a stored day other than today
// means nothing has been used today.
type DailyLimits struct {
	Date            string `json:"date"`
	ExpensesCreated int    `json:"expensesCreated"`
	EditsUsed       int    `json:"editsUsed"`
}

// Session represents an authenticated browser session.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}
