// Package quota enforces the free-tier daily limits: at most 2 new
// transactions and 1 edit per calendar day. Premium is unlimited. The gate
// only evaluates; incrementing the counters after a successful write is the
// caller's responsibility.
package quota

import "fintrack/internal/models"

// Free-tier daily allowances.
const (
	FreeDailyExpenses = 2
	FreeDailyEdits    = 1
)

// EffectiveForDay interprets a possibly-stale counter record for the given
// calendar day. A stored date other than day means nothing has been used
// yet; the stored record itself is left alone until the next save, so a
// read-only check never mutates storage.
func EffectiveForDay(stored models.DailyLimits, day string) models.DailyLimits {
	if stored.Date != day {
		return models.DailyLimits{Date: day}
	}
	return stored
}

// CanCreateExpense reports whether the user may create another transaction
// on the given day.
func CanCreateExpense(user models.User, stored models.DailyLimits, day string) bool {
	if user.IsPremium() {
		return true
	}
	return EffectiveForDay(stored, day).ExpensesCreated < FreeDailyExpenses
}

// CanEditExpense reports whether the user may edit another transaction on
// the given day.
func CanEditExpense(user models.User, stored models.DailyLimits, day string) bool {
	if user.IsPremium() {
		return true
	}
	return EffectiveForDay(stored, day).EditsUsed < FreeDailyEdits
}
