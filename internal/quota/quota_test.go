package quota

import (
	"testing"

	"fintrack/internal/models"

	"github.com/stretchr/testify/assert"
)

var (
	freeUser    = models.User{Email: "ana@example.com", Plan: models.PlanFree}
	premiumUser = models.User{Email: "ana@example.com", Plan: models.PlanPremium}
)

func TestCanCreateExpenseFreeTier(t *testing.T) {
	tests := []struct {
		name   string
		stored models.DailyLimits
		day    string
		want   bool
	}{
		{"nothing used today", models.DailyLimits{Date: "2026-08-30"}, "2026-08-30", true},
		{"one used today", models.DailyLimits{Date: "2026-08-30", ExpensesCreated: 1}, "2026-08-30", true},
		{"limit reached", models.DailyLimits{Date: "2026-08-30", ExpensesCreated: 2}, "2026-08-30", false},
		{"over limit", models.DailyLimits{Date: "2026-08-30", ExpensesCreated: 5}, "2026-08-30", false},
		{"stale record resets on day change", models.DailyLimits{Date: "2026-08-29", ExpensesCreated: 2}, "2026-08-30", true},
		{"empty record", models.DailyLimits{}, "2026-08-30", true},
		{"edits used do not affect creates", models.DailyLimits{Date: "2026-08-30", EditsUsed: 1}, "2026-08-30", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanCreateExpense(freeUser, tt.stored, tt.day))
		})
	}
}

func TestCanEditExpenseFreeTier(t *testing.T) {
	tests := []struct {
		name   string
		stored models.DailyLimits
		day    string
		want   bool
	}{
		{"first edit of the day", models.DailyLimits{Date: "2026-08-30"}, "2026-08-30", true},
		{"limit reached", models.DailyLimits{Date: "2026-08-30", EditsUsed: 1}, "2026-08-30", false},
		{"stale record resets on day change", models.DailyLimits{Date: "2026-08-29", EditsUsed: 1}, "2026-08-30", true},
		{"creates used do not affect edits", models.DailyLimits{Date: "2026-08-30", ExpensesCreated: 2}, "2026-08-30", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditExpense(freeUser, tt.stored, tt.day))
		})
	}
}

func TestPremiumIsUnlimited(t *testing.T) {
	maxed := models.DailyLimits{Date: "2026-08-30", ExpensesCreated: 99, EditsUsed: 99}
	assert.True(t, CanCreateExpense(premiumUser, maxed, "2026-08-30"))
	assert.True(t, CanEditExpense(premiumUser, maxed, "2026-08-30"))
}

func TestEffectiveForDay(t *testing.T) {
	stored := models.DailyLimits{Date: "2026-08-29", ExpensesCreated: 2, EditsUsed: 1}

	effective := EffectiveForDay(stored, "2026-08-30")
	assert.Equal(t, models.DailyLimits{Date: "2026-08-30"}, effective)

	// The stored record is a value; interpretation never mutates it.
	assert.Equal(t, "2026-08-29", stored.Date)
	assert.Equal(t, 2, stored.ExpensesCreated)

	same := EffectiveForDay(stored, "2026-08-29")
	assert.Equal(t, stored, same, "matching day passes counters through")
}
