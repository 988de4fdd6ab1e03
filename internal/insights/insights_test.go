package insights

import (
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func expense(category, amount string, daysAgo int) models.Expense {
	return models.Expense{
		ID:          models.NewID(now),
		UserID:      "ana@example.com",
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: "teste",
		Date:        models.Day(now.AddDate(0, 0, -daysAgo)),
		CreatedAt:   now,
	}
}

func TestWarningForTopCategoryOver500(t *testing.T) {
	got := Generate([]models.Expense{
		expense("Transporte", "300", 1),
		expense("Transporte", "201", 5),
		expense("Casa", "100", 2),
	}, now)

	require.Len(t, got, 1)
	in := got[0]
	assert.Equal(t, models.InsightWarning, in.Type)
	assert.Equal(t, "Transporte", in.Category)
	require.NotNil(t, in.PotentialSavings)
	assert.True(t, in.PotentialSavings.Equal(decimal.RequireFromString("100.2")),
		"501 * 0.2 should be exactly 100.2, got %s", in.PotentialSavings)
	assert.Contains(t, in.Message, "Transporte")
	assert.Contains(t, in.Message, "501.00")
	assert.Contains(t, in.Message, "100.20")
}

func TestNoWarningAtExactly500(t *testing.T) {
	got := Generate([]models.Expense{expense("Transporte", "500", 1)}, now)
	assert.Empty(t, got, "threshold is strictly greater than 500")
}

func TestFoodTipOver300(t *testing.T) {
	got := Generate([]models.Expense{
		expense("Alimentação", "301", 3),
		expense("Casa", "100", 2),
	}, now)

	require.Len(t, got, 1)
	in := got[0]
	assert.Equal(t, models.InsightTip, in.Type)
	assert.Equal(t, "Alimentação", in.Category)
	require.NotNil(t, in.PotentialSavings)
	assert.True(t, in.PotentialSavings.Equal(decimal.RequireFromString("120.4")),
		"301 * 0.4 should be exactly 120.4, got %s", in.PotentialSavings)
}

func TestWarningAndTipTogether(t *testing.T) {
	got := Generate([]models.Expense{
		expense("Alimentação", "600", 1),
		expense("Transporte", "100", 1),
	}, now)

	require.Len(t, got, 2)
	assert.Equal(t, models.InsightWarning, got[0].Type)
	assert.Equal(t, models.InsightTip, got[1].Type)
	assert.Equal(t, "Alimentação", got[0].Category)
	assert.Equal(t, "Alimentação", got[1].Category)
}

func TestOnlyTopCategoryYieldsWarning(t *testing.T) {
	got := Generate([]models.Expense{
		expense("Transporte", "700", 1),
		expense("Casa", "600", 1),
	}, now)

	require.Len(t, got, 1, "only the single largest category is cited")
	assert.Equal(t, "Transporte", got[0].Category)
}

func TestOldExpensesOutsideWindow(t *testing.T) {
	got := Generate([]models.Expense{
		expense("Transporte", "9000", 31),
		expense("Transporte", "100", 1),
	}, now)
	assert.Empty(t, got, "spending older than 30 days is ignored")
}

func TestWindowIsInclusive(t *testing.T) {
	got := Generate([]models.Expense{expense("Transporte", "501", 30)}, now)
	require.Len(t, got, 1, "an expense exactly 30 days back counts")
}

func TestIncomeEntriesAreIncluded(t *testing.T) {
	salary := expense("Transporte", "501", 1)
	salary.Description = models.IncomeMarker + "Salário"

	got := Generate([]models.Expense{salary}, now)
	require.Len(t, got, 1, "marker-tagged income is not excluded from the totals")
	assert.Equal(t, models.InsightWarning, got[0].Type)
}

func TestNegativeAmountsCountAbsolute(t *testing.T) {
	got := Generate([]models.Expense{expense("Transporte", "-501", 1)}, now)
	require.Len(t, got, 1)
	assert.True(t, got[0].PotentialSavings.Equal(decimal.RequireFromString("100.2")))
}

func TestNoExpensesNoInsights(t *testing.T) {
	assert.Empty(t, Generate(nil, now))
}

func TestGoalSuggestion(t *testing.T) {
	goal := models.Goal{
		Name:          "Viagem",
		TargetAmount:  decimal.RequireFromString("5000"),
		MonthlySaving: decimal.RequireFromString("500"),
	}
	s := GoalSuggestion(goal)
	assert.NotEmpty(t, s)

	noSaving := models.Goal{Name: "Reserva", TargetAmount: decimal.RequireFromString("1000")}
	assert.Contains(t, GoalSuggestion(noSaving), "Reserva")
}
