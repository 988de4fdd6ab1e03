package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsIncome(t *testing.T) {
	assert.True(t, Expense{Description: IncomeMarker + "Salário"}.IsIncome())
	assert.False(t, Expense{Description: "Almoço"}.IsIncome())
	assert.False(t, Expense{Description: "nota [RECEITA] no meio"}.IsIncome(), "marker must be a prefix")
}

func TestDay(t *testing.T) {
	ts := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-30", Day(ts))
}

func TestGoalProgress(t *testing.T) {
	goal := Goal{
		TargetAmount:  decimal.RequireFromString("1000"),
		CurrentAmount: decimal.RequireFromString("250"),
	}
	assert.True(t, goal.Progress().Equal(decimal.RequireFromString("25")))

	over := Goal{
		TargetAmount:  decimal.RequireFromString("1000"),
		CurrentAmount: decimal.RequireFromString("1500"),
	}
	assert.True(t, over.Progress().Equal(decimal.RequireFromString("100")), "progress is capped")
}

func TestGoalMonthsToGoal(t *testing.T) {
	goal := Goal{
		TargetAmount:  decimal.RequireFromString("1000"),
		CurrentAmount: decimal.RequireFromString("100"),
		MonthlySaving: decimal.RequireFromString("250"),
	}
	assert.Equal(t, 4, goal.MonthsToGoal(), "ceil(900/250)")

	done := Goal{
		TargetAmount:  decimal.RequireFromString("1000"),
		CurrentAmount: decimal.RequireFromString("1000"),
	}
	assert.Equal(t, 0, done.MonthsToGoal())

	stuck := Goal{TargetAmount: decimal.RequireFromString("1000")}
	assert.Equal(t, -1, stuck.MonthsToGoal(), "no contribution, unreachable")
}
