// Package insights produces the templated advisory messages shown on the
// dashboard. Generation is a pure scan over the last 30 days of expenses;
// each call recomputes from scratch and the caller decides whether to
// replace the stored list.
package insights

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Spending thresholds, in currency units.
var (
	warningThreshold = decimal.NewFromInt(500)
	foodThreshold    = decimal.NewFromInt(300)

	warningCut = decimal.NewFromFloat(0.2)
	foodCut    = decimal.NewFromFloat(0.4)
)

// foodCategory is checked against a fixed threshold in addition to the
// generic top-spender check.
const foodCategory = "Alimentação"

// Generate scans expenses from the 30 days up to now and returns zero, one
// or two insights: a warning for the single largest category when it
// crossed 500, and a food-savings tip when Alimentação crossed 300. Income
// entries are not excluded from the totals; that matches the behavior the
// stored data was produced under.
func Generate(expenses []models.Expense, now time.Time) []models.AIInsight {
	cutoff := models.Day(now.AddDate(0, 0, -30))

	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e.Date < cutoff {
			continue
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount.Abs())
	}

	insights := []models.AIInsight{}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := totals[names[i]], totals[names[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return names[i] < names[j]
	})

	if len(names) > 0 {
		top := names[0]
		total := totals[top]
		if total.GreaterThan(warningThreshold) {
			savings := total.Mul(warningCut)
			insights = append(insights, models.AIInsight{
				ID:   models.NewID(now),
				Type: models.InsightWarning,
				Message: fmt.Sprintf(
					"Você gastou R$ %s em %s nos últimos 30 dias. Considere reduzir em 20%% para economizar R$ %s.",
					total.StringFixed(2), top, savings.StringFixed(2),
				),
				Category:         top,
				PotentialSavings: &savings,
				Date:             now.Format(time.RFC3339),
			})
		}
	}

	if total, ok := totals[foodCategory]; ok && total.GreaterThan(foodThreshold) {
		savings := total.Mul(foodCut)
		insights = append(insights, models.AIInsight{
			ID:               models.NewID(now.Add(time.Millisecond)),
			Type:             models.InsightTip,
			Message:          "Que tal preparar mais refeições em casa? Você pode economizar até 40% nos gastos com alimentação.",
			Category:         foodCategory,
			PotentialSavings: &savings,
			Date:             now.Format(time.RFC3339),
		})
	}

	return insights
}

// GoalSuggestion returns a templated saving-strategy message for a goal.
// Offered to premium users when a goal is created.
func GoalSuggestion(goal models.Goal) string {
	if goal.MonthlySaving.LessThanOrEqual(decimal.Zero) {
		return fmt.Sprintf("Defina uma economia mensal para \"%s\" e acompanhe quanto tempo falta para alcançá-la.", goal.Name)
	}

	months := int(goal.TargetAmount.Div(goal.MonthlySaving).Ceil().IntPart())
	fifty := decimal.NewFromInt(50)
	boost := int(fifty.Div(goal.MonthlySaving).Mul(decimal.NewFromInt(int64(months))).Ceil().IntPart())

	suggestions := []string{
		fmt.Sprintf("Para alcançar \"%s\" mais rápido, considere aumentar sua economia mensal em 20%%. Isso reduziria o tempo em %d meses.",
			goal.Name, (months+4)/5),
		fmt.Sprintf("Dica: Revise seus gastos em categorias como alimentação e entretenimento. Economizar R$ 50 extras por mês pode acelerar seu objetivo em %d meses.",
			boost),
		"Sugestão: Considere investir o valor economizado em uma aplicação que rende 1% ao mês. Isso pode reduzir o tempo necessário em até 15%.",
	}
	return suggestions[rand.Intn(len(suggestions))]
}
