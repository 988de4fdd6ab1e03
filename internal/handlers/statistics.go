package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatsCategoryItem is one category's spending for the requested month.
type StatsCategoryItem struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// StatsResponse is the payload for the statistics endpoint.
type StatsResponse struct {
	Year       int                 `json:"year"`
	Month      int                 `json:"month"`
	MonthName  string              `json:"monthName"`
	Total      decimal.Decimal     `json:"total"`
	Income     decimal.Decimal     `json:"income"`
	Categories []StatsCategoryItem `json:"categories"`
}

// Statistics aggregates the requested month's expenses by category, the
// way the chart views consume them. Defaults to the current month.
func (h *Handlers) Statistics(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if s := r.URL.Query().Get("year"); s != "" {
		if y, err := strconv.Atoi(s); err == nil {
			year = y
		}
	}
	if s := r.URL.Query().Get("month"); s != "" {
		if m, err := strconv.Atoi(s); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}

	expenses, err := h.store.GetExpenses()
	if err != nil {
		h.internalError(w, r, "load expenses", err)
		return
	}

	prefix := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	var total, income decimal.Decimal

	for _, e := range expenses {
		if !strings.HasPrefix(e.Date, prefix) {
			continue
		}
		if e.IsIncome() {
			income = income.Add(e.Amount)
			continue
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
		counts[e.Category]++
		total = total.Add(e.Amount)
	}

	items := make([]StatsCategoryItem, 0, len(totals))
	for category, sum := range totals {
		percentage := decimal.Zero
		if total.IsPositive() {
			percentage = sum.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		items = append(items, StatsCategoryItem{
			Category:   category,
			Total:      sum,
			Count:      counts[category],
			Percentage: percentage,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Total.Equal(items[j].Total) {
			return items[i].Total.GreaterThan(items[j].Total)
		}
		return items[i].Category < items[j].Category
	})

	h.respondJSON(w, http.StatusOK, StatsResponse{
		Year:       year,
		Month:      month,
		MonthName:  time.Month(month).String(),
		Total:      total,
		Income:     income,
		Categories: items,
	})
}
