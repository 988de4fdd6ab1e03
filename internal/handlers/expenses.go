package handlers

import (
	"net/http"
	"time"

	"fintrack/internal/insights"
	"fintrack/internal/models"
	"fintrack/internal/quota"
	"fintrack/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// Denial messages shown when the free-tier quota is exhausted.
const (
	msgCreateLimit = "Você atingiu o limite de 2 transações por dia no plano gratuito. Faça upgrade para Premium!"
	msgEditLimit   = "Você atingiu o limite de 1 edição por dia no plano gratuito. Faça upgrade para Premium!"
)

type createExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Income      bool            `json:"income"`
}

type updateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Subcategory *string          `json:"subcategory"`
	Description *string          `json:"description"`
	Date        *string          `json:"date"`
}

// ListExpenses returns the full stored expense list.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.store.GetExpenses()
	if err != nil {
		h.internalError(w, r, "list expenses", err)
		return
	}
	h.respondJSON(w, http.StatusOK, expenses)
}

// CreateExpense records a new transaction. Free-tier users are limited to
// two per calendar day; the counter is bumped only after the expense write
// succeeds, and the insight list is regenerated from the new state.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if req.Amount.IsZero() || req.Category == "" || req.Description == "" {
		h.respondError(w, http.StatusBadRequest, "Preencha todos os campos")
		return
	}

	now := time.Now()
	today := models.Day(now)

	limits, err := h.store.GetDailyLimits()
	if err != nil {
		h.internalError(w, r, "load limits", err)
		return
	}
	if !quota.CanCreateExpense(*user, limits, today) {
		h.respondError(w, http.StatusForbidden, msgCreateLimit)
		return
	}

	date := req.Date
	if date == "" {
		date = today
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		h.respondError(w, http.StatusBadRequest, "data inválida")
		return
	}

	description := req.Description
	if req.Income {
		description = models.IncomeMarker + description
	}

	expense := models.Expense{
		ID:          models.NewID(now),
		UserID:      user.Email,
		Amount:      req.Amount,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: description,
		Date:        date,
		CreatedAt:   now,
	}
	if err := storage.AddExpense(h.store, expense); err != nil {
		h.internalError(w, r, "add expense", err)
		return
	}

	// Append and increment are two independent writes; a crash in between
	// loses the bump. Accepted for a single-user local store.
	effective := quota.EffectiveForDay(limits, today)
	effective.ExpensesCreated++
	if err := h.store.SaveDailyLimits(effective); err != nil {
		h.internalError(w, r, "save limits", err)
		return
	}

	h.regenerateInsights(r, now)

	h.respondJSON(w, http.StatusCreated, expense)
}

// UpdateExpense edits amount, category, subcategory, description or date of
// an existing transaction. Identity fields and createdAt are never touched;
// editedAt is stamped. Free-tier users get one edit per calendar day.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id := chi.URLParam(r, "id")

	var req updateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if req.Date != nil {
		if _, err := time.Parse(models.DateLayout, *req.Date); err != nil {
			h.respondError(w, http.StatusBadRequest, "data inválida")
			return
		}
	}

	now := time.Now()
	today := models.Day(now)

	limits, err := h.store.GetDailyLimits()
	if err != nil {
		h.internalError(w, r, "load limits", err)
		return
	}
	if !quota.CanEditExpense(*user, limits, today) {
		h.respondError(w, http.StatusForbidden, msgEditLimit)
		return
	}

	updated, err := storage.UpdateExpense(h.store, id, storage.ExpenseUpdate{
		Amount:      req.Amount,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Date:        req.Date,
	}, now)
	if err != nil {
		h.internalError(w, r, "update expense", err)
		return
	}
	if updated == nil {
		h.respondError(w, http.StatusNotFound, "transação não encontrada")
		return
	}

	effective := quota.EffectiveForDay(limits, today)
	effective.EditsUsed++
	if err := h.store.SaveDailyLimits(effective); err != nil {
		h.internalError(w, r, "save limits", err)
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteExpense removes exactly the transaction with the given id.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := storage.DeleteExpense(h.store, id)
	if err != nil {
		h.internalError(w, r, "delete expense", err)
		return
	}
	if !removed {
		h.respondError(w, http.StatusNotFound, "transação não encontrada")
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

// Limits returns the effective quota counters for today. Reading never
// rewrites the stored record.
func (h *Handlers) Limits(w http.ResponseWriter, r *http.Request) {
	limits, err := h.store.GetDailyLimits()
	if err != nil {
		h.internalError(w, r, "load limits", err)
		return
	}
	h.respondJSON(w, http.StatusOK, quota.EffectiveForDay(limits, models.Day(time.Now())))
}

// regenerateInsights recomputes the insight document from the current
// expense list. Best effort: a failure is logged, not surfaced.
func (h *Handlers) regenerateInsights(r *http.Request, now time.Time) {
	expenses, err := h.store.GetExpenses()
	if err != nil {
		h.log.Error().Err(err).Msg("reload expenses for insights")
		return
	}
	if err := h.store.SaveInsights(insights.Generate(expenses, now)); err != nil {
		h.log.Error().Err(err).Msg("save insights")
	}
}
