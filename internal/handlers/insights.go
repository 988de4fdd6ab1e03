package handlers

import (
	"net/http"
	"time"

	"fintrack/internal/insights"
)

// ListInsights regenerates the insight list from the current expense
// window, replaces the stored document and returns the result. Generation
// is not incremental; every call recomputes from scratch.
func (h *Handlers) ListInsights(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.store.GetExpenses()
	if err != nil {
		h.internalError(w, r, "load expenses", err)
		return
	}

	generated := insights.Generate(expenses, time.Now())
	if err := h.store.SaveInsights(generated); err != nil {
		h.internalError(w, r, "save insights", err)
		return
	}
	h.respondJSON(w, http.StatusOK, generated)
}
