package handlers

import (
	"net/http"

	"fintrack/internal/models"
)

// ListCategories returns the category list, seeded with the defaults when
// nothing has been saved yet.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.GetCategories()
	if err != nil {
		h.internalError(w, r, "list categories", err)
		return
	}
	h.respondJSON(w, http.StatusOK, categories)
}

// ReplaceCategories overwrites the category list wholesale. Category names
// are not foreign keys: expenses referencing a removed category keep their
// category string as-is.
func (h *Handlers) ReplaceCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := decodeJSON(r, &categories); err != nil {
		h.respondError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	for _, c := range categories {
		if c.ID == "" || c.Name == "" {
			h.respondError(w, http.StatusBadRequest, "Preencha todos os campos")
			return
		}
	}
	if err := h.store.SaveCategories(categories); err != nil {
		h.internalError(w, r, "save categories", err)
		return
	}
	h.respondJSON(w, http.StatusOK, categories)
}
