package handlers

import (
	"net/http"
	"time"

	"fintrack/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type cardRequest struct {
	Name       string          `json:"name"`
	Limit      decimal.Decimal `json:"limit"`
	ClosingDay int             `json:"closingDay"`
	DueDay     int             `json:"dueDay"`
	Color      string          `json:"color"`
}

func (req cardRequest) validate() string {
	if req.Name == "" || req.Limit.IsZero() || req.ClosingDay == 0 || req.DueDay == 0 {
		return "Preencha todos os campos"
	}
	if req.ClosingDay < 1 || req.ClosingDay > 31 || req.DueDay < 1 || req.DueDay > 31 {
		return "dia de fechamento ou vencimento inválido"
	}
	return ""
}

// ListCards returns all registered credit cards.
func (h *Handlers) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.store.GetCards()
	if err != nil {
		h.internalError(w, r, "list cards", err)
		return
	}
	h.respondJSON(w, http.StatusOK, cards)
}

// CreateCard registers a credit card with an empty running bill.
func (h *Handlers) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if msg := req.validate(); msg != "" {
		h.respondError(w, http.StatusBadRequest, msg)
		return
	}

	color := req.Color
	if color == "" {
		color = "#8B5CF6"
	}
	card := models.CreditCard{
		ID:          models.NewID(time.Now()),
		Name:        req.Name,
		Limit:       req.Limit,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
		CurrentBill: decimal.Zero,
		Color:       color,
	}

	cards, err := h.store.GetCards()
	if err != nil {
		h.internalError(w, r, "load cards", err)
		return
	}
	if err := h.store.SaveCards(append(cards, card)); err != nil {
		h.internalError(w, r, "save cards", err)
		return
	}
	h.respondJSON(w, http.StatusCreated, card)
}

// UpdateCard edits a card's name, limit, cycle days or color. The running
// bill is only changed through AddCardBill.
func (h *Handlers) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Name       *string          `json:"name"`
		Limit      *decimal.Decimal `json:"limit"`
		ClosingDay *int             `json:"closingDay"`
		DueDay     *int             `json:"dueDay"`
		Color      *string          `json:"color"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "requisição inválida")
		return
	}

	cards, err := h.store.GetCards()
	if err != nil {
		h.internalError(w, r, "load cards", err)
		return
	}
	for i := range cards {
		if cards[i].ID != id {
			continue
		}
		if req.Name != nil {
			cards[i].Name = *req.Name
		}
		if req.Limit != nil {
			cards[i].Limit = *req.Limit
		}
		if req.ClosingDay != nil {
			cards[i].ClosingDay = *req.ClosingDay
		}
		if req.DueDay != nil {
			cards[i].DueDay = *req.DueDay
		}
		if req.Color != nil {
			cards[i].Color = *req.Color
		}
		if err := h.store.SaveCards(cards); err != nil {
			h.internalError(w, r, "save cards", err)
			return
		}
		h.respondJSON(w, http.StatusOK, cards[i])
		return
	}
	h.respondError(w, http.StatusNotFound, "cartão não encontrado")
}

// DeleteCard removes a card by id.
func (h *Handlers) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cards, err := h.store.GetCards()
	if err != nil {
		h.internalError(w, r, "load cards", err)
		return
	}
	kept := cards[:0:0]
	removed := false
	for _, c := range cards {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		h.respondError(w, http.StatusNotFound, "cartão não encontrado")
		return
	}
	if err := h.store.SaveCards(kept); err != nil {
		h.internalError(w, r, "save cards", err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

type billRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// AddCardBill adds a purchase to the card's running bill.
func (h *Handlers) AddCardBill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if req.Amount.IsZero() {
		h.respondError(w, http.StatusBadRequest, "Preencha todos os campos")
		return
	}

	cards, err := h.store.GetCards()
	if err != nil {
		h.internalError(w, r, "load cards", err)
		return
	}
	for i := range cards {
		if cards[i].ID != id {
			continue
		}
		cards[i].CurrentBill = cards[i].CurrentBill.Add(req.Amount)
		if err := h.store.SaveCards(cards); err != nil {
			h.internalError(w, r, "save cards", err)
			return
		}
		h.respondJSON(w, http.StatusOK, cards[i])
		return
	}
	h.respondError(w, http.StatusNotFound, "cartão não encontrado")
}
