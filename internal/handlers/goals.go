package handlers

import (
	"net/http"
	"time"

	"fintrack/internal/insights"
	"fintrack/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type goalRequest struct {
	Name          string           `json:"name"`
	TargetAmount  decimal.Decimal  `json:"targetAmount"`
	MonthlySaving decimal.Decimal  `json:"monthlySaving"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
}

type goalResponse struct {
	models.Goal
	Progress     decimal.Decimal `json:"progress"`
	MonthsToGoal int             `json:"monthsToGoal"`
	Suggestion   string          `json:"suggestion,omitempty"`
}

func goalView(g models.Goal, suggestion string) goalResponse {
	return goalResponse{
		Goal:         g,
		Progress:     g.Progress().Round(2),
		MonthsToGoal: g.MonthsToGoal(),
		Suggestion:   suggestion,
	}
}

// ListGoals returns all savings goals with their derived progress figures.
func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.store.GetGoals()
	if err != nil {
		h.internalError(w, r, "list goals", err)
		return
	}
	views := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		views = append(views, goalView(g, ""))
	}
	h.respondJSON(w, http.StatusOK, views)
}

// CreateGoal records a new savings goal. Premium users get a templated
// saving-strategy suggestion in the response.
func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "requisição inválida")
		return
	}
	if req.Name == "" || req.TargetAmount.IsZero() || req.MonthlySaving.IsZero() {
		h.respondError(w, http.StatusBadRequest, "Preencha todos os campos")
		return
	}

	current := decimal.Zero
	if req.CurrentAmount != nil {
		current = *req.CurrentAmount
	}
	goal := models.Goal{
		ID:            models.NewID(time.Now()),
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		MonthlySaving: req.MonthlySaving,
		CurrentAmount: current,
		CreatedAt:     time.Now(),
	}

	goals, err := h.store.GetGoals()
	if err != nil {
		h.internalError(w, r, "load goals", err)
		return
	}
	if err := h.store.SaveGoals(append(goals, goal)); err != nil {
		h.internalError(w, r, "save goals", err)
		return
	}

	suggestion := ""
	if user.IsPremium() {
		suggestion = insights.GoalSuggestion(goal)
	}
	h.respondJSON(w, http.StatusCreated, goalView(goal, suggestion))
}

// UpdateGoal edits a goal's name, amounts or monthly saving.
func (h *Handlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Name          *string          `json:"name"`
		TargetAmount  *decimal.Decimal `json:"targetAmount"`
		MonthlySaving *decimal.Decimal `json:"monthlySaving"`
		CurrentAmount *decimal.Decimal `json:"currentAmount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "requisição inválida")
		return
	}

	goals, err := h.store.GetGoals()
	if err != nil {
		h.internalError(w, r, "load goals", err)
		return
	}
	for i := range goals {
		if goals[i].ID != id {
			continue
		}
		if req.Name != nil {
			goals[i].Name = *req.Name
		}
		if req.TargetAmount != nil {
			goals[i].TargetAmount = *req.TargetAmount
		}
		if req.MonthlySaving != nil {
			goals[i].MonthlySaving = *req.MonthlySaving
		}
		if req.CurrentAmount != nil {
			goals[i].CurrentAmount = *req.CurrentAmount
		}
		if err := h.store.SaveGoals(goals); err != nil {
			h.internalError(w, r, "save goals", err)
			return
		}
		h.respondJSON(w, http.StatusOK, goalView(goals[i], ""))
		return
	}
	h.respondError(w, http.StatusNotFound, "objetivo não encontrado")
}

// DeleteGoal removes a goal by id.
func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	goals, err := h.store.GetGoals()
	if err != nil {
		h.internalError(w, r, "load goals", err)
		return
	}
	kept := goals[:0:0]
	removed := false
	for _, g := range goals {
		if g.ID == id {
			removed = true
			continue
		}
		kept = append(kept, g)
	}
	if !removed {
		h.respondError(w, http.StatusNotFound, "objetivo não encontrado")
		return
	}
	if err := h.store.SaveGoals(kept); err != nil {
		h.internalError(w, r, "save goals", err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}
