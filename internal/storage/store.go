// Package storage provides the device-local document store backing the
// tracker. State lives in a handful of JSON documents under fixed keys;
// reads of missing or unparseable documents return well-defined defaults,
// writes replace the whole document.
package storage

import (
	"errors"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared by the store backends.
var (
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrCredentialNotFound = errors.New("credential not found")
)

// Fixed document keys. These match the keys used by existing stored data
// and must not change.
const (
	KeyUser        = "finapp_user"
	KeyExpenses    = "finapp_expenses"
	KeyDailyLimits = "finapp_daily_limits"
	KeyCategories  = "finapp_categories"
	KeyInsights    = "finapp_insights"
	KeyGoals       = "finapp_goals"
	KeyCards       = "finapp_cards"
)

// MaxStoredInsights caps the insight document when appending incrementally.
const MaxStoredInsights = 10

// Store is the document persistence contract. It is constructed once per
// process; handlers and CLIs only ever see this interface, so tests can
// inject the in-memory backing.
type Store interface {
	GetUser() (*models.User, error)
	SaveUser(u models.User) error
	ClearUser() error

	GetExpenses() ([]models.Expense, error)
	SaveExpenses(expenses []models.Expense) error

	GetDailyLimits() (models.DailyLimits, error)
	SaveDailyLimits(limits models.DailyLimits) error

	GetCategories() ([]models.Category, error)
	SaveCategories(categories []models.Category) error

	GetInsights() ([]models.AIInsight, error)
	SaveInsights(insights []models.AIInsight) error

	GetGoals() ([]models.Goal, error)
	SaveGoals(goals []models.Goal) error

	GetCards() ([]models.CreditCard, error)
	SaveCards(cards []models.CreditCard) error
}

// SessionInfo holds session validation data.
type SessionInfo struct {
	Email        string
	LastActivity time.Time
	ExpiresAt    time.Time
}

// SessionStore persists browser sessions and the local login credential.
type SessionStore interface {
	CreateSession(token, email string, expiresAt time.Time) error
	ValidateSession(token string) (*SessionInfo, error)
	RenewSession(token string, newExpiresAt time.Time) error
	DeleteSession(token string) error

	SaveCredential(email, passwordHash string) error
	GetCredential(email string) (string, error)
}

// DefaultCategories returns the seeded category set handed out when none
// has been saved yet. Reading defaults never persists them; each call
// returns a fresh copy.
func DefaultCategories() []models.Category {
	return []models.Category{
		{ID: "1", Name: "Alimentação", Icon: "🍽️", Color: "#FF6B6B", Subcategories: []string{"Almoço", "Jantar", "Lanche", "Açaí", "Pizza"}},
		{ID: "2", Name: "Transporte", Icon: "🚗", Color: "#4ECDC4", Subcategories: []string{"Combustível", "Uber", "Ônibus", "Metrô"}},
		{ID: "3", Name: "Casa", Icon: "🏠", Color: "#45B7D1", Subcategories: []string{"Aluguel", "Contas", "Manutenção"}},
		{ID: "4", Name: "Lazer", Icon: "🎮", Color: "#FFA07A", Subcategories: []string{"Cinema", "Streaming", "Jogos", "Viagens"}},
		{ID: "5", Name: "Saúde", Icon: "💊", Color: "#98D8C8", Subcategories: []string{"Farmácia", "Consultas", "Academia"}},
		{ID: "6", Name: "Educação", Icon: "📚", Color: "#F7DC6F", Subcategories: []string{"Cursos", "Livros", "Material"}},
		{ID: "7", Name: "Compras", Icon: "🛍️", Color: "#BB8FCE", Subcategories: []string{"Roupas", "Eletrônicos", "Presentes"}},
		{ID: "8", Name: "Outros", Icon: "📦", Color: "#95A5A6", Subcategories: []string{}},
	}
}

// ExpenseUpdate carries the editable fields of an expense. Nil fields are
// left unchanged; id, userId and createdAt are never touched by an edit.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal
	Category    *string
	Subcategory *string
	Description *string
	Date        *string
}

// AddExpense appends an expense to the stored list.
func AddExpense(s Store, e models.Expense) error {
	expenses, err := s.GetExpenses()
	if err != nil {
		return err
	}
	return s.SaveExpenses(append(expenses, e))
}

// UpdateExpense applies upd to the expense with the given id, stamping
// editedAt. It returns the updated expense, or nil when no expense matched.
func UpdateExpense(s Store, id string, upd ExpenseUpdate, now time.Time) (*models.Expense, error) {
	expenses, err := s.GetExpenses()
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		if expenses[i].ID != id {
			continue
		}
		if upd.Amount != nil {
			expenses[i].Amount = *upd.Amount
		}
		if upd.Category != nil {
			expenses[i].Category = *upd.Category
		}
		if upd.Subcategory != nil {
			expenses[i].Subcategory = *upd.Subcategory
		}
		if upd.Description != nil {
			expenses[i].Description = *upd.Description
		}
		if upd.Date != nil {
			expenses[i].Date = *upd.Date
		}
		edited := now
		expenses[i].EditedAt = &edited
		if err := s.SaveExpenses(expenses); err != nil {
			return nil, err
		}
		updated := expenses[i]
		return &updated, nil
	}
	return nil, nil
}

// DeleteExpense removes the expense with the given id, leaving the order of
// the remaining entries unchanged. It reports whether an entry was removed.
func DeleteExpense(s Store, id string) (bool, error) {
	expenses, err := s.GetExpenses()
	if err != nil {
		return false, err
	}
	kept := expenses[:0:0]
	removed := false
	for _, e := range expenses {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return false, nil
	}
	return true, s.SaveExpenses(kept)
}

// AddInsight prepends an insight and trims the document to the most recent
// MaxStoredInsights entries.
func AddInsight(s Store, in models.AIInsight) error {
	insights, err := s.GetInsights()
	if err != nil {
		return err
	}
	insights = append([]models.AIInsight{in}, insights...)
	if len(insights) > MaxStoredInsights {
		insights = insights[:MaxStoredInsights]
	}
	return s.SaveInsights(insights)
}
