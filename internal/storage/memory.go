package storage

import (
	"encoding/json"
	"sync"
	"time"

	"fintrack/internal/models"
)

// Memory is an in-memory store for tests. Documents still round-trip
// through JSON so serialization behaves exactly like the SQLite backing.
type Memory struct {
	mu          sync.RWMutex
	documents   map[string]string
	sessions    map[string]SessionInfo
	credentials map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		documents:   make(map[string]string),
		sessions:    make(map[string]SessionInfo),
		credentials: make(map[string]string),
	}
}

// Corrupt overwrites the raw document under key, for exercising the
// malformed-data fallback.
func (m *Memory) Corrupt(key, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[key] = raw
}

func (m *Memory) getDocument(key string, out any) bool {
	m.mu.RLock()
	value, ok := m.documents[key]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false
	}
	return true
}

func (m *Memory) saveDocument(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.documents[key] = string(data)
	m.mu.Unlock()
	return nil
}

// GetUser returns the active user, or nil when nobody is logged in.
func (m *Memory) GetUser() (*models.User, error) {
	var u models.User
	if !m.getDocument(KeyUser, &u) {
		return nil, nil
	}
	return &u, nil
}

// SaveUser overwrites the active user document.
func (m *Memory) SaveUser(u models.User) error {
	return m.saveDocument(KeyUser, u)
}

// ClearUser removes the active user document.
func (m *Memory) ClearUser() error {
	m.mu.Lock()
	delete(m.documents, KeyUser)
	m.mu.Unlock()
	return nil
}

// GetExpenses returns the stored expense list, empty when none is saved.
func (m *Memory) GetExpenses() ([]models.Expense, error) {
	var expenses []models.Expense
	if !m.getDocument(KeyExpenses, &expenses) || expenses == nil {
		return []models.Expense{}, nil
	}
	return expenses, nil
}

// SaveExpenses overwrites the expense document.
func (m *Memory) SaveExpenses(expenses []models.Expense) error {
	return m.saveDocument(KeyExpenses, expenses)
}

// GetDailyLimits returns the stored quota counters as written.
func (m *Memory) GetDailyLimits() (models.DailyLimits, error) {
	var limits models.DailyLimits
	m.getDocument(KeyDailyLimits, &limits)
	return limits, nil
}

// SaveDailyLimits overwrites the quota counter document.
func (m *Memory) SaveDailyLimits(limits models.DailyLimits) error {
	return m.saveDocument(KeyDailyLimits, limits)
}

// GetCategories returns the stored category list or the seeded defaults.
func (m *Memory) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if !m.getDocument(KeyCategories, &categories) || categories == nil {
		return DefaultCategories(), nil
	}
	return categories, nil
}

// SaveCategories overwrites the category document.
func (m *Memory) SaveCategories(categories []models.Category) error {
	return m.saveDocument(KeyCategories, categories)
}

// GetInsights returns the stored insight list, empty when none is saved.
func (m *Memory) GetInsights() ([]models.AIInsight, error) {
	var insights []models.AIInsight
	if !m.getDocument(KeyInsights, &insights) || insights == nil {
		return []models.AIInsight{}, nil
	}
	return insights, nil
}

// SaveInsights overwrites the insight document.
func (m *Memory) SaveInsights(insights []models.AIInsight) error {
	return m.saveDocument(KeyInsights, insights)
}

// GetGoals returns the stored goal list, empty when none is saved.
func (m *Memory) GetGoals() ([]models.Goal, error) {
	var goals []models.Goal
	if !m.getDocument(KeyGoals, &goals) || goals == nil {
		return []models.Goal{}, nil
	}
	return goals, nil
}

// SaveGoals overwrites the goal document.
func (m *Memory) SaveGoals(goals []models.Goal) error {
	return m.saveDocument(KeyGoals, goals)
}

// GetCards returns the stored card list, empty when none is saved.
func (m *Memory) GetCards() ([]models.CreditCard, error) {
	var cards []models.CreditCard
	if !m.getDocument(KeyCards, &cards) || cards == nil {
		return []models.CreditCard{}, nil
	}
	return cards, nil
}

// SaveCards overwrites the card document.
func (m *Memory) SaveCards(cards []models.CreditCard) error {
	return m.saveDocument(KeyCards, cards)
}

// CreateSession creates a new session for the given account.
func (m *Memory) CreateSession(token, email string, expiresAt time.Time) error {
	m.mu.Lock()
	m.sessions[token] = SessionInfo{Email: email, LastActivity: time.Now(), ExpiresAt: expiresAt}
	m.mu.Unlock()
	return nil
}

// ValidateSession checks that a session token is valid and unexpired.
func (m *Memory) ValidateSession(token string) (*SessionInfo, error) {
	m.mu.RLock()
	info, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok || !info.ExpiresAt.After(time.Now()) {
		return nil, ErrSessionNotFound
	}
	return &info, nil
}

// RenewSession updates last activity and expiry for a session.
func (m *Memory) RenewSession(token string, newExpiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	info, ok := m.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	info.LastActivity = time.Now()
	info.ExpiresAt = newExpiresAt
	m.sessions[token] = info
	return nil
}

// DeleteSession removes a session by token.
func (m *Memory) DeleteSession(token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

// SaveCredential stores or replaces the login credential for an account.
func (m *Memory) SaveCredential(email, passwordHash string) error {
	m.mu.Lock()
	m.credentials[email] = passwordHash
	m.mu.Unlock()
	return nil
}

// GetCredential returns the stored password hash for an account.
func (m *Memory) GetCredential(email string) (string, error) {
	m.mu.RLock()
	hash, ok := m.credentials[email]
	m.mu.RUnlock()
	if !ok {
		return "", ErrCredentialNotFound
	}
	return hash, nil
}
