package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"fintrack/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB is the SQLite-backed store. Documents are stored as JSON text under
// their fixed keys; sessions and the local credential get real tables.
type DB struct {
	conn *sql.DB
}

// NewDB opens the database at path and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			expires_at DATETIME NOT NULL,
			last_activity DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS credentials (
			email TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// getDocument reads and decodes the document under key into out. A missing
// key or an unparseable value both report false: corrupt state is treated
// as absent since there is no remote source of truth to repair from.
func (db *DB) getDocument(key string, out any) (bool, error) {
	var value string
	err := db.conn.QueryRow("SELECT value FROM documents WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, nil
	}
	return true, nil
}

// saveDocument serializes v and replaces the document under key.
func (db *DB) saveDocument(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(`
		INSERT INTO documents (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(data))
	return err
}

// GetUser returns the active user, or nil when nobody is logged in.
func (db *DB) GetUser() (*models.User, error) {
	var u models.User
	found, err := db.getDocument(KeyUser, &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

// SaveUser overwrites the active user document.
func (db *DB) SaveUser(u models.User) error {
	return db.saveDocument(KeyUser, u)
}

// ClearUser removes the active user document.
func (db *DB) ClearUser() error {
	_, err := db.conn.Exec("DELETE FROM documents WHERE key = ?", KeyUser)
	return err
}

// GetExpenses returns the stored expense list, empty when none is saved.
func (db *DB) GetExpenses() ([]models.Expense, error) {
	var expenses []models.Expense
	found, err := db.getDocument(KeyExpenses, &expenses)
	if err != nil {
		return nil, err
	}
	if !found || expenses == nil {
		return []models.Expense{}, nil
	}
	return expenses, nil
}

// SaveExpenses overwrites the expense document.
func (db *DB) SaveExpenses(expenses []models.Expense) error {
	return db.saveDocument(KeyExpenses, expenses)
}

// GetDailyLimits returns the stored quota counters as written. Callers
// interpret a stale date as zero usage; the record itself is only corrected
// on the next save.
func (db *DB) GetDailyLimits() (models.DailyLimits, error) {
	var limits models.DailyLimits
	_, err := db.getDocument(KeyDailyLimits, &limits)
	if err != nil {
		return models.DailyLimits{}, err
	}
	return limits, nil
}

// SaveDailyLimits overwrites the quota counter document.
func (db *DB) SaveDailyLimits(limits models.DailyLimits) error {
	return db.saveDocument(KeyDailyLimits, limits)
}

// GetCategories returns the stored category list, or the seeded defaults
// when none has been saved. Reading never persists the defaults.
func (db *DB) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	found, err := db.getDocument(KeyCategories, &categories)
	if err != nil {
		return nil, err
	}
	if !found || categories == nil {
		return DefaultCategories(), nil
	}
	return categories, nil
}

// SaveCategories overwrites the category document.
func (db *DB) SaveCategories(categories []models.Category) error {
	return db.saveDocument(KeyCategories, categories)
}

// GetInsights returns the stored insight list, empty when none is saved.
func (db *DB) GetInsights() ([]models.AIInsight, error) {
	var insights []models.AIInsight
	found, err := db.getDocument(KeyInsights, &insights)
	if err != nil {
		return nil, err
	}
	if !found || insights == nil {
		return []models.AIInsight{}, nil
	}
	return insights, nil
}

// SaveInsights overwrites the insight document.
func (db *DB) SaveInsights(insights []models.AIInsight) error {
	return db.saveDocument(KeyInsights, insights)
}

// GetGoals returns the stored goal list, empty when none is saved.
func (db *DB) GetGoals() ([]models.Goal, error) {
	var goals []models.Goal
	found, err := db.getDocument(KeyGoals, &goals)
	if err != nil {
		return nil, err
	}
	if !found || goals == nil {
		return []models.Goal{}, nil
	}
	return goals, nil
}

// SaveGoals overwrites the goal document.
func (db *DB) SaveGoals(goals []models.Goal) error {
	return db.saveDocument(KeyGoals, goals)
}

// GetCards returns the stored card list, empty when none is saved.
func (db *DB) GetCards() ([]models.CreditCard, error) {
	var cards []models.CreditCard
	found, err := db.getDocument(KeyCards, &cards)
	if err != nil {
		return nil, err
	}
	if !found || cards == nil {
		return []models.CreditCard{}, nil
	}
	return cards, nil
}

// SaveCards overwrites the card document.
func (db *DB) SaveCards(cards []models.CreditCard) error {
	return db.saveDocument(KeyCards, cards)
}

// CreateSession creates a new session for the given account.
func (db *DB) CreateSession(token, email string, expiresAt time.Time) error {
	_, err := db.conn.Exec(
		"INSERT INTO sessions (token, email, expires_at, last_activity) VALUES (?, ?, ?, ?)",
		token, email, expiresAt, time.Now(),
	)
	return err
}

// ValidateSession checks that a session token is valid and unexpired.
func (db *DB) ValidateSession(token string) (*SessionInfo, error) {
	row := db.conn.QueryRow(`
		SELECT email, last_activity, expires_at
		FROM sessions
		WHERE token = ? AND expires_at > CURRENT_TIMESTAMP
	`, token)

	var info SessionInfo
	if err := row.Scan(&info.Email, &info.LastActivity, &info.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &info, nil
}

// RenewSession updates last_activity and expires_at for a session.
func (db *DB) RenewSession(token string, newExpiresAt time.Time) error {
	_, err := db.conn.Exec(
		"UPDATE sessions SET last_activity = ?, expires_at = ? WHERE token = ?",
		time.Now(), newExpiresAt, token,
	)
	return err
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(token string) error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

// CleanExpiredSessions removes all expired sessions.
func (db *DB) CleanExpiredSessions() error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE expires_at <= CURRENT_TIMESTAMP")
	return err
}

// SaveCredential stores or replaces the login credential for an account.
func (db *DB) SaveCredential(email, passwordHash string) error {
	_, err := db.conn.Exec(`
		INSERT INTO credentials (email, password_hash) VALUES (?, ?)
		ON CONFLICT(email) DO UPDATE SET password_hash = excluded.password_hash
	`, email, passwordHash)
	return err
}

// GetCredential returns the stored password hash for an account, or
// ErrCredentialNotFound when the account has no local credential.
func (db *DB) GetCredential(email string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT password_hash FROM credentials WHERE email = ?", email).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", ErrCredentialNotFound
	}
	return hash, err
}
