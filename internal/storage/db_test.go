package storage

import (
	"testing"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// DBTestSuite provides a test suite for document store operations
type DBTestSuite struct {
	suite.Suite
	db *DB
}

// SetupTest runs before each test
func (suite *DBTestSuite) SetupTest() {
	db, err := NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
}

// TearDownTest runs after each test
func (suite *DBTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func testExpense(id, category, description string, amount string, date string) models.Expense {
	return models.Expense{
		ID:          id,
		UserID:      "ana@example.com",
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: description,
		Date:        date,
		CreatedAt:   time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
	}
}

func (suite *DBTestSuite) TestExpensesRoundTrip() {
	expenses := []models.Expense{
		testExpense("1", "Alimentação", "Almoço", "45.90", "2026-08-20"),
		testExpense("2", "Transporte", "Uber", "23.50", "2026-08-21"),
		testExpense("3", "Lazer", models.IncomeMarker+"Freela", "1200.00", "2026-08-22"),
	}

	require.NoError(suite.T(), suite.db.SaveExpenses(expenses))

	got, err := suite.db.GetExpenses()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), got, 3)
	for i := range expenses {
		assert.Equal(suite.T(), expenses[i].ID, got[i].ID)
		assert.Equal(suite.T(), expenses[i].UserID, got[i].UserID)
		assert.True(suite.T(), expenses[i].Amount.Equal(got[i].Amount), "amount mismatch at %d", i)
		assert.Equal(suite.T(), expenses[i].Category, got[i].Category)
		assert.Equal(suite.T(), expenses[i].Description, got[i].Description)
		assert.Equal(suite.T(), expenses[i].Date, got[i].Date)
		assert.True(suite.T(), expenses[i].CreatedAt.Equal(got[i].CreatedAt))
		assert.Nil(suite.T(), got[i].EditedAt)
	}
	assert.True(suite.T(), got[2].IsIncome())
}

func (suite *DBTestSuite) TestGetExpensesEmptyByDefault() {
	got, err := suite.db.GetExpenses()
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), got)
}

func (suite *DBTestSuite) TestDefaultCategoriesIdempotent() {
	first, err := suite.db.GetCategories()
	require.NoError(suite.T(), err)
	second, err := suite.db.GetCategories()
	require.NoError(suite.T(), err)

	assert.Len(suite.T(), first, 8)
	assert.Equal(suite.T(), first, second, "reading twice should return the same default set")

	// Reading must not persist the defaults.
	var count int
	err = suite.db.conn.QueryRow("SELECT COUNT(*) FROM documents WHERE key = ?", KeyCategories).Scan(&count)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), count, "defaults should not be written by a read")
}

func (suite *DBTestSuite) TestSaveCategoriesOverridesDefaults() {
	custom := []models.Category{{ID: "9", Name: "Pets", Icon: "🐶", Color: "#000000", Subcategories: []string{}}}
	require.NoError(suite.T(), suite.db.SaveCategories(custom))

	got, err := suite.db.GetCategories()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), custom, got)
}

func (suite *DBTestSuite) TestCorruptDocumentFallsBackToDefault() {
	_, err := suite.db.conn.Exec(
		"INSERT INTO documents (key, value) VALUES (?, ?)", KeyExpenses, "{not json",
	)
	require.NoError(suite.T(), err)

	got, err := suite.db.GetExpenses()
	require.NoError(suite.T(), err, "corrupt data should read as absent, not fail")
	assert.Empty(suite.T(), got)

	_, err = suite.db.conn.Exec(
		"INSERT INTO documents (key, value) VALUES (?, ?)", KeyCategories, "[[[",
	)
	require.NoError(suite.T(), err)

	cats, err := suite.db.GetCategories()
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), cats, 8, "corrupt categories should fall back to the seeded set")
}

func (suite *DBTestSuite) TestUserLifecycle() {
	user, err := suite.db.GetUser()
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), user, "no user before login")

	saved := models.User{Email: "ana@example.com", Name: "Ana", Plan: models.PlanFree, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(suite.T(), suite.db.SaveUser(saved))

	user, err = suite.db.GetUser()
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), user)
	assert.Equal(suite.T(), saved.Email, user.Email)
	assert.Equal(suite.T(), saved.Plan, user.Plan)

	require.NoError(suite.T(), suite.db.ClearUser())
	user, err = suite.db.GetUser()
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), user, "logout removes the user document")
}

func (suite *DBTestSuite) TestDailyLimitsStoredAsWritten() {
	limits, err := suite.db.GetDailyLimits()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.DailyLimits{}, limits)

	stale := models.DailyLimits{Date: "2026-08-01", ExpensesCreated: 2, EditsUsed: 1}
	require.NoError(suite.T(), suite.db.SaveDailyLimits(stale))

	// Reads hand back the stale record untouched; interpretation for
	// "today" happens in the quota package.
	got, err := suite.db.GetDailyLimits()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), stale, got)

	again, err := suite.db.GetDailyLimits()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), got, again, "reading must not rewrite the record")
}

func (suite *DBTestSuite) TestAddExpenseAppends() {
	require.NoError(suite.T(), AddExpense(suite.db, testExpense("1", "Casa", "Aluguel", "900.00", "2026-08-01")))
	require.NoError(suite.T(), AddExpense(suite.db, testExpense("2", "Casa", "Contas", "150.00", "2026-08-02")))

	got, err := suite.db.GetExpenses()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), got, 2)
	assert.Equal(suite.T(), "1", got[0].ID)
	assert.Equal(suite.T(), "2", got[1].ID)
}

func (suite *DBTestSuite) TestUpdateExpensePreservesIdentity() {
	original := testExpense("42", "Lazer", "Cinema", "30.00", "2026-08-10")
	require.NoError(suite.T(), AddExpense(suite.db, original))

	newAmount := decimal.RequireFromString("55.00")
	newCategory := "Compras"
	editTime := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	updated, err := UpdateExpense(suite.db, "42", ExpenseUpdate{Amount: &newAmount, Category: &newCategory}, editTime)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), updated)

	assert.Equal(suite.T(), original.ID, updated.ID)
	assert.Equal(suite.T(), original.UserID, updated.UserID)
	assert.True(suite.T(), original.CreatedAt.Equal(updated.CreatedAt))
	assert.True(suite.T(), newAmount.Equal(updated.Amount))
	assert.Equal(suite.T(), newCategory, updated.Category)
	assert.Equal(suite.T(), original.Description, updated.Description, "unset fields stay unchanged")
	require.NotNil(suite.T(), updated.EditedAt)
	assert.True(suite.T(), editTime.Equal(*updated.EditedAt))
}

func (suite *DBTestSuite) TestUpdateExpenseMissing() {
	updated, err := UpdateExpense(suite.db, "nope", ExpenseUpdate{}, time.Now())
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), updated)
}

func (suite *DBTestSuite) TestDeleteExpenseRemovesExactlyOne() {
	for _, e := range []models.Expense{
		testExpense("a", "Casa", "Aluguel", "900.00", "2026-08-01"),
		testExpense("b", "Casa", "Contas", "150.00", "2026-08-02"),
		testExpense("c", "Lazer", "Cinema", "30.00", "2026-08-03"),
	} {
		require.NoError(suite.T(), AddExpense(suite.db, e))
	}

	removed, err := DeleteExpense(suite.db, "b")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), removed)

	got, err := suite.db.GetExpenses()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), got, 2)
	assert.Equal(suite.T(), "a", got[0].ID, "order of survivors unchanged")
	assert.Equal(suite.T(), "c", got[1].ID)

	removed, err = DeleteExpense(suite.db, "b")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), removed, "second delete finds nothing")
}

func (suite *DBTestSuite) TestAddInsightPrependsAndCaps() {
	for i := 0; i < MaxStoredInsights+3; i++ {
		in := models.AIInsight{
			ID:      models.NewID(time.Now().Add(time.Duration(i) * time.Millisecond)),
			Type:    models.InsightTip,
			Message: "dica",
			Date:    time.Now().Format(time.RFC3339),
		}
		require.NoError(suite.T(), AddInsight(suite.db, in))
	}

	got, err := suite.db.GetInsights()
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), got, MaxStoredInsights, "document capped at the most recent entries")
}

func (suite *DBTestSuite) TestGoalsAndCardsRoundTrip() {
	goal := models.Goal{
		ID:            "g1",
		Name:          "Viagem",
		TargetAmount:  decimal.RequireFromString("5000"),
		MonthlySaving: decimal.RequireFromString("500"),
		CurrentAmount: decimal.RequireFromString("1250"),
		CreatedAt:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(suite.T(), suite.db.SaveGoals([]models.Goal{goal}))
	goals, err := suite.db.GetGoals()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), goals, 1)
	assert.Equal(suite.T(), goal.Name, goals[0].Name)
	assert.True(suite.T(), goal.TargetAmount.Equal(goals[0].TargetAmount))

	card := models.CreditCard{
		ID:          "c1",
		Name:        "Nubank",
		Limit:       decimal.RequireFromString("3000"),
		ClosingDay:  5,
		DueDay:      12,
		CurrentBill: decimal.Zero,
		Color:       "#8B5CF6",
	}
	require.NoError(suite.T(), suite.db.SaveCards([]models.CreditCard{card}))
	cards, err := suite.db.GetCards()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cards, 1)
	assert.Equal(suite.T(), card.Name, cards[0].Name)
	assert.Equal(suite.T(), card.ClosingDay, cards[0].ClosingDay)
}

// SessionTestSuite provides a test suite for session and credential
// operations
type SessionTestSuite struct {
	suite.Suite
	db *DB
}

// SetupTest runs before each test
func (suite *SessionTestSuite) SetupTest() {
	db, err := NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
}

// TearDownTest runs after each test
func (suite *SessionTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *SessionTestSuite) TestCreateAndValidateSession() {
	token, err := auth.GenerateSessionToken()
	require.NoError(suite.T(), err)

	expiresAt := time.Now().Add(30 * 24 * time.Hour)
	require.NoError(suite.T(), suite.db.CreateSession(token, "ana@example.com", expiresAt))

	info, err := suite.db.ValidateSession(token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ana@example.com", info.Email)
	assert.Less(suite.T(), time.Since(info.LastActivity), 5*time.Second, "LastActivity should be recent")
}

func (suite *SessionTestSuite) TestValidateUnknownSession() {
	_, err := suite.db.ValidateSession("bogus")
	assert.ErrorIs(suite.T(), err, ErrSessionNotFound)
}

func (suite *SessionTestSuite) TestRenewSession() {
	token, err := auth.GenerateSessionToken()
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.db.CreateSession(token, "ana@example.com", time.Now().Add(30*24*time.Hour)))

	time.Sleep(10 * time.Millisecond)

	before, err := suite.db.ValidateSession(token)
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.db.RenewSession(token, time.Now().Add(60*24*time.Hour)))

	after, err := suite.db.ValidateSession(token)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), after.LastActivity.After(before.LastActivity), "LastActivity should advance on renewal")
	assert.True(suite.T(), after.ExpiresAt.After(before.ExpiresAt), "ExpiresAt should be extended on renewal")
}

func (suite *SessionTestSuite) TestDeleteSession() {
	token, err := auth.GenerateSessionToken()
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.db.CreateSession(token, "ana@example.com", time.Now().Add(time.Hour)))

	_, err = suite.db.ValidateSession(token)
	require.NoError(suite.T(), err, "session should exist before deletion")

	require.NoError(suite.T(), suite.db.DeleteSession(token))

	_, err = suite.db.ValidateSession(token)
	assert.ErrorIs(suite.T(), err, ErrSessionNotFound)
}

func (suite *SessionTestSuite) TestCredentialRoundTrip() {
	_, err := suite.db.GetCredential("ana@example.com")
	assert.ErrorIs(suite.T(), err, ErrCredentialNotFound)

	hash, err := auth.HashPassword("segredo")
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.db.SaveCredential("ana@example.com", hash))

	got, err := suite.db.GetCredential("ana@example.com")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), auth.CheckPassword("segredo", got))
	assert.False(suite.T(), auth.CheckPassword("errado", got))

	// Saving again replaces the hash.
	hash2, err := auth.HashPassword("nova-senha")
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.db.SaveCredential("ana@example.com", hash2))

	got, err = suite.db.GetCredential("ana@example.com")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), auth.CheckPassword("nova-senha", got))
}

// Test suite runners
func TestDBSuite(t *testing.T) {
	suite.Run(t, new(DBTestSuite))
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}
