package storage

import (
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The in-memory store must behave exactly like the SQLite backing for the
// contract the handlers rely on; these tests cover the parts that differ
// in implementation.

func TestMemoryDefaults(t *testing.T) {
	m := NewMemory()

	user, err := m.GetUser()
	require.NoError(t, err)
	assert.Nil(t, user)

	expenses, err := m.GetExpenses()
	require.NoError(t, err)
	assert.Empty(t, expenses)

	cats, err := m.GetCategories()
	require.NoError(t, err)
	assert.Len(t, cats, 8)

	limits, err := m.GetDailyLimits()
	require.NoError(t, err)
	assert.Equal(t, models.DailyLimits{}, limits)
}

func TestMemoryCorruptFallsBack(t *testing.T) {
	m := NewMemory()
	m.Corrupt(KeyExpenses, "{broken")
	m.Corrupt(KeyCategories, "broken too")

	expenses, err := m.GetExpenses()
	require.NoError(t, err)
	assert.Empty(t, expenses)

	cats, err := m.GetCategories()
	require.NoError(t, err)
	assert.Len(t, cats, 8)
}

func TestMemorySessions(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.CreateSession("tok", "ana@example.com", time.Now().Add(time.Hour)))

	info, err := m.ValidateSession("tok")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", info.Email)

	require.NoError(t, m.DeleteSession("tok"))
	_, err = m.ValidateSession("tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryExpiredSession(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.CreateSession("tok", "ana@example.com", time.Now().Add(-time.Minute)))

	_, err := m.ValidateSession("tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
