package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/pokerdash/internal/db"
	"github.com/vytor/pokerdash/internal/models"
)

// NewTestDB opens an in-memory snapshot store with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	store, err := db.Open(":memory:")
	require.NoError(t, err)
	return store
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Action builds an action from a naive ISO timestamp read in UTC.
func Action(t *testing.T, gameID string, kind models.ActionKind, amount float64, ts string) models.Action {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02T15:04:05", ts, time.UTC)
	require.NoError(t, err)
	return models.Action{GameID: gameID, Kind: kind, Amount: amount, Timestamp: parsed}
}

// FixedClock returns a clock that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}
