package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEarliestAction(t *testing.T) {
	jan := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	_, ok := EarliestAction(nil)
	assert.False(t, ok)

	_, ok = EarliestAction([]User{{UserID: 1}})
	assert.False(t, ok)

	got, ok := EarliestAction([]User{
		{UserID: 1, Actions: []Action{{Timestamp: mar}}},
		{UserID: 2},
		{UserID: 3, Actions: []Action{{Timestamp: mar}, {Timestamp: jan}}},
	})
	assert.True(t, ok)
	assert.Equal(t, jan, got)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "alice", User{UserID: 1, Username: "alice"}.DisplayName())
	assert.Equal(t, "42", User{UserID: 42}.DisplayName())
}
