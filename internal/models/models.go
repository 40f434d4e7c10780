package models

import (
	"strconv"
	"time"
)

// ActionKind is the type of a recorded player action.
type ActionKind string

const (
	ActionBuyin ActionKind = "buyin"
	ActionQuit  ActionKind = "quit"
)

// Action is one recorded event for a user within a game.
type Action struct {
	GameID    string     `json:"game_id"`
	Kind      ActionKind `json:"action"`
	Amount    float64    `json:"amount"`
	Timestamp time.Time  `json:"timestamp"`
}

type User struct {
	UserID   int64    `json:"user_id"`
	Username string   `json:"username,omitempty"`
	Actions  []Action `json:"-"`
}

// DisplayName returns the username, or the stringified id when the user has none.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return strconv.FormatInt(u.UserID, 10)
}

// Snapshot is the result of one fetch pass over the remote API.
// It is never mutated after construction.
type Snapshot struct {
	Users         []User    `json:"users"`
	FetchedAt     time.Time `json:"fetched_at"`
	FailedUserIDs []int64   `json:"failed_user_ids,omitempty"`
}

// EarliestAction returns the earliest action timestamp across users.
func EarliestAction(users []User) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, u := range users {
		for _, a := range u.Actions {
			if !found || a.Timestamp.Before(earliest) {
				earliest = a.Timestamp
				found = true
			}
		}
	}
	return earliest, found
}
