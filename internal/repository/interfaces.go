package repository

import (
	"context"
	"time"

	"github.com/vytor/pokerdash/internal/models"
)

// StoredUser is a user row in the snapshot store.
type StoredUser struct {
	UserID    int64
	Username  string
	FetchedAt time.Time
}

// SnapshotRepository keeps the last successfully fetched action history per
// user so the dashboard can start from it while the stats API is unreachable.
type SnapshotRepository interface {
	SaveUser(ctx context.Context, user models.User, fetchedAt time.Time) error
	UserActions(ctx context.Context, userID int64) ([]models.Action, bool, error)
	ListUsers(ctx context.Context) ([]StoredUser, error)
}
