package pokerapi

import (
	"context"

	"github.com/vytor/pokerdash/internal/models"
)

// ClientInterface defines the stats API operations the dashboard consumes.
type ClientInterface interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserActions(ctx context.Context, userID int64) ([]models.Action, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
