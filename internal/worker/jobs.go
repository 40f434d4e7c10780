package worker

import (
	"context"

	"github.com/vytor/pokerdash/internal/logger"
	"github.com/vytor/pokerdash/internal/models"
)

// SnapshotRefresher reloads the dashboard snapshot.
// Declared here so worker does not import services.
type SnapshotRefresher interface {
	Refresh(ctx context.Context) (*models.Snapshot, error)
}

// RefreshSnapshotJob fetches a new snapshot from the stats API and installs it.
type RefreshSnapshotJob struct {
	Snapshots SnapshotRefresher
}

func (j *RefreshSnapshotJob) Name() string { return "refresh_snapshot" }

func (j *RefreshSnapshotJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	snap, err := j.Snapshots.Refresh(ctx)
	if err != nil {
		return err
	}
	log.Info("snapshot refreshed: users=%d failed=%d", len(snap.Users), len(snap.FailedUserIDs))
	return nil
}
