package jobs

import (
	"github.com/vytor/pokerdash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	refreshPool *worker.Pool
	snapshots   worker.SnapshotRefresher
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(refreshPool *worker.Pool, snapshots worker.SnapshotRefresher) JobQueue {
	return &WorkerQueue{
		refreshPool: refreshPool,
		snapshots:   snapshots,
	}
}

func (q *WorkerQueue) EnqueueRefresh() error {
	return q.refreshPool.TrySubmit(&worker.RefreshSnapshotJob{Snapshots: q.snapshots})
}
