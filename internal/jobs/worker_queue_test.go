package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pokerdash/internal/models"
	"github.com/vytor/pokerdash/internal/worker"
)

type refresher struct{}

func (refresher) Refresh(context.Context) (*models.Snapshot, error) {
	return &models.Snapshot{}, nil
}

func TestWorkerQueue_EnqueueRefresh(t *testing.T) {
	pool := worker.NewPool(1, 1)
	q := NewWorkerQueue(pool, refresher{})

	require.NoError(t, q.EnqueueRefresh())
	assert.ErrorIs(t, q.EnqueueRefresh(), worker.ErrQueueFull)

	pool.Stop()
	assert.ErrorIs(t, q.EnqueueRefresh(), worker.ErrPoolStopped)
}
