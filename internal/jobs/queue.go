package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueRefresh schedules a snapshot reload. It fails fast when the
	// queue is full instead of blocking the caller.
	EnqueueRefresh() error
}
