package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/vytor/pokerdash/internal/errors"
	"github.com/vytor/pokerdash/internal/logger"
	"github.com/vytor/pokerdash/internal/models"
	"github.com/vytor/pokerdash/internal/pokerapi"
	"github.com/vytor/pokerdash/internal/repository"
	"golang.org/x/sync/singleflight"
)

// SnapshotService builds and serves the immutable user/action snapshot the
// dashboard renders from.
type SnapshotService interface {
	// Load fetches a fresh snapshot without installing it.
	Load(ctx context.Context) (*models.Snapshot, error)
	// Current returns the installed snapshot, reloading it once it is older than the TTL.
	Current(ctx context.Context) (*models.Snapshot, error)
	// Refresh loads and installs a new snapshot unconditionally.
	Refresh(ctx context.Context) (*models.Snapshot, error)
	// Ready reports whether a snapshot has been installed.
	Ready() bool
}

// SnapshotConfig tunes the fetch pass.
type SnapshotConfig struct {
	MaxConcurrent  int
	TTL            time.Duration // zero disables expiry
	BlockedUserIDs []int64
	Now            func() time.Time
}

type snapshotService struct {
	client pokerapi.ClientInterface
	store  repository.SnapshotRepository
	cfg    SnapshotConfig

	// loads coalesces concurrent reloads; mu only guards current.
	loads   singleflight.Group
	mu      sync.RWMutex
	current *models.Snapshot
}

// NewSnapshotService creates a SnapshotService. store may be nil. When set,
// every successfully fetched history is written to it, and it seeds the first
// snapshot if the stats API cannot list users at startup.
func NewSnapshotService(client pokerapi.ClientInterface, store repository.SnapshotRepository, cfg SnapshotConfig) SnapshotService {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 10
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &snapshotService{client: client, store: store, cfg: cfg}
}

type actionsResult struct {
	actions []models.Action
	err     error
}

func (s *snapshotService) blocked(userID int64) bool {
	return slices.Contains(s.cfg.BlockedUserIDs, userID)
}

func (s *snapshotService) Load(ctx context.Context) (*models.Snapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot")
	start := s.cfg.Now()

	users, err := s.client.GetUsers(ctx)
	if err != nil {
		log.Error("failed to fetch users: %v", err)
		return nil, errors.NewUpstreamError("list users", err)
	}

	users = slices.DeleteFunc(users, func(u models.User) bool { return s.blocked(u.UserID) })
	log.Info("fetching actions for %d users with %d concurrent requests", len(users), s.cfg.MaxConcurrent)

	results := make([]actionsResult, len(users))
	sem := make(chan struct{}, s.cfg.MaxConcurrent)

	var wg sync.WaitGroup
	for i, u := range users {
		wg.Add(1)
		go func(i int, userID int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			actions, err := s.client.GetUserActions(ctx, userID)
			results[i] = actionsResult{actions: actions, err: err}
		}(i, u.UserID)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		log.Warn("snapshot load cancelled: %v", err)
		return nil, err
	}

	fetchedAt := s.cfg.Now()
	snap := &models.Snapshot{
		Users:     make([]models.User, len(users)),
		FetchedAt: fetchedAt,
	}
	for i, u := range users {
		res := results[i]
		if res.err != nil {
			// the user stays in the table with an all-zero summary
			log.WithField("user_id", u.UserID).Warn("failed to fetch actions: %v", res.err)
			snap.FailedUserIDs = append(snap.FailedUserIDs, u.UserID)
			u.Actions = []models.Action{}
		} else {
			u.Actions = res.actions
			if u.Actions == nil {
				u.Actions = []models.Action{}
			}
			s.remember(ctx, log, u, fetchedAt)
		}
		snap.Users[i] = u
	}

	log.Info("snapshot loaded in %v: users=%d failed=%d", s.cfg.Now().Sub(start), len(snap.Users), len(snap.FailedUserIDs))
	return snap, nil
}

func (s *snapshotService) remember(ctx context.Context, log *logger.Logger, user models.User, fetchedAt time.Time) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveUser(ctx, user, fetchedAt); err != nil {
		log.WithField("user_id", user.UserID).Warn("failed to store actions: %v", err)
	}
}

// seedFromStore rebuilds a snapshot from the store. FetchedAt is the oldest
// stored fetch time so the TTL schedules a real reload.
func (s *snapshotService) seedFromStore(ctx context.Context, log *logger.Logger) *models.Snapshot {
	if s.store == nil {
		return nil
	}
	stored, err := s.store.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list stored users: %v", err)
		return nil
	}
	if len(stored) == 0 {
		return nil
	}

	snap := &models.Snapshot{Users: make([]models.User, 0, len(stored))}
	for _, su := range stored {
		if s.blocked(su.UserID) {
			continue
		}
		actions, _, err := s.store.UserActions(ctx, su.UserID)
		if err != nil {
			log.WithField("user_id", su.UserID).Warn("failed to read stored actions: %v", err)
			snap.FailedUserIDs = append(snap.FailedUserIDs, su.UserID)
		}
		if actions == nil {
			actions = []models.Action{}
		}
		snap.Users = append(snap.Users, models.User{UserID: su.UserID, Username: su.Username, Actions: actions})
		if snap.FetchedAt.IsZero() || su.FetchedAt.Before(snap.FetchedAt) {
			snap.FetchedAt = su.FetchedAt
		}
	}
	log.Info("seeded snapshot from store: users=%d fetched_at=%v", len(snap.Users), snap.FetchedAt)
	return snap
}

func (s *snapshotService) snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *snapshotService) install(snap *models.Snapshot) {
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
}

// reload runs one Load at a time and installs its result. When it fails
// before any snapshot exists, the store seeds one and the error is still
// returned.
func (s *snapshotService) reload(ctx context.Context) (*models.Snapshot, error) {
	v, err, _ := s.loads.Do("snapshot", func() (any, error) {
		next, err := s.Load(ctx)
		if err != nil {
			if s.snapshot() == nil {
				if seeded := s.seedFromStore(ctx, logger.FromContext(ctx).WithPrefix("snapshot")); seeded != nil {
					s.install(seeded)
				}
			}
			return nil, err
		}
		s.install(next)
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Snapshot), nil
}

func (s *snapshotService) fresh(snap *models.Snapshot) bool {
	if snap == nil {
		return false
	}
	if s.cfg.TTL == 0 {
		return true
	}
	return s.cfg.Now().Sub(snap.FetchedAt) < s.cfg.TTL
}

func (s *snapshotService) Current(ctx context.Context) (*models.Snapshot, error) {
	if snap := s.snapshot(); s.fresh(snap) {
		return snap, nil
	}

	next, err := s.reload(ctx)
	if err != nil {
		if stale := s.snapshot(); stale != nil {
			logger.FromContext(ctx).Warn("serving stale snapshot from %v: %v", stale.FetchedAt, err)
			return stale, nil
		}
		return nil, err
	}
	return next, nil
}

func (s *snapshotService) Refresh(ctx context.Context) (*models.Snapshot, error) {
	return s.reload(ctx)
}

func (s *snapshotService) Ready() bool {
	return s.snapshot() != nil
}
