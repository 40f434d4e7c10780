package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/pokerdash/internal/logger"
	"github.com/vytor/pokerdash/internal/models"
	"github.com/vytor/pokerdash/internal/repository"
)

// insertChunk bounds the rows per INSERT to stay under SQLite's variable limit.
const insertChunk = 500

type snapshotRepository struct {
	db  *sql.DB
	loc *time.Location
}

// NewSnapshotRepository creates a SQLite-backed SnapshotRepository. Timestamps
// read back are converted into loc.
func NewSnapshotRepository(db *sql.DB, loc *time.Location) repository.SnapshotRepository {
	if loc == nil {
		loc = time.Local
	}
	return &snapshotRepository{db: db, loc: loc}
}

func (r *snapshotRepository) SaveUser(ctx context.Context, user models.User, fetchedAt time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("saving user: user_id=%d, actions=%d", user.UserID, len(user.Actions))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		upsert, args, err := sqlBuilder.Insert("snapshot_users").
			Columns("user_id", "username", "fetched_at").
			Values(user.UserID, user.Username, fetchedAt.UTC().Format(time.RFC3339Nano)).
			Suffix("ON CONFLICT(user_id) DO UPDATE SET username = excluded.username, fetched_at = excluded.fetched_at").
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsert, args...); err != nil {
			log.Error("failed to upsert user: %v", err)
			return err
		}

		del, args, err := sqlBuilder.Delete("snapshot_actions").
			Where(squirrel.Eq{"user_id": user.UserID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, del, args...); err != nil {
			log.Error("failed to clear previous actions: %v", err)
			return err
		}

		for start := 0; start < len(user.Actions); start += insertChunk {
			end := min(start+insertChunk, len(user.Actions))
			ins := sqlBuilder.Insert("snapshot_actions").
				Columns("user_id", "seq", "game_id", "action", "amount", "timestamp")
			for i, a := range user.Actions[start:end] {
				ins = ins.Values(user.UserID, start+i, a.GameID, string(a.Kind), a.Amount, a.Timestamp.UTC().Format(time.RFC3339Nano))
			}
			query, args, err := ins.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				log.Error("failed to insert actions: %v", err)
				return err
			}
		}
		return nil
	})
}

func (r *snapshotRepository) UserActions(ctx context.Context, userID int64) ([]models.Action, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("loading stored actions: user_id=%d", userID)

	existsQuery, args, err := sqlBuilder.Select("COUNT(*)").
		From("snapshot_users").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, false, err
	}
	var count int
	if err := r.db.QueryRowContext(ctx, existsQuery, args...).Scan(&count); err != nil {
		log.Error("failed to look up stored user: %v", err)
		return nil, false, err
	}
	if count == 0 {
		return nil, false, nil
	}

	query, args, err := sqlBuilder.Select("game_id", "action", "amount", "timestamp").
		From("snapshot_actions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, false, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query stored actions: %v", err)
		return nil, false, err
	}
	defer rows.Close()

	actions := []models.Action{}
	for rows.Next() {
		var (
			a    models.Action
			kind string
			ts   string
		)
		if err := rows.Scan(&a.GameID, &kind, &a.Amount, &ts); err != nil {
			log.Error("failed to scan action row: %v", err)
			return nil, false, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, false, fmt.Errorf("stored timestamp %q: %w", ts, err)
		}
		a.Kind = models.ActionKind(kind)
		a.Timestamp = parsed.In(r.loc)
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	log.Debug("found %d stored actions", len(actions))
	return actions, true, nil
}

func (r *snapshotRepository) ListUsers(ctx context.Context) ([]repository.StoredUser, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")

	query, args, err := sqlBuilder.Select("user_id", "username", "fetched_at").
		From("snapshot_users").
		OrderBy("user_id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list stored users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []repository.StoredUser
	for rows.Next() {
		var (
			u       repository.StoredUser
			fetched string
		)
		if err := rows.Scan(&u.UserID, &u.Username, &fetched); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, fetched); err == nil {
			u.FetchedAt = t.In(r.loc)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
