package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/dosada05/swiss-tournament-engine/db"
	"github.com/dosada05/swiss-tournament-engine/tournament"
)

// lockID derives a stable advisory-lock key from a tournament id for
// Save's transaction-level try-lock.
func lockID(tournamentID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(tournamentID))
	return int64(h.Sum64())
}

// ErrTournamentNotFound mirrors repositories.ErrTournamentNotFound's
// role for the snapshot-backed store: ID lookups that find no row.
var ErrTournamentNotFound = errors.New("tournament not found")

// TournamentRepository persists Tournament state as an opaque
// Snapshot blob, keyed by an external tournament ID the HTTP layer
// assigns (spec.md's engine itself has no notion of a database id).
// The owning organizer's id travels alongside the blob rather than
// inside it: SPEC_FULL.md §3.1 keeps OrganizerUserID an HTTP/DB-layer
// association, not an engine invariant, so the pure Snapshot codec
// never has to know about it.
type TournamentRepository interface {
	Save(ctx context.Context, id, organizerID string, t *tournament.Tournament) error
	Load(ctx context.Context, id string) (t *tournament.Tournament, organizerID string, err error)
	Delete(ctx context.Context, id string) error
}

type postgresTournamentStore struct {
	db *sql.DB
}

// NewPostgresTournamentStore stores Tournament snapshots in the
// tournaments(id text primary key, organizer_id text, state jsonb,
// updated_at timestamptz) table, the way
// repositories/tournament_repository.go persists its relational rows —
// one query per operation, context-scoped, errors wrapped with the
// query's intent.
func NewPostgresTournamentStore(db *sql.DB) TournamentRepository {
	return &postgresTournamentStore{db: db}
}

func (s *postgresTournamentStore) Save(ctx context.Context, id, organizerID string, t *tournament.Tournament) error {
	blob, err := Encode(t).Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode tournament snapshot for %s: %w", id, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save transaction for %s: %w", id, err)
	}
	defer tx.Rollback()

	// Takes a non-blocking advisory try-lock on the tournament's key.
	// Whether it was acquired is not checked: the upsert below runs
	// either way, so concurrent Saves are not serialized; each upsert
	// replaces the whole row in a single statement.
	if _, err := db.TryAcquireTransactionalLock(ctx, tx, lockID(id), nil); err != nil {
		return fmt.Errorf("failed to acquire save lock for %s: %w", id, err)
	}

	// organizer_id is intentionally excluded from the conflict update:
	// ownership is fixed at creation and never reassigned by a snapshot save.
	query := `
		INSERT INTO tournaments (id, organizer_id, state, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`

	if _, err := tx.ExecContext(ctx, query, id, organizerID, blob, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save tournament %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save for %s: %w", id, err)
	}
	return nil
}

func (s *postgresTournamentStore) Load(ctx context.Context, id string) (*tournament.Tournament, string, error) {
	var blob []byte
	var organizerID string
	query := `SELECT organizer_id, state FROM tournaments WHERE id = $1`
	err := s.db.QueryRowContext(ctx, query, id).Scan(&organizerID, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrTournamentNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load tournament %s: %w", id, err)
	}

	snapshot, err := Unmarshal(blob)
	if err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal snapshot for tournament %s: %w", id, err)
	}
	t, err := Decode(snapshot)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode snapshot for tournament %s: %w", id, err)
	}
	return t, organizerID, nil
}

func (s *postgresTournamentStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrTournamentNotFound
	}
	return nil
}
