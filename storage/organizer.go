package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrOrganizerNotFound mirrors repositories.ErrUserNotFound's role for
// the organizer credential store.
var ErrOrganizerNotFound = errors.New("organizer not found")

// ErrOrganizerEmailTaken is returned by Create when email already has a
// row, matching services.ErrAuthEmailTaken's uniqueness check.
var ErrOrganizerEmailTaken = errors.New("an organizer with this email already exists")

// Organizer is the credential row behind the "organizer" role in a JWT
// claim; it carries nothing about any tournament, since the engine
// itself is tournament-scoped, not organizer-scoped.
type Organizer struct {
	ID           string
	Email        string
	PasswordHash string
}

// OrganizerRepository stores the credentials an AuthHandler checks
// before minting a JWT.
type OrganizerRepository interface {
	Create(ctx context.Context, id, email, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (*Organizer, error)
}

type postgresOrganizerStore struct {
	db *sql.DB
}

// NewPostgresOrganizerStore stores organizer credentials in the
// organizers(id text primary key, email text unique, password_hash
// text, created_at timestamptz) table, the same relational shape
// repositories/user_repository.go used for the teacher's user table.
func NewPostgresOrganizerStore(db *sql.DB) OrganizerRepository {
	return &postgresOrganizerStore{db: db}
}

func (s *postgresOrganizerStore) Create(ctx context.Context, id, email, passwordHash string) error {
	const query = `INSERT INTO organizers (id, email, password_hash, created_at) VALUES ($1, $2, $3, now())`
	if _, err := s.db.ExecContext(ctx, query, id, email, passwordHash); err != nil {
		if isUniqueViolation(err) {
			return ErrOrganizerEmailTaken
		}
		return fmt.Errorf("failed to create organizer %s: %w", email, err)
	}
	return nil
}

func (s *postgresOrganizerStore) GetByEmail(ctx context.Context, email string) (*Organizer, error) {
	var o Organizer
	const query = `SELECT id, email, password_hash FROM organizers WHERE email = $1`
	err := s.db.QueryRowContext(ctx, query, email).Scan(&o.ID, &o.Email, &o.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrganizerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up organizer %s: %w", email, err)
	}
	return &o, nil
}

// isUniqueViolation checks for Postgres's unique_violation SQLSTATE
// (23505), the code raised when the organizers.email unique constraint
// rejects a duplicate Create.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
