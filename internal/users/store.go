package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the store needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists user identity records in Postgres.
type Store struct {
	pool PgxPool
}

func NewStore(pool PgxPool) *Store {
	return &Store{pool: pool}
}

// Get returns the user with the given id, or nil when absent.
func (s *Store) Get(ctx context.Context, id string) (*User, error) {
	var u User
	query := `
		SELECT id, email, first_name, last_name, has_completed_form, created_at, updated_at
		FROM users WHERE id = $1
	`
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.HasCompletedForm, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: get %s: %w", id, err)
	}
	return &u, nil
}

// Upsert inserts the user or refreshes identity fields on conflict. The
// completion flag is deliberately left alone here; only the submission
// transaction touches it.
func (s *Store) Upsert(ctx context.Context, u User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			updated_at = now()
	`
	if _, err := s.pool.Exec(ctx, query, u.ID, u.Email, u.FirstName, u.LastName); err != nil {
		return fmt.Errorf("users: upsert %s: %w", u.ID, err)
	}
	return nil
}
