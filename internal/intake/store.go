package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// PgxPool is the slice of pgxpool.Pool the store needs, kept narrow so
// tests can substitute a mock pool.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store persists application submissions.
type Store struct {
	pool PgxPool
}

func NewStore(pool PgxPool) *Store {
	return &Store{pool: pool}
}

// SaveSubmission writes the mapped form data and marks the user's
// application complete, in a single transaction. Resubmission overwrites
// every mapped column for that user. It returns the application's stable
// reference id. On any failure the transaction rolls back and neither
// table changes.
func (s *Store) SaveSubmission(ctx context.Context, userID string, formData map[string]any) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("intake: begin save submission: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	values := append([]any{userID}, MapSubmission(formData)...)

	var applicationID string
	if err := tx.QueryRow(ctx, upsertSubmissionSQL, values...).Scan(&applicationID); err != nil {
		return "", fmt.Errorf("intake: upsert submission: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE users SET has_completed_form = true, updated_at = now() WHERE id = $1`,
		userID)
	if err != nil {
		return "", fmt.Errorf("intake: mark user complete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return "", fmt.Errorf("intake: mark user complete: %w", ErrUnknownUser)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("intake: commit save submission: %w", err)
	}
	return applicationID, nil
}

// ErrUnknownUser reports a submission for a user id that was never
// registered.
var ErrUnknownUser = errors.New("user not found")

var upsertSubmissionSQL = buildUpsertSQL()

// buildUpsertSQL renders the submission upsert from the schema so that
// adding a field is a one-line change in Schema.
func buildUpsertSQL() string {
	cols := Columns()

	insertCols := make([]string, 0, len(cols)+1)
	insertCols = append(insertCols, "user_id")
	insertCols = append(insertCols, cols...)

	placeholders := make([]string, len(insertCols))
	for i := range insertCols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	updates := make([]string, 0, len(cols)+2)
	for _, c := range cols {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	updates = append(updates, "is_complete = true", "updated_at = now()")

	return fmt.Sprintf(
		`INSERT INTO form_submissions (%s, is_complete) VALUES (%s, true)
		ON CONFLICT (user_id) DO UPDATE SET %s
		RETURNING application_id`,
		strings.Join(insertCols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)
}
