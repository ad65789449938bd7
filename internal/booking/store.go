// Package booking reserves interview slots against per-slot capacity.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dialastudent/stocktaker-intake/internal/schedule"
)

var (
	// ErrSlotFull reports a slot already at capacity. Bookings race for
	// the last seat; the database, not the client's stale counts, decides
	// who gets it.
	ErrSlotFull = errors.New("slot is fully booked")
	// ErrInvalidSlot reports a date or time outside the bookable window.
	ErrInvalidSlot = errors.New("invalid interview slot")
)

type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool PgxPool
	now  func() time.Time
}

func NewStore(pool PgxPool) *Store {
	return &Store{pool: pool, now: time.Now}
}

// Counts returns live booking tallies keyed by date then slot time.
// Dates with no bookings are absent.
func (s *Store) Counts(ctx context.Context) (map[string]map[string]int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT slot_date, slot_time, COUNT(*)
		FROM slot_bookings
		GROUP BY slot_date, slot_time`)
	if err != nil {
		return nil, fmt.Errorf("booking: query slot counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]map[string]int)
	for rows.Next() {
		var (
			date time.Time
			slot string
			n    int
		)
		if err := rows.Scan(&date, &slot, &n); err != nil {
			return nil, fmt.Errorf("booking: scan slot count: %w", err)
		}
		day := date.Format(schedule.DateFormat)
		if counts[day] == nil {
			counts[day] = make(map[string]int)
		}
		counts[day][slot] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("booking: read slot counts: %w", err)
	}
	return counts, nil
}

// Book reserves one seat in the given slot for an application. An
// advisory lock keyed on the slot serializes concurrent bookings, so the
// capacity count inside the guarded insert cannot race a parallel insert
// under READ COMMITTED.
func (s *Store) Book(ctx context.Context, applicationID, date, slot string) (string, error) {
	if !schedule.Selectable(s.now(), date) {
		return "", fmt.Errorf("booking: date %q: %w", date, ErrInvalidSlot)
	}
	if !schedule.ValidSlot(slot) {
		return "", fmt.Errorf("booking: slot %q: %w", slot, ErrInvalidSlot)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("booking: begin booking: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Held until commit or rollback; all writers for one slot queue here.
	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`,
		date+"/"+slot); err != nil {
		return "", fmt.Errorf("booking: lock slot: %w", err)
	}

	id := uuid.NewString()
	tag, err := tx.Exec(ctx, `
		INSERT INTO slot_bookings (id, application_id, slot_date, slot_time)
		SELECT $1, $2, $3, $4
		WHERE (SELECT COUNT(*) FROM slot_bookings WHERE slot_date = $3 AND slot_time = $4) < $5`,
		id, applicationID, date, slot, schedule.MaxBookingsPerSlot)
	if err != nil {
		return "", fmt.Errorf("booking: insert booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return "", ErrSlotFull
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("booking: commit booking: %w", err)
	}
	return id, nil
}
