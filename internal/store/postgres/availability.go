package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/model"
)

func (q *queries) PublishSlot(ctx context.Context, s model.Slot) error {
	tag, err := q.db.Exec(ctx,
		`INSERT INTO availabilities (slot_date, username) VALUES ($1,$2)
		 ON CONFLICT DO NOTHING`, s.Date, s.Caregiver,
	)
	if err != nil {
		return fmt.Errorf("insert availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrDuplicateSlot
	}
	return nil
}

// RestoreSlot re-offers a slot; an existing identical slot is left as is.
func (q *queries) RestoreSlot(ctx context.Context, s model.Slot) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO availabilities (slot_date, username) VALUES ($1,$2)
		 ON CONFLICT DO NOTHING`, s.Date, s.Caregiver,
	)
	if err != nil {
		return fmt.Errorf("restore availability: %w", err)
	}
	return nil
}

// EarliestSlot picks the smallest caregiver username by byte order. Inside a
// transaction the row stays locked until commit; rows locked by a concurrent
// reservation are skipped rather than waited on.
func (q *queries) EarliestSlot(ctx context.Context, date time.Time) (*model.Slot, error) {
	s := &model.Slot{}
	err := q.db.QueryRow(ctx,
		`SELECT slot_date, username FROM availabilities
		 WHERE slot_date = $1
		 ORDER BY username COLLATE "C"
		 LIMIT 1
		 FOR UPDATE SKIP LOCKED`, date,
	).Scan(&s.Date, &s.Caregiver)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select availability: %w", err)
	}
	return s, nil
}

func (q *queries) RemoveSlot(ctx context.Context, s model.Slot) (bool, error) {
	tag, err := q.db.Exec(ctx,
		`DELETE FROM availabilities WHERE slot_date = $1 AND username = $2`, s.Date, s.Caregiver,
	)
	if err != nil {
		return false, fmt.Errorf("delete availability: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (q *queries) ListSlots(ctx context.Context) ([]model.Slot, error) {
	return q.slots(ctx,
		`SELECT slot_date, username FROM availabilities ORDER BY slot_date, username COLLATE "C"`)
}

func (q *queries) SlotsOn(ctx context.Context, date time.Time) ([]model.Slot, error) {
	return q.slots(ctx,
		`SELECT slot_date, username FROM availabilities WHERE slot_date = $1 ORDER BY username COLLATE "C"`, date)
}

func (q *queries) slots(ctx context.Context, sql string, args ...any) ([]model.Slot, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list availabilities: %w", err)
	}
	defer rows.Close()

	var out []model.Slot
	for rows.Next() {
		var s model.Slot
		if err := rows.Scan(&s.Date, &s.Caregiver); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
