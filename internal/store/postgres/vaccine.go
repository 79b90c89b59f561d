package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/model"
)

func (q *queries) VaccineByName(ctx context.Context, name string) (*model.Vaccine, error) {
	v := &model.Vaccine{}
	err := q.db.QueryRow(ctx,
		`SELECT name, doses FROM vaccines WHERE name = $1`, name,
	).Scan(&v.Name, &v.Doses)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select vaccine: %w", err)
	}
	return v, nil
}

func (q *queries) CreateVaccine(ctx context.Context, v *model.Vaccine) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO vaccines (name, doses) VALUES ($1,$2)`, v.Name, v.Doses,
	)
	switch pgCode(err) {
	case uniqueViolation:
		return apperr.ErrDuplicateVaccine
	case checkViolation:
		return apperr.ErrInsufficientDoses
	}
	if err != nil {
		return fmt.Errorf("insert vaccine: %w", err)
	}
	return nil
}

// AdjustDoses applies delta only if the result stays non-negative; the row lock
// taken by UPDATE serializes concurrent adjustments.
func (q *queries) AdjustDoses(ctx context.Context, name string, delta int) (int, error) {
	var doses int
	err := q.db.QueryRow(ctx,
		`UPDATE vaccines SET doses = doses + $2
		 WHERE name = $1 AND doses + $2 >= 0
		 RETURNING doses`, name, delta,
	).Scan(&doses)
	if err == nil {
		return doses, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("adjust doses: %w", err)
	}

	var exists bool
	if err := q.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM vaccines WHERE name = $1)`, name,
	).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check vaccine: %w", err)
	}
	if !exists {
		return 0, apperr.ErrUnknownVaccine
	}
	return 0, apperr.ErrInsufficientDoses
}

func (q *queries) AddDoses(ctx context.Context, name string, doses int) (int, error) {
	var total int
	err := q.db.QueryRow(ctx,
		`INSERT INTO vaccines (name, doses) VALUES ($1,$2)
		 ON CONFLICT (name) DO UPDATE SET doses = vaccines.doses + EXCLUDED.doses
		 RETURNING doses`, name, doses,
	).Scan(&total)
	if pgCode(err) == checkViolation {
		return 0, apperr.ErrInsufficientDoses
	}
	if err != nil {
		return 0, fmt.Errorf("upsert vaccine: %w", err)
	}
	return total, nil
}

func (q *queries) ListVaccines(ctx context.Context) ([]model.Vaccine, error) {
	rows, err := q.db.Query(ctx, `SELECT name, doses FROM vaccines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list vaccines: %w", err)
	}
	defer rows.Close()

	var out []model.Vaccine
	for rows.Next() {
		var v model.Vaccine
		if err := rows.Scan(&v.Name, &v.Doses); err != nil {
			return nil, fmt.Errorf("scan vaccine: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
