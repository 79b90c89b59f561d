package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/model"
)

var accountTables = map[model.Role]string{
	model.RolePatient:   "patients",
	model.RoleCaregiver: "caregivers",
}

func tableFor(role model.Role) (string, error) {
	t, ok := accountTables[role]
	if !ok {
		return "", fmt.Errorf("unknown role %q", role)
	}
	return t, nil
}

func (q *queries) CreateAccount(ctx context.Context, a *model.Account) error {
	table, err := tableFor(a.Role)
	if err != nil {
		return err
	}
	_, err = q.db.Exec(ctx,
		`INSERT INTO `+table+` (username, salt, hash) VALUES ($1,$2,$3)`,
		a.Username, a.Salt, a.Hash,
	)
	if pgCode(err) == uniqueViolation {
		return apperr.ErrDuplicateUsername
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (q *queries) AccountByUsername(ctx context.Context, role model.Role, username string) (*model.Account, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}
	a := &model.Account{Role: role}
	err = q.db.QueryRow(ctx,
		`SELECT username, salt, hash, created_at FROM `+table+` WHERE username = $1`, username,
	).Scan(&a.Username, &a.Salt, &a.Hash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return a, nil
}

func (q *queries) UsernameExists(ctx context.Context, role model.Role, username string) (bool, error) {
	table, err := tableFor(role)
	if err != nil {
		return false, err
	}
	var exists bool
	err = q.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+table+` WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", table, err)
	}
	return exists, nil
}
