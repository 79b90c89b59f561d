package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"vaccine-scheduler/internal/model"
)

// appointmentIDLock is the advisory lock key guarding id allocation.
const appointmentIDLock = 0x76616363

// NextAppointmentID takes a transaction-scoped advisory lock so two concurrent
// reservations cannot be handed the same id.
func (q *queries) NextAppointmentID(ctx context.Context) (int64, error) {
	if _, err := q.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, appointmentIDLock); err != nil {
		return 0, fmt.Errorf("lock appointment ids: %w", err)
	}
	var id int64
	if err := q.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(id), 0) + 1 FROM appointments`,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("next appointment id: %w", err)
	}
	return id, nil
}

func (q *queries) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO appointments (id, appt_date, patient, caregiver, vaccine)
		 VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.Date, a.Patient, a.Caregiver, a.Vaccine,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (q *queries) DeleteAppointment(ctx context.Context, id int64) (bool, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete appointment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (q *queries) AppointmentByID(ctx context.Context, id int64) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := q.db.QueryRow(ctx,
		`SELECT id, appt_date, patient, caregiver, vaccine
		 FROM appointments WHERE id = $1
		 FOR UPDATE`, id,
	).Scan(&a.ID, &a.Date, &a.Patient, &a.Caregiver, &a.Vaccine)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select appointment: %w", err)
	}
	return a, nil
}

func (q *queries) AppointmentsByPatient(ctx context.Context, username string) ([]model.Appointment, error) {
	return q.appointments(ctx,
		`SELECT id, appt_date, patient, caregiver, vaccine
		 FROM appointments WHERE patient = $1 ORDER BY id`, username)
}

func (q *queries) AppointmentsByCaregiver(ctx context.Context, username string) ([]model.Appointment, error) {
	return q.appointments(ctx,
		`SELECT id, appt_date, patient, caregiver, vaccine
		 FROM appointments WHERE caregiver = $1 ORDER BY id`, username)
}

func (q *queries) appointments(ctx context.Context, sql string, args ...any) ([]model.Appointment, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.Date, &a.Patient, &a.Caregiver, &a.Vaccine); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
