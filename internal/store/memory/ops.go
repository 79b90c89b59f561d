package memory

import (
	"context"
	"time"

	"vaccine-scheduler/internal/model"
)

// Outside InTx every call is its own transaction.

func (s *Store) CreateAccount(ctx context.Context, a *model.Account) error {
	return s.auto(func(v *view) error { return v.CreateAccount(ctx, a) })
}

func (s *Store) AccountByUsername(ctx context.Context, role model.Role, username string) (a *model.Account, err error) {
	s.read(func(v *view) { a, err = v.AccountByUsername(ctx, role, username) })
	return
}

func (s *Store) UsernameExists(ctx context.Context, role model.Role, username string) (ok bool, err error) {
	s.read(func(v *view) { ok, err = v.UsernameExists(ctx, role, username) })
	return
}

func (s *Store) VaccineByName(ctx context.Context, name string) (vac *model.Vaccine, err error) {
	s.read(func(v *view) { vac, err = v.VaccineByName(ctx, name) })
	return
}

func (s *Store) CreateVaccine(ctx context.Context, vac *model.Vaccine) error {
	return s.auto(func(v *view) error { return v.CreateVaccine(ctx, vac) })
}

func (s *Store) AdjustDoses(ctx context.Context, name string, delta int) (n int, err error) {
	err = s.auto(func(v *view) error {
		n, err = v.AdjustDoses(ctx, name, delta)
		return err
	})
	return
}

func (s *Store) AddDoses(ctx context.Context, name string, doses int) (n int, err error) {
	err = s.auto(func(v *view) error {
		n, err = v.AddDoses(ctx, name, doses)
		return err
	})
	return
}

func (s *Store) ListVaccines(ctx context.Context) (out []model.Vaccine, err error) {
	s.read(func(v *view) { out, err = v.ListVaccines(ctx) })
	return
}

func (s *Store) PublishSlot(ctx context.Context, slot model.Slot) error {
	return s.auto(func(v *view) error { return v.PublishSlot(ctx, slot) })
}

func (s *Store) RestoreSlot(ctx context.Context, slot model.Slot) error {
	return s.auto(func(v *view) error { return v.RestoreSlot(ctx, slot) })
}

func (s *Store) EarliestSlot(ctx context.Context, date time.Time) (slot *model.Slot, err error) {
	s.read(func(v *view) { slot, err = v.EarliestSlot(ctx, date) })
	return
}

func (s *Store) RemoveSlot(ctx context.Context, slot model.Slot) (ok bool, err error) {
	err = s.auto(func(v *view) error {
		ok, err = v.RemoveSlot(ctx, slot)
		return err
	})
	return
}

func (s *Store) ListSlots(ctx context.Context) (out []model.Slot, err error) {
	s.read(func(v *view) { out, err = v.ListSlots(ctx) })
	return
}

func (s *Store) SlotsOn(ctx context.Context, date time.Time) (out []model.Slot, err error) {
	s.read(func(v *view) { out, err = v.SlotsOn(ctx, date) })
	return
}

func (s *Store) NextAppointmentID(ctx context.Context) (id int64, err error) {
	s.read(func(v *view) { id, err = v.NextAppointmentID(ctx) })
	return
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	return s.auto(func(v *view) error { return v.CreateAppointment(ctx, a) })
}

func (s *Store) DeleteAppointment(ctx context.Context, id int64) (ok bool, err error) {
	err = s.auto(func(v *view) error {
		ok, err = v.DeleteAppointment(ctx, id)
		return err
	})
	return
}

func (s *Store) AppointmentByID(ctx context.Context, id int64) (a *model.Appointment, err error) {
	s.read(func(v *view) { a, err = v.AppointmentByID(ctx, id) })
	return
}

func (s *Store) AppointmentsByPatient(ctx context.Context, username string) (out []model.Appointment, err error) {
	s.read(func(v *view) { out, err = v.AppointmentsByPatient(ctx, username) })
	return
}

func (s *Store) AppointmentsByCaregiver(ctx context.Context, username string) (out []model.Appointment, err error) {
	s.read(func(v *view) { out, err = v.AppointmentsByCaregiver(ctx, username) })
	return
}
