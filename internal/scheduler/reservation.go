package scheduler

import (
	"context"
	"strconv"
	"strings"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/store"
)

// Reserve books the earliest caregiver (smallest username) on date for the
// session's patient. Dose decrement, appointment insert and slot removal
// commit together or not at all.
func (s *Service) Reserve(ctx context.Context, sess *model.Session, rawDate, vaccine string) (*model.Appointment, error) {
	if err := s.authorize(sess, model.RolePatient); err != nil {
		return nil, err
	}
	date, err := model.ParseDate(rawDate)
	if err != nil {
		return nil, apperr.ErrInvalidDate.Wrap(err)
	}
	name := normalizeVaccine(vaccine)
	if name == "" {
		return nil, apperr.Validation("vaccine is required", nil)
	}

	var appt *model.Appointment
	err = s.store.InTx(ctx, func(q store.Queries) error {
		slot, err := q.EarliestSlot(ctx, date)
		if err != nil {
			return err
		}
		if slot == nil {
			return apperr.ErrNoAvailability
		}

		v, err := q.VaccineByName(ctx, name)
		if err != nil {
			return err
		}
		if v == nil {
			return unknownVaccine(ctx, q)
		}
		if v.Doses == 0 {
			return apperr.ErrInsufficientDoses
		}
		if _, err := q.AdjustDoses(ctx, name, -1); err != nil {
			return err
		}

		id, err := q.NextAppointmentID(ctx)
		if err != nil {
			return err
		}
		a := &model.Appointment{
			ID:        id,
			Date:      slot.Date,
			Patient:   sess.Username,
			Caregiver: slot.Caregiver,
			Vaccine:   name,
		}
		if err := q.CreateAppointment(ctx, a); err != nil {
			return err
		}

		// compare-and-delete: losing a race for the slot aborts the whole reservation
		removed, err := q.RemoveSlot(ctx, *slot)
		if err != nil {
			return err
		}
		if !removed {
			return apperr.ErrNoAvailability
		}
		appt = a
		return nil
	})
	if err != nil {
		return nil, s.fail("failed to reserve appointment", err, sessionAttrs(sess)...)
	}

	s.log.Info("appointment reserved", append(sessionAttrs(sess),
		"appointment_id", appt.ID,
		"caregiver", appt.Caregiver,
		"vaccine", appt.Vaccine,
		"date", model.FormatDate(appt.Date),
	)...)
	return appt, nil
}

// Cancel removes an appointment owned by the session's actor, returns its dose
// to inventory and re-offers the caregiver's slot, whichever side cancels.
func (s *Service) Cancel(ctx context.Context, sess *model.Session, rawID string) (*model.Appointment, error) {
	if err := s.authorize(sess, model.RolePatient, model.RoleCaregiver); err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || id < 1 {
		return nil, apperr.Validation("appointment id must be a positive number", map[string]any{"id": rawID})
	}

	var appt *model.Appointment
	err = s.store.InTx(ctx, func(q store.Queries) error {
		a, err := q.AppointmentByID(ctx, id)
		if err != nil {
			return err
		}
		// someone else's appointment looks the same as a missing one
		if a == nil || !a.OwnedBy(sess.Role, sess.Username) {
			return apperr.ErrAppointmentNotFound.WithDetails(map[string]any{"id": id})
		}

		if _, err := q.AdjustDoses(ctx, a.Vaccine, 1); err != nil {
			return err
		}
		deleted, err := q.DeleteAppointment(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.ErrAppointmentNotFound.WithDetails(map[string]any{"id": id})
		}
		if err := q.RestoreSlot(ctx, model.Slot{Date: a.Date, Caregiver: a.Caregiver}); err != nil {
			return err
		}
		appt = a
		return nil
	})
	if err != nil {
		return nil, s.fail("failed to cancel appointment", err, append(sessionAttrs(sess), "appointment_id", id)...)
	}

	s.log.Info("appointment cancelled", append(sessionAttrs(sess), "appointment_id", id)...)
	return appt, nil
}

// Appointments lists the session actor's appointments by id.
func (s *Service) Appointments(ctx context.Context, sess *model.Session) ([]model.Appointment, error) {
	if err := s.authorize(sess, model.RolePatient, model.RoleCaregiver); err != nil {
		return nil, err
	}
	var (
		out []model.Appointment
		err error
	)
	if sess.Role == model.RolePatient {
		out, err = s.store.AppointmentsByPatient(ctx, sess.Username)
	} else {
		out, err = s.store.AppointmentsByCaregiver(ctx, sess.Username)
	}
	if err != nil {
		return nil, s.fail("failed to retrieve appointments", err, sessionAttrs(sess)...)
	}
	return out, nil
}

func unknownVaccine(ctx context.Context, q store.Queries) error {
	vs, err := q.ListVaccines(ctx)
	if err != nil {
		return err
	}
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name
	}
	return apperr.ErrUnknownVaccine.WithDetails(map[string]any{"vaccines": names})
}
