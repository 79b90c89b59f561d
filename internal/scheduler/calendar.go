package scheduler

import (
	"context"
	"time"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/model"
)

// Schedule is what search_caregiver_schedule shows for one date.
type Schedule struct {
	Date       time.Time
	Caregivers []string
	Vaccines   []model.Vaccine
}

// UploadAvailability offers the session caregiver on date. A second upload of
// the same date is rejected.
func (s *Service) UploadAvailability(ctx context.Context, sess *model.Session, rawDate string) (model.Slot, error) {
	if err := s.authorize(sess, model.RoleCaregiver); err != nil {
		return model.Slot{}, err
	}
	date, err := model.ParseDate(rawDate)
	if err != nil {
		return model.Slot{}, apperr.ErrInvalidDate.Wrap(err)
	}

	slot := model.Slot{Date: date, Caregiver: sess.Username}
	if err := s.store.PublishSlot(ctx, slot); err != nil {
		return model.Slot{}, s.fail("failed to upload availability", err, sessionAttrs(sess)...)
	}

	s.log.Info("availability uploaded", append(sessionAttrs(sess), "date", model.FormatDate(date))...)
	return slot, nil
}

func (s *Service) SearchSchedule(ctx context.Context, rawDate string) (*Schedule, error) {
	date, err := model.ParseDate(rawDate)
	if err != nil {
		return nil, apperr.ErrInvalidDate.Wrap(err)
	}

	slots, err := s.store.SlotsOn(ctx, date)
	if err != nil {
		return nil, s.fail("failed to retrieve dates", err)
	}
	vs, err := s.store.ListVaccines(ctx)
	if err != nil {
		return nil, s.fail("failed to retrieve vaccine information", err)
	}

	out := &Schedule{Date: date, Vaccines: vs}
	for _, sl := range slots {
		out.Caregivers = append(out.Caregivers, sl.Caregiver)
	}
	return out, nil
}

func (s *Service) AvailableDates(ctx context.Context) ([]model.Slot, error) {
	slots, err := s.store.ListSlots(ctx)
	if err != nil {
		return nil, s.fail("failed to retrieve available dates", err)
	}
	return slots, nil
}
