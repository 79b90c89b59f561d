package memory

import (
	"context"
	"time"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/model"
)

// view is the transaction-scoped ledger. All methods assume the store mutex is held.
type view struct {
	st        *state
	failAfter int
	writes    int
}

func (v *view) write() error {
	v.writes++
	if v.failAfter > 0 && v.writes >= v.failAfter {
		return errInjected
	}
	return nil
}

func (v *view) CreateAccount(_ context.Context, a *model.Account) error {
	m, ok := v.st.accounts[a.Role]
	if !ok {
		return apperr.ErrWrongRole
	}
	if _, dup := m[a.Username]; dup {
		return apperr.ErrDuplicateUsername
	}
	if err := v.write(); err != nil {
		return err
	}
	acct := *a
	acct.CreatedAt = time.Now()
	m[a.Username] = acct
	return nil
}

func (v *view) AccountByUsername(_ context.Context, role model.Role, username string) (*model.Account, error) {
	a, ok := v.st.accounts[role][username]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (v *view) UsernameExists(_ context.Context, role model.Role, username string) (bool, error) {
	_, ok := v.st.accounts[role][username]
	return ok, nil
}

func (v *view) VaccineByName(_ context.Context, name string) (*model.Vaccine, error) {
	d, ok := v.st.vaccines[name]
	if !ok {
		return nil, nil
	}
	return &model.Vaccine{Name: name, Doses: d}, nil
}

func (v *view) CreateVaccine(_ context.Context, vac *model.Vaccine) error {
	if _, dup := v.st.vaccines[vac.Name]; dup {
		return apperr.ErrDuplicateVaccine
	}
	if vac.Doses < 0 {
		return apperr.ErrInsufficientDoses
	}
	if err := v.write(); err != nil {
		return err
	}
	v.st.vaccines[vac.Name] = vac.Doses
	return nil
}

func (v *view) AdjustDoses(_ context.Context, name string, delta int) (int, error) {
	d, ok := v.st.vaccines[name]
	if !ok {
		return 0, apperr.ErrUnknownVaccine
	}
	if d+delta < 0 {
		return 0, apperr.ErrInsufficientDoses
	}
	if err := v.write(); err != nil {
		return 0, err
	}
	v.st.vaccines[name] = d + delta
	return d + delta, nil
}

func (v *view) AddDoses(_ context.Context, name string, doses int) (int, error) {
	total := v.st.vaccines[name] + doses
	if total < 0 {
		return 0, apperr.ErrInsufficientDoses
	}
	if err := v.write(); err != nil {
		return 0, err
	}
	v.st.vaccines[name] = total
	return total, nil
}

func (v *view) ListVaccines(_ context.Context) ([]model.Vaccine, error) {
	out := make([]model.Vaccine, 0, len(v.st.vaccines))
	for name, d := range v.st.vaccines {
		out = append(out, model.Vaccine{Name: name, Doses: d})
	}
	sortVaccines(out)
	return out, nil
}

func (v *view) PublishSlot(_ context.Context, s model.Slot) error {
	k := slotKey{date: dayKey(s.Date), caregiver: s.Caregiver}
	if _, dup := v.st.slots[k]; dup {
		return apperr.ErrDuplicateSlot
	}
	if err := v.write(); err != nil {
		return err
	}
	v.st.slots[k] = struct{}{}
	return nil
}

func (v *view) RestoreSlot(_ context.Context, s model.Slot) error {
	if err := v.write(); err != nil {
		return err
	}
	v.st.slots[slotKey{date: dayKey(s.Date), caregiver: s.Caregiver}] = struct{}{}
	return nil
}

func (v *view) EarliestSlot(_ context.Context, date time.Time) (*model.Slot, error) {
	day := dayKey(date)
	var best *model.Slot
	for k := range v.st.slots {
		if !k.date.Equal(day) {
			continue
		}
		if best == nil || k.caregiver < best.Caregiver {
			best = &model.Slot{Date: k.date, Caregiver: k.caregiver}
		}
	}
	return best, nil
}

func (v *view) RemoveSlot(_ context.Context, s model.Slot) (bool, error) {
	k := slotKey{date: dayKey(s.Date), caregiver: s.Caregiver}
	if _, ok := v.st.slots[k]; !ok {
		return false, nil
	}
	if err := v.write(); err != nil {
		return false, err
	}
	delete(v.st.slots, k)
	return true, nil
}

func (v *view) ListSlots(_ context.Context) ([]model.Slot, error) {
	out := make([]model.Slot, 0, len(v.st.slots))
	for k := range v.st.slots {
		out = append(out, model.Slot{Date: k.date, Caregiver: k.caregiver})
	}
	sortSlots(out)
	return out, nil
}

func (v *view) SlotsOn(_ context.Context, date time.Time) ([]model.Slot, error) {
	day := dayKey(date)
	var out []model.Slot
	for k := range v.st.slots {
		if k.date.Equal(day) {
			out = append(out, model.Slot{Date: k.date, Caregiver: k.caregiver})
		}
	}
	sortSlots(out)
	return out, nil
}

func (v *view) NextAppointmentID(_ context.Context) (int64, error) {
	var max int64
	for id := range v.st.appointments {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}

func (v *view) CreateAppointment(_ context.Context, a *model.Appointment) error {
	if _, dup := v.st.appointments[a.ID]; dup {
		return apperr.ErrStoreFailure.WithMessage("duplicate appointment id")
	}
	if _, ok := v.st.vaccines[a.Vaccine]; !ok {
		return apperr.ErrUnknownVaccine
	}
	if err := v.write(); err != nil {
		return err
	}
	appt := *a
	appt.Date = dayKey(a.Date)
	v.st.appointments[a.ID] = appt
	return nil
}

func (v *view) DeleteAppointment(_ context.Context, id int64) (bool, error) {
	if _, ok := v.st.appointments[id]; !ok {
		return false, nil
	}
	if err := v.write(); err != nil {
		return false, err
	}
	delete(v.st.appointments, id)
	return true, nil
}

func (v *view) AppointmentByID(_ context.Context, id int64) (*model.Appointment, error) {
	a, ok := v.st.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (v *view) AppointmentsByPatient(_ context.Context, username string) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range v.st.appointments {
		if a.Patient == username {
			out = append(out, a)
		}
	}
	sortAppointments(out)
	return out, nil
}

func (v *view) AppointmentsByCaregiver(_ context.Context, username string) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range v.st.appointments {
		if a.Caregiver == username {
			out = append(out, a)
		}
	}
	sortAppointments(out)
	return out, nil
}
