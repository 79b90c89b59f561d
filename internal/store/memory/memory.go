// Package memory is an in-memory implementation of the store ledgers used for
// tests and ephemeral runs. Transactions are serialized under one mutex and
// operate on a cloned state that replaces the live state only on success.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/store"
)

var _ store.Store = (*Store)(nil)

type slotKey struct {
	date      time.Time
	caregiver string
}

type state struct {
	accounts     map[model.Role]map[string]model.Account
	vaccines     map[string]int
	slots        map[slotKey]struct{}
	appointments map[int64]model.Appointment
}

func newState() *state {
	return &state{
		accounts: map[model.Role]map[string]model.Account{
			model.RolePatient:   {},
			model.RoleCaregiver: {},
		},
		vaccines:     map[string]int{},
		slots:        map[slotKey]struct{}{},
		appointments: map[int64]model.Appointment{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for role, m := range s.accounts {
		for k, v := range m {
			c.accounts[role][k] = v
		}
	}
	for k, v := range s.vaccines {
		c.vaccines[k] = v
	}
	for k := range s.slots {
		c.slots[k] = struct{}{}
	}
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	return c
}

type Store struct {
	mu  sync.Mutex
	cur *state
	// FailAfter, when positive, makes the nth mutating call inside a
	// transaction fail. Used to exercise rollback.
	FailAfter int
}

func New() *Store {
	return &Store{cur: newState()}
}

func (s *Store) Close() {}

func (s *Store) InTx(ctx context.Context, fn func(q store.Queries) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &view{st: s.cur.clone(), failAfter: s.FailAfter}
	if err := fn(tx); err != nil {
		return err
	}
	s.cur = tx.st
	return nil
}

// auto runs a single operation as its own transaction.
func (s *Store) auto(fn func(v *view) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := &view{st: s.cur.clone()}
	if err := fn(v); err != nil {
		return err
	}
	s.cur = v.st
	return nil
}

func (s *Store) read(fn func(v *view)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&view{st: s.cur})
}

func sortSlots(out []model.Slot) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Caregiver < out[j].Caregiver
	})
}

func sortAppointments(out []model.Appointment) {
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
}

func dayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var errInjected = apperr.ErrStoreFailure.WithMessage("injected failure")

func sortVaccines(out []model.Vaccine) {
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
}
