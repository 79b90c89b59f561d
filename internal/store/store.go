// Package store defines the ledgers the reservation workflow runs against.
// Implementations live in store/postgres and store/memory.
package store

import (
	"context"
	"time"

	"vaccine-scheduler/internal/model"
)

// Queries is the set of ledger operations. Inside InTx the same operations
// see and mutate the transaction's view.
type Queries interface {
	// credential store
	CreateAccount(ctx context.Context, a *model.Account) error
	AccountByUsername(ctx context.Context, role model.Role, username string) (*model.Account, error)
	UsernameExists(ctx context.Context, role model.Role, username string) (bool, error)

	// inventory ledger
	VaccineByName(ctx context.Context, name string) (*model.Vaccine, error)
	CreateVaccine(ctx context.Context, v *model.Vaccine) error
	AdjustDoses(ctx context.Context, name string, delta int) (int, error)
	AddDoses(ctx context.Context, name string, doses int) (int, error)
	ListVaccines(ctx context.Context) ([]model.Vaccine, error)

	// availability calendar
	PublishSlot(ctx context.Context, s model.Slot) error
	RestoreSlot(ctx context.Context, s model.Slot) error
	EarliestSlot(ctx context.Context, date time.Time) (*model.Slot, error)
	RemoveSlot(ctx context.Context, s model.Slot) (bool, error)
	ListSlots(ctx context.Context) ([]model.Slot, error)
	SlotsOn(ctx context.Context, date time.Time) ([]model.Slot, error)

	// appointment ledger
	NextAppointmentID(ctx context.Context) (int64, error)
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	DeleteAppointment(ctx context.Context, id int64) (bool, error)
	AppointmentByID(ctx context.Context, id int64) (*model.Appointment, error)
	AppointmentsByPatient(ctx context.Context, username string) ([]model.Appointment, error)
	AppointmentsByCaregiver(ctx context.Context, username string) ([]model.Appointment, error)
}

type Store interface {
	Queries
	// InTx runs fn as one all-or-nothing unit. fn's error rolls everything back
	// and is returned unchanged.
	InTx(ctx context.Context, fn func(q Queries) error) error
	Close()
}
