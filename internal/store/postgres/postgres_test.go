package postgres

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/store"
)

var errRollback = errors.New("rollback")

func setup(t *testing.T) *Store {
	t.Helper()
	_ = godotenv.Load("../../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	st, err := Open(ctx, dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(st.Close)
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return st
}

// rolledBack runs fn in a transaction that is always discarded.
func rolledBack(t *testing.T, st *Store, fn func(q store.Queries)) {
	t.Helper()
	err := st.InTx(context.Background(), func(q store.Queries) error {
		fn(q)
		return errRollback
	})
	if !errors.Is(err, errRollback) {
		t.Fatalf("tx: %v", err)
	}
}

func name(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// someDay returns a date unlikely to be used by any other run.
func someDay() time.Time {
	return time.Date(3000+rand.Intn(5000), time.Month(1+rand.Intn(12)), 1+rand.Intn(28), 0, 0, 0, 0, time.UTC)
}

func account(t *testing.T, q store.Queries, role model.Role, username string) {
	t.Helper()
	a := &model.Account{Username: username, Salt: "salt", Hash: "hash", Role: role}
	if err := q.CreateAccount(context.Background(), a); err != nil {
		t.Fatalf("create %s: %v", username, err)
	}
}

func TestAccounts(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	rolledBack(t, st, func(q store.Queries) {
		u := name("pat")
		account(t, q, model.RolePatient, u)

		got, err := q.AccountByUsername(ctx, model.RolePatient, u)
		if err != nil || got == nil || got.Salt != "salt" || got.CreatedAt.IsZero() {
			t.Fatalf("lookup: %+v %v", got, err)
		}
		if other, _ := q.AccountByUsername(ctx, model.RoleCaregiver, u); other != nil {
			t.Fatal("patient leaked into caregivers")
		}
		if ok, _ := q.UsernameExists(ctx, model.RolePatient, u); !ok {
			t.Fatal("expected username to exist")
		}
		if ok, _ := q.UsernameExists(ctx, model.RolePatient, name("nobody")); ok {
			t.Fatal("expected unknown username not to exist")
		}
	})
}

func TestDuplicateAccount(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	u := name("dup")

	a := &model.Account{Username: u, Salt: "s", Hash: "h", Role: model.RoleCaregiver}
	if err := st.CreateAccount(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() { st.pool.Exec(context.Background(), `DELETE FROM caregivers WHERE username = $1`, u) })

	if err := st.CreateAccount(ctx, a); !errors.Is(err, apperr.ErrDuplicateUsername) {
		t.Fatalf("expected duplicate username, got %v", err)
	}
}

func TestVaccineDoses(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	rolledBack(t, st, func(q store.Queries) {
		v := name("vac")
		if n, err := q.AddDoses(ctx, v, 2); err != nil || n != 2 {
			t.Fatalf("add: %d %v", n, err)
		}
		if n, err := q.AddDoses(ctx, v, 3); err != nil || n != 5 {
			t.Fatalf("upsert: %d %v", n, err)
		}
		if n, err := q.AdjustDoses(ctx, v, -5); err != nil || n != 0 {
			t.Fatalf("decrement: %d %v", n, err)
		}
		if _, err := q.AdjustDoses(ctx, name("none"), 1); !errors.Is(err, apperr.ErrUnknownVaccine) {
			t.Fatalf("expected unknown vaccine, got %v", err)
		}
	})

	rolledBack(t, st, func(q store.Queries) {
		v := name("vac")
		q.AddDoses(ctx, v, 1)
		if _, err := q.AdjustDoses(ctx, v, -2); !errors.Is(err, apperr.ErrInsufficientDoses) {
			t.Fatalf("expected insufficient doses, got %v", err)
		}
		got, _ := q.VaccineByName(ctx, v)
		if got == nil || got.Doses != 1 {
			t.Fatalf("doses changed: %+v", got)
		}
	})
}

func TestSlots(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	day := someDay()

	rolledBack(t, st, func(q store.Queries) {
		// "B" sorts before "a" by byte order
		upper, lower := "B"+name("cg"), "a"+name("cg")
		account(t, q, model.RoleCaregiver, lower)
		account(t, q, model.RoleCaregiver, upper)
		q.PublishSlot(ctx, model.Slot{Date: day, Caregiver: lower})
		q.PublishSlot(ctx, model.Slot{Date: day, Caregiver: upper})

		got, err := q.EarliestSlot(ctx, day)
		if err != nil || got == nil || got.Caregiver != upper {
			t.Fatalf("earliest: %+v %v", got, err)
		}
		if !got.Date.Equal(day) {
			t.Fatalf("date: %v", got.Date)
		}

		on, _ := q.SlotsOn(ctx, day)
		if len(on) != 2 || on[0].Caregiver != upper || on[1].Caregiver != lower {
			t.Fatalf("slots on: %+v", on)
		}

		removed, err := q.RemoveSlot(ctx, *got)
		if err != nil || !removed {
			t.Fatalf("remove: %v %v", removed, err)
		}
		if removed, _ := q.RemoveSlot(ctx, *got); removed {
			t.Fatal("second remove should report nothing removed")
		}

		if err := q.RestoreSlot(ctx, *got); err != nil {
			t.Fatalf("restore: %v", err)
		}
		if err := q.RestoreSlot(ctx, *got); err != nil {
			t.Fatalf("restore is idempotent: %v", err)
		}
		if err := q.PublishSlot(ctx, *got); !errors.Is(err, apperr.ErrDuplicateSlot) {
			t.Fatalf("expected duplicate slot, got %v", err)
		}
	})
}

func TestAppointments(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	day := someDay()

	rolledBack(t, st, func(q store.Queries) {
		p, c, v := name("pat"), name("cg"), name("vac")
		account(t, q, model.RolePatient, p)
		account(t, q, model.RoleCaregiver, c)
		q.AddDoses(ctx, v, 1)

		id, err := q.NextAppointmentID(ctx)
		if err != nil || id < 1 {
			t.Fatalf("next id: %d %v", id, err)
		}
		a := &model.Appointment{ID: id, Date: day, Patient: p, Caregiver: c, Vaccine: v}
		if err := q.CreateAppointment(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
		next, _ := q.NextAppointmentID(ctx)
		if next <= id {
			t.Fatalf("expected next id above %d, got %d", id, next)
		}

		got, err := q.AppointmentByID(ctx, id)
		if err != nil || got == nil || got.Patient != p || !got.Date.Equal(day) {
			t.Fatalf("lookup: %+v %v", got, err)
		}
		mine, _ := q.AppointmentsByPatient(ctx, p)
		theirs, _ := q.AppointmentsByCaregiver(ctx, c)
		if len(mine) != 1 || len(theirs) != 1 {
			t.Fatalf("listing: %d %d", len(mine), len(theirs))
		}

		if ok, _ := q.DeleteAppointment(ctx, id); !ok {
			t.Fatal("expected delete")
		}
		if got, _ := q.AppointmentByID(ctx, id); got != nil {
			t.Fatal("appointment still present")
		}
	})
}

func TestRollbackDiscardsWrites(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	v := name("vac")

	rolledBack(t, st, func(q store.Queries) {
		q.AddDoses(ctx, v, 3)
	})
	if got, err := st.VaccineByName(ctx, v); err != nil || got != nil {
		t.Fatalf("expected rolled back vaccine to be absent: %+v %v", got, err)
	}
}

func TestConcurrentSlotClaim(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	day := someDay()
	c := name("cg")

	if err := st.CreateAccount(ctx, &model.Account{Username: c, Salt: "s", Hash: "h", Role: model.RoleCaregiver}); err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() {
		bg := context.Background()
		st.pool.Exec(bg, `DELETE FROM availabilities WHERE username = $1`, c)
		st.pool.Exec(bg, `DELETE FROM caregivers WHERE username = $1`, c)
	})
	if err := st.PublishSlot(ctx, model.Slot{Date: day, Caregiver: c}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claimed int
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.InTx(ctx, func(q store.Queries) error {
				s, err := q.EarliestSlot(ctx, day)
				if err != nil || s == nil {
					return err
				}
				ok, err := q.RemoveSlot(ctx, *s)
				if err != nil || !ok {
					return err
				}
				mu.Lock()
				claimed++
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if claimed != 1 {
		t.Fatalf("expected exactly one claim, got %d", claimed)
	}
}
