package cli

import (
	"context"

	"vaccine-scheduler/internal/model"
)

func createAccount(role model.Role) func(context.Context, *Shell, []string) error {
	return func(ctx context.Context, sh *Shell, args []string) error {
		a, err := sh.svc.Register(ctx, sh.sess, role, args[0], args[1])
		if err != nil {
			return err
		}
		sh.println("Created user", a.Username)
		return nil
	}
}

func login(role model.Role) func(context.Context, *Shell, []string) error {
	return func(ctx context.Context, sh *Shell, args []string) error {
		sess, err := sh.svc.Login(ctx, sh.sess, role, args[0], args[1])
		if err != nil {
			return err
		}
		sh.sess = sess
		sh.println("Logged in as: " + sess.Username)
		sh.menu()
		return nil
	}
}

func logout(_ context.Context, sh *Shell, _ []string) error {
	if err := sh.svc.Logout(sh.sess); err != nil {
		return err
	}
	sh.sess = nil
	sh.println("Successfully logged out!")
	return nil
}

func searchSchedule(ctx context.Context, sh *Shell, args []string) error {
	sched, err := sh.svc.SearchSchedule(ctx, args[0])
	if err != nil {
		return err
	}
	if len(sched.Caregivers) == 0 {
		sh.println("There are no appointments available on", model.FormatDate(sched.Date))
		return nil
	}
	sh.scheduleTable(sched)
	return nil
}

func reserve(ctx context.Context, sh *Shell, args []string) error {
	a, err := sh.svc.Reserve(ctx, sh.sess, args[0], args[1])
	if err != nil {
		return err
	}
	sh.println("Success! Below is information on your appointment:")
	sh.table([]string{"Appointment ID", "Date", "Caregiver", "Vaccine"},
		[][]any{{a.ID, model.FormatDate(a.Date), a.Caregiver, a.Vaccine}})
	return nil
}

func uploadAvailability(ctx context.Context, sh *Shell, args []string) error {
	if _, err := sh.svc.UploadAvailability(ctx, sh.sess, args[0]); err != nil {
		return err
	}
	sh.println("Availability uploaded!")
	return nil
}

func cancel(ctx context.Context, sh *Shell, args []string) error {
	if _, err := sh.svc.Cancel(ctx, sh.sess, args[0]); err != nil {
		return err
	}
	sh.println("Appointment successfully cancelled.")
	return nil
}

func availableDates(ctx context.Context, sh *Shell, _ []string) error {
	slots, err := sh.svc.AvailableDates(ctx)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		sh.println("There are no dates available for vaccine appointments!")
		return nil
	}
	rows := make([][]any, len(slots))
	for i, s := range slots {
		rows[i] = []any{model.FormatDate(s.Date), s.Caregiver}
	}
	sh.table([]string{"Date", "Caregiver"}, rows)
	return nil
}

func addDoses(ctx context.Context, sh *Shell, args []string) error {
	v, err := sh.svc.AddDoses(ctx, sh.sess, args[0], args[1])
	if err != nil {
		return err
	}
	sh.printf("Updated %s: Number of doses now available: %d\n", v.Name, v.Doses)
	return nil
}

func vaccineInformation(ctx context.Context, sh *Shell, _ []string) error {
	vs, err := sh.svc.Vaccines(ctx)
	if err != nil {
		return err
	}
	rows := make([][]any, len(vs))
	for i, v := range vs {
		rows[i] = []any{v.Name, v.Doses}
	}
	sh.table([]string{"Vaccine Name", "Number of Doses Available"}, rows)
	return nil
}

func showAppointments(ctx context.Context, sh *Shell, _ []string) error {
	list, err := sh.svc.Appointments(ctx, sh.sess)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		sh.println("There are no appointments scheduled")
		return nil
	}

	// each side sees the other party
	other := "Caregiver"
	if sh.sess.Role == model.RoleCaregiver {
		other = "Patient"
	}
	rows := make([][]any, len(list))
	for i, a := range list {
		who := a.Caregiver
		if sh.sess.Role == model.RoleCaregiver {
			who = a.Patient
		}
		rows[i] = []any{a.ID, a.Vaccine, model.FormatDate(a.Date), who}
	}
	sh.table([]string{"Appointment ID", "Vaccine", "Date", other}, rows)
	return nil
}
