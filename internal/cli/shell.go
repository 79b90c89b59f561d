// Package cli is the interactive front end: it reads one command per line,
// hands it to the scheduler and renders the outcome. Every error is turned
// into a message here and the session carries on.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/logger"
	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/scheduler"
)

const banner = "Welcome to the COVID-19 Vaccine Reservation Scheduling Application!"

type command struct {
	args  int
	usage string
	run   func(ctx context.Context, sh *Shell, args []string) error
}

var commands = map[string]command{
	"create_patient":            {2, "create_patient <username> <password>", createAccount(model.RolePatient)},
	"create_caregiver":          {2, "create_caregiver <username> <password>", createAccount(model.RoleCaregiver)},
	"login_patient":             {2, "login_patient <username> <password>", login(model.RolePatient)},
	"login_caregiver":           {2, "login_caregiver <username> <password>", login(model.RoleCaregiver)},
	"search_caregiver_schedule": {1, "search_caregiver_schedule <date>", searchSchedule},
	"reserve":                   {2, "reserve <date> <vaccine>", reserve},
	"upload_availability":       {1, "upload_availability <date>", uploadAvailability},
	"cancel":                    {1, "cancel <appointment_id>", cancel},
	"show_all_available_dates":  {0, "show_all_available_dates", availableDates},
	"add_doses":                 {2, "add_doses <vaccine> <number>", addDoses},
	"get_vaccine_information":   {0, "get_vaccine_information", vaccineInformation},
	"show_appointments":         {0, "show_appointments", showAppointments},
	"logout":                    {0, "logout", logout},
}

// Shell holds the one session of an interactive run.
type Shell struct {
	svc  *scheduler.Service
	in   io.Reader
	out  io.Writer
	log  *logger.Logger
	sess *model.Session
}

func New(svc *scheduler.Service, in io.Reader, out io.Writer, log *logger.Logger) *Shell {
	return &Shell{svc: svc, in: in, out: out, log: log}
}

// Session returns the current session, nil when nobody is logged in.
func (sh *Shell) Session() *model.Session { return sh.sess }

// Run prints the banner and processes lines until quit or end of input.
func (sh *Shell) Run(ctx context.Context) error {
	sh.println()
	sh.println(banner)
	sh.menu()

	sc := bufio.NewScanner(sh.in)
	for {
		sh.println()
		fmt.Fprint(sh.out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		sh.println()
		if stop := sh.Exec(ctx, sc.Text()); stop {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Exec runs a single command line and reports whether the shell should stop.
func (sh *Shell) Exec(ctx context.Context, line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		sh.println("Please try again!")
		return false
	}
	op := strings.ToLower(tokens[0])

	switch op {
	case "quit":
		sh.println("Bye!")
		return true
	case "help":
		sh.menu()
		return false
	}

	cmd, ok := commands[op]
	if !ok {
		sh.println("Invalid operation name!")
		return false
	}
	args := tokens[1:]
	if len(args) != cmd.args {
		sh.report(op, apperr.ErrInvalidArguments.WithMessage("usage: "+cmd.usage))
		return false
	}
	if err := cmd.run(ctx, sh, args); err != nil {
		sh.report(op, err)
	}
	return false
}

func (sh *Shell) report(op string, err error) {
	if errors.Is(err, apperr.ErrSessionExpired) {
		sh.sess = nil
	}
	sh.log.Debug("command failed", "command", op, "error", err)
	sh.println(message(err))
}

func (sh *Shell) println(a ...any) {
	fmt.Fprintln(sh.out, a...)
}

func (sh *Shell) printf(format string, a ...any) {
	fmt.Fprintf(sh.out, format, a...)
}
