package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/scheduler"
)

var (
	baseMenu = []string{
		"create_patient <username> <password>",
		"create_caregiver <username> <password>",
		"login_patient <username> <password>",
		"login_caregiver <username> <password>",
		"search_caregiver_schedule <date>",
		"show_all_available_dates",
		"get_vaccine_information",
	}
	patientMenu = []string{
		"search_caregiver_schedule <date>",
		"reserve <date> <vaccine>",
		"cancel <appointment_id>",
		"show_all_available_dates",
		"get_vaccine_information",
		"show_appointments",
		"logout",
	}
	caregiverMenu = []string{
		"search_caregiver_schedule <date>",
		"upload_availability <date>",
		"cancel <appointment_id>",
		"show_all_available_dates",
		"add_doses <vaccine> <number>",
		"get_vaccine_information",
		"show_appointments",
		"logout",
	}
)

func (sh *Shell) menu() {
	items := baseMenu
	if sh.sess != nil {
		switch sh.sess.Role {
		case model.RolePatient:
			items = patientMenu
		case model.RoleCaregiver:
			items = caregiverMenu
		}
	}
	sh.println()
	sh.println(" *** Please enter one of the following commands *** ")
	for _, it := range items {
		sh.println("> " + it)
	}
	sh.println("> help (see this menu again)")
	sh.println("> quit")
}

func (sh *Shell) table(header []string, rows [][]any) {
	rule := strings.Repeat("-", 20*len(header))
	tw := tabwriter.NewWriter(sh.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(sh.out, rule)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = fmt.Sprint(c)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
	fmt.Fprintln(sh.out, rule)
}

// scheduleTable prints one row per caregiver with every vaccine's dose count.
func (sh *Shell) scheduleTable(s *scheduler.Schedule) {
	header := []string{"Caregiver"}
	for _, v := range s.Vaccines {
		header = append(header, v.Name)
	}
	rows := make([][]any, 0, len(s.Caregivers))
	for _, c := range s.Caregivers {
		row := []any{c}
		for _, v := range s.Vaccines {
			row = append(row, v.Doses)
		}
		rows = append(rows, row)
	}
	sh.table(header, rows)
}
