package cli

import (
	"fmt"
	"strings"
	"unicode"

	"vaccine-scheduler/internal/apperr"
)

// message maps an error to the line shown to the user.
func message(err error) string {
	ae, ok := apperr.As(err)
	if !ok {
		return "Something went wrong; try again"
	}

	switch ae.Code {
	case apperr.CodeInvalidArguments:
		return "Please input the right arguments: " + ae.Message
	case apperr.CodeInvalidDate:
		return "Please enter a valid date (mm-dd-yyyy)!"
	case apperr.CodeWeakPassword:
		return ae.Message
	case apperr.CodeInvalidCredentials:
		return "Login failed; try again"
	case apperr.CodeNotLoggedIn:
		return "Please login first!"
	case apperr.CodeWrongRole:
		return "This command is not available for your account type."
	case apperr.CodeAlreadyLoggedIn:
		return "User already logged in."
	case apperr.CodeSessionExpired:
		return "Your session has expired; please login again."
	case apperr.CodeTooManyAttempts:
		return "Too many login attempts; wait a moment and try again."
	case apperr.CodeNoAvailability:
		return "There are no caregivers available for this date"
	case apperr.CodeUnknownVaccine:
		names, _ := ae.Details["vaccines"].([]string)
		return strings.Join(append([]string{
			"Our caregivers do not have this vaccine. Try again inputting a valid vaccine from this list:",
		}, names...), "\n")
	case apperr.CodeAppointmentNotFound:
		return fmt.Sprint("Could not find appointment with id: ", ae.Details["id"])
	case apperr.CodeDuplicateUsername:
		return "Username taken, try again!"
	case apperr.CodeDuplicateSlot:
		return "Availability already uploaded for this date!"
	case apperr.CodeInsufficientDoses:
		return "There are not enough doses left. Try another vaccine brand."
	}
	if ae.Kind == apperr.KindStore {
		return capitalize(ae.Message) + "; try again"
	}
	return capitalize(ae.Message)
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
