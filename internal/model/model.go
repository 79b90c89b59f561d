package model

import "time"

type Role string

const (
	RolePatient   Role = "patient"
	RoleCaregiver Role = "caregiver"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleCaregiver
}

// Account is a registered patient or caregiver. Username is always stored lower-cased.
type Account struct {
	Username  string
	Salt      string
	Hash      string
	Role      Role
	CreatedAt time.Time
}

type Vaccine struct {
	Name  string
	Doses int
}

// Slot is one caregiver offering one date.
type Slot struct {
	Date      time.Time
	Caregiver string
}

type Appointment struct {
	ID        int64
	Date      time.Time
	Patient   string
	Caregiver string
	Vaccine   string
}

// OwnedBy reports whether the actor is the booking patient or the assigned caregiver.
func (a *Appointment) OwnedBy(role Role, username string) bool {
	switch role {
	case RolePatient:
		return a.Patient == username
	case RoleCaregiver:
		return a.Caregiver == username
	}
	return false
}

// Session is the authenticated actor. Token carries the signed claims the
// workflow re-validates on every call.
type Session struct {
	ID        string
	Role      Role
	Username  string
	Token     string
	ExpiresAt time.Time
}
