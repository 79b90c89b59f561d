package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindAuth       Kind = "AUTH"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindStore      Kind = "STORE"
)

const (
	CodeInvalidArguments    = "INVALID_ARGUMENTS"
	CodeInvalidDate         = "INVALID_DATE"
	CodeWeakPassword        = "WEAK_PASSWORD"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeNotLoggedIn         = "NOT_LOGGED_IN"
	CodeWrongRole           = "WRONG_ROLE"
	CodeAlreadyLoggedIn     = "ALREADY_LOGGED_IN"
	CodeSessionExpired      = "SESSION_EXPIRED"
	CodeTooManyAttempts     = "TOO_MANY_ATTEMPTS"
	CodeNoAvailability      = "NO_AVAILABILITY"
	CodeUnknownVaccine      = "UNKNOWN_VACCINE"
	CodeAppointmentNotFound = "APPOINTMENT_NOT_FOUND"
	CodeDuplicateUsername   = "DUPLICATE_USERNAME"
	CodeDuplicateVaccine    = "DUPLICATE_VACCINE"
	CodeDuplicateSlot       = "DUPLICATE_SLOT"
	CodeInsufficientDoses   = "INSUFFICIENT_DOSES"
	CodeStoreFailure        = "STORE_FAILURE"
)

type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so that sentinels survive WithDetails/WithMessage copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) clone() *AppError {
	c := *e
	return &c
}

// WithDetails returns a copy carrying details; the receiver is left untouched.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	c := e.clone()
	c.Details = details
	return c
}

func (e *AppError) WithMessage(message string) *AppError {
	c := e.clone()
	c.Message = message
	return c
}

func (e *AppError) Wrap(err error) *AppError {
	c := e.clone()
	c.Err = err
	return c
}

func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

var (
	ErrInvalidArguments    = New(KindValidation, CodeInvalidArguments, "wrong arguments")
	ErrInvalidDate         = New(KindValidation, CodeInvalidDate, "invalid date; use mm-dd-yyyy")
	ErrWeakPassword        = New(KindValidation, CodeWeakPassword, "password does not meet the policy")
	ErrInvalidCredentials  = New(KindAuth, CodeInvalidCredentials, "invalid username or password")
	ErrNotLoggedIn         = New(KindAuth, CodeNotLoggedIn, "please login first")
	ErrWrongRole           = New(KindAuth, CodeWrongRole, "not permitted for this role")
	ErrAlreadyLoggedIn     = New(KindAuth, CodeAlreadyLoggedIn, "user already logged in")
	ErrSessionExpired      = New(KindAuth, CodeSessionExpired, "session expired; please login again")
	ErrTooManyAttempts     = New(KindAuth, CodeTooManyAttempts, "too many login attempts; wait and try again")
	ErrNoAvailability      = New(KindNotFound, CodeNoAvailability, "no caregivers available for this date")
	ErrUnknownVaccine      = New(KindNotFound, CodeUnknownVaccine, "unknown vaccine")
	ErrAppointmentNotFound = New(KindNotFound, CodeAppointmentNotFound, "appointment not found")
	ErrDuplicateUsername   = New(KindConflict, CodeDuplicateUsername, "username taken")
	ErrDuplicateVaccine    = New(KindConflict, CodeDuplicateVaccine, "vaccine already exists")
	ErrDuplicateSlot       = New(KindConflict, CodeDuplicateSlot, "availability already uploaded for this date")
	ErrInsufficientDoses   = New(KindConflict, CodeInsufficientDoses, "not enough doses left")
	ErrStoreFailure        = New(KindStore, CodeStoreFailure, "storage failure")
)

func Validation(message string, details map[string]any) *AppError {
	return ErrInvalidArguments.WithMessage(message).WithDetails(details)
}

// Store wraps a backing-store failure. Errors that already carry a code pass through.
func Store(message string, err error) *AppError {
	if ae, ok := As(err); ok {
		return ae
	}
	return ErrStoreFailure.WithMessage(message).Wrap(err)
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return KindStore
}
