package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"vaccine-scheduler/internal/apperr"
)

type credentialsRequest struct {
	Username string `validate:"required,max=255,printascii"`
	Password string `validate:"required,max=255"`
}

type dosesRequest struct {
	Vaccine string `validate:"required,max=255,printascii"`
	Doses   int    `validate:"gte=1,lte=1000000"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// check runs struct validation and folds every failure into one validation error.
func (s *Service) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("invalid input", map[string]any{"error": err.Error()})
	}
	msgs := make([]string, 0, len(verrs))
	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		msg := fieldMessage(fe)
		msgs = append(msgs, msg)
		fields[strings.ToLower(fe.Field())] = msg
	}
	return apperr.Validation(strings.Join(msgs, "; "), fields)
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "printascii":
		return fmt.Sprintf("%s must contain printable ASCII only", field)
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}
