package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/ticketmaster/internal/domain"
)

// ClockLayouts are the accepted spellings of a time of day.
var ClockLayouts = []string{"15:04:05", "15:04"}

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("new_booking_status", validateNewBookingStatus)
	validator.RegisterValidation("clock", validateClock)

	return validator
}

func validateNewBookingStatus(fl validator.FieldLevel) bool {
	_, err := domain.ParseNewBookingStatus(fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := ParseClock(fl.Field().String())
	return err == nil
}

// ParseClock parses hh:mm or hh:mm:ss.
func ParseClock(s string) (time.Time, error) {
	var err error

	for _, layout := range ClockLayouts {
		var t time.Time
		t, err = time.Parse(layout, strings.TrimSpace(s))
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, err
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if err.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters long", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		if err.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters long", err.Param())
		}
		return fmt.Sprintf("must be at most %s", err.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", err.Param())
	case "numeric":
		return "must contain only digits"
	case "hexadecimal":
		return "must be a hexadecimal string"
	case "datetime":
		return fmt.Sprintf("must match the layout %s", err.Param())
	case "clock":
		return "must be a time of day (hh:mm or hh:mm:ss)"
	case "new_booking_status":
		return "must be Paid or Pending"
	default:
		return "is invalid"
	}
}

// Describe flattens a validation failure into a single line. Errors that
// are not validation errors are returned unchanged.
func Describe(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	issues := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		issues = append(issues, fmt.Sprintf("%s %s", fe.Field(), ValidationMessage(fe)))
	}

	return strings.Join(issues, "; ")
}
