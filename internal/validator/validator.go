package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Seat labels are a row letter followed by a 1- or 2-digit column, e.g. A1
// or C10.
var seatLabelRgx = regexp.MustCompile(`^[A-Z][1-9][0-9]?$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("seat", validateSeatLabel)

	return validator
}

func validateSeatLabel(fl validator.FieldLevel) bool {
	return seatLabelRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", err.Param())
	case "max":
		return fmt.Sprintf("must contain at most %s item(s)", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "datetime":
		return fmt.Sprintf("must match the %s format", err.Param())
	case "seat":
		return "must be a seat label such as A1 or C10"
	default:
		return "is invalid"
	}
}
