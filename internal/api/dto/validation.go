package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// required accepts whitespace-only strings; notblank does not
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidateClientRequest checks the field constraints and returns one or more
// human-readable messages per failing field, or nil when the payload is valid.
func ValidateClientRequest(req ClientRequest) map[string][]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string][]string{"request": {"invalid payload"}}
	}

	details := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		details[field] = append(details[field], messageFor(field, fe.Tag()))
	}
	return details
}

func messageFor(field, tag string) string {
	switch tag {
	case "required", "notblank":
		return field + " must not be blank"
	case "min", "max":
		return "name must be between 2 and 50 characters"
	case "email":
		return "email must be a valid email address"
	case "oneof":
		return "gender must be male or female"
	}
	return field + " is invalid"
}
