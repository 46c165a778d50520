package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator and translates violations into the
// client-facing message format.
type Validator struct {
	validate *validator.Validate
}

// ValidationError is a single violated field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", ve[0].Message)
}

// First returns the first violated field's message; the API contract surfaces
// only that one.
func (ve ValidationErrors) First() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	return ve[0].Message
}

func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates a request struct; nil means no violations.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errors = append(errors, ValidationError{
			Field:   fieldErr.Field(),
			Message: getErrorMessage(fieldErr),
			Value:   fieldErr.Value(),
			Rule:    fieldErr.Tag(),
		})
	}
	return errors
}

// getErrorMessage renders the messages the original client surfaces verbatim,
// e.g. "Username must be at least 3 characters".
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", err.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	default:
		return fmt.Sprintf("%s failed validation rule '%s'", err.Field(), err.Tag())
	}
}
