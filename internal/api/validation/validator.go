package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the custom validators registered and field
// names reported by their JSON name
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("notblank", validateNotBlank)
	v.RegisterValidation("alias_of", validateAliasOf)
}

// validateNotBlank rejects whitespace-only values. Form fields are otherwise
// free text.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateAliasOf accepts a legacy alias field when it is empty, when the
// field it stands in for is empty, or when both carry the same text
func validateAliasOf(fl validator.FieldLevel) bool {
	alias := fl.Field().String()
	if alias == "" {
		return true
	}

	parent := reflect.Indirect(fl.Parent())
	target := parent.FieldByName(fl.Param())
	if !target.IsValid() || target.Kind() != reflect.String {
		return false
	}
	return target.String() == "" || target.String() == alias
}

// ValidationError represents a validation error
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// FormatValidationError formats validation errors into a user-friendly response
func FormatValidationError(err error) []ValidationError {
	var errs []ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errs = append(errs, ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Param: e.Param(),
			})
		}
	}
	return errs
}
