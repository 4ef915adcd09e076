// Package validation holds the declarative form schemas for login,
// registration and product payloads. Schemas are pure: no I/O, no rendering
// concerns. Every field is validated independently and all applicable errors
// are returned together, keyed by field name, so a caller can annotate every
// invalid input at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field name to a human-readable message. It satisfies the
// error interface so services can return it directly.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var (
	v    *validator.Validate
	once sync.Once
)

// instance returns the shared validator, configured to report field names
// from json tags and with the custom slug rule registered.
func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})
	return v
}

// check runs the validator and converts the result into FieldErrors. Returns
// nil when the value is valid.
func check(s any) FieldErrors {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// InvalidValidationError only happens on non-struct input.
		return FieldErrors{"payload": "invalid payload"}
	}

	fe := make(FieldErrors, len(ve))
	for _, f := range ve {
		if _, seen := fe[f.Field()]; !seen {
			fe[f.Field()] = message(f)
		}
	}
	return fe
}

// message converts a single validator error into a user-displayable message.
func message(f validator.FieldError) string {
	field := f.Field()
	switch f.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, f.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, f.Param())
	case "url":
		return field + " must be a valid URL"
	case "slug":
		return field + " must be lowercase letters, numbers and hyphens"
	case "eqfield":
		return "passwords don't match"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, f.Tag())
	}
}
