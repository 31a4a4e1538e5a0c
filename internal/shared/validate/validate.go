// Package validate checks request DTOs with go-playground/validator and
// reports failures as apperr validation errors.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"resume-builder/internal/shared/apperr"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return instance
}

// RegisterStructValidation adds a cross-field rule for the given types.
func RegisterStructValidation(fn validator.StructLevelFunc, types ...any) {
	get().RegisterStructValidation(fn, types...)
}

// Struct validates v. Field failures become a single ErrValidation whose
// message names the offending fields by their JSON names.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Wrap(apperr.ErrValidation, "Invalid request.", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return apperr.New(apperr.ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as YYYY-MM-DD", field)
	case "url", "http_url":
		return field + " must be a valid URL"
	case "after_start":
		return field + " must not be before start_date"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
