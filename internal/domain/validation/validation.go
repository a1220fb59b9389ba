// Package validation runs struct-tag validation for the insertable
// projections of every entity and turns the first failure into an *Error
// keyed by the JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"agency-site/internal/errs"

	"github.com/go-playground/validator/v10"
)

type Error struct {
	Field string
	Rule  string
	Param string
}

func (e *Error) Error() string {
	switch e.Rule {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", e.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", e.Field, e.Param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", e.Field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

func (e *Error) Unwrap() error {
	return errs.ErrValidation
}

var (
	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		// "notblank" rejects whitespace-only strings without rewriting them.
		_ = instance.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return instance
}

// Struct validates v and returns nil or an *Error for the first failing field.
func Struct(v any) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &Error{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()}
	}
	return fmt.Errorf("%w: %v", errs.ErrValidation, err)
}

// Field builds an *Error for checks that struct tags cannot express.
func Field(field, rule, param string) *Error {
	return &Error{Field: field, Rule: rule, Param: param}
}
