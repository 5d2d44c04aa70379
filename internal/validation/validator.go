// Package validation decodes raw form input into typed forms and validates them with
// go-playground/validator, producing field-keyed messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/simbrella/cms-console/internal/errors"
)

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

// Validator wraps go-playground/validator with the console's custom rules.
type Validator struct {
	validator *validator.Validate
}

// New creates a Validator. Field errors are keyed by the form's json tag.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	_ = validate.RegisterValidation("otp", validateOTP)
	_ = validate.RegisterValidation("date", validateDate)

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	return &Validator{validator: validate}
}

// Struct validates a form and returns a validation AppError with per-field messages.
func (v *Validator) Struct(form any, message string) error {
	err := v.validator.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, message)
	}
	fields := make(map[string][]string, len(verrs))
	t := indirectType(reflect.TypeOf(form))
	for _, fe := range verrs {
		key := stripIndex(fe.Field())
		fields[key] = appendUnique(fields[key], fieldMessage(t, fe))
	}
	return apperrors.ValidationFields(message, fields)
}

// Var validates a single value against tag.
func (v *Validator) Var(field any, tag string) error {
	return v.validator.Var(field, tag)
}

func validateOTP(fl validator.FieldLevel) bool {
	return otpPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// Accepts YYYY-MM-DD or RFC 3339 timestamps.
func validateDate(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true // empty handled by required/omitempty
	}
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// fieldMessage prefers the struct field's msg tag, then a default for the failed rule.
func fieldMessage(t reflect.Type, fe validator.FieldError) string {
	if t != nil && t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(stripIndex(fe.StructField())); ok {
			if msg := sf.Tag.Get("msg"); msg != "" {
				return msg
			}
		}
	}
	return defaultMessage(fe)
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "oneof":
		quoted := strings.Fields(fe.Param())
		for i, q := range quoted {
			quoted[i] = "'" + q + "'"
		}
		return fmt.Sprintf("Invalid enum value. Expected %s", strings.Join(quoted, " | "))
	case "gte", "gt":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "eqfield":
		return "Values do not match"
	case "otp":
		return "OTP must be 6 digits"
	case "date":
		return "Invalid date"
	default:
		return "Invalid value"
	}
}

func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func stripIndex(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}

func appendUnique(list []string, msg string) []string {
	for _, m := range list {
		if m == msg {
			return list
		}
	}
	return append(list, msg)
}
