package validation

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/simbrella/cms-console/internal/domain/forms"
	apperrors "github.com/simbrella/cms-console/internal/errors"
)

// Decode copies raw text fields into out (a pointer to a form struct) using the form tag.
// Input is weakly typed: "12" decodes into numbers, "on"/"1"/"true" into booleans.
func Decode(in forms.Input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "form",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			checkboxHook(),
		),
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build form decoder")
	}
	if err := dec.Decode(in.Map()); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "malformed form input")
	}
	return nil
}

// Bind decodes in into form and validates it. Any failure is a validation AppError
// carrying message and, when available, per-field messages.
func (v *Validator) Bind(in forms.Input, form any, message string) error {
	if err := Decode(in, form); err != nil {
		if apperrors.IsValidation(err) {
			return apperrors.ValidationFields(message, map[string][]string{"form": {err.Error()}})
		}
		return err
	}
	return v.Struct(form, message)
}

// checkboxHook maps HTML checkbox values onto booleans.
func checkboxHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
			return data, nil
		}
		switch strings.ToLower(strings.TrimSpace(data.(string))) {
		case "on", "yes", "1", "true":
			return true, nil
		case "off", "no", "0", "false", "":
			return false, nil
		}
		return data, nil
	}
}
