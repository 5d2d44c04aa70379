package apiclient

import (
	"bytes"
	"encoding/json"

	"github.com/simbrella/cms-console/internal/domain/model"
)

// Envelope is the uniform wrapper the content API puts around every response.
// When Success is false, Data must not be trusted.
type Envelope[T any] struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
	Meta    *model.PageMeta `json:"meta,omitempty"`
	Errors  FieldErrors     `json:"errors,omitempty"`
}

// FieldErrors maps a field name to its validation messages.
// It tolerates servers that send a single string instead of a list.
type FieldErrors map[string][]string

// UnmarshalJSON accepts {"field": ["msg"]} and {"field": "msg"}; other shapes decode to nil.
func (f *FieldErrors) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*f = nil
		return nil //nolint:nilerr // non-object errors (e.g. a bare string) carry no field detail
	}
	out := make(FieldErrors, len(raw))
	for k, v := range raw {
		v = bytes.TrimSpace(v)
		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			out[k] = list
			continue
		}
		var one string
		if err := json.Unmarshal(v, &one); err == nil {
			out[k] = []string{one}
		}
	}
	if len(out) == 0 {
		*f = nil
		return nil
	}
	*f = out
	return nil
}

// Decode re-types the raw data of env into T. The envelope's other fields are kept.
func Decode[T any](env *Envelope[json.RawMessage]) (*Envelope[T], error) {
	if env == nil {
		return nil, nil
	}
	out := &Envelope[T]{
		Success: env.Success,
		Message: env.Message,
		Meta:    env.Meta,
		Errors:  env.Errors,
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(data, &out.Data); err != nil {
		return nil, err
	}
	return out, nil
}
