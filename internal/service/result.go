package service

import (
	"errors"

	"github.com/simbrella/cms-console/internal/domain/model"
	apperrors "github.com/simbrella/cms-console/internal/errors"
)

// Result is the uniform outcome of every action. Actions never return errors;
// failures are described by Success=false, Error (per-field messages, may be nil) and Message.
type Result[T any] struct {
	Success  bool                `json:"success"`
	Data     T                   `json:"data,omitempty"`
	Meta     *model.PageMeta     `json:"meta,omitempty"`
	Error    map[string][]string `json:"error"`
	Message  string              `json:"message,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
}

// Ok builds a successful result.
func Ok[T any](data T, meta *model.PageMeta, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Meta: meta, Message: message}
}

// Fail builds a failed result without field errors.
func Fail[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// resultFromError maps a tagged error onto a failed Result.
//
//   - validation: the error's field map and message
//   - api: the server's field map (or nil) and message, falling back when the server sent none
//   - anything else: fallback with no field detail
func resultFromError[T any](err error, fallback string) Result[T] {
	switch {
	case apperrors.IsValidation(err):
		msg := apperrors.Message(err)
		if msg == "" {
			msg = fallback
		}
		return Result[T]{Error: apperrors.FieldErrors(err), Message: msg}
	case apperrors.IsAPI(err):
		msg := apperrors.Message(err)
		if msg == "" || isStatusPlaceholder(err) {
			msg = fallback
		}
		return Result[T]{Error: apperrors.FieldErrors(err), Message: msg}
	default:
		return Fail[T](fallback)
	}
}

// isStatusPlaceholder reports whether an api error carries only the client's
// generated "request failed with status N" text rather than a server message.
func isStatusPlaceholder(err error) bool {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Message == apperrors.StatusMessage(appErr.Status)
}

var errEmptyEnvelope = errors.New("empty response envelope")
