package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/simbrella/cms-console/internal/apiclient"
	"github.com/simbrella/cms-console/internal/domain/forms"
	apperrors "github.com/simbrella/cms-console/internal/errors"
	"github.com/simbrella/cms-console/internal/observability/metrics"
	"github.com/simbrella/cms-console/internal/observability/statsd"
	"github.com/simbrella/cms-console/internal/ports"
	"github.com/simbrella/cms-console/internal/validation"
)

// ActionDeps groups the collaborators shared by every action service.
type ActionDeps struct {
	API       apiclient.Requester    // Required: content API client
	Views     ports.ViewInvalidator  // Optional: cache invalidation after mutations
	Telemetry Telemetry              // Optional: logging and metrics
}

// Telemetry groups optional observability sinks.
type Telemetry struct {
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// actions is the call pipeline shared by the action services:
// validate, call the API, normalize the outcome, invalidate views, record the result.
type actions struct {
	api      apiclient.Requester
	views    ports.ViewInvalidator
	validate *validation.Validator
	logger   *slog.Logger
	metrics  statsd.Sink
	resource string
}

func newActions(resource string, deps ActionDeps) *actions {
	if deps.API == nil {
		panic("service: ActionDeps.API is required")
	}
	logger := deps.Telemetry.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &actions{
		api:      deps.API,
		views:    deps.Views,
		validate: validation.New(),
		logger:   logger.With("component", "service", "resource", resource),
		metrics:  deps.Telemetry.Metrics,
		resource: resource,
	}
}

// call performs req. A 2xx envelope that reports success=false is treated as an api error.
func (a *actions) call(ctx context.Context, req apiclient.Request) (*apiclient.Envelope[json.RawMessage], error) {
	env, err := a.api.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, apperrors.Malformed(errEmptyEnvelope)
	}
	if !env.Success {
		return nil, apperrors.API(0, env.Message, env.Errors)
	}
	return env, nil
}

// bind decodes and validates in into form.
func (a *actions) bind(in forms.Input, form any, message string) error {
	return a.validate.Bind(in, form, message)
}

// invalidate drops cached views. A failure is logged and never fails the action.
func (a *actions) invalidate(ctx context.Context, paths ...string) {
	if a.views == nil || len(paths) == 0 {
		return
	}
	if err := a.views.Invalidate(ctx, paths...); err != nil {
		a.logger.WarnContext(ctx, "view invalidation failed", "paths", paths, "error", err)
	}
}

func (a *actions) succeeded(action string) {
	metrics.EmitAction(a.metrics, metrics.ActionMetric{Resource: a.resource, Action: action, Success: true})
}

// failed logs and records a failure at the point where it is caught.
func (a *actions) failed(ctx context.Context, action string, err error) {
	level := slog.LevelWarn
	if apperrors.IsValidation(err) {
		level = slog.LevelDebug
	}
	a.logger.Log(ctx, level, "action failed", "action", action, "error", err)
	metrics.EmitAction(a.metrics, metrics.ActionMetric{Resource: a.resource, Action: action, Err: err})
}

// send performs req and decodes the envelope payload as T.
// successMsg replaces the server's message when non-empty.
func send[T any](ctx context.Context, a *actions, action string, req apiclient.Request, successMsg, fallback string) Result[T] {
	env, err := a.call(ctx, req)
	if err != nil {
		a.failed(ctx, action, err)
		return resultFromError[T](err, fallback)
	}
	decoded, err := apiclient.Decode[T](env)
	if err != nil {
		a.failed(ctx, action, err)
		return Fail[T](fallback)
	}
	a.succeeded(action)
	msg := successMsg
	if msg == "" {
		msg = decoded.Message
	}
	return Ok(decoded.Data, decoded.Meta, msg)
}

// acknowledge performs req and discards any payload.
func acknowledge(ctx context.Context, a *actions, action string, req apiclient.Request, successMsg, fallback string) Result[any] {
	env, err := a.call(ctx, req)
	if err != nil {
		a.failed(ctx, action, err)
		return resultFromError[any](err, fallback)
	}
	a.succeeded(action)
	msg := successMsg
	if msg == "" {
		msg = env.Message
	}
	return Ok[any](nil, nil, msg)
}

// invalid reports a validation failure without calling the API.
func invalid[T any](ctx context.Context, a *actions, action string, err error, fallback string) Result[T] {
	a.failed(ctx, action, err)
	return resultFromError[T](err, fallback)
}
