package functions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voice-server/internal/observability"
)

// Executor runs functions with a per-function timeout and a bounded retry
// budget with linear backoff. Retries apply only to transient errors; a
// business negative (Result with Success=false) is returned on first
// attempt. Nothing escapes as a panic or raw error past Execute.
type Executor struct {
	registry       *Registry
	defaultTimeout time.Duration
	defaultRetries int
	backoff        time.Duration
	logger         *observability.Logger
}

func NewExecutor(registry *Registry, defaultTimeout time.Duration, defaultRetries int, backoff time.Duration, logger *observability.Logger) *Executor {
	return &Executor{
		registry:       registry,
		defaultTimeout: defaultTimeout,
		defaultRetries: defaultRetries,
		backoff:        backoff,
		logger:         logger,
	}
}

// Execute resolves and runs the named function. The only error returned is
// ErrFunctionNotFound; every runtime failure is folded into the Result so
// the orchestrator can speak about it.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]interface{}, call CallContext) (Result, error) {
	fn, err := e.registry.Resolve(name)
	if err != nil {
		if errors.Is(err, ErrFunctionNotFound) {
			e.logger.Warn(observability.WithFields(ctx,
				observability.Field{Key: "function", Value: name},
			), "unknown function requested by model")
		}
		return Result{}, err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "function", Value: name})

	timeout := fn.Timeout()
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}
	retries := fn.Retries()
	if retries < 0 {
		retries = e.defaultRetries
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Fail("the request was cancelled"), nil
			case <-time.After(time.Duration(attempt) * e.backoff):
			}
			e.logger.Info(observability.WithFields(ctx,
				observability.Field{Key: "attempt", Value: attempt + 1},
			), "retrying function after transient failure")
		}

		result, err := e.invokeOnce(ctx, fn, timeout, args, call)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	e.logger.Error(ctx, "function failed after exhausting retries", lastErr)
	return Fail(fmt.Sprintf("the %s action could not be completed right now", name)), nil
}

func (e *Executor) invokeOnce(ctx context.Context, fn Function, timeout time.Duration, args map[string]interface{}, call CallContext) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("function %s panicked: %+v", fn.Name(), r)
			e.logger.Error(ctx, "recovered from function panic", err)
		}
	}()

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return fn.Invoke(attemptCtx, args, call)
}
