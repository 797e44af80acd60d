package functions

import (
	"context"
	"errors"
	"testing"
	"time"

	"voice-server/internal/observability"
)

type scriptedFunction struct {
	name    string
	timeout time.Duration
	retries int
	invoke  func(attempt int) (Result, error)
	calls   int
}

func (s *scriptedFunction) Name() string                        { return s.name }
func (s *scriptedFunction) Description() string                 { return "scripted" }
func (s *scriptedFunction) Parameters() map[string]interface{}  { return map[string]interface{}{} }
func (s *scriptedFunction) Timeout() time.Duration              { return s.timeout }
func (s *scriptedFunction) Retries() int                        { return s.retries }

func (s *scriptedFunction) Invoke(_ context.Context, _ map[string]interface{}, _ CallContext) (Result, error) {
	s.calls++
	return s.invoke(s.calls)
}

func newTestExecutor(fns ...Function) (*Executor, *Registry) {
	registry := NewRegistry()
	for _, fn := range fns {
		registry.RegisterBuiltin(fn)
	}
	executor := NewExecutor(registry, time.Second, 3, time.Millisecond, observability.NewLogger())
	return executor, registry
}

func TestExecute_UnknownFunction(t *testing.T) {
	executor, _ := newTestExecutor()

	_, err := executor.Execute(context.Background(), "does_not_exist", nil, CallContext{})
	if !errors.Is(err, ErrFunctionNotFound) {
		t.Fatalf("expected ErrFunctionNotFound, got %v", err)
	}
}

func TestExecute_TransientFailureIsRetried(t *testing.T) {
	fn := &scriptedFunction{
		name:    "flaky",
		timeout: time.Second,
		retries: 3,
		invoke: func(attempt int) (Result, error) {
			if attempt < 3 {
				return Result{}, errors.New("connection reset")
			}
			return OK("finally"), nil
		},
	}
	executor, _ := newTestExecutor(fn)

	result, err := executor.Execute(context.Background(), "flaky", nil, CallContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success after retries, got %+v", result)
	}
	if fn.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fn.calls)
	}
}

func TestExecute_BusinessNegativeIsNotRetried(t *testing.T) {
	fn := &scriptedFunction{
		name:    "book",
		timeout: time.Second,
		retries: 3,
		invoke: func(int) (Result, error) {
			return Fail("slot unavailable"), nil
		},
	}
	executor, _ := newTestExecutor(fn)

	result, err := executor.Execute(context.Background(), "book", nil, CallContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("expected business negative result")
	}
	if fn.calls != 1 {
		t.Fatalf("business negatives must not be retried, got %d attempts", fn.calls)
	}
}

func TestExecute_ExhaustedRetriesBecomeStructuredFailure(t *testing.T) {
	fn := &scriptedFunction{
		name:    "down",
		timeout: time.Second,
		retries: 2,
		invoke: func(int) (Result, error) {
			return Result{}, errors.New("upstream down")
		},
	}
	executor, _ := newTestExecutor(fn)

	result, err := executor.Execute(context.Background(), "down", nil, CallContext{})
	if err != nil {
		t.Fatalf("failures must be folded into the result, got error %v", err)
	}
	if result.Success || result.Error == "" {
		t.Fatalf("expected structured failure, got %+v", result)
	}
	if fn.calls != 3 {
		t.Fatalf("expected initial attempt plus 2 retries, got %d", fn.calls)
	}
}

func TestExecute_ZeroRetriesMeansOneAttempt(t *testing.T) {
	fn := &scriptedFunction{
		name:    "side_effect",
		timeout: time.Second,
		retries: 0,
		invoke: func(int) (Result, error) {
			return Result{}, errors.New("timeout")
		},
	}
	executor, _ := newTestExecutor(fn)

	if _, err := executor.Execute(context.Background(), "side_effect", nil, CallContext{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fn.calls != 1 {
		t.Fatalf("side-effecting functions get exactly one attempt, got %d", fn.calls)
	}
}

func TestExecute_PanicIsContained(t *testing.T) {
	fn := &scriptedFunction{
		name:    "bomb",
		timeout: time.Second,
		retries: 0,
		invoke: func(int) (Result, error) {
			panic("boom")
		},
	}
	executor, _ := newTestExecutor(fn)

	result, err := executor.Execute(context.Background(), "bomb", nil, CallContext{})
	if err != nil {
		t.Fatalf("panic must not surface as error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure result after panic")
	}
}
