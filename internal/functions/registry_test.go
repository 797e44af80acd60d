package functions

import (
	"context"
	"errors"
	"testing"
	"time"
)

type namedFunction struct {
	name string
	tag  string
}

func (n namedFunction) Name() string                       { return n.name }
func (n namedFunction) Description() string                { return n.tag }
func (n namedFunction) Parameters() map[string]interface{} { return map[string]interface{}{} }
func (n namedFunction) Timeout() time.Duration             { return time.Second }
func (n namedFunction) Retries() int                       { return 0 }

func (n namedFunction) Invoke(context.Context, map[string]interface{}, CallContext) (Result, error) {
	return OK(n.tag), nil
}

func TestResolve_DynamicShadowsBuiltin(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterBuiltin(namedFunction{name: "check_availability", tag: "builtin"})
	registry.RegisterDynamic(namedFunction{name: "check_availability", tag: "dynamic"})

	fn, err := registry.Resolve("check_availability")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fn.Description() != "dynamic" {
		t.Fatalf("expected dynamic entry to shadow built-in, got %q", fn.Description())
	}
}

func TestResolve_FallsBackToBuiltin(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterBuiltin(namedFunction{name: "get_current_time", tag: "builtin"})

	fn, err := registry.Resolve("get_current_time")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fn.Description() != "builtin" {
		t.Fatalf("expected built-in, got %q", fn.Description())
	}
}

func TestResolve_Unknown(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Resolve("nope"); !errors.Is(err, ErrFunctionNotFound) {
		t.Fatalf("expected ErrFunctionNotFound, got %v", err)
	}
}

func TestSchemas_ShadowedNameAppearsOnce(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterBuiltin(namedFunction{name: "send_sms", tag: "builtin"})
	registry.RegisterBuiltin(namedFunction{name: "end_call", tag: "builtin"})
	registry.RegisterDynamic(namedFunction{name: "send_sms", tag: "dynamic"})

	schemas := registry.Schemas()
	if len(schemas) != 2 {
		t.Fatalf("expected 2 schemas, got %d", len(schemas))
	}

	seen := map[string]string{}
	for _, s := range schemas {
		seen[s.Name] = s.Description
	}
	if seen["send_sms"] != "dynamic" {
		t.Fatalf("expected the dynamic schema to win, got %q", seen["send_sms"])
	}
}
