package functions

import (
	"sync"

	"voice-server/internal/llm"
)

// Registry resolves function names to implementations. Dynamic
// (user-registered) entries shadow built-ins of the same name. Populated at
// process start; reads during calls are lock-free in practice but guarded
// anyway so dynamic entries can be reloaded.
type Registry struct {
	mu       sync.RWMutex
	builtin  map[string]Function
	dynamic  map[string]Function
	ordering []string
}

func NewRegistry() *Registry {
	return &Registry{
		builtin: make(map[string]Function),
		dynamic: make(map[string]Function),
	}
}

// RegisterBuiltin adds a built-in function.
func (r *Registry) RegisterBuiltin(fn Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.builtin[fn.Name()]; !exists {
		r.ordering = append(r.ordering, fn.Name())
	}
	r.builtin[fn.Name()] = fn
}

// RegisterDynamic adds a user-registered function, shadowing any built-in
// of the same name.
func (r *Registry) RegisterDynamic(fn Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, builtinExists := r.builtin[fn.Name()]; !builtinExists {
		if _, exists := r.dynamic[fn.Name()]; !exists {
			r.ordering = append(r.ordering, fn.Name())
		}
	}
	r.dynamic[fn.Name()] = fn
}

// Resolve finds the implementation for a name: dynamic first, built-in
// second, ErrFunctionNotFound otherwise.
func (r *Registry) Resolve(name string) (Function, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if fn, ok := r.dynamic[name]; ok {
		return fn, nil
	}
	if fn, ok := r.builtin[name]; ok {
		return fn, nil
	}
	return nil, ErrFunctionNotFound
}

// Schemas returns the function schemas advertised to the language model,
// in registration order, with dynamic entries shadowing built-ins.
func (r *Registry) Schemas() []llm.FunctionSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemas := make([]llm.FunctionSchema, 0, len(r.ordering))
	for _, name := range r.ordering {
		fn, ok := r.dynamic[name]
		if !ok {
			fn, ok = r.builtin[name]
		}
		if !ok {
			continue
		}
		schemas = append(schemas, llm.FunctionSchema{
			Name:        fn.Name(),
			Description: fn.Description(),
			Parameters:  fn.Parameters(),
		})
	}
	return schemas
}
