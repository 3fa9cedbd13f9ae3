package expr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// ErrNotBool is returned when a filter expression does not evaluate to a bool.
var ErrNotBool = errors.New("expression must evaluate to a bool")

// Protect CEL environment creation and compilation from concurrent access.
var celMutex sync.Mutex

// Environment provides a thread-safe wrapper around a [*cel.Env].
type Environment struct {
	env *cel.Env
}

// NewEnvironment creates a new [Environment] with the item variables
// declared.
func NewEnvironment(opts ...cel.EnvOption) (*Environment, error) {
	env, err := createEnvironment(opts...)
	if err != nil {
		return nil, err
	}

	return &Environment{env: env}, nil
}

// MustNewEnvironment creates a new [Environment] and panics on error.
func MustNewEnvironment(opts ...cel.EnvOption) *Environment {
	env, err := NewEnvironment(opts...)
	if err != nil {
		panic(err)
	}

	return env
}

// createEnvironment creates the [*cel.Env] using the global mutex.
func createEnvironment(opts ...cel.EnvOption) (*cel.Env, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	opts = append(opts,
		cel.Lib(&lib{}),
		cel.Variable("item", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("count", cel.IntType),
	)

	celEnv, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return celEnv, nil
}

// Compile compiles a CEL expression and returns a program.
//
//nolint:ireturn // Following CEL's function signature.
func (e *Environment) Compile(expression string) (cel.Program, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression: %w", issues.Err())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	return program, nil
}

// Item is the view of a carousel item exposed to expressions.
type Item struct {
	Title string
	Body  string
	Index int
}

func (i Item) activation(count int) map[string]any {
	return map[string]any{
		"item": map[string]any{
			"title": i.Title,
			"body":  i.Body,
			"index": i.Index,
		},
		"count": count,
	}
}

// Filter is a compiled boolean expression over items.
type Filter struct {
	program    cel.Program
	expression string
}

// NewFilter compiles expression in e.
func (e *Environment) NewFilter(expression string) (*Filter, error) {
	program, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}

	return &Filter{program: program, expression: expression}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expression
}

// Match evaluates the filter for item, one of count items.
func (f *Filter) Match(item Item, count int) (bool, error) {
	out, _, err := f.program.Eval(item.activation(count))
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", f.expression, err)
	}

	match, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q returned %s", ErrNotBool, f.expression, out.Type().TypeName())
	}

	return match, nil
}

// Select returns the positions in items of the items matching the filter.
func (f *Filter) Select(items []Item) ([]int, error) {
	out := make([]int, 0, len(items))
	for i, item := range items {
		ok, err := f.Match(item, len(items))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, i)
		}
	}

	return out, nil
}
