package di

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotFunc is returned when a function value was expected.
var ErrNotFunc = errors.New("di: not a function")

// ServiceSource looks up an instance by type.
// framework/container.Container satisfies it.
type ServiceSource interface {
	Get(t reflect.Type) (any, bool)
}

// SourceFunc adapts a plain function to ServiceSource.
type SourceFunc func(t reflect.Type) (any, bool)

// Get calls f(t).
func (f SourceFunc) Get(t reflect.Type) (any, bool) { return f(t) }

// ResolveParameters returns one value per entry of types, in order.
//
// For each type the first candidate whose dynamic type is assignable to it
// wins; otherwise src is asked. A slot neither can fill is nil. Both src and
// candidates may be nil. A nil type leaves its slot nil without consulting
// either.
//
//	args := di.ResolveParameters(c, []any{cfg}, []reflect.Type{
//	    reflect.TypeFor[*config.Config](),
//	    reflect.TypeFor[*slog.Logger](),
//	})
func ResolveParameters(src ServiceSource, candidates []any, types []reflect.Type) []any {
	out := make([]any, len(types))
	for i, t := range types {
		out[i] = resolve(src, candidates, t)
	}
	return out
}

// ResolveFuncParameters resolves the parameter list of fn. A variadic final
// parameter is resolved as its slice type.
func ResolveFuncParameters(src ServiceSource, candidates []any, fn any) ([]any, error) {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrNotFunc, fn)
	}
	return ResolveParameters(src, candidates, paramTypes(ft)), nil
}

func resolve(src ServiceSource, candidates []any, t reflect.Type) any {
	if t == nil {
		return nil
	}
	for _, c := range candidates {
		if c != nil && reflect.TypeOf(c).AssignableTo(t) {
			return c
		}
	}
	if src != nil {
		if v, ok := src.Get(t); ok {
			return v
		}
	}
	return nil
}

func paramTypes(ft reflect.Type) []reflect.Type {
	types := make([]reflect.Type, ft.NumIn())
	for i := range types {
		types[i] = ft.In(i)
	}
	return types
}
