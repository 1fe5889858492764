package di

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNoConstructor is returned when no registered constructor matches.
var ErrNoConstructor = errors.New("di: no matching constructor")

// CreateInstance builds concrete with one of its registered constructors,
// resolving the constructor's arguments through ResolveParameters.
//
// When concrete is not assignable to T the result is (zero, false, nil):
// a structural mismatch is not an error. Without a selector the first
// constructor registered for concrete is used; a struct or pointer-to-struct
// type with no registered constructor is built as its zero value (new(S)
// for pointers).
//
//	svc, ok, err := di.CreateInstance[Notifier](c, nil, ctors,
//	    reflect.TypeFor[*MailNotifier](), nil)
func CreateInstance[T any](src ServiceSource, candidates []any, ctors *Constructors, concrete reflect.Type, sel Selector) (T, bool, error) {
	var zero T
	if concrete == nil || !concrete.AssignableTo(reflect.TypeFor[T]()) {
		return zero, false, nil
	}

	ctor, ok := ctors.Select(concrete, sel)
	if !ok {
		if v, ok := zeroInstance(concrete); ok && sel == nil {
			return v.(T), true, nil
		}
		return zero, false, fmt.Errorf("%w: %s", ErrNoConstructor, concrete)
	}

	v, err := ctor.Call(ResolveParameters(src, candidates, ctor.params))
	if err != nil {
		return zero, false, err
	}
	if v == nil {
		// nil interface result
		return zero, true, nil
	}
	return v.(T), true, nil
}

func zeroInstance(t reflect.Type) (any, bool) {
	switch {
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return reflect.New(t.Elem()).Interface(), true
	case t.Kind() == reflect.Struct:
		return reflect.Zero(t).Interface(), true
	}
	return nil, false
}
