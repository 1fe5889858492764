package di

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

var (
	// ErrInvalidConstructor is returned by Register for functions that do not
	// have the shape func(...) T or func(...) (T, error).
	ErrInvalidConstructor = errors.New("di: invalid constructor")
	// ErrConstructorFailed wraps an error returned, or a panic raised, by a
	// constructor.
	ErrConstructorFailed = errors.New("di: constructor failed")
	// ErrBadArgument is returned when a resolved value cannot be passed to
	// the constructor parameter it was resolved for.
	ErrBadArgument = errors.New("di: resolved argument has the wrong type")
)

var errorType = reflect.TypeFor[error]()

// Constructor is a registered function producing one type.
type Constructor struct {
	fn      reflect.Value
	params  []reflect.Type
	out     reflect.Type
	withErr bool
}

// Params returns the constructor's parameter types.
func (c Constructor) Params() []reflect.Type { return slices.Clone(c.params) }

// Type returns the type the constructor produces.
func (c Constructor) Type() reflect.Type { return c.out }

// Call invokes the constructor. A nil argument is passed as the zero value
// of its parameter type.
func (c Constructor) Call(args []any) (v any, err error) {
	if len(args) != len(c.params) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrBadArgument, c.fn.Type(), len(c.params), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := c.params[i]
		if a == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("%w: argument %d is %s, want %s", ErrBadArgument, i, av.Type(), pt)
		}
		in[i] = av
	}

	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("%w: %s: panic: %v", ErrConstructorFailed, c.out, r)
		}
	}()

	var out []reflect.Value
	if c.fn.Type().IsVariadic() {
		out = c.fn.CallSlice(in)
	} else {
		out = c.fn.Call(in)
	}
	if c.withErr && !out[1].IsNil() {
		return nil, fmt.Errorf("%w: %s: %w", ErrConstructorFailed, c.out, out[1].Interface().(error))
	}
	return out[0].Interface(), nil
}

// ── Registry ──────────────────────────────────────────────────────────────────

// Constructors is a table of constructor functions keyed by the type they
// produce. Go types carry no constructors of their own, so callers register
// them explicitly.
//
//	ctors := di.NewConstructors()
//	ctors.MustRegister(NewMailer)            // func(*Config) *Mailer
//	ctors.MustRegister(NewMailerWithLogger)  // func(*Config, *slog.Logger) (*Mailer, error)
type Constructors struct {
	mu     sync.RWMutex
	byType map[reflect.Type][]Constructor
}

// NewConstructors returns an empty table.
func NewConstructors() *Constructors {
	return &Constructors{byType: make(map[reflect.Type][]Constructor)}
}

// Register adds fn under its first result type. Constructors of the same
// type are kept in registration order.
func (c *Constructors) Register(fn any) error {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		return fmt.Errorf("%w: %T is not a function", ErrInvalidConstructor, fn)
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return fmt.Errorf("%w: %s must return T or (T, error)", ErrInvalidConstructor, ft)
	}

	ctor := Constructor{
		fn:      reflect.ValueOf(fn),
		params:  paramTypes(ft),
		out:     ft.Out(0),
		withErr: ft.NumOut() == 2,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byType[ctor.out] = append(c.byType[ctor.out], ctor)
	return nil
}

// MustRegister is like Register but panics on error.
func (c *Constructors) MustRegister(fns ...any) {
	for _, fn := range fns {
		if err := c.Register(fn); err != nil {
			panic(err)
		}
	}
}

// For returns the constructors registered for t, in registration order.
// A nil table has none.
func (c *Constructors) For(t reflect.Type) []Constructor {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.byType[t])
}

// Select returns the first constructor for t accepted by sel. A nil sel
// accepts the first registered one.
func (c *Constructors) Select(t reflect.Type, sel Selector) (Constructor, bool) {
	for _, ctor := range c.For(t) {
		if sel == nil || sel(ctor) {
			return ctor, true
		}
	}
	return Constructor{}, false
}

// ── Selectors ─────────────────────────────────────────────────────────────────

// Selector chooses among the constructors of a type.
type Selector func(Constructor) bool

// ByParamTypes accepts a constructor whose parameter types equal types.
func ByParamTypes(types ...reflect.Type) Selector {
	return func(c Constructor) bool {
		return slices.Equal(c.params, types)
	}
}

// ByParamsOf accepts a constructor whose parameter list matches the one of
// fn. A non-function fn matches nothing.
func ByParamsOf(fn any) Selector {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		return func(Constructor) bool { return false }
	}
	return ByParamTypes(paramTypes(ft)...)
}
