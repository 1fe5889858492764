package container

import (
	"fmt"
	"reflect"

	"github.com/km-arc/go-utilities/framework/di"
)

// ── Generic helpers ───────────────────────────────────────────────────────────

// BindType registers a transient factory under T.
//
//	container.BindType(c, func(c *container.Container) Clock { return realClock{} })
func BindType[T any](c *Container, factory func(c *Container) T) {
	c.Bind(reflect.TypeFor[T](), func(c *Container) any { return factory(c) })
}

// SingletonType registers a shared factory under T.
func SingletonType[T any](c *Container, factory func(c *Container) T) {
	c.Singleton(reflect.TypeFor[T](), func(c *Container) any { return factory(c) })
}

// InstanceOf registers v under T.
func InstanceOf[T any](c *Container, v T) {
	c.Instance(reflect.TypeFor[T](), v)
}

// Resolve resolves T from the container. It panics when T is unbound or
// the bound value is not a T.
//
//	cfg := container.Resolve[*config.Config](c)
func Resolve[T any](c *Container) T {
	t := reflect.TypeFor[T]()
	raw := c.Make(t)
	if raw == nil {
		var zero T
		return zero
	}
	v, ok := raw.(T)
	if !ok {
		panic(fmt.Sprintf("container: [%s] resolved to %T", t, raw))
	}
	return v
}

// TryResolve resolves T, reporting false when it is unbound or of another
// type.
func TryResolve[T any](c *Container) (T, bool) {
	raw, ok := c.Get(reflect.TypeFor[T]())
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}

// Build creates concrete through its registered constructors and returns it
// as T. Constructor arguments come first from the contextual values given
// with When(concrete), then from the container's bindings.
//
//	ctrl, ok, err := container.Build[*controllers.PasswordController](c,
//	    reflect.TypeFor[*controllers.PasswordController](), nil)
func Build[T any](c *Container, concrete reflect.Type, sel di.Selector) (T, bool, error) {
	return di.CreateInstance[T](c, c.CandidatesFor(concrete), c.Constructors(), concrete, sel)
}

// MustBuild is Build for T's own type, panicking on failure.
func MustBuild[T any](c *Container) T {
	t := reflect.TypeFor[T]()
	v, ok, err := Build[T](c, t, nil)
	if err != nil {
		panic(fmt.Sprintf("container: build [%s]: %v", t, err))
	}
	if !ok {
		panic(fmt.Sprintf("container: [%s] could not be built", t))
	}
	return v
}
