package container

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/km-arc/go-utilities/framework/di"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) any

// binding holds a registered factory and whether it is a singleton.
type binding struct {
	factory   Factory
	singleton bool
	deferred  bool // placeholder for a deferred provider
}

// contextual is one When(concrete).Needs(abstract).Give(factory) entry.
type contextual struct {
	needs   reflect.Type
	factory Factory
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container, keyed by reflect.Type.
//
// It supports:
//   - Bind / Singleton / Instance / Alias
//   - Make / Get / Resolve (generic)
//   - Contextual values (when A is built, offer it B)
//   - Constructor registration and Build (constructor injection)
//   - Resolved event callbacks
//
// Container satisfies di.ServiceSource.
type Container struct {
	mu sync.RWMutex

	// abstract → binding
	bindings map[reflect.Type]*binding

	// abstract → resolved singleton instance
	instances map[reflect.Type]any

	// alias → abstract (canonical key)
	aliases map[reflect.Type]reflect.Type

	// concrete → values offered to its constructor before the container
	contextual map[reflect.Type][]contextual

	// resolved callbacks: []func(abstract, instance)
	afterResolving []func(reflect.Type, any)

	ctors *di.Constructors
}

var _ di.ServiceSource = (*Container)(nil)

// New creates an empty container.
func New() *Container {
	c := &Container{
		bindings:   make(map[reflect.Type]*binding),
		instances:  make(map[reflect.Type]any),
		aliases:    make(map[reflect.Type]reflect.Type),
		contextual: make(map[reflect.Type][]contextual),
		ctors:      di.NewConstructors(),
	}
	// Bind the container to itself, like Laravel's $app->instance()
	c.Instance(reflect.TypeFor[*Container](), c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient (new instance each Make) factory.
//
//	// Laravel: $app->bind(UserRepository::class, fn($app) => new EloquentUserRepository($app))
//	c.Bind(reflect.TypeFor[UserRepository](), func(c *container.Container) any {
//	    return &EloquentUserRepository{DB: container.Resolve[*sql.DB](c)}
//	})
func (c *Container) Bind(abstract reflect.Type, factory Factory) {
	c.bind(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	// Laravel: $app->singleton(Cache::class, fn($app) => new RedisCache($app))
func (c *Container) Singleton(abstract reflect.Type, factory Factory) {
	c.bind(abstract, factory, true)
}

// Instance registers a pre-built value as a singleton. It panics when
// instance is not assignable to abstract.
//
//	// Laravel: $app->instance(Config::class, $config)
//	c.Instance(reflect.TypeFor[*config.Config](), cfg)
func (c *Container) Instance(abstract reflect.Type, instance any) {
	if instance != nil && !reflect.TypeOf(instance).AssignableTo(abstract) {
		panic(fmt.Sprintf("container: %T is not assignable to [%s]", instance, abstract))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

func (c *Container) bind(abstract reflect.Type, factory Factory, singleton bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)

	// Drop any cached instance so it is rebuilt with the new factory
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, singleton: singleton}
}

// bindDeferred installs a placeholder binding for a deferred provider.
func (c *Container) bindDeferred(abstract reflect.Type, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, deferred: true}
}

// forgetDeferred drops abstract's binding if it is still a placeholder.
func (c *Container) forgetDeferred(abstract reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	if b, ok := c.bindings[key]; ok && b.deferred {
		delete(c.bindings, key)
	}
}

// Alias makes alias resolve to whatever abstract resolves to.
//
//	// Laravel: $app->alias(Cache::class, 'cache')
//	c.Alias(reflect.TypeFor[*RedisCache](), reflect.TypeFor[Cache]())
func (c *Container) Alias(abstract, alias reflect.Type) {
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = c.canonical(abstract)
}

// ── Constructors ──────────────────────────────────────────────────────────────

// Constructor registers constructor functions used by Build. It panics on a
// function that does not return T or (T, error).
//
//	c.Constructor(NewPasswordController)
func (c *Container) Constructor(fns ...any) {
	c.ctors.MustRegister(fns...)
}

// Constructors returns the container's constructor table.
func (c *Container) Constructors() *di.Constructors { return c.ctors }

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container. It panics when nothing is
// bound for it.
//
//	// Laravel: $app->make(UserRepository::class)
//	repo := c.Make(reflect.TypeFor[UserRepository]())
func (c *Container) Make(abstract reflect.Type) any {
	inst, ok := c.make(abstract)
	if !ok {
		panic(fmt.Sprintf("container: no binding registered for [%s]", abstract))
	}
	return inst
}

// Get resolves an abstract, reporting false when nothing is bound.
func (c *Container) Get(abstract reflect.Type) (any, bool) {
	if c == nil {
		return nil, false
	}
	return c.make(abstract)
}

// make is the internal resolver. Factories run without the lock held so
// they can resolve their own dependencies.
func (c *Container) make(abstract reflect.Type) (any, bool) {
	c.mu.RLock()
	key := c.canonical(abstract)
	if inst, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return inst, true
	}
	b, ok := c.bindings[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	instance := b.factory(c)

	if b.singleton {
		c.mu.Lock()
		if existing, ok := c.instances[key]; ok {
			instance = existing
		} else {
			c.instances[key] = instance
		}
		c.mu.Unlock()
	}

	if !b.deferred {
		c.fireAfterResolving(key, instance)
	}
	return instance, true
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if an abstract has been registered.
//
//	// Laravel: $app->bound(UserRepository::class)
func (c *Container) Bound(abstract reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved returns true if the abstract holds a cached instance.
//
//	// Laravel: $app->resolved(Cache::class)
func (c *Container) Resolved(abstract reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(abstract)]
	return ok
}

// Forget removes all registrations for an abstract (binding + instance).
//
//	// Laravel: $app->forgetInstance(Cache::class)
func (c *Container) Forget(abstract reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	delete(c.instances, key)
}

// Flush resets the entire container, constructors included.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[reflect.Type]*binding)
	c.instances = make(map[reflect.Type]any)
	c.aliases = make(map[reflect.Type]reflect.Type)
	c.contextual = make(map[reflect.Type][]contextual)
	c.ctors = di.NewConstructors()
}

// Types returns all registered abstract types (for debugging).
func (c *Container) Types() []reflect.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]reflect.Type, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	return out
}

// canonical resolves an alias to its canonical key (must hold mu).
func (c *Container) canonical(abstract reflect.Type) reflect.Type {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after any abstract is resolved
// through a binding.
//
//	// Laravel: $app->afterResolving(fn($object, $app) => ...)
func (c *Container) AfterResolving(cb func(abstract reflect.Type, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(abstract reflect.Type, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(abstract, instance)
	}
}
