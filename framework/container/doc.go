// Package container provides a Laravel-style IoC (Inversion of Control)
// container and Service Provider system, keyed by reflect.Type.
//
// # Overview
//
// The container manages the instantiation and lifecycle of the application's
// dependencies. It supports transient bindings, singletons, pre-built
// instances, aliases, contextual values and constructor injection.
//
// A *Container is a di.ServiceSource, so anything in package di can draw
// arguments from it. Go has no runtime constructor discovery, so
// constructors are registered as plain functions and Build picks among them.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot()   (safe to resolve everything after this)
//  4. Serve requests
//
// # Bindings
//
//	// Transient, new instance every Make()
//	// Laravel: $app->bind(Foo::class, fn($app) => new Foo)
//	container.BindType(c, func(c *container.Container) *Foo { return &Foo{} })
//
//	// Singleton, created once and reused
//	container.SingletonType(c, func(c *container.Container) Cache {
//	    return cache.NewRedis(container.Resolve[*config.Config](c))
//	})
//
//	// Pre-built value
//	container.InstanceOf(c, cfg)
//
//	// Alias: resolving Cache yields whatever *RedisCache resolves to
//	c.Alias(reflect.TypeFor[*RedisCache](), reflect.TypeFor[Cache]())
//
// # Resolving
//
//	raw := c.Make(reflect.TypeFor[Cache]())        // panics when unbound
//	raw, ok := c.Get(reflect.TypeFor[Cache]())     // reports false instead
//	cache := container.Resolve[Cache](c)           // typed
//
// # Constructor injection
//
//	c.Constructor(NewPhotoController) // func(Filesystem, *slog.Logger) *PhotoController
//
//	// Laravel: $app->when(PhotoController::class)->needs(Filesystem::class)->give(...)
//	c.When(reflect.TypeFor[*PhotoController]()).
//	    Needs(reflect.TypeFor[Filesystem]()).
//	    Give(func(c *container.Container) any { return &S3Filesystem{} })
//
//	ctrl := container.MustBuild[*PhotoController](c)
//
// Contextual values are offered first, then the container's bindings. A
// parameter neither can supply is passed as its zero value.
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool { return true }
//	func (p *HeavyProvider) Provides() []reflect.Type {
//	    return []reflect.Type{reflect.TypeFor[*Heavy]()}
//	}
//	func (p *HeavyProvider) Register(app *container.Container) {
//	    container.SingletonType(app, func(*container.Container) *Heavy {
//	        return heavySetup() // only called on first resolution
//	    })
//	}
package container
