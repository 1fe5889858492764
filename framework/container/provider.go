package container

import (
	"reflect"
	"sync"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Every provider must implement at minimum Register().
// Boot() is called after ALL providers have been registered, making it safe
// to resolve other bindings inside Boot().
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    container.SingletonType(app, func(c *container.Container) *Mailer {
//	        return NewMailer(container.Resolve[*config.Config](c))
//	    })
//	}
//
//	func (p *AppServiceProvider) Boot(app *container.Container) {
//	    container.Resolve[*slog.Logger](app).Info("application booted")
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here, use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	Boot(app *Container)

	// Provides returns the types this provider registers.
	// Used for deferred (lazy) provider loading.
	//
	//	// Laravel: public function provides(): array { return [Cache::class]; }
	Provides() []reflect.Type

	// IsDeferred returns true if this provider should be loaded lazily,
	// only when one of its Provides() types is first resolved.
	//
	//	// Laravel: protected $defer = true;
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op implementations of
// Boot(), Provides(), and IsDeferred().
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)        {}
func (p *BaseProvider) Provides() []reflect.Type { return nil }
func (p *BaseProvider) IsDeferred() bool         { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
//
// It mirrors the behaviour of Laravel's Application::registerConfiguredProviders
// and Application::bootProviders.
type ProviderRegistry struct {
	app *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	deferred   map[reflect.Type]ServiceProvider // type → provider, until loaded
	loads      map[ServiceProvider]*sync.Once
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[reflect.Type]ServiceProvider),
		loads:      make(map[ServiceProvider]*sync.Once),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless deferred).
//
//	// Laravel: $app->register(new AppServiceProvider($app))
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, t := range provider.Provides() {
			r.deferred[t] = provider
		}
		r.loads[provider] = new(sync.Once)
		r.mu.Unlock()
		// Intercept Make() calls for deferred types
		r.interceptDeferred(provider)
		return
	}

	r.eager = append(r.eager, provider)
	booted := r.booted
	r.mu.Unlock()

	provider.Register(r.app)

	// If already booted, boot this provider immediately
	if booted {
		provider.Boot(r.app)
	}
}

// interceptDeferred registers a lazy binding for each deferred type.
// The first Make() call triggers real registration + boot.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, t := range provider.Provides() {
		r.app.bindDeferred(t, func(c *Container) any {
			r.loadDeferred(provider)
			return c.Make(t)
		})
	}
}

// loadDeferred registers a deferred provider once; concurrent callers wait
// for the first. Placeholders the provider did not replace are dropped, so
// Make panics for them rather than recursing.
func (r *ProviderRegistry) loadDeferred(provider ServiceProvider) {
	r.mu.Lock()
	once := r.loads[provider]
	r.mu.Unlock()

	once.Do(func() {
		r.mu.Lock()
		for t, p := range r.deferred {
			if p == provider {
				delete(r.deferred, t)
			}
		}
		booted := r.booted
		if !booted {
			// Boot() will reach it with the eager providers
			r.eager = append(r.eager, provider)
		}
		r.mu.Unlock()

		provider.Register(r.app)
		for _, t := range provider.Provides() {
			r.app.forgetDeferred(t)
		}
		if booted {
			provider.Boot(r.app)
		}
	})
}

// Boot calls Boot() on all eager providers.
// Must be called after ALL providers have been registered.
//
//	// Laravel: $app->boot()
func (r *ProviderRegistry) Boot() {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return
	}
	r.booted = true
	eager := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}

// Deferred reports whether a provider is still waiting to be loaded for t.
func (r *ProviderRegistry) Deferred(t reflect.Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.deferred[t]
	return ok
}
