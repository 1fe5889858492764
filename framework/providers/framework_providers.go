package providers

import (
	"io"
	"log/slog"
	"reflect"

	"github.com/km-arc/go-utilities/framework/config"
	"github.com/km-arc/go-utilities/framework/container"
	"github.com/km-arc/go-utilities/framework/logging"
	"github.com/km-arc/go-utilities/framework/password"
	"github.com/km-arc/go-utilities/framework/random"
	"github.com/km-arc/go-utilities/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration.
//
// Bound types:
//   - *config.Config
//
// A preloaded Config is bound as is; otherwise it is loaded from EnvFiles
// on first use and a load error panics.
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	if p.Config != nil {
		container.InstanceOf(app, p.Config)
		return
	}
	envFiles := p.EnvFiles
	container.SingletonType(app, func(*container.Container) *config.Config {
		return config.MustLoad(envFiles...)
	})
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the structured logger built from config.Log.
//
// Bound types:
//   - *slog.Logger
//
// Boot logs every container resolution at debug level.
type LoggingServiceProvider struct {
	container.BaseProvider
	Writer io.Writer // default: os.Stderr
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	w := p.Writer
	container.SingletonType(app, func(c *container.Container) *slog.Logger {
		logger, err := logging.New(container.Resolve[*config.Config](c).Log, w)
		if err != nil {
			panic(err)
		}
		return logger
	})
}

func (p *LoggingServiceProvider) Boot(app *container.Container) {
	logger := container.Resolve[*slog.Logger](app)
	app.AfterResolving(func(t reflect.Type, _ any) {
		logger.Debug("container resolved", "type", t.String())
	})
}

// ── RandomServiceProvider ─────────────────────────────────────────────────────

// RandomServiceProvider binds the shared random generator.
//
// Bound types:
//   - *random.Generator
type RandomServiceProvider struct {
	container.BaseProvider
	Source io.Reader // default: crypto/rand
}

func (p *RandomServiceProvider) Register(app *container.Container) {
	src := p.Source
	container.SingletonType(app, func(*container.Container) *random.Generator {
		return random.New(src)
	})
}

// ── PasswordServiceProvider ───────────────────────────────────────────────────

// PasswordServiceProvider binds the password generator and hasher. It is
// deferred: nothing is built until one of them is first resolved.
//
// Bound types:
//   - *password.Generator
//   - password.Hasher
//
// Configuration read from *config.Config:
//   - Password.MaxFillIterations
//   - Password.HashCost
type PasswordServiceProvider struct {
	container.BaseProvider
}

func (p *PasswordServiceProvider) IsDeferred() bool { return true }

func (p *PasswordServiceProvider) Provides() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[*password.Generator](),
		reflect.TypeFor[password.Hasher](),
	}
}

func (p *PasswordServiceProvider) Register(app *container.Container) {
	container.SingletonType(app, func(c *container.Container) *password.Generator {
		cfg := container.Resolve[*config.Config](c)
		return password.New(container.Resolve[*random.Generator](c),
			password.WithMaxFillIterations(cfg.Password.MaxFillIterations))
	})
	container.SingletonType(app, func(c *container.Container) password.Hasher {
		return password.Hasher{Cost: container.Resolve[*config.Config](c).Password.HashCost}
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound types:
//   - *routing.Router
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	container.SingletonType(app, func(c *container.Container) *routing.Router {
		return routing.New(routing.WithLogger(container.Resolve[*slog.Logger](c)))
	})
}
