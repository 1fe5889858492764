package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/km-arc/go-utilities/framework/config"
	"github.com/km-arc/go-utilities/framework/container"
	gohttp "github.com/km-arc/go-utilities/framework/http"
	"github.com/km-arc/go-utilities/framework/providers"
	"github.com/km-arc/go-utilities/framework/routing"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Register() directly,
// exactly like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// Option configures New.
type Option func(*options)

type options struct {
	cfg       *config.Config
	envFiles  []string
	logWriter io.Writer
	source    io.Reader
}

// WithConfig uses cfg instead of loading one.
func WithConfig(cfg *config.Config) Option { return func(o *options) { o.cfg = cfg } }

// WithEnvFiles names the .env files to load.
func WithEnvFiles(files ...string) Option { return func(o *options) { o.envFiles = files } }

// WithLogWriter sends log output to w instead of os.Stderr.
func WithLogWriter(w io.Writer) Option { return func(o *options) { o.logWriter = w } }

// WithRandomSource draws random bytes from r instead of crypto/rand.
func WithRandomSource(r io.Reader) Option { return func(o *options) { o.source = r } }

// New creates the application and registers the framework providers.
// Configuration is loaded here so a bad environment fails fast.
func New(opts ...Option) (*Application, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg == nil {
		cfg, err := config.Load(o.envFiles...)
		if err != nil {
			return nil, err
		}
		o.cfg = cfg
	}

	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	// Register framework core providers (same order as Laravel)
	registry.Register(&providers.ConfigServiceProvider{Config: o.cfg})
	registry.Register(&providers.LoggingServiceProvider{Writer: o.logWriter})
	registry.Register(&providers.RandomServiceProvider{Source: o.source})
	registry.Register(&providers.PasswordServiceProvider{})
	registry.Register(&providers.RoutingServiceProvider{})

	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container)
}

// Logger resolves *slog.Logger from the container.
func (a *Application) Logger() *slog.Logger {
	return container.Resolve[*slog.Logger](a.Container)
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container)
}

// Run boots the application (if needed) and serves HTTP on the configured
// address until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	addr := a.Config().App.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("app: listen %s: %w", addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve boots the application (if needed) and serves HTTP on ln until ctx
// is cancelled, then shuts down gracefully within App.ShutdownTimeout.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	if !a.Providers.Booted() {
		a.Boot()
	}
	cfg := a.Config()
	logger := a.Logger()

	srv := &http.Server{
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started",
			"app", cfg.App.Name,
			"env", cfg.App.Env,
			"addr", ln.Addr().String(),
			"version", Version,
		)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("app: serve: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }

// Controller is an embeddable base for HTTP controllers.
type Controller struct{}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}
func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}
