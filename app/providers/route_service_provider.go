package providers

import (
	"reflect"

	"github.com/km-arc/go-utilities/app/controllers"
	"github.com/km-arc/go-utilities/framework/config"
	"github.com/km-arc/go-utilities/framework/container"
	"github.com/km-arc/go-utilities/framework/password"
	"github.com/km-arc/go-utilities/framework/routing"
)

// RouteServiceProvider registers the controllers and mounts their routes.
//
//	GET /health
//	GET /api/v1/password
//	GET /api/v1/random/int
//	GET /api/v1/random/char
//
// Laravel equivalent: App\Providers\RouteServiceProvider.
type RouteServiceProvider struct {
	container.BaseProvider
}

func (p *RouteServiceProvider) Register(app *container.Container) {
	app.Constructor(
		controllers.NewHealthController,
		controllers.NewPasswordController,
		controllers.NewRandomController,
	)

	// The password controller takes its defaults and limits from config.
	passwords := reflect.TypeFor[*controllers.PasswordController]()
	app.When(passwords).Needs(reflect.TypeFor[password.Policy]()).Give(func(c *container.Container) any {
		return container.Resolve[*config.Config](c).Password.Policy()
	})
	app.When(passwords).Needs(reflect.TypeFor[controllers.PasswordLimits]()).Give(func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c).Password
		return controllers.PasswordLimits{MaxLength: cfg.MaxLength, MaxCount: cfg.MaxCount}
	})
}

func (p *RouteServiceProvider) Boot(app *container.Container) {
	health := container.MustBuild[*controllers.HealthController](app)
	passwords := container.MustBuild[*controllers.PasswordController](app)
	random := container.MustBuild[*controllers.RandomController](app)

	router := container.Resolve[*routing.Router](app)
	router.Get("/health", health.Show)
	router.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/password", passwords.Generate)
		api.Prefix("/random", func(r *routing.Router) {
			r.Get("/int", random.Int)
			r.Get("/char", random.Char)
		})
	})
}
