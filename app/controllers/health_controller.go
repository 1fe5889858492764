package controllers

import (
	"net/http"

	"github.com/km-arc/go-utilities/framework/app"
	"github.com/km-arc/go-utilities/framework/config"
)

// HealthController reports liveness.
type HealthController struct {
	app.Controller
	cfg *config.Config
}

func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{cfg: cfg}
}

// Show handles GET /health.
func (hc *HealthController) Show(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok", "version": app.Version}
	if hc.cfg != nil {
		body["app"] = hc.cfg.App.Name
		body["env"] = hc.cfg.App.Env
	}
	hc.Response(w).Success(body)
}
