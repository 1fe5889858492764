package providers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/km-arc/go-utilities/app/providers"
	"github.com/km-arc/go-utilities/framework/app"
	"github.com/km-arc/go-utilities/framework/password"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func bootApp(t *testing.T) http.Handler {
	t.Helper()
	a, err := app.New(app.WithEnvFiles("testdata/app.env"), app.WithLogWriter(io.Discard))
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	a.Register(&providers.RouteServiceProvider{})
	a.Boot()
	return a.Router()
}

func call(t *testing.T, h http.Handler, target string, out any) int {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil {
		if err := json.NewDecoder(rr.Body).Decode(out); err != nil {
			t.Fatalf("%s: decode: %v", target, err)
		}
	}
	return rr.Code
}

// ── Routes ───────────────────────────────────────────────────────────────────

func TestRoutes_Health(t *testing.T) {
	h := bootApp(t)

	var body struct {
		Data map[string]string `json:"data"`
	}
	if code := call(t, h, "/health", &body); code != http.StatusOK {
		t.Fatalf("status: got %d", code)
	}
	if body.Data["app"] != "RoutesTest" || body.Data["env"] != "testing" || body.Data["version"] != app.Version {
		t.Errorf("health: got %v", body.Data)
	}
}

func TestRoutes_PasswordUsesConfiguredPolicy(t *testing.T) {
	h := bootApp(t)

	var body struct {
		Data struct {
			Policy    password.Policy `json:"policy"`
			Passwords []struct {
				Password string `json:"password"`
				Hash     string `json:"hash"`
			} `json:"passwords"`
		} `json:"data"`
	}
	if code := call(t, h, "/api/v1/password?hash=true&count=2", &body); code != http.StatusOK {
		t.Fatalf("status: got %d", code)
	}
	if body.Data.Policy.RequiredLength != 20 {
		t.Errorf("RequiredLength: got %d, want 20", body.Data.Policy.RequiredLength)
	}
	if len(body.Data.Passwords) != 2 {
		t.Fatalf("passwords: got %d, want 2", len(body.Data.Passwords))
	}
	for _, p := range body.Data.Passwords {
		if len(p.Password) < 20 {
			t.Errorf("%q shorter than 20", p.Password)
		}
		if !password.Verify(p.Password, p.Hash) {
			t.Errorf("hash does not verify for %q", p.Password)
		}
	}
}

func TestRoutes_PasswordUsesConfiguredLimits(t *testing.T) {
	h := bootApp(t)

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if code := call(t, h, "/api/v1/password?count=3", &body); code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", code)
	}
	if len(body.Errors["count"]) == 0 {
		t.Errorf("expected a count error, got %v", body.Errors)
	}
}

func TestRoutes_Random(t *testing.T) {
	h := bootApp(t)

	var n struct {
		Data struct {
			Value int64 `json:"value"`
		} `json:"data"`
	}
	if code := call(t, h, "/api/v1/random/int?min=1&max=2&bits=64", &n); code != http.StatusOK {
		t.Fatalf("int status: got %d", code)
	}
	if n.Data.Value != 1 {
		t.Errorf("value: got %d, want 1", n.Data.Value)
	}

	var c struct {
		Data map[string]string `json:"data"`
	}
	if code := call(t, h, "/api/v1/random/char?chars=zz", &c); code != http.StatusOK {
		t.Fatalf("char status: got %d", code)
	}
	if c.Data["char"] != "z" {
		t.Errorf("char: got %q, want z", c.Data["char"])
	}
}

func TestRoutes_UnknownPath(t *testing.T) {
	h := bootApp(t)

	var body struct {
		Message string `json:"message"`
	}
	if code := call(t, h, "/api/v1/nope", &body); code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", code)
	}
	if body.Message == "" {
		t.Error("expected a JSON message")
	}
}
