package controllers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/km-arc/go-utilities/app/controllers"
	"github.com/km-arc/go-utilities/framework/password"
	"github.com/km-arc/go-utilities/framework/random"
)

// ── helpers ──────────────────────────────────────────────────────────────────

type passwordBody struct {
	Data struct {
		Policy    password.Policy `json:"policy"`
		Passwords []struct {
			Password string `json:"password"`
			Hash     string `json:"hash"`
		} `json:"passwords"`
	} `json:"data"`
}

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func get(t *testing.T, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func newPasswordController(limits controllers.PasswordLimits) *controllers.PasswordController {
	return controllers.NewPasswordController(nil, password.Hasher{Cost: bcrypt.MinCost},
		password.DefaultPolicy(), limits, quietLogger())
}

// ── PasswordController ───────────────────────────────────────────────────────

func TestPassword_Defaults(t *testing.T) {
	pc := newPasswordController(controllers.PasswordLimits{})
	rr := get(t, pc.Generate, "/api/v1/password")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body)
	}
	body := decode[passwordBody](t, rr)
	if body.Data.Policy != password.DefaultPolicy() {
		t.Errorf("policy: got %+v", body.Data.Policy)
	}
	if len(body.Data.Passwords) != 1 {
		t.Fatalf("passwords: got %d, want 1", len(body.Data.Passwords))
	}
	pw := body.Data.Passwords[0]
	if len(pw.Password) != 12 || pw.Hash != "" {
		t.Errorf("password: got %+v", pw)
	}
}

func TestPassword_QueryOverrides(t *testing.T) {
	pc := newPasswordController(controllers.PasswordLimits{})
	rr := get(t, pc.Generate, "/api/v1/password?length=24&unique=3&lower=true&upper=false&digit=no&special=yes&special_chars=%23&lowercase_chars=xy&count=5")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body)
	}
	body := decode[passwordBody](t, rr)
	want := password.Policy{
		RequiredLength:         24,
		RequiredUniqueChars:    3,
		RequireLowercase:       true,
		RequireNonAlphanumeric: true,
	}
	if body.Data.Policy != want {
		t.Errorf("policy: got %+v, want %+v", body.Data.Policy, want)
	}
	if len(body.Data.Passwords) != 5 {
		t.Fatalf("passwords: got %d, want 5", len(body.Data.Passwords))
	}
	for _, p := range body.Data.Passwords {
		if utf8.RuneCountInString(p.Password) < 24 {
			t.Errorf("%q shorter than 24", p.Password)
		}
		if !strings.ContainsAny(p.Password, "xy") || !strings.Contains(p.Password, "#") {
			t.Errorf("%q misses a required category", p.Password)
		}
	}
}

func TestPassword_Hash(t *testing.T) {
	pc := newPasswordController(controllers.PasswordLimits{})
	rr := get(t, pc.Generate, "/api/v1/password?hash=true&count=2")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body)
	}
	for _, p := range decode[passwordBody](t, rr).Data.Passwords {
		if !password.Verify(p.Password, p.Hash) {
			t.Errorf("hash does not verify for %q", p.Password)
		}
	}
}

func TestPassword_Validation(t *testing.T) {
	pc := newPasswordController(controllers.PasswordLimits{MaxLength: 64, MaxCount: 3})

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"length not integer", "length=abc", "length"},
		{"length over limit", "length=65", "length"},
		{"negative length", "length=-1", "length"},
		{"unique over limit", "unique=100", "unique"},
		{"bad boolean", "special=maybe", "special"},
		{"count zero", "count=0", "count"},
		{"count over limit", "count=4", "count"},
		{"chars too long", "special_chars=" + strings.Repeat("!", 257), "special_chars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, pc.Generate, "/api/v1/password?"+tt.query)
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status: got %d, want 422", rr.Code)
			}
			if errs := decode[errorBody](t, rr).Errors; len(errs[tt.field]) == 0 {
				t.Errorf("expected an error on %q, got %v", tt.field, errs)
			}
		})
	}
}

func TestPassword_PolicyErrors(t *testing.T) {
	pc := newPasswordController(controllers.PasswordLimits{})

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"insufficient chars", "unique=8&lowercase_chars=a&uppercase_chars=B&digit_chars=1&special_chars=%21", "unique"},
		{"unsatisfiable", "unique=63", "unique"},
		{"too long to hash", "length=80&hash=1", "hash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, pc.Generate, "/api/v1/password?"+tt.query)
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status: got %d, want 422, body %s", rr.Code, rr.Body)
			}
			if errs := decode[errorBody](t, rr).Errors; len(errs[tt.field]) == 0 {
				t.Errorf("expected an error on %q, got %v", tt.field, errs)
			}
		})
	}
}

func TestPassword_SourceFailure(t *testing.T) {
	var logs bytes.Buffer
	gen := password.New(random.New(iotest.ErrReader(errors.New("entropy gone"))))
	pc := controllers.NewPasswordController(gen, password.Hasher{}, password.Policy{}, controllers.PasswordLimits{},
		slog.New(slog.NewTextHandler(&logs, nil)))

	rr := get(t, pc.Generate, "/api/v1/password")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	if !strings.Contains(logs.String(), "entropy gone") {
		t.Errorf("error should be logged, got %q", logs.String())
	}
}

// ── RandomController ─────────────────────────────────────────────────────────

type intBody struct {
	Data struct {
		Value int64 `json:"value"`
		Min   int64 `json:"min"`
		Max   int64 `json:"max"`
		Bits  int   `json:"bits"`
	} `json:"data"`
}

func TestRandomInt_Defaults(t *testing.T) {
	rc := controllers.NewRandomController(nil, quietLogger())
	rr := get(t, rc.Int, "/api/v1/random/int")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body)
	}
	d := decode[intBody](t, rr).Data
	if d.Min != 0 || d.Max != 100 || d.Bits != 32 {
		t.Errorf("echo: got %+v", d)
	}
	if d.Value < 0 || d.Value >= 100 {
		t.Errorf("value %d outside [0, 100)", d.Value)
	}
}

func TestRandomInt_Widths(t *testing.T) {
	tests := []struct {
		query string
		src   []byte
		want  int64
	}{
		// 0A 00 → 10; |10| mod 10 = 0 → -5
		{"min=-5&max=5&bits=16", []byte{0x0A, 0x00}, -5},
		// FF FF FF FF → -1; |-1| mod 10 = 1
		{"min=0&max=10&bits=32", []byte{0xFF, 0xFF, 0xFF, 0xFF}, 1},
		// 07 → 7; 7 mod 3 = 1 → 101
		{"min=100&max=103&bits=64", []byte{7, 0, 0, 0, 0, 0, 0, 0}, 101},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rc := controllers.NewRandomController(random.New(bytes.NewReader(tt.src)), quietLogger())
			rr := get(t, rc.Int, "/api/v1/random/int?"+tt.query)
			if rr.Code != http.StatusOK {
				t.Fatalf("status: got %d, body %s", rr.Code, rr.Body)
			}
			if got := decode[intBody](t, rr).Data.Value; got != tt.want {
				t.Errorf("value: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRandomInt_Errors(t *testing.T) {
	rc := controllers.NewRandomController(nil, quietLogger())

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"bad bits", "bits=8", "bits"},
		{"min not integer", "min=x", "min"},
		{"min does not fit", "min=-40000&bits=16", "min"},
		{"max does not fit", "max=3000000000", "max"},
		{"min above max", "min=10&max=5", "min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, rc.Int, "/api/v1/random/int?"+tt.query)
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status: got %d, want 422", rr.Code)
			}
			if errs := decode[errorBody](t, rr).Errors; len(errs[tt.field]) == 0 {
				t.Errorf("expected an error on %q, got %v", tt.field, errs)
			}
		})
	}
}

func TestRandomInt_EqualBounds(t *testing.T) {
	// Nothing is read when min == max.
	rc := controllers.NewRandomController(random.New(iotest.ErrReader(io.ErrUnexpectedEOF)), quietLogger())
	rr := get(t, rc.Int, "/api/v1/random/int?min=7&max=7")
	if rr.Code != http.StatusOK || decode[intBody](t, rr).Data.Value != 7 {
		t.Errorf("status %d", rr.Code)
	}
}

func TestRandomInt_SourceFailure(t *testing.T) {
	rc := controllers.NewRandomController(random.New(iotest.ErrReader(io.ErrUnexpectedEOF)), quietLogger())
	if rr := get(t, rc.Int, "/api/v1/random/int"); rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
}

func TestRandomChar(t *testing.T) {
	// Distinct runes of "aab" are [a b]; byte 01 picks b.
	rc := controllers.NewRandomController(random.New(bytes.NewReader([]byte{1, 0, 0, 0})), quietLogger())
	rr := get(t, rc.Char, "/api/v1/random/char?chars=aab")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body)
	}
	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Data["char"] != "b" {
		t.Errorf("char: got %q, want b", body.Data["char"])
	}
}

func TestRandomChar_DefaultAlphabet(t *testing.T) {
	rc := controllers.NewRandomController(nil, quietLogger())
	for range 50 {
		rr := get(t, rc.Char, "/api/v1/random/char")
		var body struct {
			Data map[string]string `json:"data"`
		}
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		c := body.Data["char"]
		if len(c) != 1 || !strings.Contains(password.DefaultLowercase+password.DefaultUppercase+password.DefaultDigits, c) {
			t.Fatalf("char %q outside the default alphabet", c)
		}
	}
}

func TestRandomChar_TooLong(t *testing.T) {
	rc := controllers.NewRandomController(nil, quietLogger())
	rr := get(t, rc.Char, "/api/v1/random/char?chars="+strings.Repeat("a", 1025))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422", rr.Code)
	}
}

// ── HealthController ─────────────────────────────────────────────────────────

func TestHealth_WithoutConfig(t *testing.T) {
	hc := controllers.NewHealthController(nil)
	rr := get(t, hc.Show, "/health")

	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if rr.Code != http.StatusOK || body.Data["status"] != "ok" {
		t.Errorf("health: %d %v", rr.Code, body.Data)
	}
}
