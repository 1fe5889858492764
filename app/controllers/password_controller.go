package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/km-arc/go-utilities/framework/app"
	gohttp "github.com/km-arc/go-utilities/framework/http"
	"github.com/km-arc/go-utilities/framework/http/validation"
	"github.com/km-arc/go-utilities/framework/password"
)

// PasswordLimits bounds what a single request may ask for.
type PasswordLimits struct {
	MaxLength int
	MaxCount  int
}

// DefaultPasswordLimits applies when no limits are given.
var DefaultPasswordLimits = PasswordLimits{MaxLength: 1024, MaxCount: 50}

// maxCharsLen caps each *_chars override.
const maxCharsLen = 256

// PasswordController serves generated passwords.
//
//	GET /api/v1/password?length=16&special=true&count=3&hash=true
type PasswordController struct {
	app.Controller
	gen      *password.Generator
	hasher   password.Hasher
	defaults password.Policy
	limits   PasswordLimits
	logger   *slog.Logger
}

// NewPasswordController builds the controller. A zero defaults policy
// means password.DefaultPolicy() and zero limits mean DefaultPasswordLimits.
func NewPasswordController(gen *password.Generator, hasher password.Hasher, defaults password.Policy, limits PasswordLimits, logger *slog.Logger) *PasswordController {
	if gen == nil {
		gen = password.New(nil)
	}
	if defaults == (password.Policy{}) {
		defaults = password.DefaultPolicy()
	}
	if limits == (PasswordLimits{}) {
		limits = DefaultPasswordLimits
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PasswordController{
		gen:      gen,
		hasher:   hasher,
		defaults: defaults,
		limits:   limits,
		logger:   logger,
	}
}

type generatedPassword struct {
	Password string `json:"password"`
	Hash     string `json:"hash,omitempty"`
}

type passwordResponse struct {
	Policy    password.Policy     `json:"policy"`
	Passwords []generatedPassword `json:"passwords"`
}

func (pc *PasswordController) rules() validation.Rules {
	maxLen := strconv.Itoa(pc.limits.MaxLength)
	chars := "string|max:" + strconv.Itoa(maxCharsLen)
	return validation.Rules{
		"length":          "integer|between:0," + maxLen,
		"unique":          "integer|between:0," + maxLen,
		"lower":           "boolean",
		"upper":           "boolean",
		"digit":           "boolean",
		"special":         "boolean",
		"hash":            "boolean",
		"lowercase_chars": chars,
		"uppercase_chars": chars,
		"digit_chars":     chars,
		"special_chars":   chars,
		"count":           "integer|between:1," + strconv.Itoa(pc.limits.MaxCount),
	}
}

// Generate handles GET /api/v1/password. Omitted policy fields take the
// configured defaults; omitted *_chars fields take the built-in alphabets.
func (pc *PasswordController) Generate(w http.ResponseWriter, r *http.Request) {
	req, res := pc.Request(r), pc.Response(w)

	if v := req.Validate(pc.rules()); v.Fails() {
		res.ValidationError(v.Errors())
		return
	}

	d := pc.defaults
	policy := password.Policy{
		RequiredLength:         req.QueryInt("length", d.RequiredLength),
		RequiredUniqueChars:    req.QueryInt("unique", d.RequiredUniqueChars),
		RequireLowercase:       req.QueryBool("lower", d.RequireLowercase),
		RequireUppercase:       req.QueryBool("upper", d.RequireUppercase),
		RequireDigit:           req.QueryBool("digit", d.RequireDigit),
		RequireNonAlphanumeric: req.QueryBool("special", d.RequireNonAlphanumeric),
	}
	sets := password.CharSets{
		Lowercase: req.Query("lowercase_chars"),
		Uppercase: req.Query("uppercase_chars"),
		Digits:    req.Query("digit_chars"),
		Special:   req.Query("special_chars"),
	}
	count := req.QueryInt("count", 1)
	hash := req.QueryBool("hash", false)

	out := make([]generatedPassword, 0, count)
	for range count {
		pw, err := pc.gen.Generate(&policy, sets)
		if err != nil {
			pc.fail(res, policy, err)
			return
		}
		item := generatedPassword{Password: pw}
		if hash {
			if item.Hash, err = pc.hasher.Hash(pw); err != nil {
				pc.fail(res, policy, err)
				return
			}
		}
		out = append(out, item)
	}

	res.Success(passwordResponse{Policy: policy, Passwords: out})
}

// fail maps generation errors to a 422 error bag, anything else to 500.
func (pc *PasswordController) fail(res *gohttp.Response, policy password.Policy, err error) {
	errs := &validation.Errors{}
	switch {
	case errors.Is(err, password.ErrInsufficientChars):
		errs.Add("unique", fmt.Sprintf("The character sets hold fewer than %d distinct characters.", policy.RequiredUniqueChars))
	case errors.Is(err, password.ErrUnsatisfiable), errors.Is(err, password.ErrIterationLimit):
		errs.Add("unique", fmt.Sprintf("The unique field cannot reach %d with the enabled character sets.", policy.RequiredUniqueChars))
	case errors.Is(err, password.ErrInvalidPolicy):
		errs.Add("length", "The password policy is invalid.")
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		errs.Add("hash", "The password is too long to hash.")
	default:
		pc.logger.Error("password generation failed", "err", err)
		res.ServerError()
		return
	}
	res.ValidationError(errs)
}
