package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/km-arc/go-utilities/framework/app"
	gohttp "github.com/km-arc/go-utilities/framework/http"
	"github.com/km-arc/go-utilities/framework/http/validation"
	"github.com/km-arc/go-utilities/framework/password"
	"github.com/km-arc/go-utilities/framework/random"
)

// defaultChars is drawn from when /random/char gets no chars.
const defaultChars = password.DefaultLowercase + password.DefaultUppercase + password.DefaultDigits

// RandomController serves bounded random values.
//
//	GET /api/v1/random/int?min=-10&max=10&bits=16
//	GET /api/v1/random/char?chars=abc
type RandomController struct {
	app.Controller
	rnd    *random.Generator
	logger *slog.Logger
}

// NewRandomController builds the controller; nil arguments fall back to
// random.Default() and slog.Default().
func NewRandomController(rnd *random.Generator, logger *slog.Logger) *RandomController {
	if rnd == nil {
		rnd = random.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RandomController{rnd: rnd, logger: logger}
}

type intResponse struct {
	Value int64 `json:"value"`
	Min   int64 `json:"min"`
	Max   int64 `json:"max"`
	Bits  int   `json:"bits"`
}

// Int handles GET /api/v1/random/int: a value in [min, max) drawn at the
// given width. min defaults to 0, max to 100 and bits to 32.
func (rc *RandomController) Int(w http.ResponseWriter, r *http.Request) {
	req, res := rc.Request(r), rc.Response(w)

	v := req.Validate(validation.Rules{
		"min":  "integer",
		"max":  "integer",
		"bits": "in:16,32,64",
	})
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}

	bits := req.QueryInt("bits", 32)
	errs := &validation.Errors{}
	lo := parseWidth(errs, "min", req.Query("min", "0"), bits)
	hi := parseWidth(errs, "max", req.Query("max", "100"), bits)
	if errs.Has() {
		res.ValidationError(errs)
		return
	}

	n, err := rc.draw(lo, hi, bits)
	switch {
	case errors.Is(err, random.ErrOutOfRange):
		errs.Add("min", "The min must not be greater than max.")
		res.ValidationError(errs)
		return
	case err != nil:
		rc.fail(res, err)
		return
	}

	res.Success(intResponse{Value: n, Min: lo, Max: hi, Bits: bits})
}

func (rc *RandomController) draw(lo, hi int64, bits int) (int64, error) {
	switch bits {
	case 16:
		n, err := rc.rnd.Int16(int16(lo), int16(hi))
		return int64(n), err
	case 64:
		return rc.rnd.Int64(lo, hi)
	default:
		n, err := rc.rnd.Int32(int32(lo), int32(hi))
		return int64(n), err
	}
}

// parseWidth parses s as a bits-wide integer, recording an error on field.
func parseWidth(errs *validation.Errors, field, s string, bits int) int64 {
	n, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		errs.Add(field, fmt.Sprintf("The %s must fit in a %d-bit integer.", field, bits))
	}
	return n
}

// Char handles GET /api/v1/random/char: one character picked from the
// distinct characters of chars (letters and digits by default).
func (rc *RandomController) Char(w http.ResponseWriter, r *http.Request) {
	req, res := rc.Request(r), rc.Response(w)

	if v := req.Validate(validation.Rules{"chars": "string|max:1024"}); v.Fails() {
		res.ValidationError(v.Errors())
		return
	}

	c, err := rc.rnd.Char(req.Query("chars", defaultChars))
	if err != nil {
		rc.fail(res, err)
		return
	}
	res.Success(map[string]string{"char": string(c)})
}

func (rc *RandomController) fail(res *gohttp.Response, err error) {
	rc.logger.Error("random draw failed", "err", err)
	res.ServerError()
}
