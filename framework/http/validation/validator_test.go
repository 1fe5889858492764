package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/km-arc/go-utilities/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// pass asserts the validator passes for the given data/rules.
func pass(t *testing.T, label string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Fails() {
			t.Errorf("expected PASS, got FAIL, errors: %+v", v.Errors().Bag)
		}
	})
}

// fail asserts the validator fails with an error on the given field.
func fail(t *testing.T, label, field string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Passes() {
			t.Errorf("expected FAIL on field %q, but validator PASSED", field)
		}
		if v.Errors().First(field) == "" {
			t.Errorf("expected error on field %q, but none found. Errors: %+v", field, v.Errors().Bag)
		}
	})
}

func firstError(data map[string]string, rules validation.Rules, field string) string {
	v := validation.Make(data, rules)
	_ = v.Fails()
	return v.Errors().First(field)
}

// ── required ─────────────────────────────────────────────────────────────────

func TestValidation_Required(t *testing.T) {
	r := validation.Rules{"name": "required"}

	pass(t, "non-empty value", map[string]string{"name": "Alice"}, r)
	fail(t, "empty string", "name", map[string]string{"name": ""}, r)
	fail(t, "whitespace only", "name", map[string]string{"name": "   "}, r)
	fail(t, "missing key", "name", map[string]string{}, r)
}

func TestValidation_Required_MessageFormat(t *testing.T) {
	got := firstError(map[string]string{"name": ""}, validation.Rules{"name": "required"}, "name")
	if want := "The name field is required."; got != want {
		t.Errorf("message: got %q want %q", got, want)
	}
}

// ── optional fields ──────────────────────────────────────────────────────────

func TestValidation_OptionalFieldSkipsRules(t *testing.T) {
	r := validation.Rules{"length": "integer|min:4"}

	pass(t, "missing", map[string]string{}, r)
	pass(t, "empty", map[string]string{"length": ""}, r)
	fail(t, "present and bad", "length", map[string]string{"length": "x"}, r)
}

// ── integer / boolean ────────────────────────────────────────────────────────

func TestValidation_Integer(t *testing.T) {
	r := validation.Rules{"n": "integer"}

	pass(t, "positive", map[string]string{"n": "42"}, r)
	pass(t, "negative", map[string]string{"n": "-7"}, r)
	fail(t, "float", "n", map[string]string{"n": "1.5"}, r)
	fail(t, "word", "n", map[string]string{"n": "ten"}, r)
	fail(t, "overflow", "n", map[string]string{"n": "99999999999999999999999"}, r)
}

func TestValidation_Boolean(t *testing.T) {
	r := validation.Rules{"flag": "boolean"}

	for _, v := range []string{"true", "false", "1", "0", "yes", "no", "on", "off", "TRUE"} {
		pass(t, v, map[string]string{"flag": v}, r)
	}
	fail(t, "maybe", "flag", map[string]string{"flag": "maybe"}, r)
	fail(t, "two", "flag", map[string]string{"flag": "2"}, r)
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in       string
		want, ok bool
	}{
		{"true", true, true},
		{" Yes ", true, true},
		{"on", true, true},
		{"0", false, true},
		{"off", false, true},
		{"", false, false},
		{"nah", false, false},
	}
	for _, tt := range tests {
		got, ok := validation.ParseBool(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseBool(%q): got (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// ── min / max / between ──────────────────────────────────────────────────────

func TestValidation_MinMax_Length(t *testing.T) {
	r := validation.Rules{"chars": "min:3|max:5"}

	pass(t, "exactly 3", map[string]string{"chars": "abc"}, r)
	pass(t, "exactly 5 runes", map[string]string{"chars": "héllo"}, r)
	fail(t, "too short", "chars", map[string]string{"chars": "ab"}, r)
	fail(t, "too long", "chars", map[string]string{"chars": "abcdef"}, r)
}

func TestValidation_MinMax_Numeric(t *testing.T) {
	r := validation.Rules{"count": "integer|min:1|max:50"}

	pass(t, "lower bound", map[string]string{"count": "1"}, r)
	pass(t, "upper bound", map[string]string{"count": "50"}, r)
	fail(t, "zero", "count", map[string]string{"count": "0"}, r)
	fail(t, "too many", "count", map[string]string{"count": "51"}, r)

	if got, want := firstError(map[string]string{"count": "0"}, r, "count"), "The count must be at least 1."; got != want {
		t.Errorf("message: got %q want %q", got, want)
	}
}

func TestValidation_Between(t *testing.T) {
	num := validation.Rules{"bits": "integer|between:8,64"}
	pass(t, "in range", map[string]string{"bits": "16"}, num)
	fail(t, "below", "bits", map[string]string{"bits": "4"}, num)
	fail(t, "above", "bits", map[string]string{"bits": "128"}, num)

	str := validation.Rules{"code": "between:2,3"}
	pass(t, "two chars", map[string]string{"code": "ab"}, str)
	fail(t, "four chars", "code", map[string]string{"code": "abcd"}, str)

	if got, want := firstError(map[string]string{"code": "a"}, str, "code"), "The code must be between 2 and 3 characters."; got != want {
		t.Errorf("message: got %q want %q", got, want)
	}
}

// ── in ───────────────────────────────────────────────────────────────────────

func TestValidation_In(t *testing.T) {
	r := validation.Rules{"bits": "in:16, 32,64"}

	pass(t, "16", map[string]string{"bits": "16"}, r)
	pass(t, "trimmed option", map[string]string{"bits": "32"}, r)
	fail(t, "8", "bits", map[string]string{"bits": "8"}, r)
}

// ── bail & bag ───────────────────────────────────────────────────────────────

func TestValidation_StopsOnFirstFailure(t *testing.T) {
	v := validation.Make(map[string]string{"n": "abc"}, validation.Rules{"n": "required|integer|min:5"})
	if !v.Fails() {
		t.Fatal("expected failure")
	}
	if got := len(v.Errors().Bag["n"]); got != 1 {
		t.Errorf("errors for n: got %d, want 1", got)
	}
}

func TestValidation_FailsIsIdempotent(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"a": "required"})
	v.Fails()
	v.Fails()
	if got := len(v.Errors().Bag["a"]); got != 1 {
		t.Errorf("errors after two Fails(): got %d, want 1", got)
	}
}

func TestErrors_JSON(t *testing.T) {
	v := validation.Make(map[string]string{"b": "x"}, validation.Rules{
		"a": "required",
		"b": "integer",
	})
	v.Fails()

	raw, err := json.Marshal(v.Errors())
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	// Fields are checked in name order, so a reports first.
	if body.Message != "The a field is required." {
		t.Errorf("message: got %q", body.Message)
	}
	if len(body.Errors) != 2 {
		t.Errorf("errors: got %v", body.Errors)
	}
}

func TestErrors_AddAndFirst(t *testing.T) {
	var e validation.Errors
	if e.Has() || e.First("x") != "" {
		t.Error("zero Errors should be empty")
	}
	e.Add("x", "one")
	e.Add("x", "two")
	if !e.Has() || e.First("x") != "one" || len(e.Bag["x"]) != 2 {
		t.Errorf("bag: %+v", e.Bag)
	}
}
