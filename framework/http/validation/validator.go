package validation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors holds validation errors, mirroring Laravel's MessageBag.
// JSON output: {"message": "...", "errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Message string              `json:"message"`
	Bag     map[string][]string `json:"errors"`
}

// Add records msg against field.
func (e *Errors) Add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
	if e.Message == "" {
		e.Message = msg
	}
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ── Validator ────────────────────────────────────────────────────────────────

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"length": "integer|between:1,128", "hash": "boolean"}
type Rules map[string]string

// Validator validates a flat map of input values.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
	ran    bool
}

// Make creates a new Validator, mirroring Validator::make($data, $rules).
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{
		data:   data,
		rules:  rules,
		errors: &Errors{},
	}
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	if !v.ran {
		v.ran = true
		v.validate()
	}
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) validate() {
	fields := make([]string, 0, len(v.rules))
	for field := range v.rules {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	for _, field := range fields {
		rules := splitRules(v.rules[field])
		value := v.data[field]

		// Optional fields that were left out or empty are not checked further.
		names := ruleNames(rules)
		if strings.TrimSpace(value) == "" && !slices.Contains(names, "required") {
			continue
		}

		numeric := slices.Contains(names, "integer")
		for _, rule := range rules {
			// Parse rule name and optional parameter: min:3 → name=min, param=3
			name, param, _ := strings.Cut(rule, ":")
			if !v.applyRule(field, value, name, param, numeric) {
				break // stop on first failure (like Laravel's bail behaviour)
			}
		}
	}
}

func splitRules(s string) []string {
	var out []string
	for _, r := range strings.Split(s, "|") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func ruleNames(rules []string) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i], _, _ = strings.Cut(r, ":")
	}
	return names
}

// applyRule returns true if the rule passes. With numeric set, min, max
// and between compare the integer value instead of the length.
func (v *Validator) applyRule(field, value, rule, param string, numeric bool) bool {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			v.errors.Add(field, fmt.Sprintf("The %s field is required.", field))
			return false
		}

	case "string":
		// Every query value is already a string.

	case "integer":
		if _, err := strconv.Atoi(value); err != nil {
			v.errors.Add(field, fmt.Sprintf("The %s must be an integer.", field))
			return false
		}

	case "boolean":
		if _, ok := ParseBool(value); !ok {
			v.errors.Add(field, fmt.Sprintf("The %s field must be true or false.", field))
			return false
		}

	case "min":
		n, _ := strconv.Atoi(param)
		if measure(value, numeric) < n {
			v.errors.Add(field, minMessage(field, n, numeric))
			return false
		}

	case "max":
		n, _ := strconv.Atoi(param)
		if measure(value, numeric) > n {
			v.errors.Add(field, maxMessage(field, n, numeric))
			return false
		}

	case "between":
		a, b, ok := strings.Cut(param, ",")
		if !ok {
			break
		}
		lo, _ := strconv.Atoi(strings.TrimSpace(a))
		hi, _ := strconv.Atoi(strings.TrimSpace(b))
		if m := measure(value, numeric); m < lo || m > hi {
			if numeric {
				v.errors.Add(field, fmt.Sprintf("The %s must be between %d and %d.", field, lo, hi))
			} else {
				v.errors.Add(field, fmt.Sprintf("The %s must be between %d and %d characters.", field, lo, hi))
			}
			return false
		}

	case "in":
		allowed := strings.Split(param, ",")
		if !slices.ContainsFunc(allowed, func(a string) bool { return strings.TrimSpace(a) == value }) {
			v.errors.Add(field, fmt.Sprintf("The selected %s is invalid.", field))
			return false
		}
	}

	return true
}

func measure(value string, numeric bool) int {
	if numeric {
		n, _ := strconv.Atoi(value)
		return n
	}
	return utf8.RuneCountInString(value)
}

func minMessage(field string, n int, numeric bool) string {
	if numeric {
		return fmt.Sprintf("The %s must be at least %d.", field, n)
	}
	return fmt.Sprintf("The %s must be at least %d characters.", field, n)
}

func maxMessage(field string, n int, numeric bool) string {
	if numeric {
		return fmt.Sprintf("The %s may not be greater than %d.", field, n)
	}
	return fmt.Sprintf("The %s may not be greater than %d characters.", field, n)
}

// ParseBool accepts the values Laravel's boolean rule does: true, false,
// 1, 0, yes, no and on, off, in any case.
func ParseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	}
	return false, false
}
