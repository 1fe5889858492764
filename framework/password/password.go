// Package password generates random passwords that satisfy a strength
// policy, drawing every character from framework/random.
//
//	pw, err := password.Generate(nil, password.CharSets{})   // DefaultPolicy
//
//	pw, err := password.Generate(&password.Policy{
//	    RequiredLength:         16,
//	    RequiredUniqueChars:    8,
//	    RequireDigit:           true,
//	    RequireLowercase:       true,
//	    RequireUppercase:       true,
//	    RequireNonAlphanumeric: true,
//	}, password.CharSets{Special: "!@#$%^&*()"})
package password

import (
	"errors"
	"fmt"
)

// Built-in alphabets used when a CharSets field is empty.
const (
	DefaultLowercase = "abcdefghijklmnopqrstuvwxyz"
	DefaultUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DefaultDigits    = "0123456789"
	DefaultSpecial   = "!@#$%^&*()_-+=[{]};:>|./?"
)

var (
	// ErrInsufficientChars is returned when the character sets hold fewer
	// distinct characters than the policy's RequiredUniqueChars.
	ErrInsufficientChars = errors.New("password: not enough unique characters in the character set")
	// ErrUnsatisfiable is returned when the categories used to pad the
	// password cannot reach RequiredUniqueChars.
	ErrUnsatisfiable = errors.New("password: policy cannot be satisfied by the filler categories")
	// ErrIterationLimit is returned when the fill loop exceeds its cap.
	ErrIterationLimit = errors.New("password: fill iteration limit reached")
	// ErrInvalidPolicy is returned for negative policy fields.
	ErrInvalidPolicy = errors.New("password: invalid policy")
)

// Policy holds password strength requirements.
type Policy struct {
	RequiredLength         int  `json:"required_length"`
	RequiredUniqueChars    int  `json:"required_unique_chars"`
	RequireLowercase       bool `json:"require_lowercase"`
	RequireUppercase       bool `json:"require_uppercase"`
	RequireDigit           bool `json:"require_digit"`
	RequireNonAlphanumeric bool `json:"require_non_alphanumeric"`
}

// DefaultPolicy returns the built-in requirements:
//   - 12 characters long
//   - at least 5 unique characters
//   - at least one digit, one lowercase and one uppercase letter
//   - special characters not required
func DefaultPolicy() Policy {
	return Policy{
		RequiredLength:      12,
		RequiredUniqueChars: 5,
		RequireLowercase:    true,
		RequireUppercase:    true,
		RequireDigit:        true,
	}
}

// Validate rejects negative lengths.
func (p Policy) Validate() error {
	if p.RequiredLength < 0 {
		return fmt.Errorf("%w: RequiredLength %d is negative", ErrInvalidPolicy, p.RequiredLength)
	}
	if p.RequiredUniqueChars < 0 {
		return fmt.Errorf("%w: RequiredUniqueChars %d is negative", ErrInvalidPolicy, p.RequiredUniqueChars)
	}
	return nil
}

// CharSets overrides the alphabet of each category. Empty fields fall back
// to the Default* constants.
type CharSets struct {
	Lowercase string
	Uppercase string
	Digits    string
	Special   string
}

// withDefaults returns the four alphabets in category order:
// lowercase, uppercase, digits, special.
func (s CharSets) withDefaults() [4]string {
	return [4]string{
		orDefault(s.Lowercase, DefaultLowercase),
		orDefault(s.Uppercase, DefaultUppercase),
		orDefault(s.Digits, DefaultDigits),
		orDefault(s.Special, DefaultSpecial),
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
