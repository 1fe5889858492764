package password

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/km-arc/go-utilities/framework/random"
)

const (
	// fillHeadroom is the least number of fill draws allowed past
	// RequiredLength.
	fillHeadroom = 1 << 16
	// fillSafety multiplies the expected draws for collecting every
	// reachable rune.
	fillSafety = 16
)

// Generator builds passwords from a random.Generator.
type Generator struct {
	rnd      *random.Generator
	maxFills int
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxFillIterations caps the number of fill draws. Zero or less keeps
// the default, which grows with the filler alphabets (at least
// RequiredLength + 65536).
func WithMaxFillIterations(n int) Option {
	return func(g *Generator) { g.maxFills = n }
}

// New returns a Generator drawing from rnd (random.Default() when nil).
func New(rnd *random.Generator, opts ...Option) *Generator {
	if rnd == nil {
		rnd = random.Default()
	}
	g := &Generator{rnd: rnd}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var std = New(nil)

// Generate builds a password with the default generator.
// A nil policy means DefaultPolicy().
func Generate(policy *Policy, sets CharSets) (string, error) {
	return std.Generate(policy, sets)
}

// Generate builds a password satisfying policy from the given alphabets.
//
// One character of every required category is placed first, in the order
// lowercase, uppercase, digit, non-alphanumeric. The password is then padded
// with characters from a randomly chosen category until it is long enough
// and holds enough distinct characters. The special category only pads when
// RequireNonAlphanumeric is set. Each character lands at a random position
// in [0, len).
func (g *Generator) Generate(policy *Policy, sets CharSets) (string, error) {
	p := DefaultPolicy()
	if policy != nil {
		p = *policy
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	var alphabets [4][]rune
	for i, a := range sets.withDefaults() {
		alphabets[i] = random.Distinct(a)
	}
	if n := len(random.Distinct(joinRunes(alphabets[:]))); n < p.RequiredUniqueChars {
		return "", fmt.Errorf("%w: have %d, need %d", ErrInsufficientChars, n, p.RequiredUniqueChars)
	}

	categories := 3
	if p.RequireNonAlphanumeric {
		categories = 4
	}
	reachable := len(random.Distinct(joinRunes(alphabets[:categories])))
	if reachable < p.RequiredUniqueChars {
		return "", fmt.Errorf("%w: filler reaches %d distinct, need %d", ErrUnsatisfiable, reachable, p.RequiredUniqueChars)
	}

	b := &builder{rnd: g.rnd, seen: make(map[rune]struct{})}

	required := [4]bool{p.RequireLowercase, p.RequireUppercase, p.RequireDigit, p.RequireNonAlphanumeric}
	for i, req := range required {
		if !req {
			continue
		}
		if err := b.insert(alphabets[i]); err != nil {
			return "", err
		}
	}

	limit := g.fillLimit(p, alphabets[:categories], reachable)
	for n := 0; len(b.chars) < p.RequiredLength || len(b.seen) < p.RequiredUniqueChars; n++ {
		if n >= limit {
			return "", fmt.Errorf("%w: %d draws", ErrIterationLimit, limit)
		}
		k, err := random.Next(g.rnd, 0, int32(categories))
		if err != nil {
			return "", err
		}
		if err := b.insert(alphabets[k]); err != nil {
			return "", err
		}
	}

	return string(b.chars), nil
}

// fillLimit caps the fill draws. The default is RequiredLength plus the
// larger of fillHeadroom and fillSafety times the coupon-collector bound
// for gathering every reachable rune, where the rarest rune comes up once
// in categories*largest draws.
func (g *Generator) fillLimit(p Policy, filler [][]rune, reachable int) int {
	if g.maxFills > 0 {
		return g.maxFills
	}
	largest := 0
	for _, a := range filler {
		largest = max(largest, len(a))
	}
	collect := float64(len(filler)*largest) * (math.Log(float64(max(reachable, 1))) + 1)
	return p.RequiredLength + max(fillHeadroom, int(fillSafety*collect))
}

func joinRunes(sets [][]rune) string {
	var sb strings.Builder
	for _, s := range sets {
		sb.WriteString(string(s))
	}
	return sb.String()
}

// builder accumulates password runes and tracks the distinct ones.
type builder struct {
	rnd   *random.Generator
	chars []rune
	seen  map[rune]struct{}
}

// insert draws the position first, then the character.
func (b *builder) insert(alphabet []rune) error {
	pos, err := random.Next(b.rnd, 0, int32(len(b.chars)))
	if err != nil {
		return err
	}
	c, err := b.rnd.Pick(alphabet)
	if err != nil {
		return err
	}
	b.chars = slices.Insert(b.chars, int(pos), c)
	b.seen[c] = struct{}{}
	return nil
}
