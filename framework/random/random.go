package random

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// ErrOutOfRange is returned when a bounded draw is asked for lo > hi.
var ErrOutOfRange = errors.New("random: lo must be less than or equal to hi")

// Generator draws bounded values from a byte source.
type Generator struct {
	r io.Reader
}

// New returns a Generator reading from r. A nil r means crypto/rand.Reader.
func New(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{r: r}
}

var std = New(rand.Reader)

// Default returns the process-wide Generator backed by crypto/rand.
func Default() *Generator { return std }

// ── Bounded draws ─────────────────────────────────────────────────────────────

// Next returns a value in [lo, hi) drawn from g.
//
// sizeof(T) bytes are read and decoded as a little-endian signed integer;
// the result is |value| mod (hi-lo) + lo. When lo == hi, lo is
// returned and nothing is read.
//
//	n, err := random.Next[int32](g, -10, 10)
func Next[T constraints.Signed](g *Generator, lo, hi T) (T, error) {
	if lo > hi {
		return lo, fmt.Errorf("%w: got lo=%d hi=%d", ErrOutOfRange, lo, hi)
	}
	if lo == hi {
		return lo, nil
	}

	value, err := g.read(width[T]())
	if err != nil {
		return lo, err
	}

	// Unsigned arithmetic keeps the span exact for the full width of T.
	span := uint64(hi) - uint64(lo)
	mag := uint64(value)
	if value < 0 {
		mag = -mag
	}
	return lo + T(mag%span), nil
}

// width is sizeof(T) in bytes. binary.Size has no answer for int.
func width[T constraints.Signed]() int {
	var zero T
	if n := binary.Size(zero); n > 0 {
		return n
	}
	return bits.UintSize / 8
}

// read pulls size bytes and decodes them as a signed little-endian integer.
func (g *Generator) read(size int) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(g.r, buf[:size]); err != nil {
		return 0, fmt.Errorf("read random bytes: %w", err)
	}
	switch size {
	case 1:
		return int64(int8(buf[0])), nil
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(buf[:2]))), nil
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(buf[:4]))), nil
	default:
		return int64(binary.LittleEndian.Uint64(buf[:8])), nil
	}
}

// Int16 returns a value in [lo, hi).
func (g *Generator) Int16(lo, hi int16) (int16, error) { return Next(g, lo, hi) }

// Int32 returns a value in [lo, hi).
func (g *Generator) Int32(lo, hi int32) (int32, error) { return Next(g, lo, hi) }

// Int64 returns a value in [lo, hi).
func (g *Generator) Int64(lo, hi int64) (int64, error) { return Next(g, lo, hi) }

// ── Characters ────────────────────────────────────────────────────────────────

// Char returns one rune picked uniformly from the distinct runes of chars.
// An empty chars yields the zero rune.
func (g *Generator) Char(chars string) (rune, error) {
	if chars == "" {
		return 0, nil
	}
	return g.Pick(Distinct(chars))
}

// Pick returns distinct[Next(0, len(distinct))]. distinct must already be
// free of duplicates, as returned by Distinct; callers drawing repeatedly
// from one alphabet dedupe it once. An empty slice yields the zero rune.
func (g *Generator) Pick(distinct []rune) (rune, error) {
	if len(distinct) == 0 {
		return 0, nil
	}
	i, err := Next(g, 0, int32(len(distinct)))
	if err != nil {
		return 0, err
	}
	return distinct[i], nil
}

// Distinct returns the runes of s with duplicates removed, keeping the
// first occurrence of each.
func Distinct(s string) []rune {
	seen := make(map[rune]struct{}, len(s))
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// ── Package-level helpers ─────────────────────────────────────────────────────

// Int16 draws from the default generator.
func Int16(lo, hi int16) (int16, error) { return std.Int16(lo, hi) }

// Int32 draws from the default generator.
func Int32(lo, hi int32) (int32, error) { return std.Int32(lo, hi) }

// Int64 draws from the default generator.
func Int64(lo, hi int64) (int64, error) { return std.Int64(lo, hi) }

// Char draws from the default generator.
func Char(chars string) (rune, error) { return std.Char(chars) }
