// Package random draws bounded integers and characters from a
// cryptographically strong byte source.
//
// # Bounded draws
//
//	g := random.Default()                 // crypto/rand.Reader
//	n, err := g.Int32(0, 100)             // [0, 100)
//	v, err := random.Next[int16](g, -5, 5)
//	c, err := g.Char("abcdef")            // one of a..f
//
// min == max is valid and returns min without reading the source.
// min > max fails with ErrOutOfRange.
//
// # Bias
//
// A draw reads sizeof(T) bytes, takes the absolute value of the signed
// integer they encode and reduces it modulo (max - min). When the span does
// not divide the width evenly, lower values are slightly more likely. The
// skew is negligible for 32 and 64 bit draws over small spans, which is what
// passwords and fixtures need, but this package is not an unbiased sampler
// for security-critical selection. The output distribution is part of the
// contract and is kept as is.
//
// # Sources
//
// New accepts any io.Reader, which lets tests substitute a deterministic or
// counting source. crypto/rand.Reader is safe for concurrent use, so the
// default Generator may be shared freely.
package random
