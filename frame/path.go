package frame

import (
	"fmt"
	"strings"
)

// Ext is the fixed image extension for sequence frames.
const Ext = "webp"

// DefaultDigits is the default zero-padding width for frame numbers.
const DefaultDigits = 3

// PathBuilder constructs frame paths. The layout is an external
// file-naming contract and must stay bit-exact:
//
//	{base}{prefix}/{prefix}{number zero-padded to digits}.webp
//
// Frame numbers are 1-based.
type PathBuilder struct {
	base   string
	prefix string
	digits int
}

// NewPathBuilder creates a PathBuilder. A trailing separator on base is
// normalized to exactly one; an empty base stays empty.
func NewPathBuilder(base, prefix string, digits int) *PathBuilder {
	if base != "" {
		base = strings.TrimRight(base, "/") + "/"
	}
	if digits <= 0 {
		digits = DefaultDigits
	}
	return &PathBuilder{
		base:   base,
		prefix: prefix,
		digits: digits,
	}
}

// Path returns the path for the given 1-based frame number.
func (b *PathBuilder) Path(number int) string {
	return fmt.Sprintf("%s%s/%s%0*d.%s", b.base, b.prefix, b.prefix, b.digits, number, Ext)
}

// Prefix returns the sequence name prefix.
func (b *PathBuilder) Prefix() string { return b.prefix }

// Pattern returns a human-readable form of the path contract, with the
// frame number replaced by its padding template. Used by inspect output.
func (b *PathBuilder) Pattern() string {
	return fmt.Sprintf("%s%s/%s%s.%s", b.base, b.prefix, b.prefix, strings.Repeat("N", b.digits), Ext)
}
