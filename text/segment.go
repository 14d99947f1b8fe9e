package text

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Break is a line break opportunity after byte Offset.
type Break struct {
	Offset    int
	Mandatory bool
}

// Segmenter finds line break opportunities.
type Segmenter interface {
	// Breaks returns the opportunities in s in ascending order. The end
	// of s is never reported.
	Breaks(s string) []Break
}

// UAX14 is the default Segmenter.
type UAX14 struct{}

// Breaks implements Segmenter.
func (UAX14) Breaks(s string) []Break {
	var (
		out    []Break
		state  = -1
		offset int
	)
	rest := s
	for len(rest) > 0 {
		var seg string
		var must bool
		seg, rest, must, state = uniseg.FirstLineSegmentInString(rest, state)
		offset += len(seg)
		if len(rest) == 0 {
			break
		}
		out = append(out, Break{Offset: offset, Mandatory: must})
	}
	return out
}

// Breaks returns the UAX #14 break opportunities in s.
func Breaks(s string) []Break {
	return UAX14{}.Breaks(s)
}

// Graphemes splits s into grapheme clusters.
func Graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// IsBreakingSpace reports whether r is whitespace a line may end in.
// No-break spaces are excluded.
func IsBreakingSpace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f', '\ufeff':
		return false
	}
	return unicode.IsSpace(r)
}

// TrailingSpace returns the length in bytes of the breaking whitespace
// at the end of s.
func TrailingSpace(s string) int {
	n := 0
	for len(s) > n {
		r, size := utf8.DecodeLastRuneInString(s[:len(s)-n])
		if !IsBreakingSpace(r) {
			break
		}
		n += size
	}
	return n
}
