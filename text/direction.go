package text

import (
	"golang.org/x/text/unicode/bidi"
)

// Direction represents the writing direction of text.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, CJK, etc.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic, Hebrew, etc.
	RTL
	// Neutral for numbers, punctuation, whitespace, etc.
	Neutral
)

// String returns a string representation of the direction ("LTR", "RTL", or "Neutral").
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// DetectDirection returns the dominant direction of text: the one with
// more strong characters, LTR on a tie, or Neutral if there are none.
func DetectDirection(text string) Direction {
	ltr, rtl := 0, 0
	for _, r := range text {
		switch RuneDirection(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}
	switch {
	case ltr == 0 && rtl == 0:
		return Neutral
	case rtl > ltr:
		return RTL
	default:
		return LTR
	}
}

// RuneDirection returns the strong direction of r from its bidirectional
// character type. Weak and neutral types, digits included, are Neutral.
func RuneDirection(r rune) Direction {
	p, _ := bidi.LookupRune(r)
	switch p.Class() {
	case bidi.L:
		return LTR
	case bidi.R, bidi.AL:
		return RTL
	default:
		return Neutral
	}
}

// Resolve returns the direction of a paragraph. An explicit bidi setting
// wins; otherwise the first strong character decides, defaulting to LTR.
func Resolve(text string, bidiParagraph bool) Direction {
	if bidiParagraph {
		return RTL
	}
	for _, r := range text {
		if d := RuneDirection(r); d != Neutral {
			return d
		}
	}
	return LTR
}
