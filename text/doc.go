// Package text provides the Unicode text services layout depends on.
//
// # Line Breaking
//
// [Breaks] reports the line break opportunities of a string following
// the Unicode line breaking algorithm (UAX #14), as implemented by
// github.com/rivo/uniseg. Layout code accepts any [Segmenter], so a
// dictionary-based breaker for scripts without spaces can be substituted.
//
// # Grapheme Clusters
//
// [Graphemes] splits a string into user-perceived characters. Layout uses
// it when a single word is wider than the line and must be split.
//
// # Text Direction
//
// [DetectDirection] and [RuneDirection] classify text using the Unicode
// bidirectional character types from golang.org/x/text/unicode/bidi:
//
//	dir := text.DetectDirection("مرحبا")
//	if dir == text.RTL {
//	    // mirror the line
//	}
package text
