// Package font measures text for layout.
//
// A [Provider] returns the advance width and vertical metrics of a string
// set in a given family, size and weight. Three providers are included:
//
//   - [Standard] uses built-in advance width tables for a sans, serif and
//     monospaced face, selected by family name. It needs no font files.
//   - [OpenType] measures with real font programs through
//     golang.org/x/image/font/opentype. The Go font family is registered
//     by default and further fonts can be added with [OpenType.Register].
//   - [Fixed] gives every grapheme cluster the same advance, which makes
//     layout results easy to predict in tests.
//
// All lengths are in points.
package font
