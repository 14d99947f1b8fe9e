// Package model defines the document object model produced by the
// builder and consumed by layout.
//
// A [Document] owns its [Section] values, which own their blocks in
// document order. Every block is either a [*Paragraph] or a [*Table];
// every run content item is one of [Text], [Break], [Tab] or [Drawing].
// Formatting is stored fully resolved, so nothing downstream consults the
// style cascade again. The style table itself is shared read-only.
//
// All lengths are in points. [Rect] uses a top-left origin with Y growing
// downward, matching how pages are filled.
package model
