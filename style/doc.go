// Package style resolves effective formatting from the style cascade.
//
// A [Table] is built once per document from the mapped styles part and
// is never modified afterwards, so it can be shared by every consumer.
// Effective properties are computed by taking, for each property, the
// first value found walking from the most specific layer to the least:
//
//	direct formatting
//	character style chain (runs only)
//	paragraph style chain
//	table style chains, innermost table first, conditional regions
//	    above the whole-table formatting
//	document defaults
//	built-in baseline
//
// Style chains follow basedOn links. A cycle drops the whole chain with
// [diag.ErrCyclicStyleChain]; a link to an undefined style truncates the
// chain with [diag.ErrDanglingStyle]. Both are soft errors: the returned
// value is always usable.
package style
