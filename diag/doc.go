// Package diag defines the error taxonomy shared by every stage of the
// document pipeline.
//
// Hard failures are returned as [*Error] values that wrap one of the
// package sentinels, so callers can match them with errors.Is:
//
//	if errors.Is(err, diag.ErrMissingPart) {
//		// the package has no main document
//	}
//
// Soft problems never abort a load. They are recorded as [Diagnostic]
// values in a [Collector] and surfaced alongside the result.
package diag
