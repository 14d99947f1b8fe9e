package docxlayout

import (
	"encoding/hex"
	"strings"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/layout"
	"github.com/tsawler/docxlayout/model"
)

// Result is the output of one load. It is never modified after it is
// returned and may be shared between goroutines.
type Result struct {
	Document *model.Document
	// Tree is nil when only the document model was requested.
	Tree *layout.Tree
	// Diagnostics holds soft problems in pipeline order: parsing and
	// building first, then layout.
	Diagnostics []diag.Diagnostic
	// Digest is the BLAKE3-256 digest of the container bytes.
	Digest   [32]byte
	Metadata model.Metadata
	MainPart string
}

// DigestHex returns the digest as a hex string.
func (r *Result) DigestHex() string { return hex.EncodeToString(r.Digest[:]) }

// Diagnosed reports whether any diagnostic of the given kind was
// recorded.
func (r *Result) Diagnosed(kind diag.Kind) bool {
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Text returns the document text. With a layout tree, lines are joined
// by newlines and pages separated by a form feed; otherwise paragraphs
// are joined by newlines.
func (r *Result) Text() string {
	var b strings.Builder
	if r.Tree == nil {
		if r.Document == nil {
			return ""
		}
		for i, p := range r.Document.Paragraphs() {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(p.Text())
		}
		return b.String()
	}
	for i, page := range r.Tree.Pages {
		if i > 0 {
			b.WriteByte('\f')
		}
		for j, ln := range page.Lines() {
			if j > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(strings.TrimRight(ln.Text(), " "))
		}
	}
	return b.String()
}
