package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies where in the pipeline a problem originated.
type Kind int

const (
	KindContainer Kind = iota
	KindPart
	KindXMLSyntax
	KindSchema
	KindStyleChain
	KindStructural
	KindLayoutGeometry
	KindFontMetrics
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "Container"
	case KindPart:
		return "Part"
	case KindXMLSyntax:
		return "XMLSyntax"
	case KindSchema:
		return "Schema"
	case KindStyleChain:
		return "StyleChain"
	case KindStructural:
		return "Structural"
	case KindLayoutGeometry:
		return "LayoutGeometry"
	case KindFontMetrics:
		return "FontMetrics"
	default:
		return "Unknown"
	}
}

// Sentinel errors. Every *Error wraps exactly one of these.
var (
	ErrCorruptContainer         = errors.New("corrupt container")
	ErrMissingPart              = errors.New("missing mandatory part")
	ErrPartNotFound             = errors.New("part not found")
	ErrMalformedXML             = errors.New("malformed xml")
	ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")
	ErrCyclicStyleChain         = errors.New("cyclic style chain")
	ErrDanglingStyle            = errors.New("dangling style reference")
	ErrStructuralViolation      = errors.New("structural violation")
	ErrIncompatibleGeometry     = errors.New("incompatible page geometry")
	ErrFontMetrics              = errors.New("font metrics unavailable")
)

// Error is a located pipeline failure.
type Error struct {
	Kind   Kind
	Code   error  // one of the package sentinels
	Part   string // package part name, empty when not part specific
	Offset int64  // byte offset within Part, -1 when unknown
	Detail string
	Err    error // underlying cause, may be nil
}

// New creates an Error with an unknown offset.
func New(kind Kind, code error, part, detail string) *Error {
	return &Error{Kind: kind, Code: code, Part: part, Offset: -1, Detail: detail}
}

// Wrap creates an Error that records cause as its underlying error.
func Wrap(kind Kind, code error, part string, cause error) *Error {
	e := New(kind, code, part, "")
	e.Err = cause
	return e
}

// At returns a copy of e located at the given byte offset.
func (e *Error) At(offset int64) *Error {
	c := *e
	c.Offset = offset
	return &c
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code.Error())
	if e.Part != "" {
		b.WriteString(" in ")
		b.WriteString(e.Part)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the sentinel code and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Code}
	}
	return []error{e.Code, e.Err}
}

// Diagnostic converts the error to a diagnostic of the given severity.
func (e *Error) Diagnostic(sev Severity) Diagnostic {
	msg := e.Detail
	if msg == "" {
		msg = e.Code.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return Diagnostic{Kind: e.Kind, Severity: sev, Part: e.Part, Offset: e.Offset, Message: msg}
}

// ErrorKind reports the Kind of err if it is (or wraps) an *Error.
func ErrorKind(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
