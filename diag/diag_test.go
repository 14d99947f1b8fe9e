package diag

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIs(t *testing.T) {
	cause := errors.New("bad crc")
	err := Wrap(KindContainer, ErrCorruptContainer, "word/document.xml", cause)

	if !errors.Is(err, ErrCorruptContainer) {
		t.Error("expected errors.Is to match the sentinel")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause")
	}
	if errors.Is(err, ErrMissingPart) {
		t.Error("unexpected match on a different sentinel")
	}

	wrapped := fmt.Errorf("load: %w", err)
	kind, ok := ErrorKind(wrapped)
	if !ok || kind != KindContainer {
		t.Errorf("ErrorKind = %v, %v; want Container, true", kind, ok)
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(KindXMLSyntax, ErrMalformedXML, "word/styles.xml", "unexpected EOF").At(42)
	got := err.Error()
	for _, want := range []string{"malformed xml", "word/styles.xml", "offset 42", "unexpected EOF"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
	if New(KindPart, ErrPartNotFound, "", "").Offset != -1 {
		t.Error("New should default to an unknown offset")
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector(nil)
	c.Warn(KindSchema, "word/document.xml", "ignored element %q", "w:foo")
	c.WarnOnce("numbering", KindPart, "word/numbering.xml", "numbering part missing")
	c.WarnOnce("numbering", KindPart, "word/numbering.xml", "numbering part missing")
	c.AddError(KindStyleChain, "word/styles.xml", New(KindStyleChain, ErrCyclicStyleChain, "word/styles.xml", "A -> B -> A"))
	c.AddError(KindFontMetrics, "", errors.New("plain"))
	c.AddError(KindFontMetrics, "", nil)

	got := c.Diagnostics()
	if len(got) != 4 {
		t.Fatalf("got %d diagnostics, want 4", len(got))
	}
	if got[2].Kind != KindStyleChain || got[2].Message != "A -> B -> A" {
		t.Errorf("unexpected diagnostic %+v", got[2])
	}
	if got[3].Kind != KindFontMetrics {
		t.Errorf("fallback kind = %v", got[3].Kind)
	}

	var nilCollector *Collector
	nilCollector.Warn(KindSchema, "", "dropped")
	if nilCollector.Len() != 0 || nilCollector.Diagnostics() != nil {
		t.Error("nil collector should discard everything")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindContainer, "Container"},
		{KindLayoutGeometry, "LayoutGeometry"},
		{KindFontMetrics, "FontMetrics"},
		{Kind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
