package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/docxlayout"
	"github.com/tsawler/docxlayout/internal/docxtest"
)

const testStyles = `
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/></w:style>
<w:style w:type="character" w:styleId="Strong"><w:name w:val="Strong"/><w:rPr><w:b/></w:rPr></w:style>`

func writeDocx(t *testing.T, body string) string {
	t.Helper()
	data := docxtest.Minimal(body).
		Styles(testStyles).
		Add("docProps/core.xml", docxtest.CoreProperties("Sample", "Grace")).
		Bytes(t)
	path := filepath.Join(t.TempDir(), "sample.docx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func defaultFlags() LayoutFlags {
	return LayoutFlags{Paper: "document", Fonts: "fixed"}
}

func TestLayoutCommand(t *testing.T) {
	path := writeDocx(t, docxtest.StyledP("Heading1", "Title")+docxtest.P("Body text"))
	var out bytes.Buffer
	cmd := &LayoutCmd{FileArg: FileArg{File: path}, LayoutFlags: defaultFlags(), Lines: true}
	if err := cmd.Run(zap.NewNop(), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"title: Sample", "author: Grace", "pages: 1", "page 1 (section 1): 612x792pt, 2 lines", `"Body text"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestTextCommand(t *testing.T) {
	path := writeDocx(t, docxtest.P("one")+docxtest.P("two"))
	var out bytes.Buffer
	cmd := &TextCmd{FileArg: FileArg{File: path}, LayoutFlags: defaultFlags()}
	if err := cmd.Run(zap.NewNop(), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != "one\ntwo\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPartsCommand(t *testing.T) {
	path := writeDocx(t, docxtest.P("x"))
	var out bytes.Buffer
	if err := (&PartsCmd{FileArg: FileArg{File: path}}).Run(zap.NewNop(), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "main: word/document.xml") {
		t.Errorf("output = %q", got)
	}
	for _, want := range []string{"[Content_Types].xml", "word/styles.xml", "docProps/core.xml", "deflate"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestStylesCommand(t *testing.T) {
	path := writeDocx(t, docxtest.P("x"))
	var out bytes.Buffer
	cmd := &StylesCmd{FileArg: FileArg{File: path}, Kind: "paragraph"}
	if err := cmd.Run(zap.NewNop(), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Heading1 -> Normal") || !strings.Contains(got, "(default)") {
		t.Errorf("output = %q", got)
	}
	if strings.Contains(got, "Strong") {
		t.Error("character style listed with --kind paragraph")
	}
}

func TestFileFromEnvironment(t *testing.T) {
	path := writeDocx(t, docxtest.P("x"))
	t.Setenv(envFile, path)
	got, err := FileArg{File: "ignored.docx"}.path()
	if err != nil || got != path {
		t.Errorf("path = %q, %v", got, err)
	}

	t.Setenv(envFile, "")
	if _, err := (FileArg{}).path(); err == nil {
		t.Error("expected error without a document")
	}
}

func TestMissingFileFails(t *testing.T) {
	cmd := &LayoutCmd{FileArg: FileArg{File: filepath.Join(t.TempDir(), "missing.docx")}, LayoutFlags: defaultFlags()}
	if err := cmd.Run(zap.NewNop(), &bytes.Buffer{}); err == nil {
		t.Error("expected error for a missing file")
	}
}

// chanWriter delivers each write on a channel.
type chanWriter chan string

func (w chanWriter) Write(p []byte) (int, error) {
	w <- string(p)
	return len(p), nil
}

func TestWatchPublishesSnapshots(t *testing.T) {
	path := writeDocx(t, docxtest.P("x"))
	loader := docxlayout.Open(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chanWriter, 8)
	errc := make(chan error, 1)
	go func() { errc <- watch(ctx, path, 10*time.Millisecond, loader, zap.NewNop(), out) }()

	select {
	case line := <-out:
		if !strings.Contains(line, "#1") || !strings.Contains(line, "1 pages") {
			t.Errorf("snapshot line = %q", line)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot published")
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("watch = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestMethodName(t *testing.T) {
	tests := map[uint16]string{0: "store", 8: "deflate", 93: "zstd", 12: "method-12"}
	for m, want := range tests {
		if got := methodName(m); got != want {
			t.Errorf("methodName(%d) = %q, want %q", m, got, want)
		}
	}
}
