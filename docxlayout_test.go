package docxlayout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/font"
	"github.com/tsawler/docxlayout/internal/docxtest"
	"github.com/tsawler/docxlayout/model"
	"github.com/tsawler/docxlayout/style"
)

const testStyles = `
<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault></w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:rPr><w:sz w:val="24"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>
	<w:pPr><w:spacing w:before="480"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>`

const testNumbering = `
<w:abstractNum w:abstractNumId="0">
	<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/>
		<w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl>
</w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>`

func minimal(t *testing.T, body string) []byte {
	t.Helper()
	return docxtest.Minimal(body).Bytes(t)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("nonexistent.docx").Layout()
	if !errors.Is(err, diag.ErrCorruptContainer) {
		t.Errorf("err = %v, want corrupt container", err)
	}
}

func TestNoSource(t *testing.T) {
	if _, err := FromBytes(nil).Layout(); err == nil {
		t.Error("expected error without a source")
	}
}

func TestLayoutMinimal(t *testing.T) {
	data := minimal(t, docxtest.P("Hello ", "world")+docxtest.SectPr(12240, 15840, 1440))
	res, err := FromBytes(data).Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if res.Tree.PageCount() != 1 {
		t.Errorf("pages = %d, want 1", res.Tree.PageCount())
	}
	if got := res.Text(); got != "Hello world" {
		t.Errorf("text = %q", got)
	}
	if res.MainPart != "word/document.xml" {
		t.Errorf("main part = %q", res.MainPart)
	}
	if res.Digest == [32]byte{} || len(res.DigestHex()) != 64 {
		t.Errorf("digest = %s", res.DigestHex())
	}
	g := res.Tree.Pages[0].Geometry
	if g.Width != 612 || g.Height != 792 || g.MarginLeft != 72 {
		t.Errorf("geometry = %+v", g)
	}
}

func TestDocumentOnly(t *testing.T) {
	data := minimal(t, docxtest.P("one")+docxtest.P("two"))
	res, err := FromBytes(data).Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if res.Tree != nil {
		t.Error("Document produced a layout tree")
	}
	if got := res.Text(); got != "one\ntwo" {
		t.Errorf("text = %q", got)
	}
}

func TestHeadingAndBodyStyles(t *testing.T) {
	data := docxtest.Minimal(docxtest.StyledP("Heading1", "Title") + docxtest.P("Body")).
		Styles(testStyles).
		Bytes(t)
	res, err := FromBytes(data).Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	paras := res.Document.Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs", len(paras))
	}
	head, body := paras[0], paras[1]
	if hr := head.Runs[0].Props; hr.Size != 16 || !hr.Bold {
		t.Errorf("heading run = size %v bold %v", hr.Size, hr.Bold)
	}
	if head.Props.SpaceBefore != 24 {
		t.Errorf("heading space before = %v", head.Props.SpaceBefore)
	}
	if br := body.Runs[0].Props; br.Size != 12 || br.Bold || br.Font != "Calibri" {
		t.Errorf("body run = %+v", br)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
}

func TestMalformedStylesDegrade(t *testing.T) {
	data := docxtest.Minimal(docxtest.StyledP("Heading1", "Title")).
		Add("word/styles.xml", "<w:styles").
		Bytes(t)
	res, err := FromBytes(data).Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Part == "word/styles.xml" && d.Kind == diag.KindXMLSyntax {
			found = true
		}
	}
	if !found {
		t.Errorf("no styles diagnostic in %v", res.Diagnostics)
	}
	if got := res.Document.Paragraphs()[0].Runs[0].Props.Size; got != style.BaselineSize {
		t.Errorf("size = %v, want baseline", got)
	}
}

func TestListNumbering(t *testing.T) {
	body := docxtest.ListP(1, 0, "First") + docxtest.ListP(1, 0, "Second") + docxtest.ListP(1, 0, "Third")
	data := docxtest.Minimal(body).Numbering(testNumbering).Bytes(t)
	res, err := FromBytes(data).Metrics(font.Fixed{}).Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	lines := res.Tree.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	for i, want := range []string{"1.", "2.", "3."} {
		if got := lines[i].Text(); !strings.HasPrefix(got, want) {
			t.Errorf("line %d = %q, want prefix %q", i, got, want)
		}
	}
}

func TestMissingNumberingPart(t *testing.T) {
	data := minimal(t, docxtest.ListP(1, 0, "a")+docxtest.ListP(1, 0, "b"))
	res, err := FromBytes(data).Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	n := 0
	for _, d := range res.Diagnostics {
		if strings.Contains(d.Message, "numbering part missing") {
			n++
		}
	}
	if n != 1 {
		t.Errorf("got %d numbering diagnostics, want 1: %v", n, res.Diagnostics)
	}
	if got := res.Text(); got != "a\nb" {
		t.Errorf("text = %q", got)
	}
}

func TestFatalErrors(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
		want error
		kind diag.Kind
	}{
		{
			name: "not a zip",
			data: func(*testing.T) []byte { return []byte("plain text") },
			want: diag.ErrCorruptContainer,
			kind: diag.KindContainer,
		},
		{
			name: "malformed main part",
			data: func(t *testing.T) []byte {
				return docxtest.Minimal("").Add("word/document.xml", "<w:document><w:body>").Bytes(t)
			},
			want: diag.ErrMalformedXML,
			kind: diag.KindXMLSyntax,
		},
		{
			name: "missing main part",
			data: func(t *testing.T) []byte {
				return docxtest.Minimal("").Remove("word/document.xml").Bytes(t)
			},
			want: diag.ErrMissingPart,
			kind: diag.KindPart,
		},
		{
			name: "content after final section",
			data: func(t *testing.T) []byte {
				return minimal(t, docxtest.P("a")+docxtest.SectPr(12240, 15840, 1440)+docxtest.P("stray"))
			},
			want: diag.ErrStructuralViolation,
			kind: diag.KindStructural,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes(tt.data(t)).Layout()
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if kind, ok := diag.ErrorKind(err); !ok || kind != tt.kind {
				t.Errorf("kind = %v, %v; want %v", kind, ok, tt.kind)
			}
		})
	}
}

func TestGeometryOverride(t *testing.T) {
	data := minimal(t, docxtest.P("text"))
	res, err := FromBytes(data).Geometry(model.A4()).Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if g := res.Tree.Pages[0].Geometry; g != model.A4() {
		t.Errorf("geometry = %+v, want A4", g)
	}

	_, err = FromBytes(data).Geometry(model.PageGeometry{Width: 100, Height: 100, MarginLeft: 60, MarginRight: 60}).Layout()
	if !errors.Is(err, diag.ErrIncompatibleGeometry) {
		t.Errorf("err = %v, want incompatible geometry", err)
	}
}

func TestMetadata(t *testing.T) {
	data := docxtest.Minimal(docxtest.P("x")).
		Add("docProps/core.xml", docxtest.CoreProperties("Quarterly Report", "Ada")).
		Bytes(t)
	res, err := FromBytes(data).Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if res.Metadata.Title != "Quarterly Report" || res.Metadata.Author != "Ada" {
		t.Errorf("metadata = %+v", res.Metadata)
	}
	if res.Document.Metadata.Title != res.Metadata.Title {
		t.Error("document metadata not set")
	}
	if res.Metadata.CreationDate.Year() != 2024 {
		t.Errorf("created = %v", res.Metadata.CreationDate)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FromBytes(minimal(t, docxtest.P("x"))).Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestChainImmutability(t *testing.T) {
	base := FromBytes(nil)
	withA4 := base.Geometry(model.A4())
	withNil := base.Metrics(nil)

	if base.options.geometry != nil {
		t.Error("base loader should have no geometry set")
	}
	if withA4.options.geometry == nil || *withA4.options.geometry != model.A4() {
		t.Error("derived loader should have A4 geometry")
	}
	if base.err != nil || withNil.err == nil {
		t.Error("error must only be set on the derived loader")
	}
}

func TestStyleCacheShared(t *testing.T) {
	data := docxtest.Minimal(docxtest.StyledP("Heading1", "Title")).Styles(testStyles).Bytes(t)
	cache := style.NewCache()
	loader := FromBytes(data).StyleCache(cache)
	for i := 0; i < 2; i++ {
		if _, err := loader.Document(); err != nil {
			t.Fatalf("Document: %v", err)
		}
	}
	if hits, _ := cache.Stats(); hits == 0 {
		t.Error("second load did not reuse cached chains")
	}
}

func TestMust(t *testing.T) {
	if got := Must("hello", nil); got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected Must to panic on error")
		}
	}()
	Must("", errors.New("boom"))
}
