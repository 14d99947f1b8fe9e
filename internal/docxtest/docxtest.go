// Package docxtest builds in-memory word-processing packages for tests.
package docxtest

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Namespaces declares the prefixes used by the fixture documents.
const Namespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"`

// Method aliases for entry compression.
const (
	Store   = zip.Store
	Deflate = zip.Deflate
	Zstd    = zstd.ZipMethodWinZip
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>
<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com/" TargetMode="External"/>
</Relationships>`

type entry struct {
	name    string
	content []byte
	method  uint16
}

// Builder accumulates package entries in insertion order.
type Builder struct {
	entries []entry
}

// New returns an empty builder.
func New() *Builder { return &Builder{} }

// Minimal returns a builder holding the content-type map, both
// relationship parts and a main document with the given body XML.
func Minimal(body string) *Builder {
	return New().
		Add("[Content_Types].xml", contentTypes).
		Add("_rels/.rels", packageRels).
		Add("word/_rels/document.xml.rels", documentRels).
		Add("word/document.xml", Document(body))
}

// Add sets name to content, deflated.
func (b *Builder) Add(name, content string) *Builder {
	return b.AddMethod(name, content, Deflate)
}

// AddMethod sets name to content using the given compression method.
// An existing entry with the same name is replaced in place.
func (b *Builder) AddMethod(name, content string, method uint16) *Builder {
	for i := range b.entries {
		if b.entries[i].name == name {
			b.entries[i] = entry{name: name, content: []byte(content), method: method}
			return b
		}
	}
	b.entries = append(b.entries, entry{name: name, content: []byte(content), method: method})
	return b
}

// Styles adds a styles part with the given inner XML.
func (b *Builder) Styles(inner string) *Builder {
	return b.Add("word/styles.xml", Wrap("styles", inner))
}

// Numbering adds a numbering part with the given inner XML.
func (b *Builder) Numbering(inner string) *Builder {
	return b.Add("word/numbering.xml", Wrap("numbering", inner))
}

// Remove deletes name if present.
func (b *Builder) Remove(name string) *Builder {
	for i := range b.entries {
		if b.entries[i].name == name {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			break
		}
	}
	return b
}

// Bytes writes the archive. It fails the test on error.
func (b *Builder) Bytes(t testing.TB) []byte {
	t.Helper()
	data, err := b.Build()
	if err != nil {
		t.Fatalf("building package: %v", err)
	}
	return data
}

// Build writes the archive.
func (b *Builder) Build() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	for _, e := range b.entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: e.method})
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", e.name, err)
		}
		if _, err := w.Write(e.content); err != nil {
			return nil, fmt.Errorf("writing %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Document wraps body in a w:document/w:body element.
func Document(body string) string {
	return Wrap("document", "<w:body>"+body+"</w:body>")
}

// Wrap returns an XML part whose root is w:<root> with the fixture
// namespaces declared.
func Wrap(root, inner string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		"<w:" + root + " " + Namespaces + ">" + inner + "</w:" + root + ">"
}

// P returns a paragraph with one run per text argument.
func P(texts ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	for _, t := range texts {
		b.WriteString(R(t))
	}
	b.WriteString("</w:p>")
	return b.String()
}

// StyledP returns a paragraph with pStyle set to styleID.
func StyledP(styleID string, texts ...string) string {
	var b strings.Builder
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="` + styleID + `"/></w:pPr>`)
	for _, t := range texts {
		b.WriteString(R(t))
	}
	b.WriteString("</w:p>")
	return b.String()
}

// ListP returns a paragraph referencing numbering instance numID at ilvl.
func ListP(numID, ilvl int, text string) string {
	return fmt.Sprintf(`<w:p><w:pPr><w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr></w:pPr>%s</w:p>`,
		ilvl, numID, R(text))
}

// R returns a run holding text with preserved spaces.
func R(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

// SectPr returns a section properties element with the given page size
// and uniform margins, all in twips.
func SectPr(w, h, margin int) string {
	return fmt.Sprintf(`<w:sectPr><w:pgSz w:w="%d" w:h="%d"/>`+
		`<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`,
		w, h, margin, margin, margin, margin)
}

// CoreProperties returns a docProps/core.xml part.
func CoreProperties(title, creator string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + title + `</dc:title><dc:creator>` + creator + `</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">2024-01-02T03:04:05Z</dcterms:created>` +
		`</cp:coreProperties>`
}
