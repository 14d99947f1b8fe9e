package model

import (
	"time"

	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/style"
)

// Document is a built word-processing document.
type Document struct {
	Metadata  Metadata
	Sections  []*Section
	Styles    *style.Table    // shared, read-only
	Numbering *docx.Numbering // nil when the package has no numbering part
}

// Metadata contains document-level information
type Metadata struct {
	Title          string
	Author         string
	Subject        string
	Description    string
	Keywords       []string
	Category       string
	LastModifiedBy string
	Revision       string
	CreationDate   time.Time
	ModDate        time.Time
}

// Section is a run of blocks sharing one page geometry.
type Section struct {
	Index    int
	Geometry PageGeometry
	// Break is the section type: nextPage, continuous, evenPage, oddPage
	// or nextColumn.
	Break  string
	Blocks []Block
}

// SectionCount returns the number of sections
func (d *Document) SectionCount() int {
	return len(d.Sections)
}

// Paragraphs returns every paragraph in document order, including those
// nested in tables.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	d.Walk(func(b Block) bool {
		if p, ok := b.(*Paragraph); ok {
			out = append(out, p)
		}
		return true
	})
	return out
}

// Tables returns every top-level and nested table in document order.
func (d *Document) Tables() []*Table {
	var out []*Table
	d.Walk(func(b Block) bool {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Walk visits every block depth first in document order. Returning false
// skips the content of a table.
func (d *Document) Walk(fn func(Block) bool) {
	for _, s := range d.Sections {
		walkBlocks(s.Blocks, fn)
	}
}

func walkBlocks(blocks []Block, fn func(Block) bool) {
	for _, b := range blocks {
		if !fn(b) {
			continue
		}
		if t, ok := b.(*Table); ok {
			for _, row := range t.Rows {
				for _, cell := range row.Cells {
					walkBlocks(cell.Blocks, fn)
				}
			}
		}
	}
}

// Text returns the plain text of the document, one paragraph per line.
func (d *Document) Text() string {
	var text string
	for _, p := range d.Paragraphs() {
		text += p.Text() + "\n"
	}
	return text
}
