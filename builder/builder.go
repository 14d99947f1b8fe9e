// Package builder assembles the document model from mapped records.
//
// Formatting is resolved exactly once per paragraph, run, table, row and
// cell. The resulting model carries resolved values only; the style table
// is attached as a shared, read-only reference.
package builder

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/model"
	"github.com/tsawler/docxlayout/style"
)

// Config holds builder configuration.
type Config struct {
	// DefaultGeometry applies to sections without page size or margins.
	DefaultGeometry model.PageGeometry
	// Part is the main document part name used in diagnostics.
	Part string
}

// DefaultConfig returns the default builder configuration.
func DefaultConfig() Config {
	return Config{
		DefaultGeometry: model.Letter(),
		Part:            "word/document.xml",
	}
}

// Builder converts a mapped document part into a model.Document.
type Builder struct {
	config    Config
	styles    *style.Table
	numbering *docx.Numbering
	diags     *diag.Collector
	log       *zap.Logger
	nextID    int
}

// New creates a builder. styles may be nil, in which case baseline
// formatting applies; numbering may be nil when the package has no
// numbering part. diags may be nil.
func New(styles *style.Table, numbering *docx.Numbering, diags *diag.Collector) *Builder {
	return NewWithConfig(styles, numbering, diags, DefaultConfig())
}

// NewWithConfig creates a builder with custom configuration.
func NewWithConfig(styles *style.Table, numbering *docx.Numbering, diags *diag.Collector, config Config) *Builder {
	if styles == nil {
		styles = style.Empty()
	}
	return &Builder{
		config:    config,
		styles:    styles,
		numbering: numbering,
		diags:     diags,
		log:       diags.Logger(),
	}
}

// Build is a convenience wrapper around New and (*Builder).Build.
func Build(part *docx.DocumentPart, styles *style.Table, numbering *docx.Numbering, diags *diag.Collector) (*model.Document, error) {
	return New(styles, numbering, diags).Build(part)
}

// Build creates the document model. It fails with
// diag.ErrStructuralViolation when content lies outside every section or
// a table row has no cells.
func (b *Builder) Build(part *docx.DocumentPart) (*model.Document, error) {
	if part == nil {
		part = &docx.DocumentPart{SectionEnd: -1}
	}
	if err := b.checkSections(part); err != nil {
		return nil, err
	}

	doc := &model.Document{Styles: b.styles, Numbering: b.numbering}
	current := &model.Section{}

	for _, blk := range part.Blocks {
		built, err := b.block(blk, nil)
		if err != nil {
			return nil, err
		}
		current.Blocks = append(current.Blocks, built)

		if p, ok := blk.(*docx.Paragraph); ok && p.Props.Section != nil {
			b.closeSection(doc, current, p.Props.Section)
			current = &model.Section{}
		}
	}
	if len(current.Blocks) > 0 || len(doc.Sections) == 0 {
		b.closeSection(doc, current, part.FinalSection)
	}

	b.log.Debug("document built",
		zap.Int("sections", len(doc.Sections)),
		zap.Int("nodes", b.nextID))
	return doc, nil
}

func (b *Builder) checkSections(part *docx.DocumentPart) error {
	if part.ExtraSections > 0 {
		return diag.New(diag.KindStructural, diag.ErrStructuralViolation, b.config.Part,
			fmt.Sprintf("body has %d section properties elements, want at most one", part.ExtraSections+1))
	}
	if part.SectionEnd >= 0 && part.SectionEnd < len(part.Blocks) {
		stray := len(part.Blocks) - part.SectionEnd
		return diag.New(diag.KindStructural, diag.ErrStructuralViolation, b.config.Part,
			fmt.Sprintf("%d block(s) follow the final section properties", stray)).
			At(blockOffset(part.Blocks[part.SectionEnd]))
	}
	return nil
}

func blockOffset(blk docx.Block) int64 {
	switch v := blk.(type) {
	case *docx.Paragraph:
		return v.Offset
	case *docx.Table:
		return v.Offset
	}
	return -1
}

func (b *Builder) closeSection(doc *model.Document, s *model.Section, sp *docx.SectionProps) {
	s.Index = len(doc.Sections)
	s.Geometry = b.geometry(sp)
	s.Break = "nextPage"
	if sp != nil && sp.Type != "" {
		s.Break = sp.Type
	}
	doc.Sections = append(doc.Sections, s)
}

// geometry converts section properties, taking unspecified values from
// the configured default. Word permits negative top and bottom margins
// to mean "do not grow to fit the header"; their magnitude is used.
func (b *Builder) geometry(sp *docx.SectionProps) model.PageGeometry {
	g := b.config.DefaultGeometry
	if sp == nil {
		return g
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&g.Width, sp.PageWidth)
	set(&g.Height, sp.PageHeight)
	set(&g.MarginTop, sp.MarginTop)
	set(&g.MarginRight, sp.MarginRight)
	set(&g.MarginBottom, sp.MarginBottom)
	set(&g.MarginLeft, sp.MarginLeft)
	set(&g.MarginHeader, sp.MarginHeader)
	set(&g.MarginFooter, sp.MarginFooter)
	g.MarginTop = math.Abs(g.MarginTop)
	g.MarginBottom = math.Abs(g.MarginBottom)
	if sp.Gutter != nil {
		g.MarginLeft += *sp.Gutter
	}
	return g
}

func (b *Builder) id() int {
	b.nextID++
	return b.nextID
}

func (b *Builder) soft(err error) {
	b.diags.AddErrorOnce(diag.KindStyleChain, style.DefaultPart, err)
}

func (b *Builder) block(blk docx.Block, tables []style.TableLayer) (model.Block, error) {
	switch v := blk.(type) {
	case *docx.Paragraph:
		return b.paragraph(v, tables), nil
	case *docx.Table:
		return b.table(v, tables)
	default:
		return nil, diag.New(diag.KindStructural, diag.ErrStructuralViolation, b.config.Part,
			fmt.Sprintf("unexpected block %T", blk))
	}
}
