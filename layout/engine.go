package layout

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/font"
	"github.com/tsawler/docxlayout/model"
)

// eps absorbs floating point error in fit tests.
const eps = 1e-6

// Engine lays out documents. It holds no per-document state and is safe
// for concurrent use when its font.Provider is.
type Engine struct {
	metrics font.Provider
	config  Config
}

// NewEngine creates an engine with the default configuration. A nil
// provider selects font.Standard.
func NewEngine(metrics font.Provider) *Engine {
	return NewEngineWithConfig(metrics, DefaultConfig())
}

// NewEngineWithConfig creates an engine with the specified configuration.
func NewEngineWithConfig(metrics font.Provider, config Config) *Engine {
	if metrics == nil {
		metrics = font.NewStandard()
	}
	return &Engine{metrics: metrics, config: config.withDefaults()}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.config }

// Layout positions doc on pages. A non-nil geometry replaces the page
// geometry of every section. It fails only with
// diag.ErrIncompatibleGeometry.
func (e *Engine) Layout(doc *model.Document, geometry *model.PageGeometry) (*Tree, error) {
	if doc == nil {
		doc = &model.Document{}
	}
	sections := doc.Sections
	if len(sections) == 0 {
		sections = []*model.Section{{Geometry: model.Letter(), Break: "nextPage"}}
	}

	geoms := make([]model.PageGeometry, len(sections))
	for i, s := range sections {
		g := s.Geometry
		if geometry != nil {
			g = *geometry
		}
		if err := g.Validate(); err != nil {
			var de *diag.Error
			if errors.As(err, &de) && len(sections) > 1 {
				de.Detail = fmt.Sprintf("section %d: %s", i+1, de.Detail)
			}
			return nil, err
		}
		geoms[i] = g
	}

	diags := diag.NewCollector(e.config.Logger)
	p := &pass{
		e:        e,
		diags:    diags,
		counters: newCounters(doc.Numbering, diags),
		tree:     &Tree{},
	}
	for i, s := range sections {
		p.startSection(i, geoms[i])
		for _, b := range s.Blocks {
			p.block(b)
		}
	}
	if len(p.tree.Pages) == 0 {
		p.ensure()
	}

	p.tree.Diagnostics = diags.Diagnostics()
	e.config.Logger.Debug("layout complete",
		zap.Int("pages", len(p.tree.Pages)),
		zap.Int("diagnostics", len(p.tree.Diagnostics)))
	return p.tree, nil
}

// pass is the state of one Layout call.
type pass struct {
	e        *Engine
	diags    *diag.Collector
	counters *counters
	tree     *Tree

	section  int
	geometry model.PageGeometry
	box      model.Rect // content box of the current section
	page     *Page      // nil until something is placed after a page break
	y        float64
}

func (p *pass) startSection(i int, g model.PageGeometry) {
	p.section = i
	p.geometry = g
	p.box = g.ContentBox()
	if !p.empty() {
		p.newPage()
	}
	if p.page != nil {
		// An empty page adopts the new section.
		p.page.Section = i
		p.page.Geometry = g
		p.y = p.box.Top()
	}
}

// ensure makes sure a page exists to place content on.
func (p *pass) ensure() {
	if p.page != nil {
		return
	}
	p.page = &Page{
		Number:   len(p.tree.Pages) + 1,
		Section:  p.section,
		Geometry: p.geometry,
	}
	p.tree.Pages = append(p.tree.Pages, p.page)
	p.y = p.box.Top()
}

func (p *pass) newPage() { p.page = nil }

func (p *pass) empty() bool { return p.page == nil || len(p.page.Items) == 0 }

// fits reports whether h more points fit on the current page.
func (p *pass) fits(h float64) bool {
	if p.page == nil {
		return h <= p.box.Height+eps
	}
	return p.y+h <= p.box.Bottom()+eps
}

func (p *pass) place(it Item, h float64) {
	p.ensure()
	it.translate(0, p.y)
	p.page.Items = append(p.page.Items, it)
	p.y += h
}

func (p *pass) block(b model.Block) {
	switch v := b.(type) {
	case *model.Paragraph:
		p.paragraph(v)
	case *model.Table:
		p.table(v)
	}
}

// paragraph places the lines of a body paragraph, breaking pages as
// needed.
func (p *pass) paragraph(para *model.Paragraph) {
	lines := p.lines(para, p.box.Width)
	for _, ln := range lines {
		ln.translate(p.box.X, 0)
	}
	props := para.Props

	if props.PageBreakBefore && !p.empty() {
		p.newPage()
	}
	p.ensure()
	p.y += props.SpaceBefore

	total := 0.0
	explicit := false
	for _, ln := range lines {
		total += ln.Rect.Height
		if ln.Break != nil && *ln.Break != docx.BreakLine {
			explicit = true
		}
	}
	if props.KeepLines && !p.empty() && !p.fits(total) && total <= p.box.Height {
		p.newPage()
	}

	forced := -1
	if props.WidowControl && !explicit && len(lines) > 1 && !p.empty() {
		k, y := 0, p.y
		for _, ln := range lines {
			if y+ln.Rect.Height > p.box.Bottom()+eps {
				break
			}
			y += ln.Rect.Height
			k++
		}
		switch {
		case k == 1:
			p.newPage()
		case k == len(lines)-1 && len(lines) >= 3:
			forced = k - 1
		}
	}

	for i, ln := range lines {
		if i == forced || (!p.empty() && !p.fits(ln.Rect.Height)) {
			p.newPage()
		}
		p.place(ln, ln.Rect.Height)
		if ln.Break != nil && *ln.Break != docx.BreakLine {
			p.newPage()
		}
	}
	if p.page != nil {
		p.y += props.SpaceAfter
	}
}
