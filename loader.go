package docxlayout

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tsawler/docxlayout/builder"
	"github.com/tsawler/docxlayout/container"
	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/font"
	"github.com/tsawler/docxlayout/layout"
	"github.com/tsawler/docxlayout/model"
	"github.com/tsawler/docxlayout/style"
	"github.com/tsawler/docxlayout/xmltree"
)

// Loader provides a fluent interface for loading a package. Each
// configuration method returns a new Loader, so a base Loader can be
// shared and specialised concurrently.
type Loader struct {
	// Source: exactly one is set
	path string
	data []byte

	options LoadOptions

	// Accumulated error (fail-fast)
	err error
}

func (l *Loader) clone() *Loader {
	return &Loader{
		path:    l.path,
		data:    l.data,
		options: l.options.clone(),
		err:     l.err,
	}
}

// ============================================================================
// Configuration Methods (return new Loader instance)
// ============================================================================

// Geometry lays every section out on g instead of the geometry declared
// by the document.
//
// Example:
//
//	res, err := docxlayout.Open("doc.docx").Geometry(model.A4()).Layout()
func (l *Loader) Geometry(g model.PageGeometry) *Loader {
	c := l.clone()
	c.options.geometry = &g
	return c
}

// Metrics sets the font metrics provider used for layout. The default is
// font.NewStandard().
func (l *Loader) Metrics(p font.Provider) *Loader {
	c := l.clone()
	if p == nil {
		c.err = errors.New("docxlayout: nil metrics provider")
		return c
	}
	c.options.metrics = p
	return c
}

// Logger sets the logger that receives diagnostics and debug output.
func (l *Loader) Logger(log *zap.Logger) *Loader {
	c := l.clone()
	if log == nil {
		log = zap.NewNop()
	}
	c.options.log = log
	return c
}

// LayoutConfig replaces the layout configuration. A nil Logger in cfg
// inherits the Loader's logger.
func (l *Loader) LayoutConfig(cfg layout.Config) *Loader {
	c := l.clone()
	c.options.layout = cfg
	return c
}

// Limits sets the container resource limits.
func (l *Loader) Limits(lim container.Limits) *Loader {
	c := l.clone()
	c.options.limits = lim
	return c
}

// StyleCache shares a style chain cache between loads. Entries are keyed
// by styles content, so reloads of an unchanged styles part reuse the
// resolved chains.
func (l *Loader) StyleCache(cache *style.Cache) *Loader {
	c := l.clone()
	c.options.cache = cache
	return c
}

// ============================================================================
// Terminal Methods
// ============================================================================

// Package opens the container without parsing any part.
func (l *Loader) Package() (*container.Package, error) {
	if l.err != nil {
		return nil, l.err
	}
	opts := []container.Option{
		container.WithLimits(l.options.limits),
		container.WithLogger(l.options.log),
	}
	if l.data != nil {
		return container.Open(l.data, opts...)
	}
	if l.path == "" {
		return nil, errors.New("docxlayout: no file or data specified")
	}
	return container.OpenFile(l.path, opts...)
}

// Document loads the package and builds the document model without
// laying it out. Result.Tree is nil.
func (l *Loader) Document() (*Result, error) {
	return l.load(context.Background(), false)
}

// Layout loads the package, builds the document model and lays it out.
//
// Example:
//
//	res, err := docxlayout.Open("document.docx").Layout()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Tree.PageCount(), "pages")
func (l *Loader) Layout() (*Result, error) {
	return l.load(context.Background(), true)
}

// Load is Layout with cancellation. ctx is checked between pipeline
// stages.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	return l.load(ctx, true)
}

func (l *Loader) load(ctx context.Context, withLayout bool) (*Result, error) {
	pkg, err := l.Package()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := l.options.log
	diags := diag.NewCollector(log)
	main := pkg.MainPart()

	part, err := mapMain(pkg, main, diags)
	if err != nil {
		return nil, err
	}
	styles := l.loadStyles(pkg, main, diags)
	numbering := loadNumbering(pkg, main, diags)
	meta := loadMetadata(pkg, diags)

	bcfg := builder.DefaultConfig()
	bcfg.Part = main
	doc, err := builder.NewWithConfig(styles, numbering, diags, bcfg).Build(part)
	if err != nil {
		return nil, err
	}
	doc.Metadata = meta

	res := &Result{
		Document: doc,
		Digest:   pkg.Digest(),
		Metadata: meta,
		MainPart: main,
	}
	if !withLayout {
		res.Diagnostics = diags.Diagnostics()
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := l.options.layout
	if cfg.Logger == nil {
		cfg.Logger = log
	}
	tree, err := layout.NewEngineWithConfig(l.options.metrics, cfg).Layout(doc, l.options.geometry)
	if err != nil {
		return nil, err
	}
	res.Tree = tree
	res.Diagnostics = append(diags.Diagnostics(), tree.Diagnostics...)

	log.Debug("document loaded",
		zap.String("digest", res.DigestHex()),
		zap.Int("sections", doc.SectionCount()),
		zap.Int("pages", tree.PageCount()),
		zap.Int("diagnostics", len(res.Diagnostics)))
	return res, nil
}

// mapMain parses and maps the main document part. Every failure here is
// fatal.
func mapMain(pkg *container.Package, main string, diags *diag.Collector) (*docx.DocumentPart, error) {
	data, err := pkg.Get(main)
	if err != nil {
		return nil, err
	}
	tree, err := xmltree.Parse(data)
	if err != nil {
		return nil, xmltree.InPart(err, main)
	}
	return docx.MapDocument(tree, main, diags)
}

// optionalPart returns the parsed part related to source by relType.
// A missing part yields nil without a diagnostic; a malformed one yields
// nil and a diagnostic naming the part.
func optionalPart(pkg *container.Package, source, relType, fallback string, diags *diag.Collector) (string, []byte, *xmltree.Node) {
	name := pkg.Related(source, relType, fallback)
	if !pkg.Has(name) {
		return name, nil, nil
	}
	data, err := pkg.Get(name)
	if err != nil {
		diags.AddError(diag.KindPart, name, err)
		return name, nil, nil
	}
	tree, err := xmltree.Parse(data)
	if err != nil {
		diags.AddError(diag.KindXMLSyntax, name, xmltree.InPart(err, name))
		return name, nil, nil
	}
	return name, data, tree
}

func (l *Loader) loadStyles(pkg *container.Package, main string, diags *diag.Collector) *style.Table {
	name, data, tree := optionalPart(pkg, main, container.RelStyles, "word/styles.xml", diags)
	opts := []style.Option{style.WithPart(name), style.WithCache(l.options.cache)}
	if tree == nil {
		return style.NewTable(nil, nil, opts...)
	}
	styles, err := docx.MapStyles(tree, name, diags)
	if err != nil {
		diags.AddError(diag.KindSchema, name, err)
		return style.NewTable(nil, nil, opts...)
	}
	return style.NewTable(styles, data, opts...)
}

func loadNumbering(pkg *container.Package, main string, diags *diag.Collector) *docx.Numbering {
	name, _, tree := optionalPart(pkg, main, container.RelNumbering, "word/numbering.xml", diags)
	if tree == nil {
		return nil
	}
	numbering, err := docx.MapNumbering(tree, name, diags)
	if err != nil {
		diags.AddError(diag.KindSchema, name, err)
		return nil
	}
	return numbering
}

func loadMetadata(pkg *container.Package, diags *diag.Collector) model.Metadata {
	name := pkg.Related("", container.RelCoreProperties, "docProps/core.xml")
	if !pkg.Has(name) {
		return model.Metadata{}
	}
	data, err := pkg.Get(name)
	if err != nil {
		diags.AddError(diag.KindPart, name, err)
		return model.Metadata{}
	}
	cp, err := docx.MapCoreProperties(data, name)
	if err != nil {
		diags.AddError(diag.KindSchema, name, err)
		return model.Metadata{}
	}
	return model.Metadata{
		Title:          cp.Title,
		Author:         cp.Creator,
		Subject:        cp.Subject,
		Description:    cp.Description,
		Keywords:       cp.Keywords,
		Category:       cp.Category,
		LastModifiedBy: cp.LastModifiedBy,
		Revision:       cp.Revision,
		CreationDate:   cp.Created,
		ModDate:        cp.Modified,
	}
}
