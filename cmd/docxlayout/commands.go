package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/docxlayout"
	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/font"
	"github.com/tsawler/docxlayout/layout"
	"github.com/tsawler/docxlayout/model"
	"github.com/tsawler/docxlayout/style"
)

// FileArg is the document argument shared by every command.
type FileArg struct {
	File string `arg:"" optional:"" help:"Path to the .docx file (overridden by DOCXLAYOUT_FILE)" type:"path"`
}

func (f FileArg) path() (string, error) {
	if v := os.Getenv(envFile); v != "" {
		return v, nil
	}
	if f.File == "" {
		return "", errors.New("no document given: pass a path or set " + envFile)
	}
	return f.File, nil
}

// LayoutFlags are the options of commands that lay a document out.
type LayoutFlags struct {
	Paper           string `name:"paper" default:"document" enum:"document,letter,a4" help:"Page geometry (document, letter, a4)"`
	Fonts           string `name:"fonts" default:"standard" enum:"standard,go,fixed" help:"Font metrics (standard, go, fixed)"`
	NoRepeatHeaders bool   `name:"no-repeat-headers" help:"Do not repeat table header rows on continuation pages"`
}

func (f LayoutFlags) loader(path string, log *zap.Logger) (*docxlayout.Loader, error) {
	l := docxlayout.Open(path).Logger(log)

	switch f.Paper {
	case "letter":
		l = l.Geometry(model.Letter())
	case "a4":
		l = l.Geometry(model.A4())
	}

	switch f.Fonts {
	case "go":
		p, err := font.NewGoFonts(font.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("loading Go fonts: %w", err)
		}
		l = l.Metrics(p)
	case "fixed":
		l = l.Metrics(font.Fixed{})
	}

	cfg := layout.DefaultConfig()
	cfg.RepeatHeaderRows = !f.NoRepeatHeaders
	return l.LayoutConfig(cfg), nil
}

func (f LayoutFlags) run(file FileArg, log *zap.Logger) (*docxlayout.Result, error) {
	path, err := file.path()
	if err != nil {
		return nil, err
	}
	l, err := f.loader(path, log)
	if err != nil {
		return nil, err
	}
	return l.Layout()
}

// LayoutCmd prints a page summary.
type LayoutCmd struct {
	FileArg
	LayoutFlags
	Lines bool `help:"Print every line with its position"`
}

func (c *LayoutCmd) Run(log *zap.Logger, out io.Writer) error {
	res, err := c.run(c.FileArg, log)
	if err != nil {
		return err
	}
	printSummary(out, res)
	for _, page := range res.Tree.Pages {
		g := page.Geometry
		lines := page.Lines()
		fmt.Fprintf(out, "page %d (section %d): %gx%gpt, %d lines, %d tables\n",
			page.Number, page.Section+1, g.Width, g.Height, len(lines), countTables(page))
		if !c.Lines {
			continue
		}
		for _, ln := range lines {
			fmt.Fprintf(out, "  %7.2f %7.2f  %q\n", ln.Rect.X, ln.Rect.Y, ln.Text())
		}
	}
	printDiagnostics(out, res.Diagnostics)
	return nil
}

func countTables(page *layout.Page) int {
	n := 0
	for _, it := range page.Items {
		if _, ok := it.(*layout.TableFragment); ok {
			n++
		}
	}
	return n
}

func printSummary(out io.Writer, res *docxlayout.Result) {
	if t := res.Metadata.Title; t != "" {
		fmt.Fprintf(out, "title: %s\n", t)
	}
	if a := res.Metadata.Author; a != "" {
		fmt.Fprintf(out, "author: %s\n", a)
	}
	fmt.Fprintf(out, "digest: %s\n", res.DigestHex())
	fmt.Fprintf(out, "sections: %d, paragraphs: %d, tables: %d\n",
		res.Document.SectionCount(), len(res.Document.Paragraphs()), len(res.Document.Tables()))
	if res.Tree != nil {
		fmt.Fprintf(out, "pages: %d\n", res.Tree.PageCount())
	}
}

func printDiagnostics(out io.Writer, diags []diag.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(out, "diagnostics (%d):\n", len(diags))
	for _, d := range diags {
		fmt.Fprintf(out, "  %s\n", d)
	}
}

// TextCmd prints the laid out text.
type TextCmd struct {
	FileArg
	LayoutFlags
}

func (c *TextCmd) Run(log *zap.Logger, out io.Writer) error {
	res, err := c.run(c.FileArg, log)
	if err != nil {
		return err
	}
	text := strings.ReplaceAll(res.Text(), "\f", "\n\f\n")
	fmt.Fprintln(out, text)
	return nil
}

// PartsCmd lists package parts.
type PartsCmd struct {
	FileArg
}

func (c *PartsCmd) Run(log *zap.Logger, out io.Writer) error {
	path, err := c.path()
	if err != nil {
		return err
	}
	pkg, err := docxlayout.Open(path).Logger(log).Package()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "main: %s (%s)\n", pkg.MainPart(), pkg.Flavor())
	for _, p := range pkg.Parts() {
		ct := p.ContentType
		if ct == "" {
			ct = "-"
		}
		fmt.Fprintf(out, "%-40s %8d  %-8s %s\n", p.Name, p.Size(), methodName(p.Method), ct)
	}
	return nil
}

func methodName(m uint16) string {
	switch m {
	case 0:
		return "store"
	case 8:
		return "deflate"
	case 93:
		return "zstd"
	default:
		return fmt.Sprintf("method-%d", m)
	}
}

// StylesCmd lists style definitions.
type StylesCmd struct {
	FileArg
	Kind string `name:"kind" default:"all" enum:"all,paragraph,character,table,numbering" help:"Only list styles of this kind"`
}

func (c *StylesCmd) Run(log *zap.Logger, out io.Writer) error {
	path, err := c.path()
	if err != nil {
		return err
	}
	res, err := docxlayout.Open(path).Logger(log).Document()
	if err != nil {
		return err
	}
	table := res.Document.Styles
	styles := table.Styles()

	ids := append([]string(nil), styles.Order...)
	sort.SliceStable(ids, func(i, j int) bool {
		return styles.Definitions[ids[i]].Kind < styles.Definitions[ids[j]].Kind
	})
	for _, id := range ids {
		def := styles.Definitions[id]
		if c.Kind != "all" && def.Kind.String() != c.Kind {
			continue
		}
		chain, err := table.Chain(id)
		names := make([]string, len(chain))
		for i, d := range chain {
			names[i] = d.ID
		}
		line := fmt.Sprintf("%-10s %-24s %q", def.Kind, id, def.Name)
		if len(names) > 1 {
			line += "  " + strings.Join(names, " -> ")
		}
		if def.Default {
			line += "  (default)"
		}
		if err != nil {
			line += "  [" + err.Error() + "]"
		}
		fmt.Fprintln(out, line)
	}
	printDiagnostics(out, styleDiagnostics(res.Diagnostics))
	return nil
}

func styleDiagnostics(all []diag.Diagnostic) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range all {
		if d.Kind == diag.KindStyleChain || d.Part == style.DefaultPart {
			out = append(out, d)
		}
	}
	return out
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	fmt.Fprintf(out, "docxlayout version %s\n", version)
	return nil
}
