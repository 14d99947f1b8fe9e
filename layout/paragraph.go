package layout

import (
	"math"
	"strings"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/font"
	"github.com/tsawler/docxlayout/model"
	"github.com/tsawler/docxlayout/style"
	"github.com/tsawler/docxlayout/text"
)

type fragKind int

const (
	fragText fragKind = iota
	fragTab
	fragBreak
	fragDrawing
)

// frag is the part of one run inside one break unit.
type frag struct {
	kind     fragKind
	run      *model.Run
	text     string
	width    float64
	trim     float64 // width without trailing breaking whitespace
	allSpace bool
	m        font.Metrics
	brk      docx.BreakKind
}

// unit is the content between two line break opportunities.
type unit struct {
	frags     []frag
	mandatory bool
	exploded  bool
}

// breakKind returns the explicit break ending u, if any.
func (u unit) breakKind() *docx.BreakKind {
	if n := len(u.frags); n > 0 && u.frags[n-1].kind == fragBreak {
		k := u.frags[n-1].brk
		return &k
	}
	k := docx.BreakLine
	return &k
}

// placeholders stand in for non-text content during segmentation.
const (
	tabMark     = "\t"
	breakMark   = "\n"
	drawingMark = "\ufffc"
)

func flattenNewlines(r rune) rune {
	if r == '\n' || r == '\r' {
		return ' '
	}
	return r
}

// measure measures s in the formatting of rs. Failures are reported once
// per family and measure as zero.
func (p *pass) measure(s string, rs style.Run) font.Metrics {
	props := font.Properties{Family: rs.Font, Size: rs.Size, Bold: rs.Bold, Italic: rs.Italic}
	if rs.VertAlign == "superscript" || rs.VertAlign == "subscript" {
		props.Size *= 2.0 / 3
	}
	if rs.Caps {
		s = strings.ToUpper(s)
	}
	m, err := p.e.metrics.Measure(s, props)
	if err != nil {
		p.diags.WarnOnce("font:"+props.Family, diag.KindFontMetrics, "", "%v", err)
		return font.Metrics{}
	}
	return m
}

func (p *pass) textFrag(r *model.Run, s string) frag {
	f := frag{kind: fragText, run: r, text: s, m: p.measure(s, r.Props)}
	f.width = f.m.Width
	f.trim = f.width
	if ts := text.TrailingSpace(s); ts > 0 {
		f.allSpace = ts == len(s)
		if f.allSpace {
			f.trim = 0
		} else {
			f.trim = p.measure(s[:len(s)-ts], r.Props).Width
		}
	}
	return f
}

// units splits the paragraph into break units.
func (p *pass) units(para *model.Paragraph) []unit {
	type piece struct {
		start, end int
		run        *model.Run
		kind       fragKind
	}
	var (
		sb     strings.Builder
		pieces []piece
	)
	for _, r := range para.Runs {
		if r.Props.Hidden {
			continue
		}
		start := sb.Len()
		kind := fragText
		switch c := r.Content.(type) {
		case model.Text:
			sb.WriteString(strings.Map(flattenNewlines, c.Value))
		case model.Tab:
			sb.WriteString(tabMark)
			kind = fragTab
		case model.Break:
			sb.WriteString(breakMark)
			kind = fragBreak
		case model.Drawing:
			sb.WriteString(drawingMark)
			kind = fragDrawing
		}
		if sb.Len() > start {
			pieces = append(pieces, piece{start, sb.Len(), r, kind})
		}
	}
	s := sb.String()
	if s == "" {
		return nil
	}

	bounds := p.e.config.Segmenter.Breaks(s)
	bounds = append(bounds, text.Break{Offset: len(s)})

	var (
		out []unit
		pi  int
		a   int
	)
	for _, b := range bounds {
		if b.Offset <= a || b.Offset > len(s) {
			continue
		}
		u := unit{mandatory: b.Mandatory}
		for pi < len(pieces) && pieces[pi].end <= a {
			pi++
		}
		for j := pi; j < len(pieces) && pieces[j].start < b.Offset; j++ {
			pc := pieces[j]
			lo, hi := max(a, pc.start), min(b.Offset, pc.end)
			switch pc.kind {
			case fragText:
				u.frags = append(u.frags, p.textFrag(pc.run, s[lo:hi]))
			case fragTab:
				u.frags = append(u.frags, frag{kind: fragTab, run: pc.run, m: p.measure("", pc.run.Props)})
			case fragBreak:
				brk := pc.run.Content.(model.Break).Kind
				u.frags = append(u.frags, frag{kind: fragBreak, run: pc.run, brk: brk, m: p.measure("", pc.run.Props)})
				u.mandatory = true
			case fragDrawing:
				if lo != pc.start {
					continue
				}
				d := pc.run.Content.(model.Drawing)
				u.frags = append(u.frags, frag{
					kind: fragDrawing, run: pc.run, width: d.Width, trim: d.Width,
					m: font.Metrics{Width: d.Width, Ascent: d.Height, Height: d.Height},
				})
			}
		}
		a = b.Offset
		if len(u.frags) > 0 {
			out = append(out, u)
		}
	}
	return out
}

// explode splits u into one unit per grapheme cluster.
func (p *pass) explode(u unit) []unit {
	var out []unit
	for _, f := range u.frags {
		if f.kind != fragText {
			out = append(out, unit{frags: []frag{f}, exploded: true})
			continue
		}
		for _, g := range text.Graphemes(f.text) {
			out = append(out, unit{frags: []frag{p.textFrag(f.run, g)}, exploded: true})
		}
	}
	if len(out) > 0 {
		out[len(out)-1].mandatory = u.mandatory
	}
	return out
}

func (u unit) clusters() int {
	n := 0
	for _, f := range u.frags {
		if f.kind == fragText {
			n += len(text.Graphemes(f.text))
		} else {
			n++
		}
	}
	return n
}

// lineBuilder accumulates one line. Positions are relative to the
// start of the line.
type lineBuilder struct {
	start, avail float64
	x            float64
	natural      float64
	spans        []Span
	gapIdx       []int
	metrics      []font.Metrics
	gaps         int
	units        int
	prevSpace    bool
	first        bool
}

// occupied reports whether the line holds anything, including a list
// marker.
func (lb *lineBuilder) occupied() bool { return lb.units > 0 || lb.x > eps }

// paraLayout holds the per-paragraph inputs of line building.
type paraLayout struct {
	p     *pass
	para  *model.Paragraph
	width float64
	dir   text.Direction
}

func (pl *paraLayout) newLine(first bool) *lineBuilder {
	props := pl.para.Props
	start := props.IndentLeft
	if first {
		start += props.IndentFirstLine
	}
	start = math.Max(start, 0)
	avail := pl.width - start - math.Max(props.IndentRight, 0)
	if avail <= 0 {
		start, avail = 0, pl.width
	}
	return &lineBuilder{start: start, avail: avail, first: first}
}

// nextStop returns the first tab stop after pos, measured from the
// left edge of the box.
func (pl *paraLayout) nextStop(lb *lineBuilder, pos float64) float64 {
	props := pl.para.Props
	best := math.Inf(1)
	for _, t := range props.Tabs {
		if t.Kind == "clear" {
			continue
		}
		if t.Position > pos+eps && t.Position < best {
			best = t.Position
		}
	}
	if lb.first && props.IndentFirstLine < 0 && props.IndentLeft > pos+eps && props.IndentLeft < best {
		best = props.IndentLeft
	}
	if math.IsInf(best, 1) {
		step := pl.p.e.config.DefaultTabStop
		best = (math.Floor(pos/step+eps) + 1) * step
	}
	return best
}

func (pl *paraLayout) tabAdvance(lb *lineBuilder, x float64) float64 {
	pos := lb.start + x
	w := pl.nextStop(lb, pos) - pos
	if end := lb.start + lb.avail; pos+w > end {
		w = math.Max(end-pos, 0)
	}
	return w
}

// widths returns the width of u placed at x and the width without its
// trailing whitespace.
func (pl *paraLayout) widths(lb *lineBuilder, u unit, x float64) (full, trimmed float64) {
	for _, f := range u.frags {
		if f.kind == fragTab {
			full += pl.tabAdvance(lb, x+full)
		} else {
			full += f.width
		}
	}
	trimmed = full
	for i := len(u.frags) - 1; i >= 0; i-- {
		f := u.frags[i]
		if f.kind == fragBreak {
			continue
		}
		if f.kind != fragText {
			break
		}
		trimmed -= f.width - f.trim
		if !f.allSpace {
			break
		}
	}
	return full, trimmed
}

func (pl *paraLayout) put(lb *lineBuilder, u unit) {
	if lb.units > 0 && lb.prevSpace {
		lb.gaps++
	}
	full, trimmed := pl.widths(lb, u, lb.x)
	x := lb.x
	for _, f := range u.frags {
		w := f.width
		s := f.text
		switch f.kind {
		case fragTab:
			w = pl.tabAdvance(lb, x)
			s = "\t"
		case fragBreak:
			s = ""
		}
		lb.spans = append(lb.spans, Span{Run: f.run, Props: f.run.Props, Text: s, X: x, Width: w})
		lb.gapIdx = append(lb.gapIdx, lb.gaps)
		lb.metrics = append(lb.metrics, f.m)
		x += w
	}
	lb.natural = lb.x + trimmed
	lb.x += full
	lb.prevSpace = trimmed < full-eps
	lb.units++
}

func (pl *paraLayout) marker(lb *lineBuilder, item *model.ListItem) {
	label, suffix := pl.p.counters.marker(item)
	m := pl.p.measure(label, item.Marker)
	lb.spans = append(lb.spans, Span{Props: item.Marker, Text: label, Width: m.Width, Marker: true})
	lb.gapIdx = append(lb.gapIdx, 0)
	lb.metrics = append(lb.metrics, m)
	lb.x = m.Width

	switch suffix {
	case docx.SuffixTab:
		lb.x += pl.tabAdvance(lb, lb.x)
	case docx.SuffixSpace:
		lb.x += pl.p.measure(" ", item.Marker).Width
	}
	lb.natural = lb.x
}

func (pl *paraLayout) finish(lb *lineBuilder, last bool, brk *docx.BreakKind) *Line {
	props := pl.para.Props
	slack := lb.avail - lb.natural
	shift, extra := 0.0, 0.0
	if slack > eps {
		switch props.Justification {
		case docx.JustifyCenter:
			shift = slack / 2
		case docx.JustifyEnd:
			shift = slack
		case docx.JustifyBoth:
			if !last && brk == nil && lb.gaps > 0 {
				extra = slack / float64(lb.gaps)
			}
		case docx.JustifyDistribute:
			if brk == nil && lb.gaps > 0 {
				extra = slack / float64(lb.gaps)
			}
		}
	}

	ln := &Line{
		Rect:        model.Rect{X: lb.start, Width: lb.avail},
		ParagraphID: pl.para.ID,
		Alignment:   props.Justification,
		Direction:   pl.dir,
		Natural:     lb.natural,
		First:       lb.first,
		Last:        last,
		Break:       brk,
		Spans:       lb.spans,
	}
	if extra > 0 {
		ln.Gaps = lb.gaps
		ln.Extra = extra
	}
	for i := range ln.Spans {
		ln.Spans[i].X = lb.start + shift + ln.Spans[i].X + extra*float64(lb.gapIdx[i])
	}

	metrics := lb.metrics
	if len(metrics) == 0 {
		metrics = []font.Metrics{pl.p.measure("", pl.para.Mark)}
	}
	var asc, desc, natural float64
	for _, m := range metrics {
		asc = math.Max(asc, m.Ascent)
		desc = math.Max(desc, m.Descent)
		natural = math.Max(natural, m.Height)
	}
	natural = math.Max(natural, asc+desc)

	h := natural
	switch props.Line.Rule {
	case docx.LineAuto:
		h = natural * props.Line.Value
	case docx.LineExact:
		h = props.Line.Value
	case docx.LineAtLeast:
		h = math.Max(natural, props.Line.Value)
	}
	ln.Rect.Height = h
	ln.Baseline = h - desc

	if pl.dir == text.RTL {
		ln.Rect.X = pl.width - ln.Rect.X - ln.Rect.Width
		for i := range ln.Spans {
			ln.Spans[i].X = pl.width - ln.Spans[i].X - ln.Spans[i].Width
		}
	}
	return ln
}

// lines breaks para into lines for a box of the given width. Line
// coordinates are relative to the box with every line at y 0.
func (p *pass) lines(para *model.Paragraph, width float64) []*Line {
	pl := &paraLayout{
		p:     p,
		para:  para,
		width: width,
		dir:   text.Resolve(para.Text(), para.Props.Bidi),
	}

	var out []*Line
	lb := pl.newLine(true)
	if para.List != nil {
		pl.marker(lb, para.List)
	}

	queue := p.units(para)
	for len(queue) > 0 {
		u := queue[0]
		_, trimmed := pl.widths(lb, u, lb.x)
		if lb.x+trimmed > lb.avail+eps {
			if lb.occupied() {
				out = append(out, pl.finish(lb, false, nil))
				lb = pl.newLine(false)
				continue
			}
			if !u.exploded && u.clusters() > 1 {
				queue = append(p.explode(u), queue[1:]...)
				continue
			}
			p.diags.WarnOnce("overflow", diag.KindLayoutGeometry, "",
				"content wider than the available line width in paragraph %d", para.ID)
		}
		pl.put(lb, u)
		queue = queue[1:]
		if u.mandatory {
			out = append(out, pl.finish(lb, false, u.breakKind()))
			lb = pl.newLine(false)
		}
	}
	out = append(out, pl.finish(lb, true, nil))
	return out
}
