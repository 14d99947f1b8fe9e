package font

import (
	"github.com/rivo/uniseg"
)

// defaultWidth applies to characters outside the tables.
const defaultWidth = 500

// monoWidth is the advance of every character in the monospaced face.
const monoWidth = 600

type standardFace struct {
	widths  *[95]uint16
	ascent  float64 // em fraction
	descent float64
}

var (
	sansFaces  = [2]standardFace{{&sansRegular, 0.718, 0.207}, {&sansBold, 0.718, 0.207}}
	serifFaces = [2]standardFace{{&serifRegular, 0.683, 0.217}, {&serifBold, 0.683, 0.217}}
	monoFace   = standardFace{nil, 0.629, 0.157}
)

// Standard measures with built-in width tables. Italic faces share the
// advances of the upright ones.
type Standard struct{}

// NewStandard returns a Standard provider.
func NewStandard() Standard { return Standard{} }

func (Standard) face(p Properties) standardFace {
	bold := 0
	if p.Bold {
		bold = 1
	}
	switch Classify(p.Family) {
	case Serif:
		return serifFaces[bold]
	case Mono:
		return monoFace
	default:
		return sansFaces[bold]
	}
}

// Measure implements Provider.
func (s Standard) Measure(text string, p Properties) (Metrics, error) {
	if err := checkSize(p); err != nil {
		return Metrics{}, err
	}
	f := s.face(p)

	var units float64
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		r := g.Runes()[0]
		switch {
		case f.widths == nil:
			units += monoWidth
		case r >= 0x20 && r <= 0x7e:
			units += float64(f.widths[r-0x20])
		case r == 0xa0:
			units += float64(f.widths[0])
		default:
			units += defaultWidth
		}
	}
	return Metrics{
		Width:   units / 1000 * p.Size,
		Ascent:  f.ascent * p.Size,
		Descent: f.descent * p.Size,
		Height:  lineGap * p.Size,
	}, nil
}

// lineGap is the single-spacing baseline distance as a multiple of the
// font size.
const lineGap = 1.2
