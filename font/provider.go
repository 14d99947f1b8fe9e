package font

import (
	"fmt"
	"math"
	"strings"

	"github.com/tsawler/docxlayout/diag"
)

// Properties selects the face text is measured in.
type Properties struct {
	Family string
	Size   float64 // points
	Bold   bool
	Italic bool
}

func (p Properties) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %gpt", p.Family, p.Size)
	if p.Bold {
		b.WriteString(" bold")
	}
	if p.Italic {
		b.WriteString(" italic")
	}
	return b.String()
}

// Metrics describes measured text.
type Metrics struct {
	Width   float64 // advance width
	Ascent  float64 // baseline to top of line
	Descent float64 // baseline to bottom of line
	Height  float64 // recommended distance between baselines
}

// Provider measures text. Implementations must be safe for concurrent use.
type Provider interface {
	Measure(text string, p Properties) (Metrics, error)
}

func checkSize(p Properties) error {
	if p.Size <= 0 || math.IsNaN(p.Size) || math.IsInf(p.Size, 0) {
		return diag.New(diag.KindFontMetrics, diag.ErrFontMetrics, "",
			fmt.Sprintf("invalid size %g for %q", p.Size, p.Family))
	}
	return nil
}

// Class is a broad typeface category.
type Class int

const (
	Sans Class = iota
	Serif
	Mono
)

func (c Class) String() string {
	switch c {
	case Serif:
		return "serif"
	case Mono:
		return "mono"
	default:
		return "sans"
	}
}

var (
	monoHints  = []string{"courier", "mono", "consolas", "console", "typewriter", "fixedsys"}
	serifHints = []string{"times", "georgia", "cambria", "garamond", "palatino", "antiqua", "bookman", "century", "minion", "baskerville"}
)

// Classify guesses the category of a family from its name.
func Classify(family string) Class {
	f := strings.ToLower(family)
	for _, h := range monoHints {
		if strings.Contains(f, h) {
			return Mono
		}
	}
	if strings.Contains(f, "sans") {
		return Sans
	}
	for _, h := range serifHints {
		if strings.Contains(f, h) {
			return Serif
		}
	}
	if strings.Contains(f, "serif") {
		return Serif
	}
	return Sans
}
