package font

import "github.com/rivo/uniseg"

// Fixed gives each grapheme cluster an advance of Advance times the font
// size. The zero value uses half an em.
type Fixed struct {
	Advance float64
}

// Measure implements Provider.
func (f Fixed) Measure(text string, p Properties) (Metrics, error) {
	if err := checkSize(p); err != nil {
		return Metrics{}, err
	}
	adv := f.Advance
	if adv <= 0 {
		adv = 0.5
	}
	n := uniseg.GraphemeClusterCount(text)
	return Metrics{
		Width:   float64(n) * adv * p.Size,
		Ascent:  0.8 * p.Size,
		Descent: 0.2 * p.Size,
		Height:  lineGap * p.Size,
	}, nil
}
