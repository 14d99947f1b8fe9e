package font

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/docxlayout/diag"
)

// Style is one of the four faces of a family.
type Style int

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

func styleOf(p Properties) Style {
	switch {
	case p.Bold && p.Italic:
		return BoldItalic
	case p.Bold:
		return Bold
	case p.Italic:
		return Italic
	}
	return Regular
}

type faceKey struct {
	family string
	style  Style
	size   float64
}

// OpenType measures text with parsed font programs. Families that were
// never registered are measured with the Go fonts unless the provider is
// strict.
type OpenType struct {
	mu       sync.Mutex
	fonts    map[string]*[4]*opentype.Font // lower-case family
	faces    map[faceKey]xfont.Face
	fallback map[Class]string
	strict   bool
	log      *zap.Logger
}

// OpenTypeOption configures an OpenType provider.
type OpenTypeOption func(*OpenType)

// Strict makes unregistered families an error instead of measuring them
// with a fallback.
func Strict() OpenTypeOption {
	return func(o *OpenType) { o.strict = true }
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(log *zap.Logger) OpenTypeOption {
	return func(o *OpenType) {
		if log != nil {
			o.log = log
		}
	}
}

// Family names of the bundled Go fonts.
const (
	GoFamily     = "Go"
	GoMonoFamily = "Go Mono"
)

// NewGoFonts returns a provider with the Go font family registered and
// used as the fallback for every class.
func NewGoFonts(opts ...OpenTypeOption) (*OpenType, error) {
	o := &OpenType{
		fonts: make(map[string]*[4]*opentype.Font),
		faces: make(map[faceKey]xfont.Face),
		fallback: map[Class]string{
			Sans:  strings.ToLower(GoFamily),
			Serif: strings.ToLower(GoFamily),
			Mono:  strings.ToLower(GoMonoFamily),
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	bundled := []struct {
		family string
		style  Style
		data   []byte
	}{
		{GoFamily, Regular, goregular.TTF},
		{GoFamily, Bold, gobold.TTF},
		{GoFamily, Italic, goitalic.TTF},
		{GoFamily, BoldItalic, gobolditalic.TTF},
		{GoMonoFamily, Regular, gomono.TTF},
		{GoMonoFamily, Bold, gomonobold.TTF},
	}
	for _, b := range bundled {
		if err := o.Register(b.family, b.style, b.data); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Register parses data as an OpenType or TrueType font and adds it as the
// given face of family.
func (o *OpenType) Register(family string, style Style, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return diag.Wrap(diag.KindFontMetrics, diag.ErrFontMetrics, "",
			fmt.Errorf("parse %s: %w", family, err))
	}
	key := strings.ToLower(family)

	o.mu.Lock()
	defer o.mu.Unlock()
	set := o.fonts[key]
	if set == nil {
		set = new([4]*opentype.Font)
		o.fonts[key] = set
	}
	set[style] = f
	for k := range o.faces {
		if k.family == key && k.style == style {
			delete(o.faces, k)
		}
	}
	return nil
}

// Families returns the number of registered families.
func (o *OpenType) Families() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.fonts)
}

// pick returns the registered font for p, falling back to the nearest
// style of the family and then to the fallback family of its class.
func (o *OpenType) pick(p Properties) (string, Style, *opentype.Font, error) {
	family := strings.ToLower(p.Family)
	set, ok := o.fonts[family]
	if !ok {
		if o.strict {
			return "", 0, nil, diag.New(diag.KindFontMetrics, diag.ErrFontMetrics, "",
				fmt.Sprintf("font family %q is not available", p.Family))
		}
		family = o.fallback[Classify(p.Family)]
		set = o.fonts[family]
		o.log.Debug("font fallback", zap.String("family", p.Family), zap.String("using", family))
	}
	if set == nil {
		return "", 0, nil, diag.New(diag.KindFontMetrics, diag.ErrFontMetrics, "",
			fmt.Sprintf("no font available for %q", p.Family))
	}
	want := styleOf(p)
	for _, s := range []Style{want, want &^ Italic, want &^ Bold, Regular} {
		if f := set[s]; f != nil {
			return family, s, f, nil
		}
	}
	return "", 0, nil, diag.New(diag.KindFontMetrics, diag.ErrFontMetrics, "",
		fmt.Sprintf("font family %q has no usable face", p.Family))
}

func (o *OpenType) face(p Properties) (xfont.Face, error) {
	family, style, f, err := o.pick(p)
	if err != nil {
		return nil, err
	}
	key := faceKey{family, style, p.Size}
	if face, ok := o.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    p.Size,
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return nil, diag.Wrap(diag.KindFontMetrics, diag.ErrFontMetrics, "",
			fmt.Errorf("face %s: %w", p, err))
	}
	o.faces[key] = face
	return face, nil
}

// Measure implements Provider.
func (o *OpenType) Measure(text string, p Properties) (Metrics, error) {
	if err := checkSize(p); err != nil {
		return Metrics{}, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	face, err := o.face(p)
	if err != nil {
		return Metrics{}, err
	}
	m := face.Metrics()
	return Metrics{
		Width:   points(xfont.MeasureString(face, text)),
		Ascent:  points(m.Ascent),
		Descent: points(m.Descent),
		Height:  points(m.Height),
	}, nil
}

// points converts a 26.6 length at 72 DPI to points.
func points(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
