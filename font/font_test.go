package font

import (
	"errors"
	"math"
	"testing"

	"github.com/tsawler/docxlayout/diag"
)

func near(a, b float64) bool { return math.Abs(a-b) < 0.05 }

func TestClassify(t *testing.T) {
	tests := []struct {
		family string
		want   Class
	}{
		{"Calibri", Sans},
		{"Arial", Sans},
		{"Times New Roman", Serif},
		{"Cambria", Serif},
		{"Microsoft Sans Serif", Sans},
		{"Noto Serif", Serif},
		{"Courier New", Mono},
		{"Consolas", Mono},
		{"", Sans},
	}
	for _, tt := range tests {
		t.Run(tt.family, func(t *testing.T) {
			if got := Classify(tt.family); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.family, got, tt.want)
			}
		})
	}
}

func TestStandardWidths(t *testing.T) {
	s := NewStandard()
	tests := []struct {
		name  string
		text  string
		props Properties
		want  float64
	}{
		{"sans space", " ", Properties{Family: "Arial", Size: 10}, 2.78},
		{"sans word", "Hi", Properties{Family: "Arial", Size: 10}, 7.22 + 2.22},
		{"mono", "iiii", Properties{Family: "Courier New", Size: 10}, 24},
		{"serif", "a", Properties{Family: "Times New Roman", Size: 20}, 8.88},
		{"outside table", "\u4e2d", Properties{Family: "Arial", Size: 10}, 5},
		{"combining mark is one cluster", "e\u0301", Properties{Family: "Arial", Size: 10}, 5.56},
		{"empty", "", Properties{Family: "Arial", Size: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := s.Measure(tt.text, tt.props)
			if err != nil {
				t.Fatalf("Measure: %v", err)
			}
			if !near(m.Width, tt.want) {
				t.Errorf("width = %v, want %v", m.Width, tt.want)
			}
			if !near(m.Height, 1.2*tt.props.Size) {
				t.Errorf("height = %v", m.Height)
			}
		})
	}
}

func TestInvalidSize(t *testing.T) {
	providers := map[string]Provider{"standard": Standard{}, "fixed": Fixed{}}
	gf, err := NewGoFonts()
	if err != nil {
		t.Fatalf("NewGoFonts: %v", err)
	}
	providers["opentype"] = gf

	for name, p := range providers {
		t.Run(name, func(t *testing.T) {
			for _, size := range []float64{0, -3, math.NaN()} {
				_, err := p.Measure("x", Properties{Family: "Arial", Size: size})
				if !errors.Is(err, diag.ErrFontMetrics) {
					t.Errorf("size %v: err = %v", size, err)
				}
			}
		})
	}
}

func TestFixed(t *testing.T) {
	m, err := Fixed{}.Measure("ab\u0301c", Properties{Size: 10})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if m.Width != 15 || m.Ascent != 8 || !near(m.Descent, 2) {
		t.Errorf("metrics = %+v", m)
	}
	m, _ = Fixed{Advance: 1}.Measure("ab", Properties{Size: 10})
	if m.Width != 20 {
		t.Errorf("width = %v, want 20", m.Width)
	}
}

func TestGoFonts(t *testing.T) {
	gf, err := NewGoFonts()
	if err != nil {
		t.Fatalf("NewGoFonts: %v", err)
	}
	if gf.Families() != 2 {
		t.Errorf("Families = %d", gf.Families())
	}

	m12, err := gf.Measure("Hello world", Properties{Family: "Calibri", Size: 12})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	m24, _ := gf.Measure("Hello world", Properties{Family: "Calibri", Size: 24})
	if m12.Width <= 0 || m12.Ascent <= 0 || m12.Height <= 0 {
		t.Errorf("metrics = %+v", m12)
	}
	if math.Abs(m24.Width-2*m12.Width) > 0.5 {
		t.Errorf("width does not scale: %v vs %v", m12.Width, m24.Width)
	}

	narrow, _ := gf.Measure("iiii", Properties{Family: "Courier New", Size: 12})
	wide, _ := gf.Measure("MMMM", Properties{Family: "Courier New", Size: 12})
	if !near(narrow.Width, wide.Width) {
		t.Errorf("monospaced fallback widths differ: %v vs %v", narrow.Width, wide.Width)
	}

	// Go Mono has no italic face; the upright one is used.
	if _, err := gf.Measure("x", Properties{Family: GoMonoFamily, Size: 10, Italic: true}); err != nil {
		t.Errorf("mono italic: %v", err)
	}
}

func TestStrictRejectsUnknownFamily(t *testing.T) {
	gf, err := NewGoFonts(Strict())
	if err != nil {
		t.Fatalf("NewGoFonts: %v", err)
	}
	if _, err := gf.Measure("x", Properties{Family: "Calibri", Size: 10}); !errors.Is(err, diag.ErrFontMetrics) {
		t.Errorf("err = %v, want ErrFontMetrics", err)
	}
	if _, err := gf.Measure("x", Properties{Family: "go", Size: 10}); err != nil {
		t.Errorf("registered family: %v", err)
	}
}

func TestRegisterRejectsGarbage(t *testing.T) {
	gf, err := NewGoFonts()
	if err != nil {
		t.Fatalf("NewGoFonts: %v", err)
	}
	if err := gf.Register("Broken", Regular, []byte("not a font")); !errors.Is(err, diag.ErrFontMetrics) {
		t.Errorf("err = %v", err)
	}
}
