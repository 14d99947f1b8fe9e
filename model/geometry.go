package model

import (
	"fmt"
	"math"

	"github.com/tsawler/docxlayout/diag"
)

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate
func (r Rect) Left() float64 { return r.X }

// Right returns the right edge X coordinate
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the top edge Y coordinate
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge Y coordinate
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains checks if a point is inside the rectangle
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() &&
		p.Y >= r.Top() && p.Y <= r.Bottom()
}

// ContainsRect reports whether o lies entirely inside r, allowing for
// floating point error.
func (r Rect) ContainsRect(o Rect) bool {
	const eps = 1e-6
	return o.Left() >= r.Left()-eps && o.Right() <= r.Right()+eps &&
		o.Top() >= r.Top()-eps && o.Bottom() <= r.Bottom()+eps
}

// Intersects checks if two rectangles overlap
func (r Rect) Intersects(o Rect) bool {
	return !(r.Right() <= o.Left() ||
		r.Left() >= o.Right() ||
		r.Bottom() <= o.Top() ||
		r.Top() >= o.Bottom())
}

// Union returns the smallest rectangle containing both
func (r Rect) Union(o Rect) Rect {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  math.Max(r.Right(), o.Right()) - x,
		Height: math.Max(r.Bottom(), o.Bottom()) - y,
	}
}

// IsEmpty returns true if the rectangle has no area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// PageGeometry is the size and margins of a page, in points.
type PageGeometry struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
	MarginHeader float64
	MarginFooter float64
}

// Letter returns US Letter with one inch margins, the geometry Word uses
// when a document has no section properties.
func Letter() PageGeometry {
	return PageGeometry{
		Width: 612, Height: 792,
		MarginTop: 72, MarginRight: 72, MarginBottom: 72, MarginLeft: 72,
		MarginHeader: 36, MarginFooter: 36,
	}
}

// A4 returns ISO A4 with 2.54cm margins.
func A4() PageGeometry {
	return PageGeometry{
		Width: 595.3, Height: 841.9,
		MarginTop: 72, MarginRight: 72, MarginBottom: 72, MarginLeft: 72,
		MarginHeader: 35.4, MarginFooter: 35.4,
	}
}

// ContentWidth is the width available between the side margins.
func (g PageGeometry) ContentWidth() float64 {
	return g.Width - g.MarginLeft - g.MarginRight
}

// ContentHeight is the height available between the top and bottom margins.
func (g PageGeometry) ContentHeight() float64 {
	return g.Height - g.MarginTop - g.MarginBottom
}

// ContentBox is the content area of the page.
func (g PageGeometry) ContentBox() Rect {
	return Rect{X: g.MarginLeft, Y: g.MarginTop, Width: g.ContentWidth(), Height: g.ContentHeight()}
}

// Validate fails with diag.ErrIncompatibleGeometry when the page has no
// positive size or the margins leave no content area.
func (g PageGeometry) Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return diag.New(diag.KindLayoutGeometry, diag.ErrIncompatibleGeometry, "",
			fmt.Sprintf("page size %.2fx%.2f is not positive", g.Width, g.Height))
	case g.MarginTop < 0 || g.MarginRight < 0 || g.MarginBottom < 0 || g.MarginLeft < 0:
		return diag.New(diag.KindLayoutGeometry, diag.ErrIncompatibleGeometry, "", "negative page margin")
	case g.ContentWidth() <= 0 || g.ContentHeight() <= 0:
		return diag.New(diag.KindLayoutGeometry, diag.ErrIncompatibleGeometry, "",
			fmt.Sprintf("margins leave a %.2fx%.2f content area", g.ContentWidth(), g.ContentHeight()))
	}
	return nil
}
