package model

import (
	"errors"
	"testing"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/style"
)

func TestPageGeometryValidate(t *testing.T) {
	tests := []struct {
		name    string
		geom    PageGeometry
		wantErr bool
	}{
		{"letter", Letter(), false},
		{"a4", A4(), false},
		{"zero width", PageGeometry{Height: 100}, true},
		{"negative height", PageGeometry{Width: 100, Height: -1}, true},
		{"margins consume page", PageGeometry{Width: 100, Height: 100, MarginLeft: 60, MarginRight: 40}, true},
		{"negative margin", PageGeometry{Width: 100, Height: 100, MarginTop: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.geom.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, diag.ErrIncompatibleGeometry) {
				t.Errorf("error %v does not match ErrIncompatibleGeometry", err)
			}
		})
	}
}

func TestContentBox(t *testing.T) {
	g := Letter()
	box := g.ContentBox()
	if box.X != 72 || box.Y != 72 || box.Width != 468 || box.Height != 648 {
		t.Errorf("ContentBox = %+v", box)
	}
	if !box.ContainsRect(NewRect(72, 72, 468, 10)) {
		t.Error("full-width line should fit the content box")
	}
	if box.ContainsRect(NewRect(72, 72, 469, 10)) {
		t.Error("over-wide line should not fit")
	}
}

func TestRect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	if !a.Intersects(b) {
		t.Error("expected intersection")
	}
	if a.Intersects(NewRect(10, 0, 5, 5)) {
		t.Error("touching edges should not intersect")
	}
	u := a.Union(b)
	if u.Width != 15 || u.Height != 15 {
		t.Errorf("Union = %+v", u)
	}
	if !a.Contains(Point{X: 5, Y: 5}) || a.Contains(Point{X: 11, Y: 5}) {
		t.Error("Contains mismatch")
	}
	if !(Rect{Width: 0, Height: 5}).IsEmpty() {
		t.Error("zero width rect should be empty")
	}
}

func TestWalkOrder(t *testing.T) {
	p1 := &Paragraph{ID: 1, Runs: []*Run{{Content: Text{Value: "a"}}, {Content: Tab{}}, {Content: Text{Value: "b"}}}}
	inner := &Paragraph{ID: 3, Runs: []*Run{{Content: Text{Value: "cell"}}}}
	tbl := &Table{ID: 2, Rows: []*Row{{Cells: []*Cell{{Props: style.Cell{GridSpan: 2}, Blocks: []Block{inner}}}}}}
	p4 := &Paragraph{ID: 4, Runs: []*Run{{Content: Text{Value: "x"}}, {Content: Break{Kind: docx.BreakLine}}, {Content: Text{Value: "y"}}}}

	doc := &Document{Sections: []*Section{{Blocks: []Block{p1, tbl}}, {Index: 1, Blocks: []Block{p4}}}}

	var ids []int
	doc.Walk(func(b Block) bool {
		ids = append(ids, b.BlockID())
		return true
	})
	want := []int{1, 2, 3, 4}
	for i := range want {
		if i >= len(ids) || ids[i] != want[i] {
			t.Fatalf("walk order = %v, want %v", ids, want)
		}
	}
	if got := doc.Text(); got != "a\tb\ncell\nx\ny\n" {
		t.Errorf("Text = %q", got)
	}
	if len(doc.Tables()) != 1 || tbl.ColCount() != 2 {
		t.Errorf("tables = %d, cols = %d", len(doc.Tables()), tbl.ColCount())
	}
}

func TestHeaderRows(t *testing.T) {
	tbl := &Table{Rows: []*Row{
		{Props: style.Row{Header: true}},
		{Props: style.Row{Header: true}},
		{},
		{Props: style.Row{Header: true}},
	}}
	if got := tbl.HeaderRows(); got != 2 {
		t.Errorf("HeaderRows = %d, want 2", got)
	}
}
