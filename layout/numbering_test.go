package layout

import (
	"strings"
	"testing"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/model"
)

func intPtr(v int) *int { return &v }

func testNumbering() *docx.Numbering {
	levels := map[int]*docx.Level{
		0: {Index: 0, Format: docx.FormatDecimal, Start: 1, Text: "%1.", HasText: true, Suffix: docx.SuffixTab},
		1: {Index: 1, Format: docx.FormatLowerLetter, Start: 1, Text: "%1.%2)", HasText: true, Suffix: docx.SuffixSpace},
		2: {Index: 2, Format: docx.FormatLowerRoman, Start: 1, Text: "%3", HasText: true, Restart: intPtr(1), Suffix: docx.SuffixNothing},
	}
	return &docx.Numbering{
		Abstract: map[int]*docx.AbstractNum{0: {ID: 0, Levels: levels}},
		Instances: map[int]*docx.NumInstance{
			1: {ID: 1, AbstractID: 0, Overrides: map[int]*docx.LevelOverride{}},
			2: {ID: 2, AbstractID: 0, Overrides: map[int]*docx.LevelOverride{
				0: {Level: 0, StartOverride: intPtr(1)},
			}},
		},
	}
}

func (b *docBuilder) listItem(num *docx.Numbering, numID, ilvl int, s string) *model.Paragraph {
	p := b.text(s)
	item := &model.ListItem{NumID: numID, Level: ilvl, Abstract: -1, Marker: testRun}
	if lvl, inst, ok := num.Level(numID, ilvl); ok {
		item.Def = lvl
		item.Abstract = inst.AbstractID
	}
	p.List = item
	p.Props.IndentLeft = 36
	p.Props.IndentFirstLine = -18
	return p
}

func markers(t *testing.T, tree *Tree) []string {
	t.Helper()
	var out []string
	for _, ln := range tree.Lines() {
		if ln.First && len(ln.Spans) > 0 && ln.Spans[0].Marker {
			out = append(out, ln.Spans[0].Text)
		}
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNumberingSequence(t *testing.T) {
	num := testNumbering()
	var b docBuilder
	doc := document(b.listItem(num, 1, 0, "a"), b.listItem(num, 1, 0, "b"), b.listItem(num, 1, 0, "c"))
	doc.Numbering = num

	if got := markers(t, layoutDoc(t, doc)); !equal(got, []string{"1.", "2.", "3."}) {
		t.Errorf("markers = %q", got)
	}
}

func TestNumberingRestartOverride(t *testing.T) {
	num := testNumbering()
	var b docBuilder
	doc := document(b.listItem(num, 1, 0, "a"), b.listItem(num, 1, 0, "b"), b.listItem(num, 2, 0, "c"))
	doc.Numbering = num

	if got := markers(t, layoutDoc(t, doc)); !equal(got, []string{"1.", "2.", "1."}) {
		t.Errorf("markers = %q", got)
	}
}

func TestNumberingLevels(t *testing.T) {
	num := testNumbering()
	var b docBuilder
	doc := document(
		b.listItem(num, 1, 0, "one"),
		b.listItem(num, 1, 1, "one a"),
		b.listItem(num, 1, 1, "one b"),
		b.listItem(num, 1, 2, "roman"),
		b.listItem(num, 1, 2, "roman"),
		b.listItem(num, 1, 1, "one c"),
		b.listItem(num, 1, 2, "roman continues"),
		b.listItem(num, 1, 0, "two"),
		b.listItem(num, 1, 1, "two a"),
		b.listItem(num, 1, 2, "roman restarts"),
	)
	doc.Numbering = num

	want := []string{"1.", "1.a)", "1.b)", "i", "ii", "1.c)", "iii", "2.", "2.a)", "i"}
	if got := markers(t, layoutDoc(t, doc)); !equal(got, want) {
		t.Errorf("markers = %q, want %q", got, want)
	}
}

func TestMarkerHangingIndent(t *testing.T) {
	num := testNumbering()
	var b docBuilder
	doc := document(b.listItem(num, 1, 0, "text"))
	doc.Numbering = num

	spans := layoutDoc(t, doc).Lines()[0].Spans
	if spans[0].X != 50+18 {
		t.Errorf("marker at %v, want 68", spans[0].X)
	}
	if spans[1].X != 50+36 {
		t.Errorf("text at %v, want 86", spans[1].X)
	}
}

func TestMarkerWrapsWholeWord(t *testing.T) {
	num := testNumbering()
	var b docBuilder
	p := b.listItem(num, 1, 0, strings.Repeat("a", 16))
	p.Props.IndentLeft, p.Props.IndentFirstLine = 0, 0
	doc := document(p)
	doc.Numbering = num

	// "1." plus its tab reaches 36pt, leaving no room for the 80pt word,
	// which still fits a line of its own.
	lines := layoutDoc(t, doc).Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if got := lines[0].Text(); got != "1." {
		t.Errorf("first line = %q, want the marker alone", got)
	}
	if got := lines[1].Text(); got != strings.Repeat("a", 16) {
		t.Errorf("second line = %q, want the whole word", got)
	}
}

func TestMissingNumberingPart(t *testing.T) {
	var b docBuilder
	var blocks []model.Block
	for i := 0; i < 3; i++ {
		p := b.text("item")
		p.List = &model.ListItem{NumID: 1, Abstract: -1, Marker: testRun}
		blocks = append(blocks, p)
	}
	tree := layoutDoc(t, document(blocks...))

	if got := markers(t, tree); !equal(got, []string{"", "", ""}) {
		t.Errorf("markers = %q", got)
	}
	n := 0
	for _, d := range tree.Diagnostics {
		if d.Message == "numbering part missing" {
			n++
			if d.Kind != diag.KindPart || d.Severity != diag.Warning {
				t.Errorf("diagnostic = %+v", d)
			}
		}
	}
	if n != 1 {
		t.Errorf("got %d numbering diagnostics, want 1: %v", n, tree.Diagnostics)
	}
}

func TestUnknownInstance(t *testing.T) {
	num := testNumbering()
	var b docBuilder
	doc := document(b.listItem(num, 7, 0, "x"))
	doc.Numbering = num
	tree := layoutDoc(t, doc)
	if got := markers(t, tree); !equal(got, []string{""}) {
		t.Errorf("markers = %q", got)
	}
	if len(tree.Diagnostics) != 1 || tree.Diagnostics[0].Kind != diag.KindSchema {
		t.Errorf("diagnostics = %v", tree.Diagnostics)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n      int
		format docx.NumberFormat
		want   string
	}{
		{3, docx.FormatDecimal, "3"},
		{5, docx.FormatDecimalZero, "05"},
		{12, docx.FormatDecimalZero, "12"},
		{1, docx.FormatLowerLetter, "a"},
		{26, docx.FormatUpperLetter, "Z"},
		{27, docx.FormatLowerLetter, "aa"},
		{54, docx.FormatLowerLetter, "bbb"},
		{4, docx.FormatLowerRoman, "iv"},
		{1994, docx.FormatUpperRoman, "MCMXCIV"},
		{4000, docx.FormatUpperRoman, "4000"},
		{1, docx.FormatOrdinal, "1st"},
		{2, docx.FormatOrdinal, "2nd"},
		{3, docx.FormatOrdinal, "3rd"},
		{11, docx.FormatOrdinal, "11th"},
		{22, docx.FormatOrdinal, "22nd"},
		{7, docx.FormatNone, ""},
		{7, docx.FormatOther, "7"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.n, tt.format); got != tt.want {
			t.Errorf("formatNumber(%d, %v) = %q, want %q", tt.n, tt.format, got, tt.want)
		}
	}
}

func TestBulletText(t *testing.T) {
	tests := []struct {
		text  string
		level int
		want  string
	}{
		{"\uf0b7", 0, "\u2022"},
		{"\uf0a7", 2, "\u25aa"},
		{"o", 1, "o"},
		{"\u2013", 0, "\u2013"},
		{"\uf020", 1, "\u25cb"},
		{"\x01", 0, "\u2022"},
		{"\uf020", 20, "\u2022"},
	}
	for _, tt := range tests {
		if got := bulletText(tt.text, tt.level); got != tt.want {
			t.Errorf("bulletText(%q, %d) = %q, want %q", tt.text, tt.level, got, tt.want)
		}
	}
}
