package docx

import (
	"strings"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/xmltree"
)

// FieldKind classifies a field instruction by its keyword.
type FieldKind int

const (
	FieldUnknown FieldKind = iota
	FieldDate
	FieldTime
	FieldPage
	FieldNumPages
	FieldHyperlink
	FieldRef
	FieldTOC
)

var fieldKinds = map[string]FieldKind{
	"DATE":      FieldDate,
	"TIME":      FieldTime,
	"PAGE":      FieldPage,
	"NUMPAGES":  FieldNumPages,
	"HYPERLINK": FieldHyperlink,
	"REF":       FieldRef,
	"TOC":       FieldTOC,
}

// Field is a field instruction found in a paragraph. Fields are never
// evaluated; the result runs stored in the document are laid out as
// ordinary text.
type Field struct {
	Kind        FieldKind
	Keyword     string // upper-cased first word, empty for a blank instruction
	Instruction string
	Offset      int64
}

// ParseField classifies instr, e.g. `DATE \@ "d MMMM yyyy"`.
func ParseField(instr string) Field {
	f := Field{Instruction: strings.TrimSpace(instr)}
	if words := strings.Fields(f.Instruction); len(words) > 0 {
		f.Keyword = strings.ToUpper(words[0])
		f.Kind = fieldKinds[f.Keyword]
	}
	return f
}

// fieldState tracks complex fields (w:fldChar begin, separate, end),
// which may span runs and paragraphs.
type fieldState struct {
	open    []*strings.Builder // instructions still being collected
	offsets []int64
	depth   int // fields begun and not yet ended
	done    []Field
}

func (m *mapper) fieldChar(n *xmltree.Node) {
	fs := &m.fields
	switch n.AttrValue(nsW, "fldCharType") {
	case "begin":
		fs.depth++
		fs.open = append(fs.open, &strings.Builder{})
		fs.offsets = append(fs.offsets, n.Offset)
	case "separate":
		m.closeInstruction()
	case "end":
		m.closeInstruction()
		if fs.depth > 0 {
			fs.depth--
		}
	}
}

// closeInstruction completes the innermost instruction still being
// collected. It is a no-op after the field's separator.
func (m *mapper) closeInstruction() {
	fs := &m.fields
	if len(fs.open) == 0 || len(fs.open) < fs.depth {
		return
	}
	k := len(fs.open) - 1
	f := ParseField(fs.open[k].String())
	f.Offset = fs.offsets[k]
	fs.open, fs.offsets = fs.open[:k], fs.offsets[:k]
	m.addField(f)
}

func (m *mapper) instrText(n *xmltree.Node) {
	if k := len(m.fields.open); k > 0 {
		m.fields.open[k-1].WriteString(n.TextContent())
	}
}

func (m *mapper) simpleField(n *xmltree.Node) {
	f := ParseField(n.AttrValue(nsW, "instr"))
	f.Offset = n.Offset
	m.addField(f)
}

func (m *mapper) addField(f Field) {
	m.fields.done = append(m.fields.done, f)
	label := f.Keyword
	if label == "" {
		label = "(empty)"
	}
	m.diags.WarnOnce("field "+m.part+" "+label, diag.KindSchema, m.part,
		"field %s not evaluated, its stored result is shown", label)
}

// takeFields returns the fields completed since the last call.
func (m *mapper) takeFields() []Field {
	out := m.fields.done
	m.fields.done = nil
	return out
}
