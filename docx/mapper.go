package docx

import (
	"fmt"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/xmltree"
)

// PartKind identifies the schema a part is mapped with.
type PartKind int

const (
	PartDocument PartKind = iota
	PartStyles
	PartNumbering
)

func (k PartKind) String() string {
	switch k {
	case PartDocument:
		return "document"
	case PartStyles:
		return "styles"
	case PartNumbering:
		return "numbering"
	default:
		return "unknown"
	}
}

func (k PartKind) rootName() string {
	switch k {
	case PartStyles:
		return "styles"
	case PartNumbering:
		return "numbering"
	default:
		return "document"
	}
}

// Records holds the result of mapping one part. Exactly one field is set,
// matching the PartKind that was mapped.
type Records struct {
	Document  *DocumentPart
	Styles    *Styles
	Numbering *Numbering
}

// Map converts tree into typed records for the given part kind. Soft
// problems are reported to diags, which may be nil.
func Map(tree *xmltree.Node, kind PartKind, part string, diags *diag.Collector) (*Records, error) {
	m := newMapper(part, diags)
	if err := m.checkRoot(tree, kind); err != nil {
		return nil, err
	}

	var rec Records
	switch kind {
	case PartDocument:
		rec.Document = m.document(tree)
	case PartStyles:
		rec.Styles = m.styles(tree)
	case PartNumbering:
		rec.Numbering = m.numbering(tree)
	default:
		return nil, diag.New(diag.KindSchema, diag.ErrUnsupportedSchemaVersion, part, fmt.Sprintf("unknown part kind %d", kind))
	}
	m.flush()
	return &rec, nil
}

// MapDocument maps a main document part.
func MapDocument(tree *xmltree.Node, part string, diags *diag.Collector) (*DocumentPart, error) {
	rec, err := Map(tree, PartDocument, part, diags)
	if err != nil {
		return nil, err
	}
	return rec.Document, nil
}

// MapStyles maps a styles part.
func MapStyles(tree *xmltree.Node, part string, diags *diag.Collector) (*Styles, error) {
	rec, err := Map(tree, PartStyles, part, diags)
	if err != nil {
		return nil, err
	}
	return rec.Styles, nil
}

// MapNumbering maps a numbering part.
func MapNumbering(tree *xmltree.Node, part string, diags *diag.Collector) (*Numbering, error) {
	rec, err := Map(tree, PartNumbering, part, diags)
	if err != nil {
		return nil, err
	}
	return rec.Numbering, nil
}

// mapper carries per-part state while mapping.
type mapper struct {
	part    string
	diags   *diag.Collector
	ignored map[xmltree.Name]int
	order   []xmltree.Name
	fields  fieldState
}

func newMapper(part string, diags *diag.Collector) *mapper {
	return &mapper{part: part, diags: diags, ignored: make(map[xmltree.Name]int)}
}

func (m *mapper) checkRoot(tree *xmltree.Node, kind PartKind) error {
	if tree == nil || tree.Kind != xmltree.ElementNode {
		return diag.New(diag.KindSchema, diag.ErrUnsupportedSchemaVersion, m.part, "part has no root element")
	}
	want := kind.rootName()
	switch {
	case tree.Name.Space == nsWStrict:
		return diag.New(diag.KindSchema, diag.ErrUnsupportedSchemaVersion, m.part,
			"strict WordprocessingML is not supported").At(tree.Offset)
	case tree.Name.Space != nsW:
		return diag.New(diag.KindSchema, diag.ErrUnsupportedSchemaVersion, m.part,
			fmt.Sprintf("root element %s is not in the WordprocessingML namespace", tree.Name)).At(tree.Offset)
	case tree.Name.Local != want:
		return diag.New(diag.KindSchema, diag.ErrUnsupportedSchemaVersion, m.part,
			fmt.Sprintf("root element is %s, want %s", tree.Name.Local, want)).At(tree.Offset)
	}
	return nil
}

// unknown records n as unrecognized and returns it for the caller's
// extension bag. Inert WordprocessingML elements return nil.
func (m *mapper) unknown(n *xmltree.Node) *xmltree.Node {
	if n.Name.Space == nsW && inert[n.Name.Local] {
		return nil
	}
	if _, seen := m.ignored[n.Name]; !seen {
		m.order = append(m.order, n.Name)
	}
	m.ignored[n.Name]++
	return n
}

// foreignAttrs appends the attributes of n that lie outside the
// vocabularies the mapper reads.
func foreignAttrs(dst []xmltree.Attr, n *xmltree.Node) []xmltree.Attr {
	for _, a := range n.Attrs {
		switch a.Name.Space {
		case nsW, nsR, nsMC, nsXML:
			continue
		}
		dst = append(dst, a)
	}
	return dst
}

// flush emits one warning per unrecognized element name.
func (m *mapper) flush() {
	for _, name := range m.order {
		count := m.ignored[name]
		label := name.Local
		if name.Space != nsW {
			label = name.String()
		}
		if count == 1 {
			m.diags.Warn(diag.KindSchema, m.part, "ignored unrecognized element %s", label)
		} else {
			m.diags.Warn(diag.KindSchema, m.part, "ignored %d occurrences of unrecognized element %s", count, label)
		}
	}
	m.order = nil
}

// alternate returns the children to use in place of an
// mc:AlternateContent element. No Choice requirements are supported, so
// the Fallback branch is taken.
func alternate(n *xmltree.Node) []*xmltree.Node {
	if fb := n.Child(nsMC, "Fallback"); fb != nil {
		return fb.ChildElements()
	}
	return nil
}
