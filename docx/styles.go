package docx

import (
	"github.com/tsawler/docxlayout/xmltree"
)

// StyleKind is the w:type of a style definition.
type StyleKind int

const (
	StyleParagraph StyleKind = iota
	StyleCharacter
	StyleTable
	StyleNumbering
)

func (k StyleKind) String() string {
	switch k {
	case StyleCharacter:
		return "character"
	case StyleTable:
		return "table"
	case StyleNumbering:
		return "numbering"
	default:
		return "paragraph"
	}
}

func parseStyleKind(v string) StyleKind {
	switch v {
	case "character":
		return StyleCharacter
	case "table":
		return StyleTable
	case "numbering":
		return StyleNumbering
	default:
		return StyleParagraph
	}
}

// TableRegion names a conditional formatting region of a table style.
// Regions are ordered by precedence: a later region overrides an earlier
// one when both apply to a cell.
type TableRegion int

const (
	RegionWholeTable TableRegion = iota
	RegionBand1Vert
	RegionBand2Vert
	RegionBand1Horz
	RegionBand2Horz
	RegionFirstCol
	RegionLastCol
	RegionFirstRow
	RegionLastRow
	RegionNECell
	RegionNWCell
	RegionSECell
	RegionSWCell
)

var regionNames = map[string]TableRegion{
	"wholeTable": RegionWholeTable,
	"band1Vert":  RegionBand1Vert,
	"band2Vert":  RegionBand2Vert,
	"band1Horz":  RegionBand1Horz,
	"band2Horz":  RegionBand2Horz,
	"firstCol":   RegionFirstCol,
	"lastCol":    RegionLastCol,
	"firstRow":   RegionFirstRow,
	"lastRow":    RegionLastRow,
	"neCell":     RegionNECell,
	"nwCell":     RegionNWCell,
	"seCell":     RegionSECell,
	"swCell":     RegionSWCell,
}

func (r TableRegion) String() string {
	for name, v := range regionNames {
		if v == r {
			return name
		}
	}
	return "unknown"
}

// ConditionalFormat is the formatting a table style applies to one region.
type ConditionalFormat struct {
	Para  ParaProps
	Run   RunProps
	Table TableProps
	Row   RowProps
	Cell  CellProps
}

// StyleDefinition is a single w:style.
type StyleDefinition struct {
	ID          string
	Name        string
	Kind        StyleKind
	BasedOn     string
	Default     bool
	Para        ParaProps
	Run         RunProps
	Table       TableProps
	Row         RowProps
	Cell        CellProps
	Conditional map[TableRegion]*ConditionalFormat
	Offset      int64
	Extensions  []*xmltree.Node
}

// Styles is the mapped styles part.
type Styles struct {
	DefaultRun  RunProps
	DefaultPara ParaProps
	Definitions map[string]*StyleDefinition
	// Order lists style ids in declaration order.
	Order []string
}

// Lookup returns the style with the given id.
func (s *Styles) Lookup(id string) (*StyleDefinition, bool) {
	if s == nil || id == "" {
		return nil, false
	}
	def, ok := s.Definitions[id]
	return def, ok
}

// DefaultStyle returns the id of the default style of the given kind, or
// the empty string when none is marked.
func (s *Styles) DefaultStyle(kind StyleKind) string {
	if s == nil {
		return ""
	}
	for _, id := range s.Order {
		if def := s.Definitions[id]; def.Kind == kind && def.Default {
			return id
		}
	}
	return ""
}

func (m *mapper) styles(root *xmltree.Node) *Styles {
	st := &Styles{Definitions: make(map[string]*StyleDefinition)}
	for _, c := range root.ChildElements() {
		switch {
		case c.Is(nsW, "docDefaults"):
			if rpr := c.Child(nsW, "rPrDefault"); rpr != nil {
				st.DefaultRun = m.runProps(rpr.Child(nsW, "rPr"))
			}
			if ppr := c.Child(nsW, "pPrDefault"); ppr != nil {
				st.DefaultPara, _ = m.paraProps(ppr.Child(nsW, "pPr"))
			}
		case c.Is(nsW, "style"):
			def := m.style(c)
			if def.ID == "" {
				continue
			}
			if _, dup := st.Definitions[def.ID]; !dup {
				st.Order = append(st.Order, def.ID)
			}
			st.Definitions[def.ID] = def
		default:
			m.unknown(c)
		}
	}
	return st
}

func (m *mapper) style(n *xmltree.Node) *StyleDefinition {
	dflt, hasDefault := n.Attr(nsW, "default")
	def := &StyleDefinition{
		ID:      n.AttrValue(nsW, "styleId"),
		Kind:    parseStyleKind(n.AttrValue(nsW, "type")),
		Default: hasDefault && parseOnOff(dflt, true),
		Offset:  n.Offset,
	}
	for _, c := range n.ChildElements() {
		if c.Name.Space != nsW {
			if ext := m.unknown(c); ext != nil {
				def.Extensions = append(def.Extensions, ext)
			}
			continue
		}
		switch c.Name.Local {
		case "name":
			def.Name = wVal(c)
		case "basedOn":
			def.BasedOn = wVal(c)
		case "pPr":
			def.Para, _ = m.paraProps(c)
		case "rPr":
			def.Run = m.runProps(c)
		case "tblPr":
			def.Table = m.tableProps(c)
		case "trPr":
			def.Row = m.rowProps(c)
		case "tcPr":
			def.Cell = m.cellProps(c)
		case "tblStylePr":
			region, ok := regionNames[c.AttrValue(nsW, "type")]
			if !ok {
				m.unknown(c)
				continue
			}
			if def.Conditional == nil {
				def.Conditional = make(map[TableRegion]*ConditionalFormat)
			}
			cf := &ConditionalFormat{}
			cf.Para, _ = m.paraProps(c.Child(nsW, "pPr"))
			cf.Run = m.runProps(c.Child(nsW, "rPr"))
			cf.Table = m.tableProps(c.Child(nsW, "tblPr"))
			cf.Row = m.rowProps(c.Child(nsW, "trPr"))
			cf.Cell = m.cellProps(c.Child(nsW, "tcPr"))
			def.Conditional[region] = cf
		default:
			if ext := m.unknown(c); ext != nil {
				def.Extensions = append(def.Extensions, ext)
			}
		}
	}
	return def
}
