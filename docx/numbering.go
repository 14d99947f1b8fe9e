package docx

import (
	"github.com/tsawler/docxlayout/xmltree"
)

// NumberFormat is the w:numFmt of a numbering level.
type NumberFormat int

const (
	FormatDecimal NumberFormat = iota
	FormatDecimalZero
	FormatLowerLetter
	FormatUpperLetter
	FormatLowerRoman
	FormatUpperRoman
	FormatOrdinal
	FormatBullet
	FormatNone
	// FormatOther is any format outside the supported set. It renders as
	// decimal.
	FormatOther
)

var numberFormats = map[string]NumberFormat{
	"decimal":     FormatDecimal,
	"decimalZero": FormatDecimalZero,
	"lowerLetter": FormatLowerLetter,
	"upperLetter": FormatUpperLetter,
	"lowerRoman":  FormatLowerRoman,
	"upperRoman":  FormatUpperRoman,
	"ordinal":     FormatOrdinal,
	"bullet":      FormatBullet,
	"none":        FormatNone,
}

func (f NumberFormat) String() string {
	for name, v := range numberFormats {
		if v == f {
			return name
		}
	}
	return "other"
}

// Suffix is the content between a list marker and the paragraph text.
type Suffix int

const (
	SuffixTab Suffix = iota
	SuffixSpace
	SuffixNothing
)

// Level is one level of an abstract numbering definition.
type Level struct {
	Index         int
	Format        NumberFormat
	FormatName    string // raw w:numFmt value
	Start         int
	Text          string // w:lvlText, e.g. "%1."
	HasText       bool
	Justification Justification
	// Restart is the 1-based level whose advance resets this level. Nil
	// means any shallower level, 0 means never.
	Restart    *int
	IsLegal    bool
	Suffix     Suffix
	StyleID    string
	Para       ParaProps
	Run        RunProps
	Extensions []*xmltree.Node
}

// AbstractNum is a w:abstractNum definition.
type AbstractNum struct {
	ID             int
	Name           string
	MultiLevelType string
	StyleLink      string
	NumStyleLink   string
	Levels         map[int]*Level
}

// LevelOverride replaces or restarts one level of an instance.
type LevelOverride struct {
	Level         int
	StartOverride *int
	Definition    *Level // replacement level, nil when only restarting
}

// NumInstance is a w:num, an instance of an abstract definition.
type NumInstance struct {
	ID         int
	AbstractID int
	Overrides  map[int]*LevelOverride
}

// Numbering is the mapped numbering part.
type Numbering struct {
	Abstract  map[int]*AbstractNum
	Instances map[int]*NumInstance
}

// Level returns the effective level definition for numID at ilvl, with
// any instance level replacement applied.
func (n *Numbering) Level(numID, ilvl int) (*Level, *NumInstance, bool) {
	if n == nil {
		return nil, nil, false
	}
	inst, ok := n.Instances[numID]
	if !ok {
		return nil, nil, false
	}
	if ov, ok := inst.Overrides[ilvl]; ok && ov.Definition != nil {
		return ov.Definition, inst, true
	}
	abs, ok := n.Abstract[inst.AbstractID]
	if !ok {
		return nil, inst, false
	}
	lvl, ok := abs.Levels[ilvl]
	if !ok {
		return nil, inst, false
	}
	return lvl, inst, true
}

func (m *mapper) numbering(root *xmltree.Node) *Numbering {
	num := &Numbering{
		Abstract:  make(map[int]*AbstractNum),
		Instances: make(map[int]*NumInstance),
	}
	for _, c := range root.ChildElements() {
		switch {
		case c.Is(nsW, "abstractNum"):
			if abs := m.abstractNum(c); abs != nil {
				num.Abstract[abs.ID] = abs
			}
		case c.Is(nsW, "num"):
			if inst := m.numInstance(c); inst != nil {
				num.Instances[inst.ID] = inst
			}
		default:
			m.unknown(c)
		}
	}
	return num
}

func (m *mapper) abstractNum(n *xmltree.Node) *AbstractNum {
	id := intAttr(n, "abstractNumId")
	if id == nil {
		return nil
	}
	abs := &AbstractNum{ID: *id, Levels: make(map[int]*Level)}
	for _, c := range n.ChildElements() {
		if c.Name.Space != nsW {
			m.unknown(c)
			continue
		}
		switch c.Name.Local {
		case "lvl":
			if lvl := m.level(c); lvl != nil {
				abs.Levels[lvl.Index] = lvl
			}
		case "name":
			abs.Name = wVal(c)
		case "multiLevelType":
			abs.MultiLevelType = wVal(c)
		case "styleLink":
			abs.StyleLink = wVal(c)
		case "numStyleLink":
			abs.NumStyleLink = wVal(c)
		default:
			m.unknown(c)
		}
	}
	return abs
}

func (m *mapper) level(n *xmltree.Node) *Level {
	idx := intAttr(n, "ilvl")
	if idx == nil || *idx < 0 {
		return nil
	}
	lvl := &Level{Index: *idx, Start: 1}
	for _, c := range n.ChildElements() {
		if c.Name.Space != nsW {
			if ext := m.unknown(c); ext != nil {
				lvl.Extensions = append(lvl.Extensions, ext)
			}
			continue
		}
		switch c.Name.Local {
		case "start":
			if v, ok := parseInt(wVal(c)); ok {
				lvl.Start = v
			}
		case "numFmt":
			lvl.FormatName = wVal(c)
			f, ok := numberFormats[lvl.FormatName]
			if !ok {
				f = FormatOther
			}
			lvl.Format = f
		case "lvlText":
			lvl.Text, lvl.HasText = wAttr(c, "val")
		case "lvlRestart":
			if v, ok := parseInt(wVal(c)); ok {
				lvl.Restart = &v
			}
		case "isLgl":
			lvl.IsLegal = *onOff(c)
		case "lvlJc":
			if j, ok := parseJustification(wVal(c)); ok {
				lvl.Justification = j
			}
		case "suff":
			switch wVal(c) {
			case "space":
				lvl.Suffix = SuffixSpace
			case "nothing":
				lvl.Suffix = SuffixNothing
			}
		case "pStyle":
			lvl.StyleID = wVal(c)
		case "pPr":
			lvl.Para, _ = m.paraProps(c)
		case "rPr":
			lvl.Run = m.runProps(c)
		default:
			if ext := m.unknown(c); ext != nil {
				lvl.Extensions = append(lvl.Extensions, ext)
			}
		}
	}
	return lvl
}

func (m *mapper) numInstance(n *xmltree.Node) *NumInstance {
	id := intAttr(n, "numId")
	if id == nil {
		return nil
	}
	inst := &NumInstance{ID: *id, Overrides: make(map[int]*LevelOverride)}
	for _, c := range n.ChildElements() {
		switch {
		case c.Is(nsW, "abstractNumId"):
			if v, ok := parseInt(wVal(c)); ok {
				inst.AbstractID = v
			}
		case c.Is(nsW, "lvlOverride"):
			idx := intAttr(c, "ilvl")
			if idx == nil {
				continue
			}
			ov := &LevelOverride{Level: *idx}
			if so := c.Child(nsW, "startOverride"); so != nil {
				if v, ok := parseInt(wVal(so)); ok {
					ov.StartOverride = &v
				}
			}
			if l := c.Child(nsW, "lvl"); l != nil {
				ov.Definition = m.level(l)
				if ov.Definition != nil {
					ov.Definition.Index = *idx
				}
			}
			inst.Overrides[*idx] = ov
		default:
			m.unknown(c)
		}
	}
	return inst
}
