package container

import (
	"encoding/xml"
	"strings"
)

// Relationship type suffixes. Transitional and Strict packages use
// different prefixes for the same relationship, so matching is done on
// the final path segment.
const (
	RelOfficeDocument = "officeDocument"
	RelStyles         = "styles"
	RelNumbering      = "numbering"
	RelCoreProperties = "core-properties"
	RelSettings       = "settings"
	RelTheme          = "theme"
	RelFontTable      = "fontTable"
	RelHyperlink      = "hyperlink"
	RelImage          = "image"
)

type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// Relationship links a source part to a target.
type Relationship struct {
	ID       string
	Type     string // full relationship type URI
	Target   string // resolved part name, or the raw URI when External
	External bool
}

// Is reports whether the relationship type ends with the given suffix.
func (r Relationship) Is(suffix string) bool {
	return r.Type == suffix || strings.HasSuffix(r.Type, "/"+suffix)
}

// Relationships holds the relationships of one source part.
type Relationships struct {
	Source string
	list   []Relationship
	byID   map[string]int
}

func parseRelationships(source string, data []byte) (*Relationships, error) {
	var rx relationshipsXML
	if err := xml.Unmarshal(data, &rx); err != nil {
		return nil, err
	}
	rels := &Relationships{Source: cleanName(source), byID: make(map[string]int, len(rx.Relationships))}
	for _, r := range rx.Relationships {
		rel := Relationship{ID: r.ID, Type: r.Type, Target: r.Target}
		if strings.EqualFold(r.TargetMode, "External") {
			rel.External = true
		} else {
			rel.Target = resolveTarget(source, r.Target)
		}
		if _, dup := rels.byID[r.ID]; dup {
			continue
		}
		rels.byID[r.ID] = len(rels.list)
		rels.list = append(rels.list, rel)
	}
	return rels, nil
}

// All returns every relationship in declaration order.
func (r *Relationships) All() []Relationship {
	if r == nil {
		return nil
	}
	out := make([]Relationship, len(r.list))
	copy(out, r.list)
	return out
}

// ByID returns the relationship with the given id.
func (r *Relationships) ByID(id string) (Relationship, bool) {
	if r == nil {
		return Relationship{}, false
	}
	i, ok := r.byID[id]
	if !ok {
		return Relationship{}, false
	}
	return r.list[i], true
}

// ByType returns the first relationship whose type ends with suffix.
func (r *Relationships) ByType(suffix string) (Relationship, bool) {
	if r == nil {
		return Relationship{}, false
	}
	for _, rel := range r.list {
		if rel.Is(suffix) {
			return rel, true
		}
	}
	return Relationship{}, false
}
