package container

import (
	"encoding/xml"
	"path"
	"strings"
)

// ContentTypesPart is the name of the content-type map part.
const ContentTypesPart = "[Content_Types].xml"

type contentTypesXML struct {
	XMLName   xml.Name      `xml:"Types"`
	Defaults  []defaultXML  `xml:"Default"`
	Overrides []overrideXML `xml:"Override"`
}

type defaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypes maps part names to media types.
type ContentTypes struct {
	defaults  map[string]string // by lowercased extension
	overrides map[string]string // by normalized part name
	names     []string          // override part names in declaration order
}

func parseContentTypes(data []byte) (*ContentTypes, error) {
	var ct contentTypesXML
	if err := xml.Unmarshal(data, &ct); err != nil {
		return nil, err
	}
	m := &ContentTypes{
		defaults:  make(map[string]string, len(ct.Defaults)),
		overrides: make(map[string]string, len(ct.Overrides)),
	}
	for _, d := range ct.Defaults {
		m.defaults[strings.ToLower(strings.TrimPrefix(d.Extension, "."))] = d.ContentType
	}
	for _, o := range ct.Overrides {
		key := normalizeName(o.PartName)
		if _, dup := m.overrides[key]; !dup {
			m.names = append(m.names, cleanName(o.PartName))
		}
		m.overrides[key] = o.ContentType
	}
	return m, nil
}

// Lookup returns the media type of name. Overrides take precedence over
// extension defaults.
func (m *ContentTypes) Lookup(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	if ct, ok := m.overrides[normalizeName(name)]; ok {
		return ct, true
	}
	ext := strings.TrimPrefix(path.Ext(normalizeName(name)), ".")
	if ext == "" {
		return "", false
	}
	ct, ok := m.defaults[ext]
	return ct, ok
}

// Overrides returns the part names carrying an explicit override, in
// declaration order.
func (m *ContentTypes) Overrides() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}
