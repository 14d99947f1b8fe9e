package docx

import (
	"bytes"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/tsawler/docxlayout/diag"
)

// CoreProperties holds the Dublin Core metadata of docProps/core.xml.
type CoreProperties struct {
	Title          string
	Subject        string
	Creator        string
	Description    string
	Keywords       []string
	Category       string
	LastModifiedBy string
	Revision       string
	Created        time.Time
	Modified       time.Time
}

// MapCoreProperties extracts metadata from a core properties part. The
// lookup matches on local names, so any namespace prefix is accepted.
func MapCoreProperties(data []byte, part string) (CoreProperties, error) {
	var cp CoreProperties
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return cp, diag.Wrap(diag.KindXMLSyntax, diag.ErrMalformedXML, part, err)
	}
	root := xmlquery.FindOne(doc, "/*[local-name()='coreProperties']")
	if root == nil {
		return cp, diag.New(diag.KindSchema, diag.ErrUnsupportedSchemaVersion, part, "root element is not coreProperties")
	}

	text := func(local string) string {
		n := xmlquery.FindOne(root, "*[local-name()='"+local+"']")
		if n == nil {
			return ""
		}
		return strings.TrimSpace(n.InnerText())
	}
	date := func(local string) time.Time {
		v := text(local)
		if v == "" {
			return time.Time{}
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
		return time.Time{}
	}

	cp.Title = text("title")
	cp.Subject = text("subject")
	cp.Creator = text("creator")
	cp.Description = text("description")
	cp.Category = text("category")
	cp.LastModifiedBy = text("lastModifiedBy")
	cp.Revision = text("revision")
	cp.Created = date("created")
	cp.Modified = date("modified")
	for _, kw := range strings.FieldsFunc(text("keywords"), func(r rune) bool { return r == ',' || r == ';' }) {
		if kw = strings.TrimSpace(kw); kw != "" {
			cp.Keywords = append(cp.Keywords, kw)
		}
	}
	return cp, nil
}
