package container

import (
	"bytes"
	"strings"
)

// Flavor identifies the kind of document a package holds.
type Flavor int

const (
	// FlavorUnknown indicates the main part has no recognized content type.
	FlavorUnknown Flavor = iota
	// FlavorWordprocessing indicates a WordprocessingML document.
	FlavorWordprocessing
	// FlavorSpreadsheet indicates a SpreadsheetML workbook.
	FlavorSpreadsheet
	// FlavorPresentation indicates a PresentationML deck.
	FlavorPresentation
	// FlavorOpenDocument indicates an ODF package.
	FlavorOpenDocument
)

// String returns the name of the flavor.
func (f Flavor) String() string {
	switch f {
	case FlavorWordprocessing:
		return "DOCX"
	case FlavorSpreadsheet:
		return "XLSX"
	case FlavorPresentation:
		return "PPTX"
	case FlavorOpenDocument:
		return "ODF"
	default:
		return "Unknown"
	}
}

// Main-part content types for a word-processing document.
const (
	ContentTypeDocument      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ContentTypeTemplate      = "application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml"
	ContentTypeMacroDocument = "application/vnd.ms-word.document.macroEnabled.main+xml"
	ContentTypeMacroTemplate = "application/vnd.ms-word.template.macroEnabledTemplate.main+xml"
)

func flavorOf(contentType string) Flavor {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "wordprocessingml"), strings.HasPrefix(ct, "application/vnd.ms-word."):
		return FlavorWordprocessing
	case strings.Contains(ct, "spreadsheetml"), strings.HasPrefix(ct, "application/vnd.ms-excel."):
		return FlavorSpreadsheet
	case strings.Contains(ct, "presentationml"), strings.HasPrefix(ct, "application/vnd.ms-powerpoint."):
		return FlavorPresentation
	default:
		return FlavorUnknown
	}
}

// detectFlavor classifies the package by the content type of its main
// part, then by the well-known main part names of the other formats.
func detectFlavor(main *Part, types *ContentTypes) Flavor {
	if main != nil {
		if ct, ok := types.Lookup(main.Name); ok {
			return flavorOf(ct)
		}
	}
	for _, name := range types.Overrides() {
		ct, _ := types.Lookup(name)
		if f := flavorOf(ct); f != FlavorUnknown && strings.HasSuffix(ct, ".main+xml") {
			return f
		}
	}
	return FlavorUnknown
}

// detectWithoutTypes recognizes packages that have no content-type map.
func (p *Package) detectWithoutTypes() Flavor {
	if part, ok := p.parts["mimetype"]; ok {
		if bytes.HasPrefix(part.Data, []byte("application/vnd.oasis.opendocument")) {
			return FlavorOpenDocument
		}
	}
	switch {
	case p.Has("word/document.xml"):
		return FlavorWordprocessing
	case p.Has("xl/workbook.xml"):
		return FlavorSpreadsheet
	case p.Has("ppt/presentation.xml"):
		return FlavorPresentation
	}
	return FlavorUnknown
}
