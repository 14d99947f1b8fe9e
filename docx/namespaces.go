package docx

// XML namespaces used in word-processing packages.
const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsWStrict = "http://purl.oclc.org/ooxml/wordprocessingml/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP      = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsMC      = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	nsXML     = "http://www.w3.org/XML/1998/namespace"
)

// NamespaceW is the transitional WordprocessingML namespace.
const NamespaceW = nsW

// inert names WordprocessingML elements that carry no layout meaning for
// the supported subset. They are dropped without a warning.
var inert = map[string]bool{
	"bookmarkStart":         true,
	"bookmarkEnd":           true,
	"proofErr":              true,
	"permStart":             true,
	"permEnd":               true,
	"commentRangeStart":     true,
	"commentRangeEnd":       true,
	"lastRenderedPageBreak": true,
	"delText":               true,
	"noProof":               true,
	"lang":                  true,
	"rsid":                  true,
	"latentStyles":          true,
	"next":                  true,
	"link":                  true,
	"uiPriority":            true,
	"qFormat":               true,
	"semiHidden":            true,
	"unhideWhenUsed":        true,
	"rPrChange":             true,
	"pPrChange":             true,
	"nsid":                  true,
	"tmpl":                  true,
	"numPicBullet":          true,
	"snapToGrid":            true,
	"cnfStyle":              true,
	"kern":                  true,
	"webHidden":             true,
	"docGrid":               true,
	"titlePg":               true,
	"headerReference":       true,
	"footerReference":       true,
	"pgNumType":             true,
	"formProt":              true,
	"textDirection":         true,
	"tblCaption":            true,
	"tblDescription":        true,
	"autoSpaceDE":           true,
	"autoSpaceDN":           true,
	"adjustRightInd":        true,
	"contextualSpacing":     true,
	"suppressAutoHyphens":   true,
	"szCs":                  true,
	"bCs":                   true,
	"iCs":                   true,
	"gridBefore":            true,
	"gridAfter":             true,
	"wBefore":               true,
	"wAfter":                true,
	"tcFitText":             true,
	"hideMark":              true,
	"legacy":                true,
	"lvlPicBulletId":        true,
	"personal":              true,
}
