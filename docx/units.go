package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/docxlayout/xmltree"
)

// Unit conversions to points.
const (
	TwipsPerPoint      = 20
	HalfPointsPerPoint = 2
	EighthsPerPoint    = 8
	EMUPerPoint        = 12700
)

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// Universal measures such as "1in" or "12pt" are allowed by the
	// transitional schema for a few attributes.
	if v, ok := parseUniversal(s); ok {
		return v * TwipsPerPoint, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseUniversal parses a universal measure into points.
func parseUniversal(s string) (float64, bool) {
	if len(s) < 3 {
		return 0, false
	}
	unit := s[len(s)-2:]
	var scale float64
	switch unit {
	case "pt":
		scale = 1
	case "in":
		scale = 72
	case "cm":
		scale = 72 / 2.54
	case "mm":
		scale = 72 / 25.4
	case "pc", "pi":
		scale = 12
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:len(s)-2], 64)
	if err != nil {
		return 0, false
	}
	return v * scale, true
}

// parseTwips converts a twips value to points.
func parseTwips(s string) (float64, bool) {
	v, ok := parseNumber(s)
	return v / TwipsPerPoint, ok
}

// parseHalfPoints converts a half-point value to points.
func parseHalfPoints(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v / HalfPointsPerPoint, true
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseOnOff interprets an ST_OnOff value. An absent value means on.
func parseOnOff(v string, present bool) bool {
	if !present {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false", "off", "none":
		return false
	default:
		return true
	}
}

// Attribute helpers for w: attributes.

func wAttr(n *xmltree.Node, local string) (string, bool) {
	return n.Attr(nsW, local)
}

func wVal(n *xmltree.Node) string {
	return n.AttrValue(nsW, "val")
}

func onOff(n *xmltree.Node) *bool {
	v, ok := wAttr(n, "val")
	return ptr(parseOnOff(v, ok))
}

func twipsAttr(n *xmltree.Node, local string) *float64 {
	v, ok := wAttr(n, local)
	if !ok {
		return nil
	}
	if f, ok := parseTwips(v); ok {
		return &f
	}
	return nil
}

func intAttr(n *xmltree.Node, local string) *int {
	v, ok := wAttr(n, local)
	if !ok {
		return nil
	}
	if i, ok := parseInt(v); ok {
		return &i
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
