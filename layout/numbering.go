package layout

import (
	"strconv"
	"strings"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/model"
)

const maxLevels = 9

// listState holds the counters of one abstract numbering definition.
type listState struct {
	value [maxLevels]int
	used  [maxLevels]bool
	// start is a pending startOverride, applied when the level is next used.
	start [maxLevels]*int
}

// counters tracks list numbering across a document.
type counters struct {
	numbering *docx.Numbering
	lists     map[int]*listState
	instances map[int]bool // numIds whose overrides have been applied
	diags     *diag.Collector
}

func newCounters(n *docx.Numbering, diags *diag.Collector) *counters {
	return &counters{
		numbering: n,
		lists:     make(map[int]*listState),
		instances: make(map[int]bool),
		diags:     diags,
	}
}

// marker advances the counters for item and returns its marker text and
// the suffix that follows it.
func (c *counters) marker(item *model.ListItem) (string, docx.Suffix) {
	if item.Def == nil {
		if c.numbering == nil {
			c.diags.WarnOnce("numbering-missing", diag.KindPart, "word/numbering.xml", "numbering part missing")
		} else {
			c.diags.WarnOnce("numbering:"+strconv.Itoa(item.NumID), diag.KindSchema, "word/numbering.xml",
				"numbering instance %d level %d is not defined", item.NumID, item.Level)
		}
		return "", docx.SuffixNothing
	}

	ilvl := item.Level
	if ilvl < 0 || ilvl >= maxLevels {
		ilvl = 0
	}
	key := item.Abstract
	if key < 0 {
		key = -1 - item.NumID
	}
	st := c.lists[key]
	if st == nil {
		st = &listState{}
		c.lists[key] = st
	}

	if !c.instances[item.NumID] {
		c.instances[item.NumID] = true
		c.applyOverrides(st, item.NumID)
	}

	switch {
	case st.start[ilvl] != nil:
		st.value[ilvl] = *st.start[ilvl]
		st.start[ilvl] = nil
	case !st.used[ilvl]:
		st.value[ilvl] = item.Def.Start
	default:
		st.value[ilvl]++
	}
	st.used[ilvl] = true

	for d := ilvl + 1; d < maxLevels; d++ {
		limit := d
		if lvl, _, ok := c.numbering.Level(item.NumID, d); ok && lvl.Restart != nil {
			limit = *lvl.Restart
		}
		if ilvl < limit {
			st.used[d] = false
		}
	}

	if !item.Def.HasText {
		return "", item.Def.Suffix
	}
	if item.Def.Format == docx.FormatBullet {
		return bulletText(item.Def.Text, ilvl), item.Def.Suffix
	}
	return c.expand(item, st, ilvl), item.Def.Suffix
}

// applyOverrides queues the startOverride values of an instance the
// first time the instance is used.
func (c *counters) applyOverrides(st *listState, numID int) {
	inst, ok := c.numbering.Instances[numID]
	if !ok {
		return
	}
	for lvl, ov := range inst.Overrides {
		if lvl < 0 || lvl >= maxLevels {
			continue
		}
		start := ov.StartOverride
		if start == nil && ov.Definition != nil {
			s := ov.Definition.Start
			start = &s
		}
		if start != nil {
			st.start[lvl] = start
			st.used[lvl] = false
		}
	}
}

// expand substitutes %1 through %9 in the level text.
func (c *counters) expand(item *model.ListItem, st *listState, ilvl int) string {
	src := item.Def.Text
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		if src[i] != '%' || i+1 == len(src) || src[i+1] < '1' || src[i+1] > '9' {
			b.WriteByte(src[i])
			continue
		}
		n := int(src[i+1] - '1')
		i++

		format := docx.FormatDecimal
		value := 0
		if lvl, _, ok := c.numbering.Level(item.NumID, n); ok {
			format = lvl.Format
			value = lvl.Start
		}
		if n == ilvl {
			format = item.Def.Format
		}
		if st.used[n] {
			value = st.value[n]
		}
		if item.Def.IsLegal && n != ilvl {
			format = docx.FormatDecimal
		}
		b.WriteString(formatNumber(value, format))
	}
	return b.String()
}

// formatNumber renders n in the given numbering format.
func formatNumber(n int, format docx.NumberFormat) string {
	switch format {
	case docx.FormatDecimalZero:
		if n >= 0 && n < 10 {
			return "0" + strconv.Itoa(n)
		}
		return strconv.Itoa(n)
	case docx.FormatLowerLetter:
		return toLetter(n, 'a')
	case docx.FormatUpperLetter:
		return toLetter(n, 'A')
	case docx.FormatLowerRoman:
		return strings.ToLower(toRoman(n))
	case docx.FormatUpperRoman:
		return toRoman(n)
	case docx.FormatOrdinal:
		return ordinal(n)
	case docx.FormatNone, docx.FormatBullet:
		return ""
	default:
		return strconv.Itoa(n)
	}
}

// toLetter converts n to a letter sequence the way word processors do:
// a..z, then aa..zz, then aaa.
func toLetter(n int, base rune) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	letter := string(base + rune((n-1)%26))
	return strings.Repeat(letter, (n-1)/26+1)
}

// toRoman converts a number to uppercase Roman numerals. Values outside
// 1-3999 render in decimal.
func toRoman(n int) string {
	if n < 1 || n > 3999 {
		return strconv.Itoa(n)
	}

	romanNumerals := []struct {
		value  int
		symbol string
	}{
		{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
		{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
		{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
	}

	var b strings.Builder
	for _, rn := range romanNumerals {
		for n >= rn.value {
			b.WriteString(rn.symbol)
			n -= rn.value
		}
	}
	return b.String()
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// bullets are used by level when the level text cannot be rendered.
var bullets = []string{"•", "○", "■", "□", "▪", "▫", "►", "◦"}

// symbolBullets maps the Symbol and Wingdings private-use code points
// Word writes for common bullets.
var symbolBullets = map[rune]string{
	0xF0B7: "•",
	0xF0A7: "▪",
	0xF0D8: "►",
	0xF0FC: "✓",
	0xF06F: "○",
	0xF0A8: "□",
	0xF076: "❖",
}

// bulletText returns a renderable bullet for a level text.
func bulletText(lvlText string, level int) string {
	if r := []rune(lvlText); len(r) == 1 {
		if s, ok := symbolBullets[r[0]]; ok {
			return s
		}
	}
	if isRenderableBullet(lvlText) {
		return lvlText
	}
	if level < len(bullets) {
		return bullets[level]
	}
	return "•"
}

// isRenderableBullet reports whether s can be shown without the Symbol
// or Wingdings fonts: no private use or control characters.
func isRenderableBullet(s string) bool {
	for _, r := range s {
		if r >= 0xE000 && r <= 0xF8FF {
			return false
		}
		if r < 0x20 {
			return false
		}
	}
	return len(s) > 0
}
