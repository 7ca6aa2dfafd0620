// Package widths measures how well data table columns fit their text and
// proposes redistributed column widths.
package widths

import "github.com/ukaji3/doclayout-go/pkg/doclayout/config"

// IsWide reports whether r renders as a full-width glyph: Hangul syllables,
// CJK symbols, kana and unified ideographs, and CJK compatibility ideographs.
func IsWide(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7AF) ||
		(r >= 0x3000 && r <= 0x9FFF) ||
		(r >= 0xF900 && r <= 0xFAFF)
}

// EstimateTextWidth returns the rendered width of s in DXA under the fixed
// per-glyph model.
func EstimateTextWidth(g config.Glyphs, s string) int {
	width := 0
	for _, r := range s {
		if IsWide(r) {
			width += g.Wide
		} else {
			width += g.Narrow
		}
	}
	return width
}
