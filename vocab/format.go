package vocab

import (
	"strconv"
	"strings"
)

// PassiveActionIcon replaces the image of passive actions.
const PassiveActionIcon = "icons/actions/passive.webp"

var actionGlyphs = map[string]string{
	"1":        "1",
	"2":        "2",
	"3":        "3",
	"1 or 2":   "1/2",
	"1 to 3":   "1 - 3",
	"2 or 3":   "2/3",
	"2 to 3":   "2 - 3",
	"free":     "F",
	"reaction": "R",
}

// ActionGlyph maps a cast or activation time to its compact glyph. Times
// that are not action counts, such as "1 minute", have no glyph.
func ActionGlyph(time string) string {
	return actionGlyphs[strings.ToLower(strings.TrimSpace(time))]
}

// Ordinal formats n as "1st", "2nd", "3rd", "4th" and so on.
func Ordinal(n int) string {
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
