package token

import (
	"strconv"
	"strings"
)

// FormatPx renders a device-independent length as stylesheet text in
// physical pixels, trimming insignificant zeros: 8 → "8px", 8.5 → "8.5px".
func FormatPx(value float64) string {
	text := strconv.FormatFloat(value, 'f', 2, 64)
	text = strings.TrimRight(text, "0")
	text = strings.TrimSuffix(text, ".")
	if text == "" || text == "-" {
		text = "0"
	}
	return text + "px"
}

// FormatNumber renders a unitless number with the same zero trimming as
// FormatPx. Used where pixels would be wrong, e.g. font weights and
// opacity.
func FormatNumber(value float64) string {
	text := strconv.FormatFloat(value, 'f', 3, 64)
	text = strings.TrimRight(text, "0")
	text = strings.TrimSuffix(text, ".")
	if text == "" || text == "-" {
		text = "0"
	}
	return text
}

// ScalePx applies the theme scale factor to a bare numeric literal and
// converts it to output units.
func ScalePx(value, scale float64) string {
	if scale == 0 {
		scale = 1
	}
	return FormatPx(value * scale)
}
