package token

import (
	"strconv"
	"strings"
)

// RGBA is a parsed color value. Alpha defaults to 255 for opaque forms.
type RGBA struct {
	R, G, B, A uint8
}

// namedColors covers the keyword values the stylesheet syntax accepts
// verbatim. Everything else must be hex or rgb()/rgba().
var namedColors = map[string]RGBA{
	"transparent": {0, 0, 0, 0},
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"gray":        {128, 128, 128, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
}

// ParseColor parses a color literal. Accepted forms: #rgb, #rrggbb,
// #rrggbbaa, rgb(r, g, b), rgba(r, g, b, a) and a small set of keywords.
func ParseColor(value string) (RGBA, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return RGBA{}, false
	}

	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(s, ")") {
		return parseRGBFunc(s[5:len(s)-1], true)
	}
	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGBFunc(s[4:len(s)-1], false)
	}
	return RGBA{}, false
}

// IsColor reports whether value parses as a color literal.
func IsColor(value string) bool {
	_, ok := ParseColor(value)
	return ok
}

func parseHex(hex string) (RGBA, bool) {
	switch len(hex) {
	case 3:
		r, okR := hexNibble(hex[0])
		g, okG := hexNibble(hex[1])
		b, okB := hexNibble(hex[2])
		if !okR || !okG || !okB {
			return RGBA{}, false
		}
		return RGBA{r * 17, g * 17, b * 17, 255}, true
	case 6, 8:
		var out [4]uint8
		out[3] = 255
		for i := 0; i*2 < len(hex); i++ {
			b, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return RGBA{}, false
			}
			out[i] = uint8(b)
		}
		return RGBA{out[0], out[1], out[2], out[3]}, true
	default:
		return RGBA{}, false
	}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func parseRGBFunc(args string, withAlpha bool) (RGBA, bool) {
	parts := strings.Split(args, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return RGBA{}, false
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 16)
		if err != nil || n > 255 {
			return RGBA{}, false
		}
		channels[i] = uint8(n)
	}

	alpha := uint8(255)
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return RGBA{}, false
		}
		alpha = uint8(a*255 + 0.5)
	}
	return RGBA{channels[0], channels[1], channels[2], alpha}, true
}
