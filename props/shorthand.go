package props

import (
	"sort"

	"github.com/loomkit/loom/resolve"
)

// expansion maps one shorthand to the stylesheet properties it writes and
// the value domain its raw value is resolved in.
type expansion struct {
	properties []string
	domain     resolve.Domain
}

// shorthands is the prop vocabulary. Anything absent passes through as a
// literal property under resolve.DomainLiteral.
var shorthands = map[string]expansion{
	"m":  {properties: []string{"margin-top", "margin-right", "margin-bottom", "margin-left"}, domain: resolve.DomainSpacing},
	"mx": {properties: []string{"margin-left", "margin-right"}, domain: resolve.DomainSpacing},
	"my": {properties: []string{"margin-top", "margin-bottom"}, domain: resolve.DomainSpacing},
	"mt": {properties: []string{"margin-top"}, domain: resolve.DomainSpacing},
	"mr": {properties: []string{"margin-right"}, domain: resolve.DomainSpacing},
	"mb": {properties: []string{"margin-bottom"}, domain: resolve.DomainSpacing},
	"ml": {properties: []string{"margin-left"}, domain: resolve.DomainSpacing},

	"p":  {properties: []string{"padding-top", "padding-right", "padding-bottom", "padding-left"}, domain: resolve.DomainSpacing},
	"px": {properties: []string{"padding-left", "padding-right"}, domain: resolve.DomainSpacing},
	"py": {properties: []string{"padding-top", "padding-bottom"}, domain: resolve.DomainSpacing},
	"pt": {properties: []string{"padding-top"}, domain: resolve.DomainSpacing},
	"pr": {properties: []string{"padding-right"}, domain: resolve.DomainSpacing},
	"pb": {properties: []string{"padding-bottom"}, domain: resolve.DomainSpacing},
	"pl": {properties: []string{"padding-left"}, domain: resolve.DomainSpacing},

	"c":   {properties: []string{"color"}, domain: resolve.DomainColor},
	"bg":  {properties: []string{"background-color"}, domain: resolve.DomainColor},
	"bdc": {properties: []string{"border-color"}, domain: resolve.DomainColor},

	"w":   {properties: []string{"min-width", "max-width"}, domain: resolve.DomainSpacing},
	"h":   {properties: []string{"min-height", "max-height"}, domain: resolve.DomainSpacing},
	"miw": {properties: []string{"min-width"}, domain: resolve.DomainSpacing},
	"mih": {properties: []string{"min-height"}, domain: resolve.DomainSpacing},
	"maw": {properties: []string{"max-width"}, domain: resolve.DomainSpacing},
	"mah": {properties: []string{"max-height"}, domain: resolve.DomainSpacing},

	"fz": {properties: []string{"font-size"}, domain: resolve.DomainFontSize},
	"lh": {properties: []string{"line-height"}, domain: resolve.DomainLineHeight},
	"ff": {properties: []string{"font-family"}, domain: resolve.DomainLiteral},
	"fw": {properties: []string{"font-weight"}, domain: resolve.DomainLiteral},
	"ta": {properties: []string{"text-align"}, domain: resolve.DomainLiteral},
	"td": {properties: []string{"text-decoration"}, domain: resolve.DomainLiteral},
	"tt": {properties: []string{"text-transform"}, domain: resolve.DomainLiteral},

	"bd":   {properties: []string{"border"}, domain: resolve.DomainLiteral},
	"bdrs": {properties: []string{"border-radius"}, domain: resolve.DomainRadius},
	"sh":   {properties: []string{"box-shadow"}, domain: resolve.DomainShadow},

	"op":    {properties: []string{"opacity"}, domain: resolve.DomainLiteral},
	"inset": {properties: []string{"top", "right", "bottom", "left"}, domain: resolve.DomainSpacing},
}

// Shorthands lists the recognized shorthand names in sorted order.
func Shorthands() []string {
	names := make([]string, 0, len(shorthands))
	for name := range shorthands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsShorthand reports whether name is part of the shorthand vocabulary.
func IsShorthand(name string) bool {
	_, ok := shorthands[name]
	return ok
}

func expansionFor(prop string) expansion {
	if e, ok := shorthands[prop]; ok {
		return e
	}
	return expansion{properties: []string{prop}, domain: resolve.DomainLiteral}
}

// expansionWidth is the number of properties a key writes. Wider shorthands
// apply before narrower ones so that, e.g., mt always beats m on margin-top
// no matter how the bag was written.
func expansionWidth(prop string) int {
	if e, ok := shorthands[prop]; ok {
		return len(e.properties)
	}
	return 1
}
