package resolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	loomerrors "github.com/loomkit/loom/pkg/errors"
	"github.com/loomkit/loom/token"
)

// Domain names the value space a prop draws from. It decides which token
// table a named key is looked up in and whether bare numbers are scaled.
type Domain int

const (
	DomainLiteral Domain = iota
	DomainColor
	DomainSpacing
	DomainRadius
	DomainFontSize
	DomainLineHeight
	DomainShadow
)

var domainKinds = map[Domain]token.Kind{
	DomainSpacing:    token.KindSpacing,
	DomainRadius:     token.KindRadius,
	DomainFontSize:   token.KindFontSize,
	DomainLineHeight: token.KindLineHeight,
}

// literalUnit matches numbers that already carry their own unit, e.g.
// "12px", "-0.5em", "50%". Those pass through untouched.
var literalUnit = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)(px|pt|em|ex|%)$`)

var passthroughKeywords = map[string]struct{}{
	"auto":    {},
	"none":    {},
	"inherit": {},
}

// Resolve maps one raw prop value to its final stylesheet form. Numbers are
// scaled by the theme scale and rendered in pixels; strings are interpreted
// per domain. Resolution of the same input against the same Context always
// yields the same output.
func Resolve(ctx Context, domain Domain, raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", loomerrors.NewLookupError("value", "<nil>")
	case string:
		return resolveString(ctx, domain, v)
	case int:
		return resolveNumber(ctx, domain, float64(v))
	case int64:
		return resolveNumber(ctx, domain, float64(v))
	case float32:
		return resolveNumber(ctx, domain, float64(v))
	case float64:
		return resolveNumber(ctx, domain, v)
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", loomerrors.NewLookupError("value type", fmt.Sprintf("%T", raw))
	}
}

func resolveNumber(ctx Context, domain Domain, v float64) (string, error) {
	switch domain {
	case DomainColor, DomainShadow:
		return "", loomerrors.NewLookupError("value type", "number")
	case DomainLiteral:
		return token.FormatNumber(v), nil
	default:
		return token.ScalePx(v, ctx.Scale), nil
	}
}

func resolveString(ctx Context, domain Domain, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", loomerrors.NewLookupError("value", "")
	}

	switch domain {
	case DomainColor:
		return resolveColor(ctx, v)
	case DomainShadow:
		return resolveShadow(ctx, v)
	case DomainLiteral:
		return v, nil
	default:
		return resolveSized(ctx, domain, v)
	}
}

// resolveColor handles the scheme-dependent aliases, "family.index"
// references, bare family names and literal colors, in that order. A theme
// family named "blue" shadows the stylesheet keyword of the same name;
// keywords only pass through when no family claims them.
func resolveColor(ctx Context, v string) (string, error) {
	switch v {
	case "primary":
		return ctx.Store.Shade(ctx.Primary, ctx.PrimaryShade)
	case "dimmed":
		if ctx.Scheme == "dark" {
			return ctx.Store.Shade("gray", 4)
		}
		return ctx.Store.Shade("gray", 6)
	case "bright":
		if ctx.Scheme == "dark" {
			return ctx.Store.Shade("gray", 0)
		}
		return ctx.Store.Shade("gray", 9)
	case "text":
		if ctx.Scheme == "dark" {
			return ctx.Store.Shade("gray", 2)
		}
		return ctx.Store.Shade("gray", 7)
	case "body":
		if ctx.Scheme == "dark" {
			return ctx.Store.Shade("gray", 9)
		}
		return "white", nil
	}

	if family, index, ok := splitShadeRef(v); ok {
		return ctx.Store.Shade(family, index)
	}
	if ctx.Store.HasFamily(v) {
		return ctx.Store.Shade(v, ctx.PrimaryShade)
	}
	if token.IsColor(v) {
		return v, nil
	}
	return "", loomerrors.NewLookupError("color", v)
}

// splitShadeRef parses "blue.6" style references. Anything after the dot
// that is not a bare index makes the reference invalid rather than a
// different kind of value.
func splitShadeRef(v string) (string, int, bool) {
	dot := strings.LastIndexByte(v, '.')
	if dot <= 0 || dot == len(v)-1 {
		return "", 0, false
	}
	index, err := strconv.Atoi(v[dot+1:])
	if err != nil {
		return "", 0, false
	}
	return v[:dot], index, true
}

func resolveShadow(ctx Context, v string) (string, error) {
	if shadow, err := ctx.Store.Shadow(v); err == nil {
		return shadow, nil
	}
	// Raw shadow syntax carries spaces; a single bare word is a failed
	// table lookup.
	if strings.ContainsAny(v, " (") {
		return v, nil
	}
	if _, ok := passthroughKeywords[v]; ok {
		return v, nil
	}
	return "", loomerrors.NewLookupError("shadow", v)
}

func resolveSized(ctx Context, domain Domain, v string) (string, error) {
	if _, ok := passthroughKeywords[v]; ok {
		return v, nil
	}
	if literalUnit.MatchString(v) {
		return v, nil
	}

	negate := false
	key := v
	if strings.HasPrefix(key, "-") {
		negate = true
		key = key[1:]
	}

	if n, err := strconv.ParseFloat(key, 64); err == nil {
		if negate {
			n = -n
		}
		return token.ScalePx(n, ctx.Scale), nil
	}

	kind, ok := domainKinds[domain]
	if !ok {
		return "", loomerrors.NewLookupError("value domain", key)
	}
	n, err := ctx.Store.Numeric(kind, key)
	if err != nil {
		return "", err
	}
	if negate {
		n = -n
	}
	return token.ScalePx(n, ctx.Scale), nil
}

// PickResponsive selects the value a responsive map contributes under the
// context's active breakpoint, walking the fallback chain down to "base".
func PickResponsive(ctx Context, values map[string]any) (any, error) {
	for _, name := range ctx.FallbackChain() {
		if v, ok := values[name]; ok {
			return v, nil
		}
	}
	return nil, loomerrors.NewLookupError("responsive value for breakpoint", ctx.Breakpoint)
}
