// Package theme holds the complete styling configuration a window renders
// under: color scheme, token tables, scale and per-component prop
// overrides. A Theme is plain data; the engine compiles it into a token
// store and resolution contexts.
package theme

import (
	"github.com/loomkit/loom/props"
	loomerrors "github.com/loomkit/loom/pkg/errors"
	"github.com/loomkit/loom/token"
)

// Scheme selects the light or dark rendition of scheme-dependent values.
type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

// PrimaryShade picks which shade of the primary family represents it in
// each scheme.
type PrimaryShade struct {
	Light int `yaml:"light"`
	Dark  int `yaml:"dark"`
}

// Theme is the full styling configuration. All maps are keyed by token
// name; color families always hold exactly ten shades from lightest to
// darkest.
type Theme struct {
	Scheme       Scheme
	Primary      string
	PrimaryShade PrimaryShade
	Scale        float64

	Colors      map[string]token.Family
	Spacing     map[string]float64
	Radius      map[string]float64
	FontSizes   map[string]float64
	LineHeights map[string]float64
	Shadows     map[string]string
	Breakpoints map[string]float64

	// Components maps component names to prop bags merged between the
	// component's built-in defaults and each instance's own props.
	Components map[string]props.Bag
}

// ResolvedPrimaryShade returns the primary shade index for the theme's
// scheme.
func (t *Theme) ResolvedPrimaryShade() int {
	if t.Scheme == SchemeDark {
		return t.PrimaryShade.Dark
	}
	return t.PrimaryShade.Light
}

// Clone returns a deep copy. Mutating the copy never affects the original,
// which is what lets the engine treat an installed theme as immutable.
func (t *Theme) Clone() *Theme {
	out := &Theme{
		Scheme:       t.Scheme,
		Primary:      t.Primary,
		PrimaryShade: t.PrimaryShade,
		Scale:        t.Scale,
	}
	out.Colors = make(map[string]token.Family, len(t.Colors))
	for k, v := range t.Colors {
		out.Colors[k] = v
	}
	out.Spacing = cloneFloats(t.Spacing)
	out.Radius = cloneFloats(t.Radius)
	out.FontSizes = cloneFloats(t.FontSizes)
	out.LineHeights = cloneFloats(t.LineHeights)
	out.Breakpoints = cloneFloats(t.Breakpoints)
	out.Shadows = make(map[string]string, len(t.Shadows))
	for k, v := range t.Shadows {
		out.Shadows[k] = v
	}
	out.Components = make(map[string]props.Bag, len(t.Components))
	for k, v := range t.Components {
		out.Components[k] = v.Clone()
	}
	return out
}

func cloneFloats(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Validate checks the theme is internally consistent without compiling it.
func (t *Theme) Validate() error {
	_, err := t.Compile()
	return err
}

// Compile builds the token store backing this theme. Every color family is
// revalidated on the way in, so a theme that compiles is safe to resolve
// against.
func (t *Theme) Compile() (*token.Store, error) {
	if t.Scheme != SchemeLight && t.Scheme != SchemeDark {
		return nil, loomerrors.NewValidationError("scheme", "must be light or dark", nil)
	}

	store := token.NewStore()
	for name, family := range t.Colors {
		if err := store.RegisterFamily(name, family[:]); err != nil {
			return nil, err
		}
	}

	if t.Primary == "" {
		return nil, loomerrors.NewValidationError("primary", "primary color family is required", nil)
	}
	if !store.HasFamily(t.Primary) {
		return nil, loomerrors.NewValidationError("primary", "unknown color family "+t.Primary, nil)
	}
	for _, shade := range []int{t.PrimaryShade.Light, t.PrimaryShade.Dark} {
		if shade < 0 || shade >= token.FamilyShadeCount {
			return nil, loomerrors.NewValidationError("primary_shade", "shade index out of range", nil)
		}
	}
	if t.Scale < 0 {
		return nil, loomerrors.NewValidationError("scale", "scale cannot be negative", nil)
	}

	for key, value := range t.Spacing {
		store.SetNumeric(token.KindSpacing, key, value)
	}
	for key, value := range t.Radius {
		store.SetNumeric(token.KindRadius, key, value)
	}
	for key, value := range t.FontSizes {
		store.SetNumeric(token.KindFontSize, key, value)
	}
	for key, value := range t.LineHeights {
		store.SetNumeric(token.KindLineHeight, key, value)
	}
	for key, value := range t.Shadows {
		store.SetShadow(key, value)
	}
	for key, width := range t.Breakpoints {
		if err := store.SetBreakpoint(key, width); err != nil {
			return nil, err
		}
	}
	return store, nil
}
