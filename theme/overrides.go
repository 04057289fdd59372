package theme

import (
	"fmt"
	"reflect"

	"dario.cat/mergo"

	"github.com/loomkit/loom/props"
	loomerrors "github.com/loomkit/loom/pkg/errors"
	"github.com/loomkit/loom/token"
)

// Overrides is a partial theme. Absent fields leave the target theme
// untouched; color families are always supplied as complete ten-shade lists
// and replace the existing family wholesale.
type Overrides struct {
	Scheme       Scheme               `yaml:"scheme,omitempty"`
	Primary      string               `yaml:"primary,omitempty"`
	PrimaryShade *PrimaryShade        `yaml:"primary_shade,omitempty"`
	Scale        *float64             `yaml:"scale,omitempty"`
	Colors       map[string][]string  `yaml:"colors,omitempty"`
	Spacing      map[string]float64   `yaml:"spacing,omitempty"`
	Radius       map[string]float64   `yaml:"radius,omitempty"`
	FontSizes    map[string]float64   `yaml:"font_sizes,omitempty"`
	LineHeights  map[string]float64   `yaml:"line_heights,omitempty"`
	Shadows      map[string]string    `yaml:"shadows,omitempty"`
	Breakpoints  map[string]float64   `yaml:"breakpoints,omitempty"`
	Components   map[string]props.Bag `yaml:"components,omitempty"`
}

// Combine flattens override layers into one, later layers winning. Layers
// contribute only what they set: maps merge key-wise, shade lists and the
// primary shade pair replace wholesale. Zero-valued entries in a later
// layer do not erase earlier ones; clearing requires building a theme
// directly.
func Combine(layers ...Overrides) (Overrides, error) {
	var out Overrides
	for _, layer := range layers {
		if err := mergo.Merge(&out, layer, mergo.WithOverride, mergo.WithTransformers(overrideMerge{})); err != nil {
			return Overrides{}, err
		}
	}
	return out, nil
}

type overrideMerge struct{}

// Transformer keeps PrimaryShade atomic during Combine. Merging the pair
// field-wise would let a zero Light index from one layer survive underneath
// another layer's Dark index.
func (overrideMerge) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ == reflect.TypeOf(&PrimaryShade{}) {
		return func(dst, src reflect.Value) error {
			if !src.IsNil() {
				dst.Set(src)
			}
			return nil
		}
	}
	return nil
}

// Validate checks everything that can be judged without the target theme.
// Cross-field issues, like pointing Primary at a family the theme does not
// have, surface when the merged theme compiles.
func (o Overrides) Validate() error {
	for name, shades := range o.Colors {
		if len(shades) != token.FamilyShadeCount {
			return loomerrors.NewValidationError(
				fmt.Sprintf("colors.%s", name),
				fmt.Sprintf("expected %d shades, got %d", token.FamilyShadeCount, len(shades)),
				nil,
			)
		}
		for i, shade := range shades {
			if !token.IsColor(shade) {
				return loomerrors.NewValidationError(
					fmt.Sprintf("colors.%s[%d]", name, i),
					fmt.Sprintf("unparseable color %q", shade),
					nil,
				)
			}
		}
	}
	if o.PrimaryShade != nil {
		for _, shade := range []int{o.PrimaryShade.Light, o.PrimaryShade.Dark} {
			if shade < 0 || shade >= token.FamilyShadeCount {
				return loomerrors.NewValidationError("primary_shade", "shade index out of range", nil)
			}
		}
	}
	if o.Scale != nil && *o.Scale <= 0 {
		return loomerrors.NewValidationError("scale", "scale must be positive", nil)
	}
	if o.Scheme != "" && o.Scheme != SchemeLight && o.Scheme != SchemeDark {
		return loomerrors.NewValidationError("scheme", "must be light or dark", nil)
	}
	for name, width := range o.Breakpoints {
		if width <= 0 {
			return loomerrors.NewValidationError(
				fmt.Sprintf("breakpoints.%s", name),
				"minimum width must be positive",
				nil,
			)
		}
	}
	return nil
}

// IsZero reports whether the overrides change nothing.
func (o Overrides) IsZero() bool {
	return o.Scheme == "" && o.Primary == "" && o.PrimaryShade == nil && o.Scale == nil &&
		len(o.Colors) == 0 && len(o.Spacing) == 0 && len(o.Radius) == 0 &&
		len(o.FontSizes) == 0 && len(o.LineHeights) == 0 && len(o.Shadows) == 0 &&
		len(o.Breakpoints) == 0 && len(o.Components) == 0
}
