package theme

import (
	"github.com/loomkit/loom/props"
	"github.com/loomkit/loom/token"
)

// Merged returns a new theme with the overrides applied. The receiver is
// never mutated, and an error means no usable theme was produced, so
// callers can keep rendering with the one they have. Scalar token tables
// merge key-wise; a color family named in the overrides replaces the
// existing ten shades wholesale.
func (t *Theme) Merged(o Overrides) (*Theme, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	out := t.Clone()
	if o.Scheme != "" {
		out.Scheme = o.Scheme
	}
	if o.Primary != "" {
		out.Primary = o.Primary
	}
	if o.PrimaryShade != nil {
		out.PrimaryShade = *o.PrimaryShade
	}
	if o.Scale != nil {
		out.Scale = *o.Scale
	}

	for name, shades := range o.Colors {
		var family token.Family
		copy(family[:], shades)
		out.Colors[name] = family
	}
	for key, value := range o.Spacing {
		out.Spacing[key] = value
	}
	for key, value := range o.Radius {
		out.Radius[key] = value
	}
	for key, value := range o.FontSizes {
		out.FontSizes[key] = value
	}
	for key, value := range o.LineHeights {
		out.LineHeights[key] = value
	}
	for key, value := range o.Shadows {
		out.Shadows[key] = value
	}
	for key, value := range o.Breakpoints {
		out.Breakpoints[key] = value
	}
	for name, bag := range o.Components {
		out.Components[name] = props.Merge(out.Components[name], bag)
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
