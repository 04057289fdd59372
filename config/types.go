// Package config loads user preference and theme override files. Parsing
// and validation fail with positioned errors; applying the result to a
// theme is left to the engine so a bad file never half-installs.
package config

import (
	"github.com/loomkit/loom/theme"
)

// Preferences is the user-level appearance file: the small set of knobs an
// end user flips without authoring a full theme.
type Preferences struct {
	Scheme       string   `yaml:"scheme" validate:"omitempty,oneof=light dark"`
	PrimaryColor string   `yaml:"primary_color" validate:"omitempty,token_name"`
	Scale        *float64 `yaml:"scale" validate:"omitempty,gt=0,lte=4"`
}

// ToOverrides converts preferences into a theme override layer.
func (p Preferences) ToOverrides() theme.Overrides {
	return theme.Overrides{
		Scheme:  theme.Scheme(p.Scheme),
		Primary: p.PrimaryColor,
		Scale:   p.Scale,
	}
}
