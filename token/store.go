// Package token implements the store of named design constants a theme is
// built from: color families with exactly ten ordered shades, numeric
// scales for spacing, radius, font sizes and line heights, shadow presets
// and breakpoint thresholds.
//
// A Store is built once while a theme is constructed and treated as
// immutable afterwards: the theme provider is the only writer, readers
// never mutate, and a theme change installs a whole replacement store.
package token

import (
	"fmt"
	"sort"

	loomerrors "github.com/loomkit/loom/pkg/errors"
)

// FamilyShadeCount is the fixed number of ordered shades in a color family,
// indexed 0 (lightest) through 9 (darkest).
const FamilyShadeCount = 10

// Family is one named color scale.
type Family [FamilyShadeCount]string

// Kind selects one of the numeric token tables.
type Kind int

const (
	KindSpacing Kind = iota
	KindRadius
	KindFontSize
	KindLineHeight
)

func (k Kind) String() string {
	switch k {
	case KindSpacing:
		return "spacing"
	case KindRadius:
		return "radius"
	case KindFontSize:
		return "font size"
	case KindLineHeight:
		return "line height"
	default:
		return "numeric"
	}
}

// Store holds every token table of one theme.
type Store struct {
	colors      map[string]Family
	numeric     map[Kind]map[string]float64
	shadows     map[string]string
	breakpoints map[string]float64
}

// NewStore creates an empty store.
func NewStore() *Store {
	numeric := make(map[Kind]map[string]float64, 4)
	for _, kind := range []Kind{KindSpacing, KindRadius, KindFontSize, KindLineHeight} {
		numeric[kind] = make(map[string]float64)
	}
	return &Store{
		colors:      make(map[string]Family),
		numeric:     numeric,
		shadows:     make(map[string]string),
		breakpoints: make(map[string]float64),
	}
}

// RegisterFamily installs a color family. The shade slice must contain
// exactly FamilyShadeCount parseable colors; registering an existing name
// replaces the whole array, never individual shades.
func (s *Store) RegisterFamily(name string, shades []string) error {
	if name == "" {
		return loomerrors.NewValidationError("colors", "family name is empty", nil)
	}
	if len(shades) != FamilyShadeCount {
		return loomerrors.NewValidationError(
			"colors."+name,
			fmt.Sprintf("expected %d shades, got %d", FamilyShadeCount, len(shades)),
			nil,
		)
	}

	var family Family
	for i, shade := range shades {
		if !IsColor(shade) {
			return loomerrors.NewValidationError(
				fmt.Sprintf("colors.%s[%d]", name, i),
				fmt.Sprintf("%q is not a valid color", shade),
				nil,
			)
		}
		family[i] = shade
	}

	s.colors[name] = family
	return nil
}

// Shade returns one shade of a registered family.
func (s *Store) Shade(family string, index int) (string, error) {
	shades, ok := s.colors[family]
	if !ok {
		return "", loomerrors.NewLookupError("color family", family)
	}
	if index < 0 || index >= FamilyShadeCount {
		return "", loomerrors.NewLookupError("shade index", fmt.Sprintf("%s.%d", family, index))
	}
	return shades[index], nil
}

// HasFamily reports whether a color family is registered.
func (s *Store) HasFamily(family string) bool {
	_, ok := s.colors[family]
	return ok
}

// FamilyShades returns the full shade array of a family.
func (s *Store) FamilyShades(family string) (Family, error) {
	shades, ok := s.colors[family]
	if !ok {
		return Family{}, loomerrors.NewLookupError("color family", family)
	}
	return shades, nil
}

// Families lists registered family names in sorted order.
func (s *Store) Families() []string {
	names := make([]string, 0, len(s.colors))
	for name := range s.colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetNumeric installs one value in the selected numeric table.
func (s *Store) SetNumeric(kind Kind, key string, value float64) {
	s.numeric[kind][key] = value
}

// Numeric looks up a named key in the selected numeric table.
func (s *Store) Numeric(kind Kind, key string) (float64, error) {
	value, ok := s.numeric[kind][key]
	if !ok {
		return 0, loomerrors.NewLookupError(kind.String()+" token", key)
	}
	return value, nil
}

// NumericKeys lists the defined keys of one numeric table, sorted.
func (s *Store) NumericKeys(kind Kind) []string {
	keys := make([]string, 0, len(s.numeric[kind]))
	for key := range s.numeric[kind] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SetShadow installs a named shadow preset. The value is emitted verbatim.
func (s *Store) SetShadow(key, value string) {
	s.shadows[key] = value
}

// Shadow looks up a named shadow preset.
func (s *Store) Shadow(key string) (string, error) {
	value, ok := s.shadows[key]
	if !ok {
		return "", loomerrors.NewLookupError("shadow", key)
	}
	return value, nil
}

// SetBreakpoint installs one named width threshold.
func (s *Store) SetBreakpoint(name string, minWidth float64) error {
	if minWidth <= 0 {
		return loomerrors.NewValidationError(
			"breakpoints."+name,
			fmt.Sprintf("threshold must be positive, got %v", minWidth),
			nil,
		)
	}
	s.breakpoints[name] = minWidth
	return nil
}

// Breakpoint returns the threshold registered under name.
func (s *Store) Breakpoint(name string) (float64, error) {
	width, ok := s.breakpoints[name]
	if !ok {
		return 0, loomerrors.NewLookupError("breakpoint", name)
	}
	return width, nil
}

// Breakpoints returns a copy of the threshold table.
func (s *Store) Breakpoints() map[string]float64 {
	out := make(map[string]float64, len(s.breakpoints))
	for name, width := range s.breakpoints {
		out[name] = width
	}
	return out
}

// Clone returns an independent deep copy of the store. Theme merging builds
// the next store from a clone so the installed one stays untouched.
func (s *Store) Clone() *Store {
	clone := NewStore()
	for name, family := range s.colors {
		clone.colors[name] = family
	}
	for kind, table := range s.numeric {
		for key, value := range table {
			clone.numeric[kind][key] = value
		}
	}
	for key, value := range s.shadows {
		clone.shadows[key] = value
	}
	for name, width := range s.breakpoints {
		clone.breakpoints[name] = width
	}
	return clone
}
