package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	loomerrors "github.com/loomkit/loom/pkg/errors"
	"github.com/loomkit/loom/theme"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// LoadPreferences loads and validates a user preferences file.
func LoadPreferences(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, loomerrors.NewParseError(path, 0, err)
	}

	var prefs Preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, loomerrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidatePreferences(&prefs); err != nil {
		return nil, err
	}

	return &prefs, nil
}

// LoadThemeOverrides loads one theme override file. The document root is
// the override set itself: colors, token tables, components and the scalar
// knobs.
func LoadThemeOverrides(path string) (theme.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return theme.Overrides{}, loomerrors.NewParseError(path, 0, err)
	}

	var overrides theme.Overrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return theme.Overrides{}, loomerrors.NewParseError(path, extractLine(err), err)
	}

	if err := overrides.Validate(); err != nil {
		return theme.Overrides{}, err
	}

	return overrides, nil
}

// LoadTheme builds a theme from override files layered over a base, later
// paths winning. A nil base starts from the built-in default theme.
func LoadTheme(base *theme.Theme, paths ...string) (*theme.Theme, error) {
	if base == nil {
		base = theme.Default()
	}

	layers := make([]theme.Overrides, 0, len(paths))
	for _, path := range paths {
		overrides, err := LoadThemeOverrides(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, overrides)
	}

	combined, err := theme.Combine(layers...)
	if err != nil {
		return nil, err
	}

	merged, err := base.Merged(combined)
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}

	return line
}
