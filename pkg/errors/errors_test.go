package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("theme.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "theme.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "theme.yaml")
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("colors.blue", "expected 10 shades, got 9", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "colors.blue", validationErr.Field)
	require.Contains(t, validationErr.Message, "expected 10 shades")
	require.Contains(t, err.Error(), "colors.blue")
}

func TestLookupErrorNamesKindAndKey(t *testing.T) {
	t.Parallel()

	err := NewLookupError("color family", "magenta")

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	require.Equal(t, "color family", lookupErr.Kind)
	require.Equal(t, "magenta", lookupErr.Key)
	require.Contains(t, err.Error(), `unknown color family "magenta"`)
}

func TestConfigErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("no entry along fallback chain")
	err := NewConfigError("w", "unresolvable responsive value", underlying)

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	require.Equal(t, "w", configErr.Prop)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestSerializationErrorCarriesValue(t *testing.T) {
	t.Parallel()

	err := NewSerializationError("font-family", "Segoe; UI", "unescaped separator")

	var serErr *SerializationError
	require.ErrorAs(t, err, &serErr)
	require.Equal(t, "font-family", serErr.Property)
	require.Equal(t, "Segoe; UI", serErr.Value)
	require.Contains(t, err.Error(), "font-family")
}
