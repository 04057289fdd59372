package style

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loomerrors "github.com/loomkit/loom/pkg/errors"
)

func sampleDeclarations() []Declaration {
	return []Declaration{
		{Property: "background-color", Value: "#1d4ed8"},
		{Property: "color", Value: "#eff6ff"},
		{State: StateHover, Property: "background-color", Value: "#1e40af"},
		{State: StateDisabled, Property: "color", Value: "#94a3b8"},
		{Element: "label", Property: "font-size", Value: "14px"},
		{Element: "label", State: StateHover, Property: "color", Value: "#ffffff"},
		{Element: "icon", Property: "width", Value: "16px"},
	}
}

func sampleTargets() map[string]string {
	return map[string]string{
		"label": "QLabel",
		"icon":  "QToolButton#icon",
	}
}

func TestSerializeGroupsAndOrdersBlocks(t *testing.T) {
	t.Parallel()

	artifact, err := Serialize("QPushButton#save", sampleTargets(), sampleDeclarations())
	require.NoError(t, err)

	want := "QPushButton#save {\n" +
		"    background-color: #1d4ed8;\n" +
		"    color: #eff6ff;\n" +
		"}\n" +
		"\n" +
		"QPushButton#save:hover {\n" +
		"    background-color: #1e40af;\n" +
		"}\n" +
		"\n" +
		"QPushButton#save:disabled {\n" +
		"    color: #94a3b8;\n" +
		"}\n" +
		"\n" +
		"QPushButton#save QToolButton#icon {\n" +
		"    width: 16px;\n" +
		"}\n" +
		"\n" +
		"QPushButton#save QLabel {\n" +
		"    font-size: 14px;\n" +
		"}\n" +
		"\n" +
		"QPushButton#save QLabel:hover {\n" +
		"    color: #ffffff;\n" +
		"}\n"
	require.Equal(t, want, artifact.Text)
	require.Equal(t, []string{
		"QPushButton#save",
		"QPushButton#save:hover",
		"QPushButton#save:disabled",
		"QPushButton#save QToolButton#icon",
		"QPushButton#save QLabel",
		"QPushButton#save QLabel:hover",
	}, artifact.Selectors)
	require.NotZero(t, artifact.Hash)
}

func TestSerializeIsOrderInsensitive(t *testing.T) {
	t.Parallel()

	base, err := Serialize("QFrame#card", sampleTargets(), sampleDeclarations())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 25; i++ {
		shuffled := sampleDeclarations()
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		artifact, err := Serialize("QFrame#card", sampleTargets(), shuffled)
		require.NoError(t, err)
		require.Equal(t, base.Text, artifact.Text)
		require.Equal(t, base.Hash, artifact.Hash)
	}
}

func TestSerializeLastWriteWinsPerProperty(t *testing.T) {
	t.Parallel()

	artifact, err := Serialize("QFrame#card", nil, []Declaration{
		{Property: "color", Value: "#111111"},
		{Property: "color", Value: "#222222"},
	})
	require.NoError(t, err)
	require.Equal(t, "QFrame#card {\n    color: #222222;\n}\n", artifact.Text)
}

func TestSerializeRejectsUnsafeValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "open brace", value: "red { color: blue"},
		{name: "close brace", value: "}"},
		{name: "semicolon", value: "red; margin: 0"},
		{name: "control character", value: "red\x00"},
		{name: "newline", value: "red\nblue"},
		{name: "unbalanced quote", value: `"Segoe UI`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Serialize("QFrame#card", nil, []Declaration{
				{Property: "color", Value: tc.value},
			})
			require.Error(t, err)

			var serr *loomerrors.SerializationError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, "color", serr.Property)
			assert.Equal(t, tc.value, serr.Value)
		})
	}
}

func TestSerializeAllowsQuotedDelimiters(t *testing.T) {
	t.Parallel()

	artifact, err := Serialize("QLabel#title", nil, []Declaration{
		{Property: "font-family", Value: `"Segoe UI", sans-serif`},
	})
	require.NoError(t, err)
	assert.Contains(t, artifact.Text, `font-family: "Segoe UI", sans-serif;`)
}

func TestSerializeRejectsUndeclaredElement(t *testing.T) {
	t.Parallel()

	_, err := Serialize("QFrame#card", map[string]string{"label": "QLabel"}, []Declaration{
		{Element: "icon", Property: "width", Value: "16px"},
	})
	require.Error(t, err)

	var serr *loomerrors.SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Message, "undeclared element")
}

func TestSerializeRejectsUnsafeProperty(t *testing.T) {
	t.Parallel()

	_, err := Serialize("QFrame#card", nil, []Declaration{
		{Property: "color;}", Value: "red"},
	})
	require.Error(t, err)

	var serr *loomerrors.SerializationError
	require.ErrorAs(t, err, &serr)
}

func TestParseStateRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range StateNames() {
		state, ok := ParseState(name)
		require.True(t, ok)
		assert.Equal(t, name, state.String())
	}

	state, ok := ParseState("")
	require.True(t, ok)
	assert.Equal(t, StateNone, state)

	_, ok = ParseState("active")
	assert.False(t, ok)
}
