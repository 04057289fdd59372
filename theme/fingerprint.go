package theme

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the theme's canonical form. Two themes with the same
// content fingerprint identically regardless of how their maps were built,
// and any visible change moves the hash. The engine compares fingerprints
// to skip regeneration when an applied theme is unchanged.
func (t *Theme) Fingerprint() uint64 {
	h := xxhash.New()

	_, _ = h.WriteString("scheme=" + string(t.Scheme))
	_, _ = h.WriteString(";primary=" + t.Primary)
	fmt.Fprintf(h, ";shade=%d/%d", t.PrimaryShade.Light, t.PrimaryShade.Dark)
	_, _ = h.WriteString(";scale=" + strconv.FormatFloat(t.Scale, 'g', -1, 64))

	_, _ = h.WriteString(";colors{")
	for _, name := range sortedKeys(t.Colors) {
		_, _ = h.WriteString(name + "=")
		family := t.Colors[name]
		for _, shade := range family {
			_, _ = h.WriteString(shade + ",")
		}
		_, _ = h.WriteString(";")
	}
	_, _ = h.WriteString("}")

	writeFloatTable(h, "spacing", t.Spacing)
	writeFloatTable(h, "radius", t.Radius)
	writeFloatTable(h, "fontSizes", t.FontSizes)
	writeFloatTable(h, "lineHeights", t.LineHeights)
	writeFloatTable(h, "breakpoints", t.Breakpoints)

	_, _ = h.WriteString(";shadows{")
	for _, name := range sortedKeys(t.Shadows) {
		_, _ = h.WriteString(name + "=" + t.Shadows[name] + ";")
	}
	_, _ = h.WriteString("}")

	_, _ = h.WriteString(";components{")
	for _, name := range sortedKeys(t.Components) {
		fmt.Fprintf(h, "%s=%016x;", name, t.Components[name].Fingerprint())
	}
	_, _ = h.WriteString("}")

	return h.Sum64()
}

func writeFloatTable(h *xxhash.Digest, tag string, table map[string]float64) {
	_, _ = h.WriteString(";" + tag + "{")
	for _, name := range sortedKeys(table) {
		_, _ = h.WriteString(name + "=" + strconv.FormatFloat(table[name], 'g', -1, 64) + ";")
	}
	_, _ = h.WriteString("}")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
