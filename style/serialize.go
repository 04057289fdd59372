package style

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	loomerrors "github.com/loomkit/loom/pkg/errors"
)

// Artifact is one generated stylesheet: the text handed to the toolkit, a
// content hash for change detection, and the selectors it covers in emission
// order.
type Artifact struct {
	Text      string
	Hash      uint64
	Selectors []string
}

type blockKey struct {
	element string
	state   PseudoState
}

// Serialize renders declarations into a stylesheet whose output is
// byte-identical for any permutation of the input slice. scope is the
// widget's root selector; targets maps element names to the selector
// fragment appended for that element. Declarations addressing an element
// missing from targets fail serialization, as does any property or value
// that would break the block syntax.
func Serialize(scope string, targets map[string]string, decls []Declaration) (Artifact, error) {
	if err := checkFragment("selector", scope); err != nil {
		return Artifact{}, err
	}

	// Last write wins per (element, state, property) so repeated Serialize
	// calls agree regardless of upstream slice ordering quirks.
	blocks := make(map[blockKey]map[string]string)
	for _, d := range decls {
		if err := checkFragment(d.Property, d.Property); err != nil {
			return Artifact{}, err
		}
		if err := checkValue(d.Property, d.Value); err != nil {
			return Artifact{}, err
		}
		if d.Element != "" {
			if _, ok := targets[d.Element]; !ok {
				return Artifact{}, loomerrors.NewSerializationError(d.Property, d.Element, "declaration addresses undeclared element")
			}
		}
		key := blockKey{element: d.Element, state: d.State}
		if blocks[key] == nil {
			blocks[key] = make(map[string]string)
		}
		blocks[key][d.Property] = d.Value
	}

	keys := make([]blockKey, 0, len(blocks))
	for key := range blocks {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].element != keys[j].element {
			// Root block sorts ahead of every named element.
			if keys[i].element == "" || keys[j].element == "" {
				return keys[i].element == ""
			}
			return keys[i].element < keys[j].element
		}
		return keys[i].state < keys[j].state
	})

	var sb strings.Builder
	selectors := make([]string, 0, len(keys))
	for i, key := range keys {
		selector := selectorFor(scope, targets, key)
		selectors = append(selectors, selector)

		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(selector)
		sb.WriteString(" {\n")

		props := make([]string, 0, len(blocks[key]))
		for prop := range blocks[key] {
			props = append(props, prop)
		}
		sort.Strings(props)
		for _, prop := range props {
			sb.WriteString("    ")
			sb.WriteString(prop)
			sb.WriteString(": ")
			sb.WriteString(blocks[key][prop])
			sb.WriteString(";\n")
		}
		sb.WriteString("}\n")
	}

	text := sb.String()
	return Artifact{
		Text:      text,
		Hash:      xxhash.Sum64String(text),
		Selectors: selectors,
	}, nil
}

func selectorFor(scope string, targets map[string]string, key blockKey) string {
	selector := scope
	if key.element != "" {
		selector += " " + targets[key.element]
	}
	if key.state != StateNone {
		selector += ":" + key.state.String()
	}
	return selector
}

// checkValue rejects values that would terminate or open a block early.
// Quoted runs keep their contents exempt from the structural checks so font
// stacks like "Segoe UI" pass, but the quotes themselves must balance.
func checkValue(property, value string) error {
	var quote rune
	for _, r := range value {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '{' || r == '}' || r == ';':
			return loomerrors.NewSerializationError(property, value, "value contains block delimiter")
		}
		if r < 0x20 || r == 0x7f {
			return loomerrors.NewSerializationError(property, value, "value contains control character")
		}
	}
	if quote != 0 {
		return loomerrors.NewSerializationError(property, value, "value contains unbalanced quote")
	}
	return nil
}

// checkFragment vets text emitted outside a value position, where quoting is
// not available.
func checkFragment(property, text string) error {
	if strings.TrimSpace(text) == "" {
		return loomerrors.NewSerializationError(property, text, "empty selector fragment")
	}
	for _, r := range text {
		if r == '{' || r == '}' || r == ';' || r < 0x20 || r == 0x7f {
			return loomerrors.NewSerializationError(property, text, "fragment contains reserved character")
		}
	}
	return nil
}
