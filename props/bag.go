// Package props models the style-prop bags attached to widgets and compiles
// them into canonical declarations. A bag is declarative input; nothing in
// it is resolved until Normalize runs against a resolution context.
package props

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Responsive marks a prop value that varies by breakpoint. Keys are
// breakpoint names plus the implicit "base".
type Responsive map[string]any

// Bag is one layer of styling input. Items hold root-level props, States
// hold pseudo-state overlays keyed by state name, Elements hold overlays
// for named child elements, and Raw carries literal property/value pairs
// that bypass resolution entirely.
type Bag struct {
	Items    map[string]any    `yaml:"items,omitempty"`
	States   map[string]Bag    `yaml:"states,omitempty"`
	Elements map[string]Bag    `yaml:"elements,omitempty"`
	Raw      map[string]string `yaml:"raw,omitempty"`
}

// IsZero reports whether the bag contributes nothing.
func (b Bag) IsZero() bool {
	return len(b.Items) == 0 && len(b.States) == 0 && len(b.Elements) == 0 && len(b.Raw) == 0
}

// Clone returns a deep copy. Responsive values are copied; other values are
// treated as immutable scalars.
func (b Bag) Clone() Bag {
	out := Bag{}
	if b.Items != nil {
		out.Items = make(map[string]any, len(b.Items))
		for k, v := range b.Items {
			out.Items[k] = cloneValue(v)
		}
	}
	if b.States != nil {
		out.States = make(map[string]Bag, len(b.States))
		for k, v := range b.States {
			out.States[k] = v.Clone()
		}
	}
	if b.Elements != nil {
		out.Elements = make(map[string]Bag, len(b.Elements))
		for k, v := range b.Elements {
			out.Elements[k] = v.Clone()
		}
	}
	if b.Raw != nil {
		out.Raw = make(map[string]string, len(b.Raw))
		for k, v := range b.Raw {
			out.Raw[k] = v
		}
	}
	return out
}

func cloneValue(v any) any {
	m, ok := asResponsive(v)
	if !ok {
		return v
	}
	out := make(Responsive, len(m))
	for k, mv := range m {
		out[k] = cloneValue(mv)
	}
	return out
}

// Merge flattens layers into a single bag. Later layers win per item, raw
// entry, state and element; nested bags merge recursively rather than
// replacing wholesale, so a theme override of one hover prop keeps the
// component default's remaining hover props.
func Merge(layers ...Bag) Bag {
	out := Bag{}
	for _, layer := range layers {
		out = merged(out, layer)
	}
	return out
}

func merged(dst, src Bag) Bag {
	out := dst.Clone()
	if len(src.Items) > 0 {
		if out.Items == nil {
			out.Items = make(map[string]any, len(src.Items))
		}
		for k, v := range src.Items {
			out.Items[k] = cloneValue(v)
		}
	}
	if len(src.States) > 0 {
		if out.States == nil {
			out.States = make(map[string]Bag, len(src.States))
		}
		for k, v := range src.States {
			out.States[k] = merged(out.States[k], v)
		}
	}
	if len(src.Elements) > 0 {
		if out.Elements == nil {
			out.Elements = make(map[string]Bag, len(src.Elements))
		}
		for k, v := range src.Elements {
			out.Elements[k] = merged(out.Elements[k], v)
		}
	}
	if len(src.Raw) > 0 {
		if out.Raw == nil {
			out.Raw = make(map[string]string, len(src.Raw))
		}
		for k, v := range src.Raw {
			out.Raw[k] = v
		}
	}
	return out
}

// Fingerprint hashes the bag's canonical form. Bags that differ only in map
// iteration order or nil-versus-empty maps hash identically, which lets the
// engine use the fingerprint as a cache key component.
func (b Bag) Fingerprint() uint64 {
	h := xxhash.New()
	b.writeTo(h)
	return h.Sum64()
}

func (b Bag) writeTo(h *xxhash.Digest) {
	_, _ = h.WriteString("items{")
	for _, k := range sortedValueKeys(b.Items) {
		_, _ = h.WriteString(k)
		_, _ = h.WriteString("=")
		writeValue(h, b.Items[k])
		_, _ = h.WriteString(";")
	}
	_, _ = h.WriteString("}states{")
	for _, k := range sortedBagKeys(b.States) {
		_, _ = h.WriteString(k)
		_, _ = h.WriteString("{")
		b.States[k].writeTo(h)
		_, _ = h.WriteString("}")
	}
	_, _ = h.WriteString("}elements{")
	for _, k := range sortedBagKeys(b.Elements) {
		_, _ = h.WriteString(k)
		_, _ = h.WriteString("{")
		b.Elements[k].writeTo(h)
		_, _ = h.WriteString("}")
	}
	_, _ = h.WriteString("}raw{")
	for _, k := range sortedStringKeys(b.Raw) {
		_, _ = h.WriteString(k)
		_, _ = h.WriteString("=")
		_, _ = h.WriteString(b.Raw[k])
		_, _ = h.WriteString(";")
	}
	_, _ = h.WriteString("}")
}

func writeValue(h *xxhash.Digest, v any) {
	if m, ok := asResponsive(v); ok {
		_, _ = h.WriteString("resp{")
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = h.WriteString(k)
			_, _ = h.WriteString(":")
			writeValue(h, m[k])
			_, _ = h.WriteString(";")
		}
		_, _ = h.WriteString("}")
		return
	}
	fmt.Fprintf(h, "%T:%v", v, v)
}

func sortedValueKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedBagKeys(m map[string]Bag) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
