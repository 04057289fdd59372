package props

import (
	"fmt"
	"sort"

	loomerrors "github.com/loomkit/loom/pkg/errors"
	"github.com/loomkit/loom/resolve"
	"github.com/loomkit/loom/style"
)

// Diagnostic reports one prop the normalizer had to skip. The remaining
// declarations are unaffected; callers decide whether to log or surface it.
type Diagnostic struct {
	Prop    string
	Element string
	State   string
	Err     error
}

func (d Diagnostic) String() string {
	where := "root"
	if d.Element != "" {
		where = d.Element
	}
	if d.State != "" {
		where += ":" + d.State
	}
	return fmt.Sprintf("%s (%s): %v", d.Prop, where, d.Err)
}

// Normalize compiles a flattened bag into canonical declarations under the
// given resolution context. Props that fail to resolve are dropped and
// reported as diagnostics; output order is deterministic, with raw entries
// emitted after resolved items so they win on property collisions.
func Normalize(bag Bag, ctx resolve.Context) ([]style.Declaration, []Diagnostic) {
	n := &normalizer{ctx: ctx}
	n.walk("", style.StateNone, bag, true, true)
	return n.decls, n.diags
}

type normalizer struct {
	ctx   resolve.Context
	decls []style.Declaration
	diags []Diagnostic
}

// walk descends one bag level. States nest under the root and under
// elements; anything deeper is flagged rather than silently dropped.
func (n *normalizer) walk(element string, state style.PseudoState, b Bag, allowStates, allowElements bool) {
	n.items(element, state, b.Items)
	n.raw(element, state, b.Raw)

	if !allowStates && len(b.States) > 0 {
		n.diag("states", element, state, loomerrors.NewConfigError("states", "pseudo-state bags cannot nest", nil))
	} else {
		for _, name := range sortedBagKeys(b.States) {
			st, ok := style.ParseState(name)
			if !ok || st == style.StateNone {
				n.diag(name, element, state, loomerrors.NewConfigError(name, "unrecognized pseudo-state", nil))
				continue
			}
			n.walk(element, st, b.States[name], false, false)
		}
	}

	if !allowElements && len(b.Elements) > 0 {
		n.diag("elements", element, state, loomerrors.NewConfigError("elements", "element bags cannot nest", nil))
		return
	}
	for _, name := range sortedBagKeys(b.Elements) {
		n.walk(name, style.StateNone, b.Elements[name], true, false)
	}
}

func (n *normalizer) items(element string, state style.PseudoState, items map[string]any) {
	for _, prop := range orderedItemKeys(items) {
		raw := items[prop]
		if rv, ok := asResponsive(raw); ok {
			picked, err := resolve.PickResponsive(n.ctx, rv)
			if err != nil {
				n.diag(prop, element, state, loomerrors.NewConfigError(prop, "no value for active breakpoint", err))
				continue
			}
			raw = picked
		}

		exp := expansionFor(prop)
		value, err := resolve.Resolve(n.ctx, exp.domain, raw)
		if err != nil {
			n.diag(prop, element, state, loomerrors.NewConfigError(prop, "cannot resolve value", err))
			continue
		}
		for _, property := range exp.properties {
			n.decls = append(n.decls, style.Declaration{
				Element:  element,
				State:    state,
				Property: property,
				Value:    value,
			})
		}
	}
}

func (n *normalizer) raw(element string, state style.PseudoState, raw map[string]string) {
	for _, property := range sortedStringKeys(raw) {
		n.decls = append(n.decls, style.Declaration{
			Element:  element,
			State:    state,
			Property: property,
			Value:    raw[property],
		})
	}
}

func (n *normalizer) diag(prop, element string, state style.PseudoState, err error) {
	n.diags = append(n.diags, Diagnostic{
		Prop:    prop,
		Element: element,
		State:   state.String(),
		Err:     err,
	})
}

// orderedItemKeys sorts item keys so wider shorthands apply before narrower
// ones, making collisions like m versus mt independent of map order.
func orderedItemKeys(items map[string]any) []string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		wi, wj := expansionWidth(keys[i]), expansionWidth(keys[j])
		if wi != wj {
			return wi > wj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func asResponsive(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Responsive:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}
