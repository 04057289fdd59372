// Package resolve turns raw prop values into final stylesheet values. It is
// the only place token references, semantic aliases, responsive maps and
// unit scaling are interpreted, so every consumer agrees on what a value
// means.
package resolve

import (
	"sort"

	"github.com/loomkit/loom/token"
)

// BaseBreakpoint is the implicit smallest breakpoint that every responsive
// value can fall back to.
const BaseBreakpoint = "base"

// Breakpoint pairs a breakpoint name with the minimum window width at which
// it activates.
type Breakpoint struct {
	Name     string
	MinWidth float64
}

// Context carries everything a single resolution pass needs. The engine
// builds one per regeneration from the installed theme and the window's
// active breakpoint; a Context is immutable once built.
type Context struct {
	Store        *token.Store
	Scheme       string
	Primary      string
	PrimaryShade int
	Scale        float64
	Breakpoint   string
	Breakpoints  []Breakpoint
	ThemeVersion uint64
}

// NewContext normalizes the breakpoint list into ascending width order so
// FallbackChain walks deterministically.
func NewContext(store *token.Store, scheme, primary string, primaryShade int, scale float64, active string, breakpoints map[string]float64, themeVersion uint64) Context {
	ordered := make([]Breakpoint, 0, len(breakpoints))
	for name, width := range breakpoints {
		ordered = append(ordered, Breakpoint{Name: name, MinWidth: width})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].MinWidth != ordered[j].MinWidth {
			return ordered[i].MinWidth < ordered[j].MinWidth
		}
		return ordered[i].Name < ordered[j].Name
	})

	return Context{
		Store:        store,
		Scheme:       scheme,
		Primary:      primary,
		PrimaryShade: primaryShade,
		Scale:        scale,
		Breakpoint:   active,
		Breakpoints:  ordered,
		ThemeVersion: themeVersion,
	}
}

// FallbackChain lists the breakpoint names consulted for a responsive value,
// starting at the active breakpoint and descending through every narrower
// one before ending at "base".
func (c Context) FallbackChain() []string {
	if c.Breakpoint == "" || c.Breakpoint == BaseBreakpoint {
		return []string{BaseBreakpoint}
	}

	active := -1
	for i, bp := range c.Breakpoints {
		if bp.Name == c.Breakpoint {
			active = i
			break
		}
	}
	if active < 0 {
		return []string{c.Breakpoint, BaseBreakpoint}
	}

	chain := make([]string, 0, active+2)
	for i := active; i >= 0; i-- {
		chain = append(chain, c.Breakpoints[i].Name)
	}
	return append(chain, BaseBreakpoint)
}
