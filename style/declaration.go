// Package style defines the canonical declaration model and the
// deterministic stylesheet generator. Declarations arrive fully resolved;
// nothing here consults the theme.
package style

// PseudoState selects an interaction-dependent style variant.
type PseudoState int

const (
	StateNone PseudoState = iota
	StateHover
	StateFocus
	StatePressed
	StateDisabled
)

var stateNames = map[PseudoState]string{
	StateNone:     "",
	StateHover:    "hover",
	StateFocus:    "focus",
	StatePressed:  "pressed",
	StateDisabled: "disabled",
}

func (s PseudoState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return ""
}

// ParseState maps a pseudo-state name to its PseudoState. The empty string
// maps to StateNone.
func ParseState(name string) (PseudoState, bool) {
	for state, n := range stateNames {
		if n == name {
			return state, true
		}
	}
	return StateNone, false
}

// StateNames lists the recognized pseudo-state names, excluding the base
// state.
func StateNames() []string {
	return []string{"hover", "focus", "pressed", "disabled"}
}

// Declaration is one canonical styling fact: a property set to a fully
// resolved value on one element of the widget, under one pseudo-state.
// Element "" addresses the widget root.
type Declaration struct {
	Element  string
	State    PseudoState
	Property string
	Value    string
}
