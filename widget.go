package loom

import (
	"github.com/loomkit/loom/theme"
)

// Widget is the engine's view of a styleable toolkit object. Implementations
// adapt concrete toolkit widgets; the engine never reaches into the toolkit
// directly.
type Widget interface {
	// ID is stable and unique across the application for the widget's
	// lifetime. It participates in cache keys.
	ID() string

	// WindowID names the window the widget lives in, which decides the
	// breakpoint context its responsive values resolve under.
	WindowID() string

	// Component names the widget's kind, e.g. "Button". Built-in defaults
	// and theme component overrides are looked up under this name.
	Component() string

	// Selector is the widget's root stylesheet selector, e.g.
	// "QPushButton#save".
	Selector() string

	// Targets maps element names usable in prop bags to the selector
	// fragment addressing that element beneath the root. A nil map means
	// the widget has no addressable child elements.
	Targets() map[string]string

	// ApplyStyleSheet hands a generated stylesheet to the toolkit.
	ApplyStyleSheet(text string) error
}

// ThemeListener is implemented by widgets that need to react to theme
// swaps beyond restyling, such as swapping icon sets for a dark scheme.
type ThemeListener interface {
	ThemeChanged(scheme theme.Scheme)
}

// ThemeEvent describes one successful theme installation.
type ThemeEvent struct {
	Scheme  theme.Scheme
	Version uint64
}

// Subscription detaches an observer registered with the engine.
type Subscription interface {
	Unsubscribe()
}
