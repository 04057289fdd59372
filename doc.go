// Package loom styles desktop widget toolkits that have no native notion
// of responsive design or design tokens. Widgets declare intent through
// shorthand props ("bg", "p", "fz"), theme token references ("blue.6",
// "md", "primary") and breakpoint-keyed responsive values; the engine
// compiles that intent into deterministic per-widget stylesheet text and
// keeps it current across theme swaps and window resizes.
//
// The Engine is the single entry point. It owns the installed theme, one
// breakpoint context per window, an artifact cache keyed by everything
// that can change an output, and the set of registered widgets:
//
//	engine, err := loom.New(loom.Options{})
//	...
//	err = engine.Register(saveButton, props.Bag{
//		Items: map[string]any{"bg": "primary", "p": "md"},
//	})
//	engine.Resize("main", 1024)
//	err = engine.Update(theme.Overrides{Scheme: theme.SchemeDark})
//
// Everything runs synchronously on the toolkit's event goroutine; the
// package takes no locks and expects no concurrent callers.
package loom
