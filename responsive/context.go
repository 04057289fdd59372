// Package responsive tracks the active breakpoint of each window and
// notifies observers when a resize crosses a breakpoint boundary. A Context
// belongs to the toolkit's event goroutine; it is not safe for concurrent
// use and does not need to be.
package responsive

import (
	"sort"

	"github.com/google/uuid"

	"github.com/loomkit/loom/resolve"
)

// Event describes one breakpoint transition.
type Event struct {
	Window   string
	Width    float64
	Previous string
	Current  string
}

// Handler receives breakpoint transition events synchronously, in
// subscription order.
type Handler func(Event)

// Subscription detaches a handler when no longer wanted.
type Subscription interface {
	Unsubscribe()
}

type subscriptionEntry struct {
	id      uuid.UUID
	handler Handler
}

// Context is a per-window breakpoint state machine. Width updates are
// cheap; observers hear from it only when the classification actually
// changes.
type Context struct {
	window     string
	thresholds []resolve.Breakpoint
	width      float64
	active     string
	subs       []subscriptionEntry
}

// NewContext builds the state machine for one window. The initial width is
// zero, which classifies as "base" until the first resize arrives.
func NewContext(window string, breakpoints map[string]float64) *Context {
	c := &Context{
		window: window,
		active: resolve.BaseBreakpoint,
	}
	c.setThresholds(breakpoints)
	return c
}

// Window returns the identifier this context was created for.
func (c *Context) Window() string {
	return c.window
}

// Width returns the last width reported via SetWidth.
func (c *Context) Width() float64 {
	return c.width
}

// Active returns the current breakpoint name, "base" when the width is
// below every threshold.
func (c *Context) Active() string {
	return c.active
}

// Breakpoints returns the thresholds in ascending width order.
func (c *Context) Breakpoints() []resolve.Breakpoint {
	out := make([]resolve.Breakpoint, len(c.thresholds))
	copy(out, c.thresholds)
	return out
}

// SetWidth records a resize and reclassifies. It reports whether the active
// breakpoint changed; subscribers are notified exactly once per change and
// not at all otherwise.
func (c *Context) SetWidth(width float64) bool {
	if width < 0 {
		width = 0
	}
	c.width = width
	return c.reclassify()
}

// SetBreakpoints swaps the threshold set, as happens when a theme with
// different breakpoints is applied, and reclassifies against the current
// width.
func (c *Context) SetBreakpoints(breakpoints map[string]float64) bool {
	c.setThresholds(breakpoints)
	return c.reclassify()
}

// Subscribe registers a transition handler. The returned subscription
// detaches it; a nil handler yields a subscription that was never attached.
func (c *Context) Subscribe(handler Handler) Subscription {
	if handler == nil {
		return noopSubscription{}
	}
	id := uuid.New()
	c.subs = append(c.subs, subscriptionEntry{id: id, handler: handler})
	return subscription{cancel: func() {
		for i, entry := range c.subs {
			if entry.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				break
			}
		}
	}}
}

func (c *Context) setThresholds(breakpoints map[string]float64) {
	thresholds := make([]resolve.Breakpoint, 0, len(breakpoints))
	for name, width := range breakpoints {
		thresholds = append(thresholds, resolve.Breakpoint{Name: name, MinWidth: width})
	}
	sort.Slice(thresholds, func(i, j int) bool {
		if thresholds[i].MinWidth != thresholds[j].MinWidth {
			return thresholds[i].MinWidth < thresholds[j].MinWidth
		}
		return thresholds[i].Name < thresholds[j].Name
	})
	c.thresholds = thresholds
}

func (c *Context) reclassify() bool {
	next := c.classify(c.width)
	if next == c.active {
		return false
	}
	event := Event{
		Window:   c.window,
		Width:    c.width,
		Previous: c.active,
		Current:  next,
	}
	c.active = next

	// Copy first so an unsubscribe inside a handler cannot skip a peer.
	handlers := append([]subscriptionEntry(nil), c.subs...)
	for _, entry := range handlers {
		entry.handler(event)
	}
	return true
}

// classify picks the breakpoint with the largest threshold not exceeding
// the width. Ties on width resolve to the name sorted last, which keeps the
// answer stable across calls.
func (c *Context) classify(width float64) string {
	active := resolve.BaseBreakpoint
	for _, bp := range c.thresholds {
		if bp.MinWidth <= width {
			active = bp.Name
			continue
		}
		break
	}
	return active
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}
