package loom

import (
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/loomkit/loom/internal/cache"
	"github.com/loomkit/loom/internal/logger"
	"github.com/loomkit/loom/internal/metrics"
	"github.com/loomkit/loom/pkg/diff"
	loomerrors "github.com/loomkit/loom/pkg/errors"
	"github.com/loomkit/loom/props"
	"github.com/loomkit/loom/resolve"
	"github.com/loomkit/loom/responsive"
	"github.com/loomkit/loom/style"
	"github.com/loomkit/loom/theme"
	"github.com/loomkit/loom/token"
)

// Options configures a new Engine.
type Options struct {
	// Theme is the initial theme; nil installs the built-in default.
	Theme *theme.Theme

	// LogLevel and LogWriter configure structured logging. When both are
	// unset the engine is silent, which is the right default for a
	// library embedded in a UI process.
	LogLevel          string
	LogWriter         io.Writer
	HumanReadableLogs bool
}

// Engine owns the installed theme, per-window breakpoint state, the
// artifact cache and every registered widget. It is confined to the
// toolkit's event goroutine: all methods must be called from that
// goroutine, which is the same discipline the toolkit already imposes on
// widget access, so the engine takes no locks.
type Engine struct {
	log      *logger.Logger
	counters *metrics.Collectors

	theme   *theme.Theme
	tokens  *token.Store
	themeFP uint64
	version uint64

	windows   map[string]*responsive.Context
	widgets   map[string]*widgetEntry
	byWindow  map[string]map[string]struct{}
	defaults  map[string]props.Bag
	artifacts *cache.Store
	themeSubs []themeSubEntry
}

type widgetEntry struct {
	widget      Widget
	bag         props.Bag
	bagFP       uint64
	lastApplied uint64
	lastText    string
	hasApplied  bool
}

type themeSubEntry struct {
	id uuid.UUID
	fn func(ThemeEvent)
}

// New builds an engine with the given options. The initial theme is
// validated before anything is installed.
func New(opts Options) (*Engine, error) {
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}
	tokens, err := th.Compile()
	if err != nil {
		return nil, err
	}

	log := logger.Nop()
	if opts.LogLevel != "" || opts.LogWriter != nil {
		log, err = logger.New(logger.Options{
			Level:         opts.LogLevel,
			HumanReadable: opts.HumanReadableLogs,
			Writer:        opts.LogWriter,
		})
		if err != nil {
			return nil, err
		}
	}

	return &Engine{
		log:       log,
		counters:  metrics.New(),
		theme:     th.Clone(),
		tokens:    tokens,
		themeFP:   th.Fingerprint(),
		version:   1,
		windows:   make(map[string]*responsive.Context),
		widgets:   make(map[string]*widgetEntry),
		byWindow:  make(map[string]map[string]struct{}),
		defaults:  make(map[string]props.Bag),
		artifacts: cache.New(),
	}, nil
}

// Theme returns a copy of the installed theme. Mutate it freely and hand
// it back through Apply; the installed theme itself never changes in
// place.
func (e *Engine) Theme() *theme.Theme {
	return e.theme.Clone()
}

// Version counts successful theme installations, starting at 1.
func (e *Engine) Version() uint64 {
	return e.version
}

// Collectors exposes the engine's Prometheus counters for registration.
func (e *Engine) Collectors() *metrics.Collectors {
	return e.counters
}

// RegisterDefaults installs the built-in prop bag for a component kind.
// Theme component overrides and instance props layer on top of it.
func (e *Engine) RegisterDefaults(component string, bag props.Bag) {
	e.defaults[component] = bag.Clone()
}

// Window returns the breakpoint context for a window, creating it on first
// use. Application code may subscribe to it directly for transition
// events.
func (e *Engine) Window(id string) *responsive.Context {
	if ctx, ok := e.windows[id]; ok {
		return ctx
	}
	ctx := responsive.NewContext(id, e.theme.Breakpoints)
	ctx.Subscribe(e.onTransition)
	e.windows[id] = ctx
	return ctx
}

// Resize reports a window's new width and restyles its widgets if the
// active breakpoint changed. It returns whether a transition occurred.
func (e *Engine) Resize(windowID string, width float64) bool {
	return e.Window(windowID).SetWidth(width)
}

// CloseWindow forgets a window: its breakpoint context, its region of the
// artifact cache and every widget registered under it.
func (e *Engine) CloseWindow(id string) {
	delete(e.windows, id)
	e.artifacts.InvalidateWindow(id)
	for widgetID := range e.byWindow[id] {
		delete(e.widgets, widgetID)
	}
	delete(e.byWindow, id)
}

// Register adds a widget with its instance props and styles it
// immediately under the current theme and breakpoint.
func (e *Engine) Register(w Widget, bag props.Bag) error {
	if w == nil {
		return loomerrors.NewValidationError("widget", "widget is nil", nil)
	}
	id := w.ID()
	if id == "" {
		return loomerrors.NewValidationError("widget", "widget id is empty", nil)
	}
	if _, exists := e.widgets[id]; exists {
		return loomerrors.NewValidationError("widget", "widget id "+id+" already registered", nil)
	}

	entry := &widgetEntry{widget: w, bag: bag.Clone(), bagFP: bag.Fingerprint()}
	e.widgets[id] = entry

	window := w.WindowID()
	if e.byWindow[window] == nil {
		e.byWindow[window] = make(map[string]struct{})
	}
	e.byWindow[window][id] = struct{}{}
	e.Window(window)

	return e.styleWidget(entry)
}

// Subscribe registers the widget, styles it immediately and optionally
// attaches a theme-change callback. The returned subscription detaches
// both. Widgets that implement ThemeListener hear about theme swaps even
// without a callback here.
func (e *Engine) Subscribe(w Widget, bag props.Bag, onThemeChanged func(theme.Scheme)) (Subscription, error) {
	if err := e.Register(w, bag); err != nil {
		return nil, err
	}
	var themeSub Subscription
	if onThemeChanged != nil {
		themeSub = e.OnThemeChange(func(event ThemeEvent) { onThemeChanged(event.Scheme) })
	}
	id := w.ID()
	return themeSubscription{cancel: func() {
		if themeSub != nil {
			themeSub.Unsubscribe()
		}
		e.Deregister(id)
	}}, nil
}

// Deregister removes a widget and its cached artifact.
func (e *Engine) Deregister(widgetID string) {
	entry, ok := e.widgets[widgetID]
	if !ok {
		return
	}
	window := entry.widget.WindowID()
	delete(e.widgets, widgetID)
	if ids, ok := e.byWindow[window]; ok {
		delete(ids, widgetID)
		if len(ids) == 0 {
			delete(e.byWindow, window)
		}
	}
	key := cache.KeyFor(widgetID, window, e.breakpointFor(window), e.themeFP, entry.bagFP)
	e.artifacts.Delete(key, window)
}

// SetProps replaces a widget's instance props and restyles it.
func (e *Engine) SetProps(widgetID string, bag props.Bag) error {
	entry, ok := e.widgets[widgetID]
	if !ok {
		return loomerrors.NewLookupError("widget", widgetID)
	}
	entry.bag = bag.Clone()
	entry.bagFP = bag.Fingerprint()
	return e.styleWidget(entry)
}

// ResolveAndApply styles a widget from its prop bag in one call:
// unregistered widgets are registered first, registered ones get the bag
// as their new instance props. Either way the generated stylesheet is
// pushed to the toolkit if it differs from what the widget last
// received.
func (e *Engine) ResolveAndApply(w Widget, bag props.Bag) error {
	if w == nil {
		return loomerrors.NewValidationError("widget", "widget is nil", nil)
	}
	if _, ok := e.widgets[w.ID()]; !ok {
		return e.Register(w, bag)
	}
	return e.SetProps(w.ID(), bag)
}

// Stylesheet returns the widget's current artifact without pushing it to
// the toolkit, generating and caching it if necessary.
func (e *Engine) Stylesheet(widgetID string) (style.Artifact, error) {
	entry, ok := e.widgets[widgetID]
	if !ok {
		return style.Artifact{}, loomerrors.NewLookupError("widget", widgetID)
	}
	return e.artifactFor(entry)
}

// Apply installs a theme. Applying a theme whose content equals the
// installed one is a no-op; a theme that fails validation changes nothing,
// and the previous theme keeps rendering. On success every cached artifact
// is dropped in one swap, window contexts reclassify against the new
// breakpoints, widgets restyle and listeners hear about the change.
func (e *Engine) Apply(th *theme.Theme) error {
	if th == nil {
		return loomerrors.NewValidationError("theme", "theme is nil", nil)
	}
	fp := th.Fingerprint()
	if fp == e.themeFP {
		e.log.Debug("theme content unchanged, apply skipped", "version", e.version)
		return nil
	}
	tokens, err := th.Compile()
	if err != nil {
		return err
	}

	installed := th.Clone()
	e.theme = installed
	e.tokens = tokens
	e.themeFP = fp
	e.version++
	e.counters.ThemeApplies.Inc()
	e.artifacts.InvalidateAll()

	for _, id := range sortedIDs(e.windows) {
		e.windows[id].SetBreakpoints(installed.Breakpoints)
	}
	e.restyleAll()

	for _, id := range sortedIDs(e.widgets) {
		if listener, ok := e.widgets[id].widget.(ThemeListener); ok {
			listener.ThemeChanged(installed.Scheme)
		}
	}
	event := ThemeEvent{Scheme: installed.Scheme, Version: e.version}
	for _, sub := range append([]themeSubEntry(nil), e.themeSubs...) {
		sub.fn(event)
	}

	e.log.Info("theme applied",
		"version", e.version,
		"scheme", installed.Scheme,
		"primary", installed.Primary,
		"widgets", len(e.widgets),
	)
	return nil
}

// Update layers overrides onto the installed theme and applies the result.
// Later layers win. An empty update is a no-op.
func (e *Engine) Update(layers ...theme.Overrides) error {
	combined, err := theme.Combine(layers...)
	if err != nil {
		return err
	}
	if combined.IsZero() {
		return nil
	}
	merged, err := e.theme.Merged(combined)
	if err != nil {
		return err
	}
	return e.Apply(merged)
}

// OnThemeChange registers a callback invoked after each successful theme
// installation.
func (e *Engine) OnThemeChange(fn func(ThemeEvent)) Subscription {
	if fn == nil {
		return themeSubscription{}
	}
	id := uuid.New()
	e.themeSubs = append(e.themeSubs, themeSubEntry{id: id, fn: fn})
	return themeSubscription{cancel: func() {
		for i, entry := range e.themeSubs {
			if entry.id == id {
				e.themeSubs = append(e.themeSubs[:i], e.themeSubs[i+1:]...)
				break
			}
		}
	}}
}

func (e *Engine) onTransition(event responsive.Event) {
	e.counters.BreakpointTransitions.Inc()
	e.log.Debug("breakpoint transition",
		"window", event.Window,
		"from", event.Previous,
		"to", event.Current,
		"width", event.Width,
	)
	e.restyleWindow(event.Window)
}

func (e *Engine) restyleAll() {
	for _, id := range sortedIDs(e.widgets) {
		_ = e.styleWidget(e.widgets[id])
	}
}

func (e *Engine) restyleWindow(window string) {
	for _, id := range sortedIDs(e.byWindow[window]) {
		if entry, ok := e.widgets[id]; ok {
			_ = e.styleWidget(entry)
		}
	}
}

// styleWidget brings one widget's toolkit stylesheet in line with the
// current inputs. Errors are already logged by the time they return;
// callers that fan out over many widgets keep going.
func (e *Engine) styleWidget(entry *widgetEntry) error {
	artifact, err := e.artifactFor(entry)
	if err != nil {
		return err
	}
	if entry.hasApplied && entry.lastApplied == artifact.Hash {
		return nil
	}
	if err := entry.widget.ApplyStyleSheet(artifact.Text); err != nil {
		e.log.Warn("toolkit rejected stylesheet", "widget", entry.widget.ID(), "error", err)
		return err
	}
	if e.log.DebugEnabled() && entry.hasApplied {
		e.log.Debug("stylesheet replaced",
			"widget", entry.widget.ID(),
			"diff", diff.Unified([]byte(entry.lastText), []byte(artifact.Text), "previous", "current"),
		)
	}
	entry.lastApplied = artifact.Hash
	entry.lastText = artifact.Text
	entry.hasApplied = true
	return nil
}

func (e *Engine) artifactFor(entry *widgetEntry) (style.Artifact, error) {
	w := entry.widget
	window := w.WindowID()
	breakpoint := e.breakpointFor(window)
	key := cache.KeyFor(w.ID(), window, breakpoint, e.themeFP, entry.bagFP)

	if artifact, ok := e.artifacts.Get(key); ok {
		e.counters.CacheHits.Inc()
		return artifact, nil
	}
	e.counters.CacheMisses.Inc()

	artifact, err := e.generate(entry, breakpoint)
	if err != nil {
		e.log.Error(err, "stylesheet generation failed", "widget", w.ID(), "window", window)
		return style.Artifact{}, err
	}
	e.artifacts.Set(key, window, artifact)
	e.counters.Regenerations.Inc()
	e.log.Debug("stylesheet generated",
		"widget", w.ID(),
		"breakpoint", breakpoint,
		"selectors", len(artifact.Selectors),
	)
	return artifact, nil
}

// generate runs the full pipeline for one widget: merge the prop layers,
// normalize under the active context, serialize. Unresolvable props are
// logged and dropped; a serialization failure fails the whole artifact and
// leaves whatever the widget last received in place.
func (e *Engine) generate(entry *widgetEntry, breakpoint string) (style.Artifact, error) {
	w := entry.widget
	merged := props.Merge(e.defaults[w.Component()], e.theme.Components[w.Component()], entry.bag)

	decls, diags := props.Normalize(merged, e.resolveContext(breakpoint))
	for _, d := range diags {
		e.counters.Diagnostics.Inc()
		e.log.Warn("dropped prop",
			"widget", w.ID(),
			"prop", d.Prop,
			"element", d.Element,
			"state", d.State,
			"error", d.Err,
		)
	}

	return style.Serialize(w.Selector(), w.Targets(), decls)
}

func (e *Engine) resolveContext(breakpoint string) resolve.Context {
	return resolve.NewContext(
		e.tokens,
		string(e.theme.Scheme),
		e.theme.Primary,
		e.theme.ResolvedPrimaryShade(),
		e.theme.Scale,
		breakpoint,
		e.theme.Breakpoints,
		e.version,
	)
}

func (e *Engine) breakpointFor(window string) string {
	if ctx, ok := e.windows[window]; ok {
		return ctx.Active()
	}
	return resolve.BaseBreakpoint
}

type themeSubscription struct {
	cancel func()
}

func (s themeSubscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
