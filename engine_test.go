package loom

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loomerrors "github.com/loomkit/loom/pkg/errors"
	"github.com/loomkit/loom/props"
	"github.com/loomkit/loom/theme"
)

type fakeWidget struct {
	id        string
	window    string
	component string
	selector  string
	targets   map[string]string

	applied   []string
	failApply error
}

func (w *fakeWidget) ID() string                 { return w.id }
func (w *fakeWidget) WindowID() string           { return w.window }
func (w *fakeWidget) Component() string          { return w.component }
func (w *fakeWidget) Selector() string           { return w.selector }
func (w *fakeWidget) Targets() map[string]string { return w.targets }

func (w *fakeWidget) ApplyStyleSheet(text string) error {
	if w.failApply != nil {
		return w.failApply
	}
	w.applied = append(w.applied, text)
	return nil
}

type listenerWidget struct {
	fakeWidget
	schemes []theme.Scheme
}

func (w *listenerWidget) ThemeChanged(scheme theme.Scheme) {
	w.schemes = append(w.schemes, scheme)
}

func newButton(id, window string) *fakeWidget {
	return &fakeWidget{
		id:        id,
		window:    window,
		component: "Button",
		selector:  "QPushButton#" + id,
		targets:   map[string]string{"label": "QLabel"},
	}
}

func newEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := New(Options{})
	require.NoError(t, err)
	return engine
}

func lastApplied(t *testing.T, w *fakeWidget) string {
	t.Helper()

	require.NotEmpty(t, w.applied)
	return w.applied[len(w.applied)-1]
}

func TestNewValidatesInputs(t *testing.T) {
	t.Parallel()

	bad := theme.Default()
	bad.Scale = -1
	_, err := New(Options{Theme: bad})
	require.Error(t, err)

	var verr *loomerrors.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = New(Options{LogLevel: "verbose"})
	require.Error(t, err)
}

func TestRegisterStylesImmediately(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("save", "main")

	err := engine.Register(w, props.Bag{Items: map[string]any{"bg": "blue.5", "c": "white"}})
	require.NoError(t, err)

	require.Len(t, w.applied, 1)
	assert.Equal(t, "QPushButton#save {\n    background-color: #3b82f6;\n    color: white;\n}\n", w.applied[0])
}

func TestRegisterRejectsBadWidgets(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)

	require.Error(t, engine.Register(nil, props.Bag{}))
	require.Error(t, engine.Register(&fakeWidget{window: "main", selector: "QWidget"}, props.Bag{}))

	w := newButton("save", "main")
	require.NoError(t, engine.Register(w, props.Bag{}))
	err := engine.Register(newButton("save", "other"), props.Bag{})
	require.Error(t, err)

	var verr *loomerrors.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestApplyWithEqualContentIsNoOp(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("save", "main")
	require.NoError(t, engine.Register(w, props.Bag{Items: map[string]any{"bg": "primary"}}))
	require.Len(t, w.applied, 1)

	regenerations := testutil.ToFloat64(engine.Collectors().Regenerations)

	require.NoError(t, engine.Apply(engine.Theme()))
	require.NoError(t, engine.Apply(engine.Theme()))

	assert.Equal(t, uint64(1), engine.Version())
	assert.Equal(t, regenerations, testutil.ToFloat64(engine.Collectors().Regenerations))
	assert.Equal(t, 0.0, testutil.ToFloat64(engine.Collectors().ThemeApplies))
	assert.Len(t, w.applied, 1)
}

func TestApplyFailureKeepsPreviousTheme(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("save", "main")
	require.NoError(t, engine.Register(w, props.Bag{Items: map[string]any{"c": "primary"}}))

	bad := engine.Theme()
	bad.Primary = "plaid"
	err := engine.Apply(bad)
	require.Error(t, err)

	var verr *loomerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, uint64(1), engine.Version())
	assert.Equal(t, "blue", engine.Theme().Primary)

	// Styling keeps working against the still-installed theme.
	require.NoError(t, engine.SetProps("save", props.Bag{Items: map[string]any{"c": "primary", "fw": 600}}))
	text := lastApplied(t, w)
	assert.Contains(t, text, "color: #2563eb;")
	assert.Contains(t, text, "font-weight: 600;")
}

func TestResizeAcrossBreakpointRestyles(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("card", "main")
	require.NoError(t, engine.Register(w, props.Bag{
		Items: map[string]any{"p": props.Responsive{"base": 4, "md": 8}},
	}))
	require.Len(t, w.applied, 1)
	assert.Contains(t, w.applied[0], "padding-top: 4px;")

	require.True(t, engine.Resize("main", 1000))
	require.Len(t, w.applied, 2)
	assert.Contains(t, w.applied[1], "padding-top: 8px;")
	assert.Equal(t, 1.0, testutil.ToFloat64(engine.Collectors().BreakpointTransitions))

	// Width changes inside the same breakpoint are free.
	require.False(t, engine.Resize("main", 1100))
	require.Len(t, w.applied, 2)

	// Returning to a breakpoint seen before is served from cache.
	require.True(t, engine.Resize("main", 500))
	require.Len(t, w.applied, 3)
	assert.Contains(t, w.applied[2], "padding-top: 4px;")
	assert.Equal(t, 2.0, testutil.ToFloat64(engine.Collectors().Regenerations))
	assert.GreaterOrEqual(t, testutil.ToFloat64(engine.Collectors().CacheHits), 1.0)
}

func TestApplyRestylesAndNotifies(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := &listenerWidget{fakeWidget: *newButton("save", "main")}
	require.NoError(t, engine.Register(w, props.Bag{Items: map[string]any{"c": "dimmed"}}))
	assert.Contains(t, w.applied[0], "color: #4b5563;")

	var events []ThemeEvent
	sub := engine.OnThemeChange(func(event ThemeEvent) { events = append(events, event) })

	dark := engine.Theme()
	dark.Scheme = theme.SchemeDark
	require.NoError(t, engine.Apply(dark))

	require.Len(t, w.applied, 2)
	assert.Contains(t, w.applied[1], "color: #9ca3af;")
	assert.Equal(t, uint64(2), engine.Version())

	require.Len(t, events, 1)
	assert.Equal(t, theme.SchemeDark, events[0].Scheme)
	assert.Equal(t, uint64(2), events[0].Version)
	assert.Equal(t, []theme.Scheme{theme.SchemeDark}, w.schemes)

	sub.Unsubscribe()
	red := engine.Theme()
	red.Primary = "red"
	require.NoError(t, engine.Apply(red))
	assert.Len(t, events, 1)
	assert.Len(t, w.schemes, 2)
}

func TestUpdateLayersOntoInstalledTheme(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("cta", "main")
	require.NoError(t, engine.Register(w, props.Bag{Items: map[string]any{"bg": "primary"}}))
	assert.Contains(t, w.applied[0], "background-color: #2563eb;")

	require.NoError(t, engine.Update(theme.Overrides{Primary: "green"}))
	assert.Equal(t, uint64(2), engine.Version())
	assert.Equal(t, "green", engine.Theme().Primary)
	assert.Contains(t, lastApplied(t, w), "background-color: #16a34a;")

	// Later layers win.
	require.NoError(t, engine.Update(
		theme.Overrides{Primary: "purple"},
		theme.Overrides{Primary: "cyan"},
	))
	assert.Equal(t, "cyan", engine.Theme().Primary)

	// An empty update changes nothing.
	version := engine.Version()
	require.NoError(t, engine.Update())
	assert.Equal(t, version, engine.Version())
}

func TestPropPrecedenceAcrossLayers(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	engine.RegisterDefaults("Button", props.Bag{Items: map[string]any{"fz": "sm", "c": "white"}})

	themed := engine.Theme()
	themed.Components = map[string]props.Bag{
		"Button": {Items: map[string]any{"c": "bright"}},
	}
	require.NoError(t, engine.Apply(themed))

	w := newButton("go", "main")
	require.NoError(t, engine.Register(w, props.Bag{Items: map[string]any{"bg": "primary"}}))

	text := w.applied[0]
	assert.Contains(t, text, "font-size: 14px;")
	assert.Contains(t, text, "color: #111827;")
	assert.Contains(t, text, "background-color: #2563eb;")
}

func TestStateAndElementBlocks(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("save", "main")
	require.NoError(t, engine.Register(w, props.Bag{
		Items: map[string]any{"bg": "blue.6"},
		States: map[string]props.Bag{
			"hover": {Items: map[string]any{"bg": "blue.7"}},
		},
		Elements: map[string]props.Bag{
			"label": {Items: map[string]any{"c": "bright"}},
		},
	}))

	text := w.applied[0]
	assert.Contains(t, text, "QPushButton#save {\n    background-color: #2563eb;\n}\n")
	assert.Contains(t, text, "QPushButton#save:hover {\n    background-color: #1d4ed8;\n}\n")
	assert.Contains(t, text, "QPushButton#save QLabel {\n    color: #111827;\n}\n")
}

func TestUnresolvablePropIsDroppedNotFatal(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("save", "main")
	require.NoError(t, engine.Register(w, props.Bag{
		Items: map[string]any{"c": "blurple", "bg": "primary"},
	}))

	text := w.applied[0]
	assert.Contains(t, text, "background-color: #2563eb;")
	assert.NotContains(t, text, "color:")
	assert.Equal(t, 1.0, testutil.ToFloat64(engine.Collectors().Diagnostics))
}

func TestSerializationFailureKeepsLastStylesheet(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("save", "main")
	require.NoError(t, engine.Register(w, props.Bag{Items: map[string]any{"c": "white"}}))
	require.Len(t, w.applied, 1)

	err := engine.SetProps("save", props.Bag{Raw: map[string]string{"font-family": "Oops{"}})
	require.Error(t, err)

	var serr *loomerrors.SerializationError
	require.ErrorAs(t, err, &serr)
	require.Len(t, w.applied, 1)

	// The widget recovers as soon as the props do.
	require.NoError(t, engine.SetProps("save", props.Bag{Items: map[string]any{"c": "black"}}))
	assert.Contains(t, lastApplied(t, w), "color: black;")
}

func TestToolkitRejectionSurfacesError(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("save", "main")
	w.failApply = errors.New("native widget destroyed")

	err := engine.Register(w, props.Bag{Items: map[string]any{"c": "white"}})
	require.ErrorContains(t, err, "native widget destroyed")
}

func TestSetPropsUnknownWidget(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	err := engine.SetProps("ghost", props.Bag{})
	require.Error(t, err)

	var lerr *loomerrors.LookupError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "ghost", lerr.Key)
}

func TestResolveAndApplyUpserts(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("save", "main")

	require.NoError(t, engine.ResolveAndApply(w, props.Bag{Items: map[string]any{"c": "white"}}))
	require.Len(t, w.applied, 1)
	assert.Contains(t, w.applied[0], "color: white;")

	require.NoError(t, engine.ResolveAndApply(w, props.Bag{Items: map[string]any{"c": "black"}}))
	require.Len(t, w.applied, 2)
	assert.Contains(t, lastApplied(t, w), "color: black;")

	// Same bag again: cached artifact, identical hash, nothing re-pushed.
	require.NoError(t, engine.ResolveAndApply(w, props.Bag{Items: map[string]any{"c": "black"}}))
	require.Len(t, w.applied, 2)

	require.Error(t, engine.ResolveAndApply(nil, props.Bag{}))
}

func TestDeregisterFreesTheID(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("save", "main")
	require.NoError(t, engine.Register(w, props.Bag{Items: map[string]any{"c": "white"}}))

	engine.Deregister("save")
	_, err := engine.Stylesheet("save")
	require.Error(t, err)

	require.NoError(t, engine.Register(newButton("save", "main"), props.Bag{}))
}

func TestCloseWindowDropsItsWidgets(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	first := newButton("a", "win1")
	second := newButton("b", "win2")
	require.NoError(t, engine.Register(first, props.Bag{Items: map[string]any{"c": "white"}}))
	require.NoError(t, engine.Register(second, props.Bag{Items: map[string]any{"c": "white"}}))

	engine.CloseWindow("win1")

	_, err := engine.Stylesheet("a")
	require.Error(t, err)
	_, err = engine.Stylesheet("b")
	require.NoError(t, err)
}

func TestStylesheetReturnsWithoutPushing(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("save", "main")
	require.NoError(t, engine.Register(w, props.Bag{Items: map[string]any{"c": "primary"}}))
	require.Len(t, w.applied, 1)

	artifact, err := engine.Stylesheet("save")
	require.NoError(t, err)
	assert.Contains(t, artifact.Text, "color: #2563eb;")
	assert.NotZero(t, artifact.Hash)
	assert.Equal(t, []string{"QPushButton#save"}, artifact.Selectors)
	require.Len(t, w.applied, 1)

	_, err = engine.Stylesheet("ghost")
	require.Error(t, err)
}

func TestDebugLoggingEmitsStylesheetDiffs(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	engine, err := New(Options{LogLevel: "debug", LogWriter: &logs})
	require.NoError(t, err)

	w := newButton("save", "main")
	require.NoError(t, engine.Register(w, props.Bag{Items: map[string]any{"bg": "primary"}}))
	require.NoError(t, engine.Update(theme.Overrides{Primary: "green"}))

	out := logs.String()
	assert.Contains(t, out, "stylesheet replaced")
	assert.Contains(t, out, "#16a34a")
	assert.Contains(t, out, "theme applied")
}

func TestSubscribeBundlesRegistrationAndCallback(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	w := newButton("save", "main")

	var schemes []theme.Scheme
	sub, err := engine.Subscribe(w, props.Bag{Items: map[string]any{"c": "primary"}}, func(s theme.Scheme) {
		schemes = append(schemes, s)
	})
	require.NoError(t, err)
	require.Len(t, w.applied, 1)

	dark := engine.Theme()
	dark.Scheme = theme.SchemeDark
	require.NoError(t, engine.Apply(dark))
	assert.Equal(t, []theme.Scheme{theme.SchemeDark}, schemes)

	sub.Unsubscribe()
	_, err = engine.Stylesheet("save")
	require.Error(t, err)

	light := engine.Theme()
	light.Scheme = theme.SchemeLight
	require.NoError(t, engine.Apply(light))
	assert.Len(t, schemes, 1)
}

func TestWindowContextIsShared(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := engine.Window("main")
	require.NotNil(t, ctx)
	assert.Same(t, ctx, engine.Window("main"))
	assert.Equal(t, "base", ctx.Active())

	engine.Resize("main", 800)
	assert.Equal(t, "sm", ctx.Active())
}
