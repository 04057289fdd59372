// Package metrics exposes the styling engine's Prometheus collectors.
// Counters are constructed unregistered so the engine can always increment
// them; applications that scrape call Register with their registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors groups the engine's counters.
type Collectors struct {
	Regenerations         prometheus.Counter
	CacheHits             prometheus.Counter
	CacheMisses           prometheus.Counter
	ThemeApplies          prometheus.Counter
	BreakpointTransitions prometheus.Counter
	Diagnostics           prometheus.Counter
}

// New builds the engine collectors.
func New() *Collectors {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	}
	return &Collectors{
		Regenerations:         counter("loom_regenerations_total", "Stylesheet artifacts generated, excluding cache hits."),
		CacheHits:             counter("loom_cache_hits_total", "Stylesheet requests served from the artifact cache."),
		CacheMisses:           counter("loom_cache_misses_total", "Stylesheet requests that required generation."),
		ThemeApplies:          counter("loom_theme_applies_total", "Theme applies that changed the installed theme."),
		BreakpointTransitions: counter("loom_breakpoint_transitions_total", "Window resizes that crossed a breakpoint boundary."),
		Diagnostics:           counter("loom_diagnostics_total", "Prop declarations skipped because their value failed to resolve."),
	}
}

// Register attaches every collector to the registerer. A nil registerer
// means the default Prometheus registry.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, collector := range []prometheus.Collector{
		c.Regenerations,
		c.CacheHits,
		c.CacheMisses,
		c.ThemeApplies,
		c.BreakpointTransitions,
		c.Diagnostics,
	} {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
