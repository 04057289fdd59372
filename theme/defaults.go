package theme

import (
	"github.com/loomkit/loom/props"
	"github.com/loomkit/loom/token"
)

// Default returns the built-in theme: a Tailwind-style palette of ten-shade
// families, pixel token scales, and the standard five breakpoints. Callers
// get a fresh copy each time and may mutate it freely before installing it.
func Default() *Theme {
	return &Theme{
		Scheme:       SchemeLight,
		Primary:      "blue",
		PrimaryShade: PrimaryShade{Light: 6, Dark: 8},
		Scale:        1,

		Colors: map[string]token.Family{
			"slate": {
				"#f8fafc", "#f1f5f9", "#e2e8f0", "#cbd5e1", "#94a3b8",
				"#64748b", "#475569", "#334155", "#1e293b", "#0f172a",
			},
			"gray": {
				"#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af",
				"#6b7280", "#4b5563", "#374151", "#1f2937", "#111827",
			},
			"blue": {
				"#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa",
				"#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a",
			},
			"green": {
				"#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80",
				"#22c55e", "#16a34a", "#15803d", "#166534", "#14532d",
			},
			"red": {
				"#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171",
				"#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d",
			},
			"yellow": {
				"#fefce8", "#fef3c7", "#fde68a", "#fcd34d", "#fbbf24",
				"#eab308", "#ca8a04", "#a16207", "#854d0e", "#713f12",
			},
			"purple": {
				"#faf5ff", "#f3e8ff", "#e9d5ff", "#d8b4fe", "#c084fc",
				"#a855f7", "#9333ea", "#7c3aed", "#6b21a8", "#581c87",
			},
			"cyan": {
				"#ecfeff", "#cffafe", "#a5f3fc", "#67e8f9", "#22d3ee",
				"#06b6d4", "#0891b2", "#0e7490", "#155e75", "#164e63",
			},
		},

		Spacing: map[string]float64{
			"xs": 10, "sm": 12, "md": 16, "lg": 20, "xl": 32,
		},
		Radius: map[string]float64{
			"xs": 2, "sm": 4, "md": 8, "lg": 16, "xl": 32,
		},
		FontSizes: map[string]float64{
			"xs": 12, "sm": 14, "md": 16, "lg": 18, "xl": 20,
		},
		LineHeights: map[string]float64{
			"xs": 16, "sm": 18, "md": 20, "lg": 24, "xl": 28,
		},
		Shadows: map[string]string{
			"xs": "0 1px 2px rgba(0, 0, 0, 0.1)",
			"sm": "0 1px 3px rgba(0, 0, 0, 0.1)",
			"md": "0 2px 6px rgba(0, 0, 0, 0.12)",
			"lg": "0 6px 12px rgba(0, 0, 0, 0.15)",
			"xl": "0 12px 24px rgba(0, 0, 0, 0.18)",
		},
		Breakpoints: map[string]float64{
			"xs": 576, "sm": 768, "md": 992, "lg": 1200, "xl": 1408,
		},

		Components: map[string]props.Bag{},
	}
}
