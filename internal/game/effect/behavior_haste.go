package effect

import (
	"log/slog"
	"strconv"
)

// NewHasteBehavior multiplies the speed attribute.
// Params: "factor" (float64 multiplier; non-positive falls back to 1.0).
func NewHasteBehavior(target Target, opts *Options) *Descriptor {
	factor, _ := strconv.ParseFloat(opts.Params["factor"], 64)
	if factor <= 0 {
		factor = 1.0
	}

	return &Descriptor{
		Name: "Haste",
		Desc: "The world slows around you.",
		Aura: "haste",
		Deactivate: func() {
			slog.Debug("haste ended", "factor", factor)
		},
		Modifiers: map[string]ModifierFunc{
			"speed": func(base float64) float64 {
				return base * factor
			},
		},
	}
}
