package effect

import (
	"log/slog"
	"strconv"
)

// NewMightBehavior adds a flat bonus to the attack attribute.
// Params: "value" (float64 additive bonus).
func NewMightBehavior(target Target, opts *Options) *Descriptor {
	value, _ := strconv.ParseFloat(opts.Params["value"], 64)

	return &Descriptor{
		Name: "Might",
		Desc: "Strength surges through your arms.",
		Aura: "might",
		Activate: func(_ *Options, _ Target) {
			slog.Debug("might applied", "value", value)
		},
		Deactivate: func() {
			slog.Debug("might ended", "value", value)
		},
		Modifiers: map[string]ModifierFunc{
			"attack": func(base float64) float64 {
				return base + value
			},
		},
	}
}
