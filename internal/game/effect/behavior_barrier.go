package effect

import (
	"log/slog"
	"strconv"
)

// NewBarrierBehavior adds a flat bonus to the defense attribute and logs
// incoming hits while active.
// Params: "value" (float64 additive bonus).
func NewBarrierBehavior(target Target, opts *Options) *Descriptor {
	value, _ := strconv.ParseFloat(opts.Params["value"], 64)

	return &Descriptor{
		Name: "Barrier",
		Desc: "A shimmering shell absorbs blows.",
		Aura: "barrier",
		Deactivate: func() {
			slog.Debug("barrier ended", "value", value)
		},
		Events: map[string]Handler{
			EventHit: func(args ...any) {
				slog.Debug("barrier absorbed a hit", "bonus", value)
			},
		},
		Modifiers: map[string]ModifierFunc{
			"defense": func(base float64) float64 {
				return base + value
			},
		},
	}
}
