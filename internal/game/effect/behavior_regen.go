package effect

import (
	"log/slog"
	"strconv"
)

// healable is the vitals surface periodic healing needs from a target.
type healable interface {
	CurrentHP() int32
	MaxHP() int32
	SetCurrentHP(hp int32)
	IsDead() bool
}

// NewRegenerationBehavior heals HP on every world tick.
// Params: "power" (healing per tick). Dead or full-HP targets are skipped.
func NewRegenerationBehavior(target Target, opts *Options) *Descriptor {
	power, _ := strconv.ParseFloat(opts.Params["power"], 64)

	return &Descriptor{
		Name: "Regeneration",
		Desc: "Wounds knit themselves closed.",
		Aura: "regen",
		Deactivate: func() {
			slog.Debug("regeneration ended")
		},
		Events: map[string]Handler{
			EventTick: func(...any) {
				patient, ok := target.(healable)
				if !ok || patient.IsDead() {
					return
				}

				current, max := patient.CurrentHP(), patient.MaxHP()
				if current >= max {
					return
				}

				heal := int32(power)
				if heal <= 0 {
					return
				}
				if current+heal > max {
					heal = max - current
				}

				patient.SetCurrentHP(current + heal)
				slog.Debug("regeneration tick", "healed", heal)
			},
		},
	}
}
