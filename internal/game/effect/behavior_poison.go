package effect

import (
	"log/slog"
	"strconv"
)

// damageable is the vitals surface periodic damage behaviors need from a
// target. Asserted at tick time; targets without vitals are skipped.
type damageable interface {
	CurrentHP() int32
	ReduceCurrentHP(damage int32)
	IsDead() bool
}

// NewPoisonBehavior deals periodic damage on every world tick.
// Params: "power" (damage per tick), "canKill" (bool, default false).
// If canKill is false, damage cannot reduce HP below 1.
func NewPoisonBehavior(target Target, opts *Options) *Descriptor {
	power, _ := strconv.ParseFloat(opts.Params["power"], 64)
	canKill, _ := strconv.ParseBool(opts.Params["canKill"])

	return &Descriptor{
		Name: "Poison",
		Desc: "Venom courses through your veins.",
		Aura: "poison",
		Activate: func(_ *Options, _ Target) {
			slog.Debug("poison applied", "power", power, "canKill", canKill)
		},
		Deactivate: func() {
			slog.Debug("poison ended")
		},
		Events: map[string]Handler{
			EventTick: func(...any) {
				victim, ok := target.(damageable)
				if !ok || victim.IsDead() {
					return
				}

				damage := int32(power)
				if damage <= 0 {
					return
				}

				// Kill protection: never drop below 1 HP unless allowed.
				if !canKill && damage >= victim.CurrentHP() {
					damage = victim.CurrentHP() - 1
					if damage <= 0 {
						return
					}
				}

				victim.ReduceCurrentHP(damage)
				slog.Debug("poison tick", "damage", damage)
			},
		},
	}
}
